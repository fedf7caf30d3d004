package ports

import "go.trai.ch/grove/internal/core/domain"

// ConfigLoader defines the interface for loading the project configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration for the project containing cwd.
	Load(cwd string) (*domain.Config, error)

	// DiscoverRoot walks up from cwd to find the directory containing grove.yaml.
	// It returns cwd itself when no config file exists.
	DiscoverRoot(cwd string) (string, error)
}
