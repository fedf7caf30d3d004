package plugins

import (
	"github.com/go-playground/validator/v10"
	"go.trai.ch/grove/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// decodeOptions decodes plugin options into T and validates the result.
func decodeOptions[T any](plugin *domain.Plugin) (*T, error) {
	var opts T
	if len(plugin.Options) > 0 {
		data, err := yaml.Marshal(plugin.Options)
		if err != nil {
			return nil, zerr.Wrap(domain.ErrInvalidPluginOptions, err.Error())
		}
		if err := yaml.Unmarshal(data, &opts); err != nil {
			return nil, zerr.Wrap(domain.ErrInvalidPluginOptions, err.Error())
		}
	}
	if err := validate.Struct(&opts); err != nil {
		return nil, zerr.Wrap(domain.ErrInvalidPluginOptions, err.Error())
	}
	return &opts, nil
}
