// Package style provides shared UI styling primitives including brand colors
// and icons for consistent visual presentation across the CLI.
package style

import "github.com/charmbracelet/lipgloss"

// Brand Colors.
var (
	Moss   = lipgloss.Color("#4D7C0F")
	Slate  = lipgloss.Color("#667085")
	Bark   = lipgloss.Color("#7C5E3C")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Dot     = "·"
)

// Header styles table headers.
var Header = lipgloss.NewStyle().Bold(true).Foreground(Moss)

// Muted styles secondary text.
var Muted = lipgloss.NewStyle().Foreground(Slate)
