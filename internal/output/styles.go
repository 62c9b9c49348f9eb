// Package output writes command results to standard output and styles the
// text written for humans.
package output

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/ohs-security/ohs-cli/internal/cli"
)

// AdaptiveColor automatically selects Light/Dark variant based on terminal background
var (
	colorAccent = lipgloss.AdaptiveColor{Light: "#7c3aed", Dark: "#a78bfa"} // violet-600 / violet-400
	colorMuted  = lipgloss.AdaptiveColor{Light: "#4B5563", Dark: "#9CA3AF"} // gray-600 / gray-400
	colorBright = lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#FFFFFF"} // gray-800 / white
)

// Styles holds the lipgloss styles used for help and status text.
type Styles struct {
	// Help output styles
	HelpHeading lipgloss.Style // Bold for section headers (Usage:, Flags:, etc.)
	HelpCommand lipgloss.Style // Accent color for command names
	HelpFlag    lipgloss.Style // Accent color for --flag-name

	MutedText lipgloss.Style
	Bold      lipgloss.Style
}

// DefaultStyles returns the default style configuration
func DefaultStyles() *Styles {
	return &Styles{
		HelpHeading: lipgloss.NewStyle().Bold(true).Foreground(colorBright),
		HelpCommand: lipgloss.NewStyle().Foreground(colorAccent),
		HelpFlag:    lipgloss.NewStyle().Foreground(colorAccent),
		MutedText:   lipgloss.NewStyle().Foreground(colorMuted),
		Bold:        lipgloss.NewStyle().Bold(true),
	}
}

// NoColorStyles returns styles with all formatting disabled (for --color=never)
func NoColorStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		HelpHeading: plain,
		HelpCommand: plain,
		HelpFlag:    plain,
		MutedText:   plain,
		Bold:        plain,
	}
}

var (
	currentStyles       *Styles
	lipglossInitialized bool
)

// GetStyles returns the current style set based on color mode
func GetStyles() *Styles {
	if currentStyles == nil {
		SyncStylesWithColorMode()
	}
	return currentStyles
}

// SyncStylesWithColorMode updates the styles based on the current color mode
func SyncStylesWithColorMode() {
	// Initialize lipgloss renderer once (configure to output to stderr)
	if !lipglossInitialized {
		lipgloss.SetDefaultRenderer(lipgloss.NewRenderer(os.Stderr))
		lipglossInitialized = true
	}

	if cli.ColorsEnabled() {
		currentStyles = DefaultStyles()
		if cli.ColorsForced() {
			// --color=always: force TrueColor regardless of TTY detection
			lipgloss.SetColorProfile(termenv.TrueColor)
		} else {
			lipgloss.SetColorProfile(lipgloss.ColorProfile())
		}
	} else {
		currentStyles = NoColorStyles()
		// Force no colors using termenv's Ascii profile
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}
