// Package cli provides CLI utilities including colored output with TTY detection.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// ColorMode represents the color output strategy.
type ColorMode string

const (
	ColorModeAuto   ColorMode = "auto"
	ColorModeAlways ColorMode = "always"
	ColorModeNever  ColorMode = "never"
)

// ParseColorMode validates a --color flag value.
func ParseColorMode(s string) (ColorMode, error) {
	switch mode := ColorMode(strings.ToLower(s)); mode {
	case ColorModeAuto, ColorModeAlways, ColorModeNever:
		return mode, nil
	default:
		return "", fmt.Errorf("invalid --color value %q: must be auto, always, or never", s)
	}
}

var (
	colorsEnabled = true
	colorsForced  = false

	errorLabelStyle   = lipgloss.NewStyle()
	warningLabelStyle = lipgloss.NewStyle()
)

// InitColors resolves the final color state based on the --color flag value,
// the NO_COLOR env var, and TTY detection. This should be called after flag parsing.
//
// Precedence:
//  1. --color=always -> colors ON (overrides everything, including NO_COLOR)
//  2. --color=never  -> colors OFF
//  3. NO_COLOR env   -> colors OFF (takes precedence over auto)
//  4. TERM=dumb      -> colors OFF
//  5. --color=auto   -> detect TTY on stderr
func InitColors(mode ColorMode) {
	colorsForced = false
	switch mode {
	case ColorModeAlways:
		colorsForced = true
		enableColors()
	case ColorModeNever:
		disableColors()
	default:
		if os.Getenv("NO_COLOR") != "" {
			disableColors()
			return
		}
		if strings.Contains(strings.ToLower(os.Getenv("TERM")), "dumb") {
			disableColors()
			return
		}
		if !IsTerminal(os.Stderr) {
			disableColors()
			return
		}
		enableColors()
	}
}

// ColorsEnabled returns whether colors are currently enabled.
func ColorsEnabled() bool {
	return colorsEnabled
}

// ColorsForced reports whether --color=always was requested.
func ColorsForced() bool {
	return colorsForced
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd())) // #nosec G115 -- fd fits in int
}

func enableColors() {
	colorsEnabled = true
	errorLabelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#DC2626"))
	warningLabelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F59E0B"))
}

func disableColors() {
	colorsEnabled = false
	errorLabelStyle = lipgloss.NewStyle()
	warningLabelStyle = lipgloss.NewStyle()
}

// PrintError writes a colored error message to stderr.
// Format: "Error: <message>\n"
func PrintError(msg string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", errorLabelStyle.Render("Error:"), msg)
}

// PrintErrorf is like PrintError but with fmt.Sprintf formatting.
func PrintErrorf(format string, args ...interface{}) {
	PrintError(fmt.Sprintf(format, args...))
}

// PrintWarning writes a colored warning message to stderr.
// Format: "Warning: <message>\n"
func PrintWarning(msg string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", warningLabelStyle.Render("Warning:"), msg)
}

// PrintWarningf is like PrintWarning but with fmt.Sprintf formatting.
func PrintWarningf(format string, args ...interface{}) {
	PrintWarning(fmt.Sprintf(format, args...))
}
