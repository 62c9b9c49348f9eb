package output

import (
	"bytes"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/ohs-security/ohs-cli/internal/cli"
)

// GetChromaStyle returns the chroma style based on terminal theme settings.
// Returns nil when colors are disabled.
func GetChromaStyle() *chroma.Style {
	if !cli.ColorsEnabled() {
		return nil
	}
	if lipgloss.HasDarkBackground() {
		return styles.Get("monokai")
	}
	return styles.Get("github")
}

// HighlightJSON returns doc with ANSI syntax highlighting. The input is
// returned unchanged if colors are disabled or highlighting fails.
func HighlightJSON(doc string) string {
	style := GetChromaStyle()
	if style == nil {
		return doc
	}

	lexer := lexers.Get("json")
	if lexer == nil {
		return doc
	}
	iterator, err := chroma.Coalesce(lexer).Tokenise(nil, doc)
	if err != nil {
		return doc
	}

	var buf bytes.Buffer
	if err := getTerminalFormatter().Format(&buf, style, iterator); err != nil {
		return doc
	}
	// The lexer normalizes line endings; keep the single-line contract.
	return strings.TrimRight(buf.String(), "\n")
}

// getTerminalFormatter returns the appropriate chroma formatter for terminal color depth.
func getTerminalFormatter() chroma.Formatter {
	profile := lipgloss.ColorProfile()
	switch profile {
	case termenv.TrueColor:
		return formatters.Get("terminal16m")
	case termenv.ANSI256:
		return formatters.Get("terminal256")
	default:
		return formatters.Get("terminal")
	}
}
