package util

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Ellipsis marks truncated text.
const Ellipsis = "…"

// Truncate shortens s to at most width terminal columns, replacing the tail
// with an ellipsis. Wide runes (CJK, emoji) count as two columns.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, Ellipsis)
}

// Preview returns the first line of body, truncated to width columns.
// Used to summarize remote response bodies in logs.
func Preview(body []byte, width int) string {
	text := strings.TrimSpace(string(body))
	if i := strings.IndexAny(text, "\r\n"); i >= 0 {
		text = text[:i] + " " + Ellipsis
	}
	return Truncate(text, width)
}
