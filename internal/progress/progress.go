// Package progress draws a transfer indicator on stderr while a response
// body downloads.
package progress

import (
	"io"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"

	"github.com/ohs-security/ohs-cli/internal/util"
)

const (
	defaultWidth = 80
	// Room left on the line for the spinner, byte counts and rate.
	statsWidth = 40
)

// IsCI reports whether the process runs under a known CI system.
func IsCI() bool {
	ciEnvVars := []string{
		"CI",
		"CONTINUOUS_INTEGRATION",
		"GITHUB_ACTIONS",
		"GITLAB_CI",
		"CIRCLECI",
		"JENKINS_URL",
		"TRAVIS",
		"BITBUCKET_BUILD_NUMBER",
		"AZURE_PIPELINES",
	}

	for _, envVar := range ciEnvVars {
		if os.Getenv(envVar) != "" {
			return true
		}
	}
	return false
}

// NewReader wraps body so that reading it advances an indicator on stderr.
// size is the expected length, or -1 when unknown. body is returned as is
// when disabled, in CI, or when stderr is not a terminal.
func NewReader(body io.ReadCloser, size int64, description string, disabled bool) io.ReadCloser {
	if disabled || IsCI() || !isTerminalWriter(os.Stderr) {
		return body
	}
	return newReader(body, size, description, os.Stderr, terminalWidth())
}

func newReader(body io.ReadCloser, size int64, description string, w io.Writer, width int) io.ReadCloser {
	descWidth := width - statsWidth
	if descWidth < 10 {
		descWidth = 10
	}

	bar := progressbar.NewOptions64(size,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(util.Truncate(description, descWidth)),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)

	return &reader{
		Reader: io.TeeReader(body, bar),
		body:   body,
		bar:    bar,
	}
}

type reader struct {
	io.Reader
	body io.Closer
	bar  *progressbar.ProgressBar
}

// Close clears the indicator and closes the underlying body.
func (r *reader) Close() error {
	_ = r.bar.Finish()
	return r.body.Close()
}

// isTerminalWriter reports whether w is a file attached to a terminal.
func isTerminalWriter(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd())) //nolint:gosec // fd fits in int
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stderr.Fd())) //nolint:gosec // fd fits in int
	if err != nil || width <= 0 {
		return defaultWidth
	}
	return width
}
