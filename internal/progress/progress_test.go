package progress

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"
)

var ciEnvVars = []string{
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

// clearCIEnv unsets every CI variable for the duration of the test.
func clearCIEnv(t *testing.T) {
	t.Helper()
	for _, key := range ciEnvVars {
		t.Setenv(key, "")
		_ = os.Unsetenv(key)
	}
}

type trackingBody struct {
	io.Reader
	closed bool
}

func (b *trackingBody) Close() error {
	b.closed = true
	return nil
}

func TestIsCI(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		expected bool
	}{
		{
			name:     "no CI env vars",
			envVars:  map[string]string{},
			expected: false,
		},
		{
			name:     "CI env var set",
			envVars:  map[string]string{"CI": "true"},
			expected: true,
		},
		{
			name:     "GITHUB_ACTIONS env var set",
			envVars:  map[string]string{"GITHUB_ACTIONS": "true"},
			expected: true,
		},
		{
			name:     "JENKINS_URL env var set",
			envVars:  map[string]string{"JENKINS_URL": "http://jenkins.example.com"},
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearCIEnv(t)
			for key, value := range tt.envVars {
				t.Setenv(key, value)
			}

			if got := IsCI(); got != tt.expected {
				t.Errorf("IsCI() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestNewReader(t *testing.T) {
	t.Run("returns body when disabled", func(t *testing.T) {
		body := &trackingBody{Reader: strings.NewReader("data")}

		if got := NewReader(body, 4, "test", true); got != io.ReadCloser(body) {
			t.Error("Expected same body when disabled")
		}
	})

	t.Run("returns body in CI environment", func(t *testing.T) {
		t.Setenv("CI", "true")
		body := &trackingBody{Reader: strings.NewReader("data")}

		if got := NewReader(body, 4, "test", false); got != io.ReadCloser(body) {
			t.Error("Expected same body in CI environment")
		}
	})
}

func TestProgressReader(t *testing.T) {
	tests := []struct {
		name string
		size int64
	}{
		{name: "known size", size: 9},
		{name: "unknown size", size: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			body := &trackingBody{Reader: strings.NewReader("test data")}

			r := newReader(body, tt.size, "Fetching scan details", &out, 80)

			data, err := io.ReadAll(r)
			if err != nil {
				t.Fatalf("Failed to read: %v", err)
			}
			if string(data) != "test data" {
				t.Errorf("Data mismatch: got %q, want %q", string(data), "test data")
			}

			if err := r.Close(); err != nil {
				t.Fatalf("Close failed: %v", err)
			}
			if !body.closed {
				t.Error("Expected underlying body to be closed")
			}
		})
	}
}

func TestIsTerminalWriter(t *testing.T) {
	t.Run("bytes.Buffer is not a terminal", func(t *testing.T) {
		var buf bytes.Buffer
		if isTerminalWriter(&buf) {
			t.Error("bytes.Buffer should not be detected as terminal")
		}
	})

	t.Run("pipe is not a terminal", func(t *testing.T) {
		r, w, err := os.Pipe()
		if err != nil {
			t.Fatalf("Failed to create pipe: %v", err)
		}
		defer func() { _ = r.Close() }()
		defer func() { _ = w.Close() }()

		if isTerminalWriter(w) {
			t.Error("Pipe should not be detected as terminal")
		}
	})
}
