package httpclient

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func TestNewClient(t *testing.T) {
	t.Run("uses a null logger when none is given", func(t *testing.T) {
		client := NewClient(Config{})

		if client.logger == nil {
			t.Fatal("Expected non-nil logger")
		}
	})

	t.Run("defaults the connect timeout", func(t *testing.T) {
		if got := effectiveConnectTimeout(0); got != DefaultConnectTimeout {
			t.Errorf("Expected %v, got %v", DefaultConnectTimeout, got)
		}
		if got := effectiveConnectTimeout(2 * time.Second); got != 2*time.Second {
			t.Errorf("Expected 2s, got %v", got)
		}
	})
}

func TestNewTransport(t *testing.T) {
	t.Run("read timeout bounds response headers", func(t *testing.T) {
		transport := newTransport(5*time.Second, 60*time.Second)

		if transport.ResponseHeaderTimeout != 60*time.Second {
			t.Errorf("Expected header timeout of 60s, got %v", transport.ResponseHeaderTimeout)
		}
		if transport.TLSHandshakeTimeout != 5*time.Second {
			t.Errorf("Expected TLS handshake timeout of 5s, got %v", transport.TLSHandshakeTimeout)
		}
	})

	t.Run("zero read timeout is unbounded", func(t *testing.T) {
		transport := newTransport(5*time.Second, 0)

		if transport.ResponseHeaderTimeout != 0 {
			t.Errorf("Expected no header timeout, got %v", transport.ResponseHeaderTimeout)
		}
	})
}

func TestClientSend_Success(t *testing.T) {
	var gotMethod, gotBody, gotHeader string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotHeader = r.Header.Get("X-Requested-With")
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("success"))
	}))
	defer server.Close()

	client := NewClient(Config{})

	resp, err := client.Send(context.Background(), Request{
		Method:      http.MethodPost,
		URL:         server.URL,
		Header:      http.Header{"X-Requested-With": []string{"ohs-cli"}},
		Body:        []byte("action=list"),
		ReadTimeout: 5 * time.Second,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	defer resp.Body.Close() //nolint:errcheck // test cleanup

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read body: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}
	if string(body) != "success" {
		t.Errorf("Expected body 'success', got %q", string(body))
	}
	if gotMethod != http.MethodPost {
		t.Errorf("Expected POST, got %s", gotMethod)
	}
	if gotBody != "action=list" {
		t.Errorf("Expected request body 'action=list', got %q", gotBody)
	}
	if gotHeader != "ohs-cli" {
		t.Errorf("Expected X-Requested-With header, got %q", gotHeader)
	}
}

func TestClientSend_RemoteError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte("bad credentials"))
	}))
	defer server.Close()

	client := NewClient(Config{})

	_, err := client.Send(context.Background(), Request{Method: http.MethodGet, URL: server.URL})
	if err == nil {
		t.Fatal("Expected error for 401, got nil")
	}

	var remoteErr *RemoteError
	if !errors.As(err, &remoteErr) {
		t.Fatalf("Expected *RemoteError, got %T: %v", err, err)
	}
	if remoteErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", remoteErr.StatusCode)
	}
	if string(remoteErr.Body) != "bad credentials" {
		t.Errorf("Expected body 'bad credentials', got %q", string(remoteErr.Body))
	}
	if !strings.Contains(err.Error(), "401") || !strings.Contains(err.Error(), "bad credentials") {
		t.Errorf("Expected error to carry status and body, got %q", err.Error())
	}
}

func TestClientSend_ServerErrorNotRetried(t *testing.T) {
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("server error"))
	}))
	defer server.Close()

	client := NewClient(Config{})

	_, err := client.Send(context.Background(), Request{Method: http.MethodGet, URL: server.URL})

	var remoteErr *RemoteError
	if !errors.As(err, &remoteErr) {
		t.Fatalf("Expected *RemoteError, got %T: %v", err, err)
	}
	if got := atomic.LoadInt32(&attempts); got != 1 {
		t.Errorf("Expected exactly 1 attempt, got %d", got)
	}
}

func TestClientSend_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	url := server.URL
	server.Close()

	client := NewClient(Config{})

	_, err := client.Send(context.Background(), Request{
		Method:         http.MethodGet,
		URL:            url,
		ConnectTimeout: time.Second,
	})

	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("Expected *NetworkError, got %T: %v", err, err)
	}
	if netErr.URL != url {
		t.Errorf("Expected URL %s, got %s", url, netErr.URL)
	}
}

func TestClientSend_ReadTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(Config{})

	_, err := client.Send(context.Background(), Request{
		Method:      http.MethodGet,
		URL:         server.URL,
		ReadTimeout: 50 * time.Millisecond,
	})

	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("Expected *NetworkError, got %T: %v", err, err)
	}
	if !netErr.Timeout() {
		t.Errorf("Expected a timeout error, got %v", netErr)
	}
}

func TestClientSend_UnboundedRead(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(100 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("slow report"))
	}))
	defer server.Close()

	client := NewClient(Config{})

	resp, err := client.Send(context.Background(), Request{
		Method:      http.MethodGet,
		URL:         server.URL,
		ReadTimeout: 0,
	})
	if err != nil {
		t.Fatalf("Expected no error without a read timeout, got %v", err)
	}
	defer resp.Body.Close() //nolint:errcheck // test cleanup

	body, _ := io.ReadAll(resp.Body)
	if string(body) != "slow report" {
		t.Errorf("Expected 'slow report', got %q", string(body))
	}
}

func TestClientSend_ContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(100 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(Config{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Send(ctx, Request{Method: http.MethodGet, URL: server.URL})
	if err == nil {
		t.Fatal("Expected error due to context cancellation, got nil")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled in chain, got %v", err)
	}
}

func TestClientSend_BodyWrapper(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("0123456789"))
	}))
	defer server.Close()

	var wrappedSize int64 = -2
	client := NewClient(Config{
		BodyWrapper: func(body io.ReadCloser, size int64) io.ReadCloser {
			wrappedSize = size
			return body
		},
	})

	resp, err := client.Send(context.Background(), Request{Method: http.MethodGet, URL: server.URL})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	defer resp.Body.Close() //nolint:errcheck // test cleanup

	if wrappedSize != 10 {
		t.Errorf("Expected wrapper to see size 10, got %d", wrappedSize)
	}
}

func TestRemoteError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *RemoteError
		expected string
	}{
		{
			name:     "status text and body",
			err:      &RemoteError{StatusCode: 409, Status: "409 Conflict", Body: []byte("busy")},
			expected: "remote service returned 409 Conflict: busy",
		},
		{
			name:     "no body",
			err:      &RemoteError{StatusCode: 503},
			expected: "remote service returned 503",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}
