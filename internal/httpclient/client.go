// Package httpclient provides a single-attempt HTTP transport with separate
// connect and read timeouts.
package httpclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/hashicorp/go-hclog"

	"github.com/ohs-security/ohs-cli/internal/util"
)

const (
	// DefaultConnectTimeout bounds dialing and the TLS handshake.
	DefaultConnectTimeout = 5 * time.Second

	// maxErrorBodySize limits how much of a failed response is kept.
	maxErrorBodySize = 1 << 20 // 1MB
)

// Request describes one outbound call.
type Request struct {
	Method string
	URL    string
	Header http.Header
	Body   []byte

	// ConnectTimeout bounds dialing and the TLS handshake. Zero means
	// DefaultConnectTimeout.
	ConnectTimeout time.Duration
	// ReadTimeout bounds every socket read, including the wait for the
	// response headers. Zero means no read timeout.
	ReadTimeout time.Duration
}

// Response is a successful (2xx) reply. The caller must close Body.
type Response struct {
	StatusCode int
	Status     string
	Header     http.Header
	Body       io.ReadCloser
}

// Doer sends a Request. Implemented by *Client; tests substitute stubs.
type Doer interface {
	Send(ctx context.Context, req Request) (*Response, error)
}

// Config contains configuration options for the HTTP client.
type Config struct {
	// Logger receives debug output. Nil disables logging.
	Logger hclog.Logger
	// BodyWrapper, when set, wraps successful response bodies, e.g. with a
	// progress indicator. size is -1 when the length is unknown.
	BodyWrapper func(body io.ReadCloser, size int64) io.ReadCloser
}

// Client is an HTTP client that performs exactly one attempt per request.
type Client struct {
	config Config
	logger hclog.Logger
}

// NewClient creates a new HTTP client with the given configuration.
func NewClient(cfg Config) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Client{
		config: cfg,
		logger: logger.Named("http"),
	}
}

// Send executes req once. Connection failures and timeouts are returned as
// *NetworkError, non-2xx replies as *RemoteError. Nothing is retried.
func (c *Client) Send(ctx context.Context, req Request) (*Response, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, bytes.NewReader(req.Body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for name, values := range req.Header {
		for _, v := range values {
			httpReq.Header.Add(name, v)
		}
	}

	transport := newTransport(req.ConnectTimeout, req.ReadTimeout)
	httpClient := &http.Client{Transport: transport}

	c.logger.Debug("sending request",
		"method", req.Method,
		"url", util.MaskSecretInLine(req.URL),
		"headers", util.MaskHeader(httpReq.Header),
		"connect_timeout", effectiveConnectTimeout(req.ConnectTimeout),
		"read_timeout", req.ReadTimeout,
	)

	var resp *http.Response
	start := time.Now()

	operation := func() error {
		r, doErr := httpClient.Do(httpReq) //nolint:gosec // G107: URL is built from fixed base URLs
		if doErr != nil {
			return backoff.Permanent(&NetworkError{Op: req.Method, URL: req.URL, Err: doErr})
		}
		if r.StatusCode < 200 || r.StatusCode > 299 {
			body, _ := io.ReadAll(io.LimitReader(r.Body, maxErrorBodySize))
			_ = r.Body.Close() // #nosec G104 - error not critical in error path
			return backoff.Permanent(&RemoteError{
				StatusCode: r.StatusCode,
				Status:     r.Status,
				Body:       body,
			})
		}
		resp = r
		return nil
	}

	// One attempt: StopBackOff never schedules a second try.
	policy := backoff.WithContext(backoff.WithMaxRetries(&backoff.StopBackOff{}, 0), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		transport.CloseIdleConnections()
		var remoteErr *RemoteError
		if errors.As(err, &remoteErr) {
			c.logger.Debug("remote error",
				"status", remoteErr.StatusCode,
				"elapsed", time.Since(start),
				"body", util.MaskSecretInLine(util.Preview(remoteErr.Body, 200)),
			)
		} else {
			c.logger.Debug("request failed", "error", err, "elapsed", time.Since(start))
		}
		return nil, err
	}

	c.logger.Debug("received response",
		"status", resp.StatusCode,
		"content_length", resp.ContentLength,
		"elapsed", time.Since(start),
	)

	body := io.ReadCloser(&transportBody{ReadCloser: resp.Body, transport: transport})
	if c.config.BodyWrapper != nil {
		body = c.config.BodyWrapper(body, resp.ContentLength)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Header:     resp.Header,
		Body:       body,
	}, nil
}

func effectiveConnectTimeout(d time.Duration) time.Duration {
	if d <= 0 {
		return DefaultConnectTimeout
	}
	return d
}

// newTransport builds a transport dedicated to one request so the dialer
// and read deadlines can follow that request's timeouts.
func newTransport(connectTimeout, readTimeout time.Duration) *http.Transport {
	connectTimeout = effectiveConnectTimeout(connectTimeout)
	dialer := &net.Dialer{Timeout: connectTimeout}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DialContext = func(ctx context.Context, network, addr string) (net.Conn, error) {
		conn, err := dialer.DialContext(ctx, network, addr)
		if err != nil {
			return nil, err
		}
		if readTimeout > 0 {
			return &deadlineConn{Conn: conn, readTimeout: readTimeout}, nil
		}
		return conn, nil
	}
	transport.TLSHandshakeTimeout = connectTimeout
	transport.ResponseHeaderTimeout = readTimeout
	return transport
}

// deadlineConn arms a fresh read deadline before every Read, so a stalled
// server trips the timeout while a slow but steady one does not.
type deadlineConn struct {
	net.Conn
	readTimeout time.Duration
}

func (c *deadlineConn) Read(b []byte) (int, error) {
	if err := c.Conn.SetReadDeadline(time.Now().Add(c.readTimeout)); err != nil {
		return 0, err
	}
	return c.Conn.Read(b)
}

// transportBody releases the per-request transport when the body is closed
// and reports read failures as network errors.
type transportBody struct {
	io.ReadCloser
	transport *http.Transport
}

func (b *transportBody) Read(p []byte) (int, error) {
	n, err := b.ReadCloser.Read(p)
	if err != nil && err != io.EOF {
		return n, &NetworkError{Op: "read response body", Err: err}
	}
	return n, err
}

func (b *transportBody) Close() error {
	err := b.ReadCloser.Close()
	b.transport.CloseIdleConnections()
	return err
}
