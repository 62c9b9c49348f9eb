// Package api implements the requests made to the issue tracker and the
// vulnerability scanner.
package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/ohs-security/ohs-cli/internal/auth"
	"github.com/ohs-security/ohs-cli/internal/httpclient"
	"github.com/ohs-security/ohs-cli/internal/util"
)

// Base URLs of the remote services. Set at build time with
//
//	-ldflags "-X github.com/ohs-security/ohs-cli/internal/api.ScannerBaseURL=..."
var (
	IssueTrackerBaseURL = "https://ohs.atlassian.net/"
	ScannerBaseURL      = "https://qualysapi.qualys.com/"
)

// connectTimeout applies to every request.
const connectTimeout = 5 * time.Second

// Option configures a client.
type Option func(*service)

// WithLogger sets the logger used for debug output.
func WithLogger(logger hclog.Logger) Option {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithHeader adds a static header to every request.
func WithHeader(name, value string) Option {
	return func(s *service) {
		s.header.Set(name, value)
	}
}

// service holds what the issue tracker and scanner clients share: base URL,
// auth, static headers and the transport.
type service struct {
	baseURL   *url.URL
	auth      auth.AuthHeaderProvider
	transport httpclient.Doer
	header    http.Header
	logger    hclog.Logger
}

func newService(baseURL string, provider auth.AuthHeaderProvider, transport httpclient.Doer, opts []Option) (*service, error) {
	if provider == nil {
		return nil, fmt.Errorf("auth provider is required")
	}
	if transport == nil {
		return nil, fmt.Errorf("transport is required")
	}

	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("invalid base URL %q: scheme must be http or https", baseURL)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q: missing host", baseURL)
	}

	s := &service{
		baseURL:   parsed,
		auth:      provider,
		transport: transport,
		header:    http.Header{},
		logger:    hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// resolve joins fragment onto the base URL using RFC 3986 reference
// resolution: a base without a trailing slash loses its last path segment.
func (s *service) resolve(fragment string) (string, error) {
	ref, err := url.Parse(fragment)
	if err != nil {
		return "", fmt.Errorf("invalid endpoint %q: %w", fragment, err)
	}
	return s.baseURL.ResolveReference(ref).String(), nil
}

// call describes one endpoint invocation.
type call struct {
	method      string
	fragment    string
	form        url.Values
	header      http.Header
	readTimeout time.Duration
}

// do sends c and returns the response body. The caller must close it.
func (s *service) do(ctx context.Context, c call) (io.ReadCloser, error) {
	endpoint, err := s.resolve(c.fragment)
	if err != nil {
		return nil, err
	}

	authHeader, err := s.auth.GetAuthorizationHeader(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get authorization header: %w", err)
	}

	header := s.header.Clone()
	for name, values := range c.header {
		header[name] = append([]string(nil), values...)
	}
	header.Set("Authorization", authHeader)

	var body []byte
	if c.form != nil {
		header.Set("Content-Type", "application/x-www-form-urlencoded")
		body = []byte(c.form.Encode())
	}

	s.logger.Debug("calling endpoint", "method", c.method, "endpoint", endpoint, "form", util.MaskSecretInLine(c.form.Encode()))

	resp, err := s.transport.Send(ctx, httpclient.Request{
		Method:         c.method,
		URL:            endpoint,
		Header:         header,
		Body:           body,
		ConnectTimeout: connectTimeout,
		ReadTimeout:    c.readTimeout,
	})
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}
