package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ohs-security/ohs-cli/internal/auth"
	"github.com/ohs-security/ohs-cli/internal/httpclient"
)

const (
	issueSearchEndpoint = "rest/api/2/search"
	issueReadTimeout    = 5 * time.Second
)

// IssueClient talks to the issue tracker REST API.
type IssueClient struct {
	svc *service
}

// NewIssueClient creates a client for the issue tracker at baseURL.
func NewIssueClient(baseURL string, provider auth.AuthHeaderProvider, transport httpclient.Doer, opts ...Option) (*IssueClient, error) {
	svc, err := newService(baseURL, provider, transport, opts)
	if err != nil {
		return nil, err
	}
	return &IssueClient{svc: svc}, nil
}

// FetchIssues runs the project issue search and returns the raw response
// body. The caller must close it.
func (c *IssueClient) FetchIssues(ctx context.Context) (io.ReadCloser, error) {
	body, err := c.svc.do(ctx, call{
		method:      http.MethodGet,
		fragment:    issueSearchEndpoint,
		header:      http.Header{"Content-Type": []string{"application/json"}},
		readTimeout: issueReadTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("issue search failed: %w", err)
	}
	return body, nil
}
