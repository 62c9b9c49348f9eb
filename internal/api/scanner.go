package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ohs-security/ohs-cli/internal/auth"
	"github.com/ohs-security/ohs-cli/internal/httpclient"
	"github.com/ohs-security/ohs-cli/internal/xmlnorm"
)

const (
	scanEndpoint          = "api/2.0/fo/scan"
	knowledgeBaseEndpoint = "api/2.0/fo/knowledge_base/vuln/"

	// RequestedWith identifies the client to the scanner API, which rejects
	// requests without an X-Requested-With header.
	RequestedWith = "ohs-cli"
)

// Read timeouts per operation. Scan reports can be large and slow, so their
// download is not bounded.
const (
	scanListReadTimeout    = 5 * time.Second
	scanDetailsReadTimeout = 0
	vulnInfoReadTimeout    = 60 * time.Second
)

// ErrMissingIdentifier is returned for an empty scan or vulnerability ID.
var ErrMissingIdentifier = errors.New("identifier must not be empty")

// ScannerClient talks to the vulnerability scanner API.
type ScannerClient struct {
	svc *service
}

// NewScannerClient creates a client for the scanner at baseURL.
func NewScannerClient(baseURL string, provider auth.AuthHeaderProvider, transport httpclient.Doer, opts ...Option) (*ScannerClient, error) {
	opts = append([]Option{WithHeader("X-Requested-With", RequestedWith)}, opts...)
	svc, err := newService(baseURL, provider, transport, opts)
	if err != nil {
		return nil, err
	}
	return &ScannerClient{svc: svc}, nil
}

// ListFinishedScans returns the normalized list of finished scans.
func (c *ScannerClient) ListFinishedScans(ctx context.Context) (xmlnorm.Value, error) {
	body, err := c.svc.do(ctx, call{
		method:   http.MethodPost,
		fragment: scanEndpoint,
		form: url.Values{
			"action": {"list"},
			"state":  {"Finished"},
		},
		readTimeout: scanListReadTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("scan list failed: %w", err)
	}
	return decodeXML(body)
}

// ScanDetails returns the extended report for scanID. The scanner renders
// the report as JSON itself; it is validated and compacted, not normalized.
func (c *ScannerClient) ScanDetails(ctx context.Context, scanID string) (json.RawMessage, error) {
	scanID = strings.TrimSpace(scanID)
	if scanID == "" {
		return nil, fmt.Errorf("scan details: %w", ErrMissingIdentifier)
	}

	body, err := c.svc.do(ctx, call{
		method:   http.MethodPost,
		fragment: scanEndpoint,
		form: url.Values{
			"action":        {"fetch"},
			"scan_ref":      {"scan/" + scanID},
			"mode":          {"extended"},
			"output_format": {"json"},
		},
		readTimeout: scanDetailsReadTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("scan details failed: %w", err)
	}
	return decodeJSON(body)
}

// VulnerabilityInfo returns the normalized knowledge base entry for vulnID.
func (c *ScannerClient) VulnerabilityInfo(ctx context.Context, vulnID string) (xmlnorm.Value, error) {
	vulnID = strings.TrimSpace(vulnID)
	if vulnID == "" {
		return nil, fmt.Errorf("vulnerability info: %w", ErrMissingIdentifier)
	}

	body, err := c.svc.do(ctx, call{
		method:   http.MethodPost,
		fragment: knowledgeBaseEndpoint,
		form: url.Values{
			"action": {"list"},
			"ids":    {vulnID},
		},
		readTimeout: vulnInfoReadTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("vulnerability info failed: %w", err)
	}
	return decodeXML(body)
}

// decodeXML reads the whole body before parsing so that a dropped
// connection surfaces as a network error, not as malformed XML.
func decodeXML(body io.ReadCloser) (xmlnorm.Value, error) {
	defer body.Close() //nolint:errcheck // response body read-only

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	v, err := xmlnorm.Convert(bytes.NewReader(data))
	if err != nil {
		return nil, &ParseError{Format: "XML", Err: err}
	}
	return v, nil
}

func decodeJSON(body io.ReadCloser) (json.RawMessage, error) {
	defer body.Close() //nolint:errcheck // response body read-only

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, data); err != nil {
		return nil, &ParseError{Format: "JSON", Err: err}
	}
	if buf.Len() == 0 {
		return nil, &ParseError{Format: "JSON", Err: io.ErrUnexpectedEOF}
	}
	return json.RawMessage(buf.Bytes()), nil
}
