// Package testutil provides utilities for testing.
package testutil

import (
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"testing"
)

// Sample scanner payloads used by the mock server.
const (
	ScanListXML = `<?xml version="1.0" encoding="UTF-8" ?>
<!DOCTYPE SCAN_LIST_OUTPUT SYSTEM "https://qualysapi.qualys.com/api/2.0/fo/scan/scan_list_output.dtd">
<SCAN_LIST_OUTPUT>
  <RESPONSE>
    <DATETIME>2024-03-01T10:00:00Z</DATETIME>
    <SCAN_LIST>
      <SCAN><REF>scan/1709287200.11111</REF><STATUS><STATE>Finished</STATE></STATUS></SCAN>
      <SCAN><REF>scan/1709287200.22222</REF><STATUS><STATE>Finished</STATE></STATUS></SCAN>
    </SCAN_LIST>
  </RESPONSE>
</SCAN_LIST_OUTPUT>`

	VulnInfoXML = `<?xml version="1.0" encoding="UTF-8" ?>
<KNOWLEDGE_BASE_VULN_LIST_OUTPUT>
  <RESPONSE>
    <VULN_LIST>
      <VULN>
        <QID>38170</QID>
        <SEVERITY_LEVEL>2</SEVERITY_LEVEL>
        <TITLE><![CDATA[SSL Certificate - Subject Common Name Does Not Match Server FQDN]]></TITLE>
      </VULN>
    </VULN_LIST>
  </RESPONSE>
</KNOWLEDGE_BASE_VULN_LIST_OUTPUT>`

	ScanDetailsJSON = `[{"ip": "10.0.0.1", "qid": 38170, "severity": 2}, {"target_distribution_across_scanner_appliances": "External"}]`

	IssuesJSON = `{"startAt":0,"maxResults":50,"total":1,"issues":[{"key":"OHS-1"}]}`
)

// RecordedRequest is a request seen by the mock server.
type RecordedRequest struct {
	Method        string
	Path          string
	Authorization string
	Header        http.Header
	Form          url.Values
}

// MockAPI serves issue tracker and scanner endpoints and records requests.
type MockAPI struct {
	mu       sync.Mutex
	requests []RecordedRequest
}

// Requests returns the recorded requests.
func (m *MockAPI) Requests() []RecordedRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]RecordedRequest, len(m.requests))
	copy(out, m.requests)
	return out
}

// NewMockAPIServer starts a server answering:
//
//	GET  /rest/api/2/search                 -> IssuesJSON
//	POST /api/2.0/fo/scan/ action=list      -> ScanListXML
//	POST /api/2.0/fo/scan/ action=fetch     -> ScanDetailsJSON
//	POST /api/2.0/fo/knowledge_base/vuln/   -> VulnInfoXML
func NewMockAPIServer(t *testing.T) (*MockAPI, string) {
	t.Helper()
	mock := &MockAPI{}

	handler := func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		form, _ := url.ParseQuery(string(body))

		mock.mu.Lock()
		mock.requests = append(mock.requests, RecordedRequest{
			Method:        r.Method,
			Path:          r.URL.Path,
			Authorization: r.Header.Get("Authorization"),
			Header:        r.Header.Clone(),
			Form:          form,
		})
		mock.mu.Unlock()

		switch {
		case r.URL.Path == "/rest/api/2/search" && r.Method == http.MethodGet:
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(IssuesJSON + "\n"))
		case strings.HasPrefix(r.URL.Path, "/api/2.0/fo/scan") && r.Method == http.MethodPost:
			switch form.Get("action") {
			case "list":
				XMLResponse(w, http.StatusOK, ScanListXML)
			case "fetch":
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(ScanDetailsJSON))
			default:
				ErrorResponse(w, http.StatusBadRequest, "unsupported action")
			}
		case strings.HasPrefix(r.URL.Path, "/api/2.0/fo/knowledge_base/vuln") && r.Method == http.MethodPost:
			XMLResponse(w, http.StatusOK, VulnInfoXML)
		default:
			http.NotFound(w, r)
		}
	}

	server := NewTestServer(t, handler)
	return mock, server.URL + "/"
}
