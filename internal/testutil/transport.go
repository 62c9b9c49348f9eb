package testutil

import (
	"context"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/ohs-security/ohs-cli/internal/httpclient"
)

// StubTransport is an httpclient.Doer that records requests and answers
// from a canned response instead of the network.
type StubTransport struct {
	mu       sync.Mutex
	requests []httpclient.Request

	// Body is returned with status 200 unless Err is set.
	Body string
	// Err, when set, is returned instead of a response.
	Err error
}

// Send records req and returns the canned reply.
func (s *StubTransport) Send(_ context.Context, req httpclient.Request) (*httpclient.Response, error) {
	s.mu.Lock()
	s.requests = append(s.requests, req)
	s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}
	return &httpclient.Response{
		StatusCode: http.StatusOK,
		Status:     "200 OK",
		Header:     http.Header{},
		Body:       io.NopCloser(strings.NewReader(s.Body)),
	}, nil
}

// Calls returns how many requests were sent.
func (s *StubTransport) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

// Requests returns a copy of the recorded requests.
func (s *StubTransport) Requests() []httpclient.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]httpclient.Request, len(s.requests))
	copy(out, s.requests)
	return out
}
