// Package testutil provides utilities for testing.
package testutil

import "context"

// TestAuthProvider is a simple auth provider for testing.
// It implements the AuthHeaderProvider interface.
type TestAuthProvider struct {
	Header string
}

// GetAuthorizationHeader returns the configured header value.
func (t *TestAuthProvider) GetAuthorizationHeader(_ context.Context) (string, error) {
	return t.Header, nil
}

// NewTestAuthProvider creates a test auth provider returning "Basic <token>".
func NewTestAuthProvider(token string) *TestAuthProvider {
	return &TestAuthProvider{Header: "Basic " + token}
}
