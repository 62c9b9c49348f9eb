// Package auth provides HTTP Basic authentication for the issue tracker and
// the vulnerability scanner.
// Credentials come from the process environment and are resolved once,
// before any request is built.
package auth

import (
	"context"
	"encoding/base64"
	"fmt"
)

// Environment variables holding service credentials.
const (
	IssueTrackerUsernameVar = "JIRA_USERNAME"
	IssueTrackerPasswordVar = "JIRA_PASSWORD" // #nosec G101 -- variable name, not a credential
	ScannerUsernameVar      = "QUALYS_USERNAME"
	ScannerPasswordVar      = "QUALYS_PASSWORD" // #nosec G101 -- variable name, not a credential
)

// AuthHeaderProvider supplies the Authorization header for a request.
type AuthHeaderProvider interface {
	GetAuthorizationHeader(ctx context.Context) (string, error)
}

// Credentials is a username/password pair for Basic authentication.
type Credentials struct {
	Username string
	Password string
}

// String never includes the password.
func (c Credentials) String() string {
	return fmt.Sprintf("%s:********", c.Username)
}

// BasicHeader returns "Basic <base64(username:password)>" per RFC 7617.
func (c Credentials) BasicHeader() string {
	raw := c.Username + ":" + c.Password
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(raw))
}

// BasicProvider serves a fixed set of credentials as a Basic auth header.
type BasicProvider struct {
	creds Credentials
}

// NewBasicProvider creates a provider for creds.
func NewBasicProvider(creds Credentials) *BasicProvider {
	return &BasicProvider{creds: creds}
}

// GetAuthorizationHeader returns the Basic auth header value.
func (p *BasicProvider) GetAuthorizationHeader(_ context.Context) (string, error) {
	return p.creds.BasicHeader(), nil
}

// Username returns the configured username.
func (p *BasicProvider) Username() string {
	return p.creds.Username
}
