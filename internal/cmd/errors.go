package cmd

import (
	"context"
	"errors"

	"github.com/ohs-security/ohs-cli/internal/api"
	"github.com/ohs-security/ohs-cli/internal/auth"
	"github.com/ohs-security/ohs-cli/internal/httpclient"
	"github.com/ohs-security/ohs-cli/internal/xmlnorm"
)

// Process exit codes.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitConfig  = 2
	ExitNetwork = 3
	ExitParse   = 4
	ExitRemote  = 5
)

// ExitCode maps an error returned by Execute to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var (
		configErr  *auth.ConfigError
		networkErr *httpclient.NetworkError
		remoteErr  *httpclient.RemoteError
		parseErr   *api.ParseError
		xmlErr     *xmlnorm.ParseError
	)
	switch {
	case errors.As(err, &configErr):
		return ExitConfig
	case errors.Is(err, context.Canceled):
		return ExitFailure
	case errors.As(err, &networkErr):
		// Read failures are network failures whichever layer reports them.
		return ExitNetwork
	case errors.As(err, &remoteErr):
		return ExitRemote
	case errors.As(err, &parseErr), errors.As(err, &xmlErr):
		return ExitParse
	default:
		return ExitFailure
	}
}
