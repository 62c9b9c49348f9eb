package auth

import "fmt"

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// ConfigError reports a required environment variable that is unset or
// empty.
type ConfigError struct {
	Variable string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("missing required environment variable %s", e.Variable)
}

// FromEnv reads a username and password from the variables userVar and
// passVar. The first variable that is unset or empty is reported as a
// *ConfigError.
func FromEnv(lookup LookupFunc, userVar, passVar string) (Credentials, error) {
	username, ok := lookup(userVar)
	if !ok || username == "" {
		return Credentials{}, &ConfigError{Variable: userVar}
	}
	password, ok := lookup(passVar)
	if !ok || password == "" {
		return Credentials{}, &ConfigError{Variable: passVar}
	}
	return Credentials{Username: username, Password: password}, nil
}

// IssueTrackerFromEnv reads the issue tracker credentials.
func IssueTrackerFromEnv(lookup LookupFunc) (Credentials, error) {
	return FromEnv(lookup, IssueTrackerUsernameVar, IssueTrackerPasswordVar)
}

// ScannerFromEnv reads the vulnerability scanner credentials.
func ScannerFromEnv(lookup LookupFunc) (Credentials, error) {
	return FromEnv(lookup, ScannerUsernameVar, ScannerPasswordVar)
}
