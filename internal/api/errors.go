package api

import "fmt"

// ParseError reports a response that arrived intact but could not be
// decoded in the expected format.
type ParseError struct {
	Format string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s response: %v", e.Format, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
