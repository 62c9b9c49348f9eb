package httpclient

import (
	"errors"
	"fmt"
	"net"
)

// NetworkError reports that no usable response was obtained: dial failures,
// TLS failures, timeouts and connections dropped mid-body.
type NetworkError struct {
	Op  string
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	if e.URL == "" {
		return fmt.Sprintf("network error (%s): %v", e.Op, e.Err)
	}
	return fmt.Sprintf("network error (%s %s): %v", e.Op, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Timeout reports whether the failure was a connect or read timeout.
func (e *NetworkError) Timeout() bool {
	var netErr net.Error
	return errors.As(e.Err, &netErr) && netErr.Timeout()
}

// RemoteError is a non-2xx reply. Status and body are kept verbatim.
type RemoteError struct {
	StatusCode int
	Status     string
	Body       []byte
}

func (e *RemoteError) Error() string {
	status := e.Status
	if status == "" {
		status = fmt.Sprintf("%d", e.StatusCode)
	}
	if len(e.Body) == 0 {
		return fmt.Sprintf("remote service returned %s", status)
	}
	return fmt.Sprintf("remote service returned %s: %s", status, string(e.Body))
}
