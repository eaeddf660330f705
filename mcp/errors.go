package mcp

import (
	"fmt"
	"time"
)

// TransportError indicates a non-2xx HTTP status from the server. The
// status and body are preserved for diagnostics. Transport failures
// are never retried by the call helpers; only the readiness poller
// treats them as transient.
type TransportError struct {
	StatusCode int
	Status     string
	Body       []byte
}

var _ error = &TransportError{}

func (e *TransportError) Error() string {
	if len(e.Body) == 0 {
		return fmt.Sprintf("unexpected HTTP status: %s", e.Status)
	}
	return fmt.Sprintf("unexpected HTTP status: %s: %s", e.Status, e.Body)
}

// DecodeError indicates a response body that is not a valid JSON object.
type DecodeError struct {
	Err error
}

var _ error = &DecodeError{}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("invalid JSON response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// ReadinessTimeoutError indicates the readiness poller exhausted its
// attempt budget without the server ever answering initialize.
type ReadinessTimeoutError struct {
	URL      string
	Attempts int
	Delay    time.Duration
}

var _ error = &ReadinessTimeoutError{}

func (e *ReadinessTimeoutError) Error() string {
	return fmt.Sprintf("server at %s did not become ready after %d attempts", e.URL, e.Attempts)
}
