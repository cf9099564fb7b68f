// api/errors.go
package api

import "fmt"

// RequestError is returned when the backend answered with a non-2xx status.
// It carries the status code and the raw response body text so the caller can
// surface the backend's own explanation. Never retried automatically.
type RequestError struct {
	StatusCode int
	Body       string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("request failed with status %d: %s", e.StatusCode, e.Body)
}

// IsNotFound reports whether the backend answered 404.
func (e *RequestError) IsNotFound() bool {
	return e.StatusCode == 404
}

// TransportError is returned when no response arrived at all (network
// unreachable, connection refused, timeout). Distinct from RequestError so
// callers can tell "the backend said no" from "the backend never answered".
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport failure: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
