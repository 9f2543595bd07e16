package backend

import (
	"errors"
	"fmt"
	"net/http"
)

// NetworkError reports a request that never produced an HTTP response.
type NetworkError struct {
	Endpoint string
	Err      error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("backend request failed: %s: %v", e.Endpoint, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// HTTPError reports a non-2xx response. Message comes from a {"message": ...}
// body when the backend sent one.
type HTTPError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("backend API error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

// MalformedPayloadError reports a 2xx response whose body does not match the expected schema.
type MalformedPayloadError struct {
	Endpoint string
	Err      error
}

func (e *MalformedPayloadError) Error() string {
	return fmt.Sprintf("malformed backend payload: %s: %v", e.Endpoint, e.Err)
}

func (e *MalformedPayloadError) Unwrap() error { return e.Err }

// IsNotFound reports whether err is a 404 from the backend.
func IsNotFound(err error) bool {
	var httpErr *HTTPError
	return errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusNotFound
}

// IsUnauthorized reports whether the backend rejected the session token (401 or 403).
func IsUnauthorized(err error) bool {
	var httpErr *HTTPError
	return errors.As(err, &httpErr) &&
		(httpErr.StatusCode == http.StatusUnauthorized || httpErr.StatusCode == http.StatusForbidden)
}

// UserMessage returns the backend supplied message of an HTTPError, or fallback.
func UserMessage(err error, fallback string) string {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) && httpErr.Message != "" && httpErr.Message != http.StatusText(httpErr.StatusCode) {
		return httpErr.Message
	}
	return fallback
}
