package rickmorty

import (
	"errors"
	"fmt"
	"net/http"
)

// Common errors
var (
	// ErrInvalidConfig indicates invalid client configuration
	ErrInvalidConfig = errors.New("invalid rickmorty client configuration")
	// ErrInvalidCursor indicates a page cursor outside the configured API
	ErrInvalidCursor = errors.New("invalid page cursor")
	// ErrNotFound indicates the requested resource does not exist
	ErrNotFound = errors.New("resource not found")
	// ErrEmptyResult indicates a search that matched nothing
	ErrEmptyResult = errors.New("no results")
)

// TransportError indicates the request never produced an HTTP response
type TransportError struct {
	Op  string
	URL string
	Err error
}

// Error implements the error interface
func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// APIError represents a non-2xx response from the API
type APIError struct {
	StatusCode int
	Message    string
	Body       string
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("rickmorty API error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("rickmorty API error: status %d: %s", e.StatusCode, e.Message)
}

// Is lets errors.Is(err, ErrNotFound) match 404 responses
func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.IsNotFound()
}

// IsNotFound checks if the error indicates a not found response
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsServerError checks if the service failed rather than rejected the request
func (e *APIError) IsServerError() bool {
	return e.StatusCode >= 500
}

// EmptyResultError is returned by name searches that match no character
type EmptyResultError struct {
	Query string
}

// Error implements the error interface
func (e *EmptyResultError) Error() string {
	return fmt.Sprintf("no characters found matching %q", e.Query)
}

func (e *EmptyResultError) Unwrap() error {
	return ErrEmptyResult
}
