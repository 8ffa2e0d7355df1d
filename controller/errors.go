package controller

import (
	"context"
	"errors"
	"fmt"

	"github.com/s0up4200/citadel/rickmorty"
)

// ErrorKind classifies the failure behind StatusError
type ErrorKind int

const (
	ErrorNone ErrorKind = iota
	// ErrorTransport means the service could not be reached
	ErrorTransport
	// ErrorHTTP means the service answered with a failure
	ErrorHTTP
	// ErrorEmptyResult means a search matched nothing
	ErrorEmptyResult
)

// String returns the string representation of an ErrorKind
func (k ErrorKind) String() string {
	switch k {
	case ErrorTransport:
		return "transport"
	case ErrorHTTP:
		return "http"
	case ErrorEmptyResult:
		return "empty_result"
	default:
		return "none"
	}
}

// User-facing messages, one per ErrorKind
const (
	MessageTransport   = "Could not reach the character service. Check your connection and try again."
	MessageHTTP        = "The character service returned an error (status %d). Try again."
	MessageBadResponse = "The character service sent a response that could not be read."
	MessageNoResults   = "No characters found matching %q."
)

// classify maps a fetch error to its kind and user-facing message
func classify(err error, query string) (ErrorKind, string) {
	var (
		transportErr *rickmorty.TransportError
		apiErr       *rickmorty.APIError
	)

	switch {
	case errors.Is(err, rickmorty.ErrEmptyResult):
		return ErrorEmptyResult, fmt.Sprintf(MessageNoResults, query)
	case errors.As(err, &transportErr),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		return ErrorTransport, MessageTransport
	case errors.As(err, &apiErr):
		return ErrorHTTP, fmt.Sprintf(MessageHTTP, apiErr.StatusCode)
	default:
		return ErrorHTTP, MessageBadResponse
	}
}
