package reqres

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a RequestError.
type ErrorKind int

const (
	KindInvalidURL ErrorKind = iota + 1
	KindInvalidResponse
	KindInvalidData
	KindNoConnectivity
	KindTimeout
	KindServerError
	KindTransport
)

var kindNames = map[ErrorKind]string{
	KindInvalidURL:      "invalid_url",
	KindInvalidResponse: "invalid_response",
	KindInvalidData:     "invalid_data",
	KindNoConnectivity:  "no_connectivity",
	KindTimeout:         "timeout",
	KindServerError:     "server_error",
	KindTransport:       "transport",
}

func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// RequestError is the typed failure returned by the transport layer.
// Values are immutable once built.
type RequestError struct {
	Kind   ErrorKind
	Code   int    // set for KindServerError
	Detail string // set for KindTransport
}

// Sentinels for errors.Is checks against the payload-free kinds.
var (
	ErrInvalidURL      = &RequestError{Kind: KindInvalidURL}
	ErrInvalidResponse = &RequestError{Kind: KindInvalidResponse}
	ErrInvalidData     = &RequestError{Kind: KindInvalidData}
	ErrNoConnectivity  = &RequestError{Kind: KindNoConnectivity}
	ErrTimeout         = &RequestError{Kind: KindTimeout}
)

// ServerError builds a RequestError for a server-reported status code.
func ServerError(code int) *RequestError {
	return &RequestError{Kind: KindServerError, Code: code}
}

// TransportError builds a RequestError for an unclassified transport failure.
func TransportError(detail string) *RequestError {
	return &RequestError{Kind: KindTransport, Detail: detail}
}

// Error returns the human-readable message shown to the user.
func (e *RequestError) Error() string {
	if e == nil {
		return "<nil>"
	}
	switch e.Kind {
	case KindInvalidURL:
		return "Invalid URL"
	case KindInvalidResponse:
		return "Invalid response from server"
	case KindInvalidData:
		return "Invalid data received"
	case KindNoConnectivity:
		return "No internet connection"
	case KindTimeout:
		return "Request timed out"
	case KindServerError:
		return fmt.Sprintf("Server error: %d", e.Code)
	case KindTransport:
		return "Network error: " + e.Detail
	default:
		return "Unknown error"
	}
}

// Equal compares structurally. Transport errors compare by detail text.
func (e *RequestError) Equal(other *RequestError) bool {
	if e == nil || other == nil {
		return e == other
	}
	if e.Kind != other.Kind {
		return false
	}
	switch e.Kind {
	case KindServerError:
		return e.Code == other.Code
	case KindTransport:
		return e.Detail == other.Detail
	default:
		return true
	}
}

// Is lets errors.Is match RequestErrors by structure rather than identity.
func (e *RequestError) Is(target error) bool {
	var other *RequestError
	if !errors.As(target, &other) {
		return false
	}
	return e.Equal(other)
}

// AsRequestError extracts a RequestError from err's chain.
func AsRequestError(err error) (*RequestError, bool) {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr, true
	}
	return nil, false
}
