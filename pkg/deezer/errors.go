package deezer

import (
	"errors"
	"fmt"
)

// Error represents an error envelope returned by the Deezer API:
//
//	{"error": {"type": "OAuthException", "message": "Invalid token", "code": 300}}
//
// It is returned when the service answered but refused the request.
type Error struct {
	Type    string // Error kind, e.g. "OAuthException"
	Message string // Human readable message
	Code    int    // Deezer error code
}

// Error returns the error message.
func (e *Error) Error() string {
	if e.Type == "" {
		return fmt.Sprintf("deezer: error %d: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("deezer: %s %d: %s", e.Type, e.Code, e.Message)
}

// Is reports whether target is a Deezer API error with the same code.
//
// This allows errors.Is(err, &deezer.Error{Code: deezer.ErrCodeTokenInvalid}).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Temporary returns true if the error is likely to go away on its own.
//
// The client never retries; this is for callers that want to.
//   - 4: Quota exceeded
//   - 700: Service busy
func (e *Error) Temporary() bool {
	switch e.Code {
	case ErrCodeQuota, ErrCodeServiceBusy:
		return true
	default:
		return false
	}
}

// Deezer API error codes.
const (
	ErrCodeQuota                       = 4
	ErrCodeItemsLimitExceeded          = 100
	ErrCodePermission                  = 200
	ErrCodeTokenInvalid                = 300
	ErrCodeParameter                   = 500
	ErrCodeParameterMissing            = 501
	ErrCodeQueryInvalid                = 600
	ErrCodeServiceBusy                 = 700
	ErrCodeDataNotFound                = 800
	ErrCodeIndividualAccountNotAllowed = 901
)

// TransportError is returned when the API could not be reached or its answer
// could not be understood. It is never an *Error.
type TransportError struct {
	Op         string // "request", "read", "decode" or "status"
	URL        string // Request URL
	StatusCode int    // HTTP status, zero if no response was received
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("deezer: %s %s: status %d: %v", e.Op, e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("deezer: %s %s: %v", e.Op, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Predefined errors for common cases.
var (
	// ErrInvalidConfig is returned when client configuration is invalid.
	ErrInvalidConfig = errors.New("deezer: invalid configuration")

	// ErrNoAuthCode is returned when the redirect URL carries no authorization code.
	ErrNoAuthCode = errors.New("deezer: no authorization code in redirect")

	// ErrNoPrompter is returned when a token must be acquired but the
	// credentials have no way to ask the user for one.
	ErrNoPrompter = errors.New("deezer: credentials have no prompter")
)

// IsAPIError reports whether err is, or wraps, an *Error.
func IsAPIError(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr)
}

// IsTransportError reports whether err is, or wraps, a *TransportError.
func IsTransportError(err error) bool {
	var tErr *TransportError
	return errors.As(err, &tErr)
}
