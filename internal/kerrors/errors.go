// Package kerrors implements the kernel's closed error taxonomy (§4.1).
// Every fallible kernel operation returns either a success value or exactly
// one *Error.
package kerrors

import (
	"errors"
	"fmt"
)

// Kind is the closed set of kernel error variants.
type Kind int

const (
	AuthError Kind = iota
	NetworkError
	ApiError
	InvalidParameters
	OrderError
	SerializationError
	DeserializationError
	WebSocketError
	RateLimitError
	ConfigurationError
	Other
)

func (k Kind) String() string {
	switch k {
	case AuthError:
		return "AuthError"
	case NetworkError:
		return "NetworkError"
	case ApiError:
		return "ApiError"
	case InvalidParameters:
		return "InvalidParameters"
	case OrderError:
		return "OrderError"
	case SerializationError:
		return "SerializationError"
	case DeserializationError:
		return "DeserializationError"
	case WebSocketError:
		return "WebSocketError"
	case RateLimitError:
		return "RateLimitError"
	case ConfigurationError:
		return "ConfigurationError"
	default:
		return "Other"
	}
}

// Error is the single concrete error type carrying a Kind. ApiError additionally
// carries Code, a string per SPEC_FULL's resolution of the Open Question on
// ApiError.code (venues use both int and string conventions; a string round-trips
// both without the kernel guessing).
type Error struct {
	Kind    Kind
	Message string
	Code    string // meaningful only when Kind == ApiError
	Wrapped error
}

func (e *Error) Error() string {
	if e.Kind == ApiError && e.Code != "" {
		return fmt.Sprintf("%s[%s]: %s", e.Kind, e.Code, e.Message)
	}
	if e.Wrapped != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Wrapped }

// Is supports errors.Is(err, kerrors.New(SomeKind, "")) style matching by Kind.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Kind == t.Kind
	}
	return false
}

func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Message: msg, Wrapped: err}
}

func NewAPIError(code, msg string) *Error {
	return &Error{Kind: ApiError, Code: code, Message: msg}
}

// Recoverable reports whether the transport layer should retry this error
// (§4.1 policy): NetworkError, RateLimitError, and WebSocketError are
// recoverable; everything else is fatal and surfaces immediately.
func (e *Error) Recoverable() bool {
	switch e.Kind {
	case NetworkError, RateLimitError, WebSocketError:
		return true
	default:
		return false
	}
}

// KindOf extracts the Kind from err if it is (or wraps) a *Error, returning
// (Other, false) otherwise.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return Other, false
}
