package apperrors

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Kind categorizes an application error for HTTP status mapping.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindNotFound
	KindState
	KindExpired
	KindRateLimit
	KindProvider
	KindUpstream
)

// Error is an application error carrying a machine-readable code and a
// human-readable message. Provider errors keep the provider's own error
// classification in Code (e.g. "invalid_token", "user_not_found").
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Validation(code, message string) *Error {
	return &Error{Kind: KindValidation, Code: code, Message: message}
}

func NotFound(code, message string) *Error {
	return &Error{Kind: KindNotFound, Code: code, Message: message}
}

func State(code, message string) *Error {
	return &Error{Kind: KindState, Code: code, Message: message}
}

func Expired(code, message string) *Error {
	return &Error{Kind: KindExpired, Code: code, Message: message}
}

func RateLimit(message string) *Error {
	return &Error{Kind: KindRateLimit, Code: "rate_limit_exceeded", Message: message}
}

func Provider(code, message string, err error) *Error {
	return &Error{Kind: KindProvider, Code: code, Message: message, Err: err}
}

func Upstream(code, message string, err error) *Error {
	return &Error{Kind: KindUpstream, Code: code, Message: message, Err: err}
}

// KindOf extracts the Kind from any error in the chain.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnknown
}

// CodeOf extracts the machine code from any error in the chain.
func CodeOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return "internal_error"
}

// MessageOf extracts the human-readable message, falling back to Error().
func MessageOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}

// HTTPStatus maps an error to the HTTP status code the API surface returns.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return fiber.StatusBadRequest
	case KindNotFound:
		return fiber.StatusNotFound
	case KindState:
		return fiber.StatusConflict
	case KindExpired:
		return fiber.StatusGone
	case KindRateLimit:
		return fiber.StatusTooManyRequests
	case KindProvider, KindUpstream:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}
