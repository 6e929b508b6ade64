package apierr

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

const (
	CodeNotFound                 = "NOT_FOUND"
	CodeInvalidRequest           = "INVALID_REQUEST"
	CodeUnauthorized             = "UNAUTHORIZED"
	CodeForbidden                = "FORBIDDEN"
	CodeTooManyRequests          = "TOO_MANY_REQUESTS"
	CodeLetterGenerationDisabled = "LETTER_GENERATION_DISABLED"
	CodeInternalError            = "INTERNAL_ERROR"
)

var (
	// ErrNotFound is returned when a resource is not found.
	ErrNotFound = New(fiber.StatusNotFound, CodeNotFound, "resource not found with given parameters")

	// ErrInvalidReq is returned when a request is invalid.
	ErrInvalidReq = New(fiber.StatusBadRequest, CodeInvalidRequest, "invalid request: some or all request parameters are invalid")

	// ErrUnauthorized is returned when a request lacks valid credentials.
	ErrUnauthorized = New(fiber.StatusUnauthorized, CodeUnauthorized, "authentication required")

	// ErrForbidden is returned when the caller is authenticated but not allowed to act on the resource.
	ErrForbidden = New(fiber.StatusForbidden, CodeForbidden, "you are not allowed to perform this action")

	// ErrTooManyRequests is returned when a rate limit is exceeded.
	ErrTooManyRequests = New(fiber.StatusTooManyRequests, CodeTooManyRequests, "too many requests, please try again later")

	// ErrLetterGenerationDisabled is returned when no language model is configured.
	ErrLetterGenerationDisabled = New(fiber.StatusServiceUnavailable, CodeLetterGenerationDisabled, "letter generation is not available on this server")

	// ErrInternalError is returned when an internal error occurs.
	ErrInternalError = New(fiber.StatusInternalServerError, CodeInternalError, "internal server error occurred")
)

type Extras map[string]interface{}

// Error is an error meant to be rendered to API clients. Values are never
// mutated after creation: Msg, WithExtras and WithCause all return copies.
type Error struct {
	StatusCode int    `example:"400"`
	ErrorCode  string `example:"INVALID_REQUEST"`
	Message    string `example:"invalid request: some or all request parameters are invalid"`
	Extras     *Extras

	// cause is logged and reported but never rendered.
	cause error
}

func New(statusCode int, errorCode string, message string) *Error {
	return &Error{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
	}
}

func (e Error) Msg(format string, parts ...interface{}) *Error {
	e.Message = fmt.Sprintf(format, parts...)
	return &e
}

func (e Error) WithExtras(extras Extras) *Error {
	e.Extras = &extras
	return &e
}

func (e Error) WithCause(err error) *Error {
	e.cause = err
	return &e
}

func NewInvalidViolations(violations interface{}) *Error {
	// copy ErrInvalidReq as e
	e := *ErrInvalidReq
	e.Extras = &Extras{
		"violations": violations,
	}
	return &e
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %s", e.ErrorCode, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.ErrorCode, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether target is an *Error with the same error code, so that
// errors.Is(err, apierr.ErrNotFound) holds for customized copies as well.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.ErrorCode == t.ErrorCode
}
