// Package apperror defines the machine-readable error kinds shared by the
// token codec, the application services and the HTTP layer.
package apperror

import (
	"errors"
	"net/http"
)

// Code is a stable, client-facing error identifier.
type Code string

const (
	CodeDuplicateEntry      Code = "DUPLICATE_ENTRY"
	CodeInvalidCredentials  Code = "INVALID_CREDENTIALS"
	CodeExternalAuthFailed  Code = "EXTERNAL_AUTH_FAILED"
	CodeInvalidAssertion    Code = "INVALID_ASSERTION"
	CodeInvalidTokenType    Code = "INVALID_TOKEN_TYPE"
	CodeInvalidRefreshToken Code = "INVALID_REFRESH_TOKEN"
	CodeTokenExpired        Code = "TOKEN_EXPIRED"
	CodeMalformedToken      Code = "MALFORMED_TOKEN"
	CodeInvalidToken        Code = "INVALID_TOKEN"
	CodeVerificationFailed  Code = "VERIFICATION_FAILED"
	CodeNotFound            Code = "NOT_FOUND"
	CodeValidation          Code = "VALIDATION_ERROR"
	CodeUnauthorized        Code = "UNAUTHORIZED"
	CodeTooManyRequests     Code = "TOO_MANY_REQUESTS"
	CodeForbidden           Code = "FORBIDDEN"
	CodeInternal            Code = "INTERNAL_ERROR"
)

// Error carries a Code, a message that is safe to show to end users and an
// optional underlying cause that is only meant for logs.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return string(e.Code) + ": " + e.Message + ": " + e.Err.Error()
	}
	return string(e.Code) + ": " + e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error with the same code, so sentinels below can be used
// with errors.Is regardless of message or cause.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// New builds an error of the given kind.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap builds an error of the given kind that keeps cause for logging.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Err: cause}
}

var (
	ErrDuplicateEntry      = New(CodeDuplicateEntry, "Email already registered")
	ErrInvalidCredentials  = New(CodeInvalidCredentials, "Invalid credentials")
	ErrExternalAuthFailed  = New(CodeExternalAuthFailed, "External authentication failed")
	ErrInvalidAssertion    = New(CodeInvalidAssertion, "Invalid identity assertion")
	ErrInvalidTokenType    = New(CodeInvalidTokenType, "Invalid token type")
	ErrInvalidRefreshToken = New(CodeInvalidRefreshToken, "Invalid refresh token")
	ErrTokenExpired        = New(CodeTokenExpired, "Token has expired")
	ErrMalformedToken      = New(CodeMalformedToken, "Invalid token format")
	ErrInvalidToken        = New(CodeInvalidToken, "Invalid token")
	ErrVerificationFailed  = New(CodeVerificationFailed, "Token verification failed")
	ErrNotFound            = New(CodeNotFound, "Resource not found")
	ErrInternal            = New(CodeInternal, "Internal server error")
)

// CodeOf returns the code of the first *Error in err's chain, or
// CodeInternal when there is none.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// MessageOf returns the user-facing message of err. Errors that are not
// *Error never leak their text.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return ErrInternal.Message
}

// HTTPStatus maps a code to the status used by the HTTP layer.
func HTTPStatus(code Code) int {
	switch code {
	case CodeDuplicateEntry:
		return http.StatusConflict
	case CodeInvalidCredentials, CodeExternalAuthFailed, CodeInvalidAssertion,
		CodeInvalidTokenType, CodeInvalidRefreshToken, CodeTokenExpired,
		CodeMalformedToken, CodeInvalidToken, CodeVerificationFailed, CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeNotFound:
		return http.StatusNotFound
	case CodeValidation:
		return http.StatusBadRequest
	case CodeForbidden:
		return http.StatusForbidden
	case CodeTooManyRequests:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
