package errs

import (
	"fmt"
	"net/http"
)

// Error is a business error with a stable machine-readable code and the
// HTTP status it should be reported with. Codes are part of the public
// contract: clients branch on them, so they must not change between
// releases.
type Error struct {
	Code    string
	Message string
	Status  int
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// Is matches two errors by code, so errors.Is works against the
// predeclared values below even after wrapping with a cause.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithCause returns a copy of e carrying the underlying error. The cause
// is for logs only and never reaches the client payload.
func (e *Error) WithCause(cause error) *Error {
	return &Error{Code: e.Code, Message: e.Message, Status: e.Status, cause: cause}
}

// Validation returns a VALIDATION_ERROR with a request-specific message.
func Validation(message string) *Error {
	return &Error{Code: "VALIDATION_ERROR", Message: message, Status: http.StatusBadRequest}
}

var (
	ErrInvalidCredentials = &Error{
		Code:    "INVALID_CREDENTIALS",
		Message: "invalid email or password",
		Status:  http.StatusUnauthorized,
	}
	ErrAccountLocked = &Error{
		Code:    "ACCOUNT_LOCKED",
		Message: "account is locked",
		Status:  http.StatusUnauthorized,
	}
	ErrAccountDisabled = &Error{
		Code:    "ACCOUNT_DISABLED",
		Message: "account is disabled",
		Status:  http.StatusUnauthorized,
	}
	ErrEmailAlreadyRegistered = &Error{
		Code:    "EMAIL_ALREADY_REGISTERED",
		Message: "email is already registered",
		Status:  http.StatusConflict,
	}
	ErrRemoteConflictUnresolvable = &Error{
		Code:    "REMOTE_CONFLICT_UNRESOLVABLE",
		Message: "user directory reports a conflict that could not be resolved",
		Status:  http.StatusConflict,
	}
	ErrMissingToken = &Error{
		Code:    "MISSING_TOKEN",
		Message: "id token not provided",
		Status:  http.StatusBadRequest,
	}
	ErrInvalidToken = &Error{
		Code:    "INVALID_TOKEN",
		Message: "token is invalid",
		Status:  http.StatusUnauthorized,
	}
	ErrEmailNotVerified = &Error{
		Code:    "EMAIL_NOT_VERIFIED",
		Message: "email is not verified by the identity provider",
		Status:  http.StatusUnauthorized,
	}
	ErrUpstreamUnavailable = &Error{
		Code:    "UPSTREAM_UNAVAILABLE",
		Message: "user directory is unavailable",
		Status:  http.StatusBadGateway,
	}
	ErrInternal = &Error{
		Code:    "INTERNAL",
		Message: "internal error",
		Status:  http.StatusInternalServerError,
	}
)
