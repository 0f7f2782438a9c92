package utils

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrUnauthorizedAccount     = errors.New("unauthorized account")
	ErrNotFoundOrNotAuthorized = errors.New("not found or not authorized")
	ErrNameAlreadyExists       = errors.New("name already exists")
	ErrEmailAlreadyExists      = errors.New("email already exists")
	ErrUsernameAlreadyExists   = errors.New("username already exists")
	ErrPasswordMismatch        = errors.New("passwords do not match")
	ErrInvalidUsername         = errors.New("invalid username")
	ErrInvalidCredentials      = errors.New("invalid credentials")
	ErrTooManyAttempts         = errors.New("too many login attempts")
	ErrAccountNotFound         = errors.New("account not found")
	ErrDatabaseError           = errors.New("database error")
)

// UserError carries a message that is safe to show to the end user while
// still matching its kind through errors.Is.
type UserError struct {
	kind error
	msg  string
}

func NewUserError(kind error, format string, args ...any) error {
	return &UserError{kind: kind, msg: fmt.Sprintf(format, args...)}
}

func (e *UserError) Error() string { return e.msg }

func (e *UserError) Unwrap() error { return e.kind }

// DatabaseError wraps a store failure so that it matches ErrDatabaseError
// and keeps the cause for logging.
func DatabaseError(cause error) error {
	if cause == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrDatabaseError, cause)
}

// UserMessage returns the text shown to the user for err. Store failures and
// unknown errors never leak their cause.
func UserMessage(err error) string {
	var ue *UserError
	if errors.As(err, &ue) {
		return ue.msg
	}
	switch {
	case errors.Is(err, ErrUnauthorizedAccount):
		return "Unauthorized account."
	case errors.Is(err, ErrInvalidCredentials):
		return "Invalid username or password."
	case errors.Is(err, ErrTooManyAttempts):
		return "Too many login attempts. Try again in a minute."
	case errors.Is(err, ErrPasswordMismatch):
		return "Passwords do not match."
	case errors.Is(err, ErrAccountNotFound):
		return "Unauthorized account."
	default:
		return "Internal server error"
	}
}

func StatusFor(err error) int {
	switch {
	case errors.Is(err, ErrUnauthorizedAccount), errors.Is(err, ErrAccountNotFound):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFoundOrNotAuthorized):
		return http.StatusNotFound
	case errors.Is(err, ErrNameAlreadyExists),
		errors.Is(err, ErrEmailAlreadyExists),
		errors.Is(err, ErrUsernameAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, ErrPasswordMismatch), errors.Is(err, ErrInvalidUsername):
		return http.StatusBadRequest
	case errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, ErrTooManyAttempts):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
