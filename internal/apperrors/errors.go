package apperrors

import (
	"errors"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates a state-machine violation, e.g. booking a unit that is already sold.
var ErrConflict = errors.New("conflict")

// ErrUnauthorized indicates that no tenant identity could be resolved for the caller.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates that the caller's role does not allow the action.
var ErrForbidden = errors.New("forbidden")

// ErrInternal indicates an unexpected failure in the record store or the service itself.
var ErrInternal = errors.New("internal error")

// AppError carries an HTTP-like status code, a safe message and the underlying cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel matching this error's code.
func (e *AppError) Is(target error) bool {
	switch e.Code {
	case http.StatusNotFound:
		return target == ErrNotFound
	case http.StatusBadRequest:
		return target == ErrValidation
	case http.StatusConflict:
		return target == ErrConflict || target == ErrDuplicate
	case http.StatusUnauthorized:
		return target == ErrUnauthorized
	case http.StatusForbidden:
		return target == ErrForbidden
	case http.StatusInternalServerError:
		return target == ErrInternal
	}
	return false
}

// NewNotFoundError returns an error matching ErrNotFound.
func NewNotFoundError(message string) error {
	return NewAppError(http.StatusNotFound, message, nil)
}

// NewValidationFailedError returns an error matching ErrValidation.
func NewValidationFailedError(message string) error {
	return NewAppError(http.StatusBadRequest, message, nil)
}

// NewConflictError returns an error matching ErrConflict (and ErrDuplicate).
func NewConflictError(message string) error {
	return NewAppError(http.StatusConflict, message, nil)
}

// NewUnauthorizedError returns an error matching ErrUnauthorized.
func NewUnauthorizedError(message string) error {
	return NewAppError(http.StatusUnauthorized, message, nil)
}

// NewForbiddenError returns an error matching ErrForbidden.
func NewForbiddenError(message string) error {
	return NewAppError(http.StatusForbidden, message, nil)
}

// NewInternalError wraps a store or infrastructure failure so it matches ErrInternal.
func NewInternalError(message string, err error) error {
	return NewAppError(http.StatusInternalServerError, message, err)
}

// StatusCode maps an error chain to an HTTP status code.
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict), errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
