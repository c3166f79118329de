package models

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorKind string

const (
	KindBadRequest   ErrorKind = "BAD_REQUEST"
	KindUnauthorized ErrorKind = "UNAUTHORIZED"
	KindForbidden    ErrorKind = "FORBIDDEN"
	KindNotFound     ErrorKind = "NOT_FOUND"
	KindConflict     ErrorKind = "CONFLICT"
	KindInternal     ErrorKind = "INTERNAL_ERROR"
)

// AppError represents a custom application error
type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Status maps the error kind to its HTTP status code.
func (e *AppError) Status() int {
	switch e.Kind {
	case KindBadRequest:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// Predefined error constructors
func NewBadRequestError(message string) *AppError {
	return &AppError{Kind: KindBadRequest, Message: message}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{Kind: KindUnauthorized, Message: message}
}

func NewForbiddenError(message string) *AppError {
	return &AppError{Kind: KindForbidden, Message: message}
}

func NewNotFoundError(resource string) *AppError {
	return &AppError{Kind: KindNotFound, Message: resource + " not found"}
}

func NewConflictError(message string) *AppError {
	return &AppError{Kind: KindConflict, Message: message}
}

func NewInternalError(err error) *AppError {
	return &AppError{Kind: KindInternal, Message: "Internal server error", Err: err}
}

// AsAppError returns err as an *AppError, treating anything else as an
// internal error.
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return NewInternalError(err)
}
