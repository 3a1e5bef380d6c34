// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package apperr defines the error kinds surfaced by conversion and direct
// reads. Every *Error carries one kind sentinel and an optional cause; both
// are reachable through errors.Is and errors.As.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error kinds.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrPermission   = errors.New("permission denied")
	ErrExternal     = errors.New("external tool failure")
	ErrProcessing   = errors.New("processing failed")
)

// Error is an error of a specific kind with an optional cause.
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes both the kind and the cause.
func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

func newf(kind error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// InvalidInput reports a malformed request.
func InvalidInput(format string, args ...any) error {
	return newf(ErrInvalidInput, format, args...)
}

// NotFound reports a missing file or executable.
func NotFound(format string, args ...any) error {
	return newf(ErrNotFound, format, args...)
}

// Permission reports access outside the allowed directory.
func Permission(format string, args ...any) error {
	return newf(ErrPermission, format, args...)
}

// External reports a failure signalled by an external tool.
func External(format string, args ...any) error {
	return newf(ErrExternal, format, args...)
}

// Processing wraps a conversion failure from any pipeline stage. It returns
// nil for a nil err.
func Processing(err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: ErrProcessing, Message: "processing to markdown", Err: err}
}

// HTTPStatus maps an error to the status code the REST surface returns.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrPermission):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrExternal):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
