// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package apperr defines the centralized error handling framework for nooblol.

It provides a typed error that bridges low-level Domain/Storage errors and the
uniform {resultCode, result} HTTP envelope.

Architecture:

  - Kind: A closed classification (BadRequest, Unauthorized, Forbidden, NotFound,
    Conflict, ServerError). Services raise kinds, never HTTP statuses.
  - AppError: Kind plus a human-readable message and optional field details.
  - Mapping: [StatusOf] is the single, total translation from Kind to HTTP status.

Every error that leaves the service layer should be an [AppError] so the transport
boundary never has to special-case arbitrary failures.
*/
package apperr

import (
	"errors"
	"net/http"
)

// # Error Kinds

// Kind classifies a domain failure.
type Kind int

const (
	// KindBadRequest covers malformed, missing or no-op input. It is also the
	// fallback for anything unclassified.
	KindBadRequest Kind = iota
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
	KindServerError
)

// String returns the machine-readable code for the kind.
func (k Kind) String() string {
	switch k {
	case KindUnauthorized:
		return "UNAUTHORIZED"
	case KindForbidden:
		return "FORBIDDEN"
	case KindNotFound:
		return "NOT_FOUND"
	case KindConflict:
		return "CONFLICT"
	case KindServerError:
		return "SERVER_ERROR"
	default:
		return "BAD_REQUEST"
	}
}

// StatusOf maps a [Kind] to its HTTP status.
//
// The mapping is total: an unknown kind yields 400, never an unmapped 500.
func StatusOf(kind Kind) int {
	switch kind {
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindServerError:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

// ConflictResult is the fixed, client-visible result body of every 409 envelope.
const ConflictResult = "이미 존재하는 데이터 입니다"

// # Error Type

// AppError is the canonical error type for the nooblol API.
//
// # Security
//
// The Cause field is for server-side logging only and is never sent to clients
// to avoid leaking internal implementation details (e.g., SQL queries).
type AppError struct {
	// Kind drives the HTTP status through [StatusOf].
	Kind Kind
	// Message is a human-readable description, logged and used as Error().
	Message string
	// Cause is the underlying error, used for server-side logging only.
	Cause error
	// Details holds per-field validation errors for BadRequest responses.
	Details []FieldError
}

// FieldError represents a single field-level validation failure.
type FieldError struct {
	// Field is the JSON field name that failed validation.
	Field string `json:"field"`
	// Message is the human-readable description of the failure.
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *AppError) Unwrap() error { return e.Cause }

// Status returns the HTTP status for this error.
func (e *AppError) Status() int { return StatusOf(e.Kind) }

// # Client Errors (4xx)

// BadRequest creates a 400 [AppError].
func BadRequest(msg string) *AppError {
	return &AppError{Kind: KindBadRequest, Message: msg}
}

// ValidationError creates a 400 [AppError] with optional per-field details.
func ValidationError(msg string, details ...FieldError) *AppError {
	return &AppError{Kind: KindBadRequest, Message: msg, Details: details}
}

// Unauthorized creates a 401 [AppError].
func Unauthorized(msg string) *AppError {
	return &AppError{Kind: KindUnauthorized, Message: msg}
}

// Forbidden creates a 403 [AppError].
func Forbidden(msg string) *AppError {
	return &AppError{Kind: KindForbidden, Message: msg}
}

// NotFound creates a 404 [AppError] for a named resource.
//
// Example:
//
//	apperr.NotFound("Letter") // Returns "Letter not found"
func NotFound(resource string) *AppError {
	return &AppError{Kind: KindNotFound, Message: resource + " not found"}
}

// Conflict creates a 409 [AppError] for duplicate or unique-constraint violations.
func Conflict(msg string) *AppError {
	return &AppError{Kind: KindConflict, Message: msg}
}

// # Server Errors (5xx)

// Internal creates a 500 [AppError] wrapping an unexpected server-side error.
// The cause is stored for logging but is never sent to the client.
func Internal(cause error) *AppError {
	return &AppError{
		Kind:    KindServerError,
		Message: "An unexpected error occurred",
		Cause:   cause,
	}
}

// # Helpers

// ErrNothingToUpdate is raised when a merged update candidate equals the stored row.
var ErrNothingToUpdate = BadRequest("nothing to update")

// IsAppError reports whether err (or any error in its chain) is an [*AppError].
func IsAppError(err error) bool {
	var ae *AppError
	return errors.As(err, &ae)
}

// As extracts the [*AppError] from err's chain. It returns nil if not found.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

// KindOf returns the kind of err. Errors outside the taxonomy are ServerError.
func KindOf(err error) Kind {
	if ae := As(err); ae != nil {
		return ae.Kind
	}
	return KindServerError
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	ae := As(err)
	return ae != nil && ae.Kind == kind
}
