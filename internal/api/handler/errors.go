package handler

import (
	"net/http"

	"github.com/auracount/auracount/internal/api/apierr"
)

// Re-export from apierr for convenience
type APIError = apierr.APIError
type ErrorResponse = apierr.ErrorResponse

// Re-export error codes
const (
	CodeInvalidRequest     = apierr.CodeInvalidRequest
	CodePlayerNotFound     = apierr.CodePlayerNotFound
	CodeSessionNotFound    = apierr.CodeSessionNotFound
	CodeCodeSpaceExhausted = apierr.CodeCodeSpaceExhausted
	CodeInvalidSnapshot    = apierr.CodeInvalidSnapshot
	CodeInternalError      = apierr.CodeInternalError
)

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	apierr.WriteError(w, err)
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return apierr.NewInvalidRequestError(message)
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return apierr.NewInternalError()
}
