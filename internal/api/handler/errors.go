package handler

import (
	"net/http"

	"github.com/hmori/dopabalance/internal/api/apierr"
)

// Re-export from apierr for convenience
type APIError = apierr.APIError
type ErrorResponse = apierr.ErrorResponse

// Re-export error codes
const (
	CodeInvalidRequest   = apierr.CodeInvalidRequest
	CodeValidation       = apierr.CodeValidation
	CodeAuthFailed       = apierr.CodeAuthFailed
	CodeProfileMismatch  = apierr.CodeProfileMismatch
	CodeWindowClosed     = apierr.CodeWindowClosed
	CodeNotFound         = apierr.CodeNotFound
	CodePasswordMismatch = apierr.CodePasswordMismatch
	CodeNotConfirmed     = apierr.CodeNotConfirmed
	CodeStoreUnavailable = apierr.CodeStoreUnavailable
	CodeConflict         = apierr.CodeConflict
	CodeUnauthorized     = apierr.CodeUnauthorized
	CodeInternalError    = apierr.CodeInternalError
)

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	apierr.WriteError(w, err)
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return apierr.NewInvalidRequestError(message)
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return apierr.NewUnauthorizedError()
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return apierr.NewInternalError()
}
