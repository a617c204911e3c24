package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hmori/dopabalance/internal/model"
	"github.com/hmori/dopabalance/internal/services/identity"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest   = "INVALID_REQUEST"
	CodeValidation       = "VALIDATION"
	CodeAuthFailed       = "AUTH_FAILED"
	CodeProfileMismatch  = "PROFILE_MISMATCH"
	CodeWindowClosed     = "WINDOW_CLOSED"
	CodeNotFound         = "NOT_FOUND"
	CodePasswordMismatch = "PASSWORD_MISMATCH"
	CodeNotConfirmed     = "NOT_CONFIRMED"
	CodeStoreUnavailable = "STORE_UNAVAILABLE"
	CodeConflict         = "CONFLICT"
	CodeUnauthorized     = "UNAUTHORIZED"
	CodeInternalError    = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrValidation):
		// Validation failures carry their specific reason to the caller
		return &httpError{http.StatusBadRequest, APIError{CodeValidation, err.Error()}}
	case errors.Is(err, model.ErrAuthFailed):
		return &httpError{http.StatusUnauthorized, APIError{CodeAuthFailed, "Password does not match"}}
	case errors.Is(err, model.ErrProfileMismatch):
		return &httpError{http.StatusConflict, APIError{CodeProfileMismatch, "Nickname or team does not match this identity"}}
	case errors.Is(err, model.ErrWindowClosed):
		return &httpError{http.StatusForbidden, APIError{CodeWindowClosed, "Entries can only be corrected on the day they were created"}}
	case errors.Is(err, model.ErrAccountNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeNotFound, "No entries exist for this identity"}}
	case errors.Is(err, model.ErrPasswordMismatch):
		return &httpError{http.StatusUnauthorized, APIError{CodePasswordMismatch, "Password does not match"}}
	case errors.Is(err, model.ErrNotConfirmed):
		return &httpError{http.StatusBadRequest, APIError{CodeNotConfirmed, "Account deletion must be confirmed"}}
	case errors.Is(err, model.ErrVersionConflict):
		return &httpError{http.StatusConflict, APIError{CodeConflict, "The ledger was modified concurrently, please retry"}}
	case errors.Is(err, model.ErrStoreUnavailable):
		return &httpError{http.StatusServiceUnavailable, APIError{CodeStoreUnavailable, "Ledger store unavailable"}}

	// Map identity errors
	case errors.Is(err, identity.ErrInvalidSession):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid or expired session"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
