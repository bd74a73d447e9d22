package api

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"hybrid/internal/errors"
)

// ErrorResponse represents an HTTP error response
type ErrorResponse struct {
	Error          string             `json:"error"`
	Code           string             `json:"code"`
	Details        interface{}        `json:"details,omitempty"`
	SuggestedFixes []errors.FixAction `json:"suggestedFixes,omitempty"`
}

// WriteError writes err as JSON with the given status
func WriteError(w http.ResponseWriter, err error, status int) {
	resp := ErrorResponse{
		Error: err.Error(),
		Code:  string(errors.InternalError),
	}

	var he *errors.HybridError
	if stderrors.As(err, &he) {
		resp.Code = string(he.Code)
		resp.Details = he.Details
		resp.SuggestedFixes = he.SuggestedFixes
	}

	WriteJSON(w, resp, status)
}

// WriteHybridError writes err with its status derived from the error code
func WriteHybridError(w http.ResponseWriter, err error) {
	WriteError(w, err, MapErrorToStatus(errors.CodeOf(err)))
}

// MapErrorToStatus maps error codes to HTTP status codes
func MapErrorToStatus(code errors.ErrorCode) int {
	switch code {
	case errors.InvalidURL:
		return http.StatusBadRequest // 400
	case errors.AccessDenied:
		return http.StatusForbidden // 403
	case errors.NotFound:
		return http.StatusNotFound // 404
	default:
		return http.StatusInternalServerError // 500
	}
}

// WriteJSON writes a JSON response
func WriteJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// InternalError writes a 500 Internal Server Error
func InternalError(w http.ResponseWriter, message string) {
	WriteError(w, errors.New(errors.InternalError, message), http.StatusInternalServerError)
}
