package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"hybrid/internal/errors"
)

func TestMapErrorToStatus(t *testing.T) {
	tests := []struct {
		code errors.ErrorCode
		want int
	}{
		{errors.InvalidURL, http.StatusBadRequest},
		{errors.AccessDenied, http.StatusForbidden},
		{errors.NotFound, http.StatusNotFound},
		{errors.IOError, http.StatusInternalServerError},
		{errors.ConfigInvalid, http.StatusInternalServerError},
		{errors.InternalError, http.StatusInternalServerError},
		{"UNKNOWN_CODE", http.StatusInternalServerError}, // default case
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			if got := MapErrorToStatus(tt.code); got != tt.want {
				t.Errorf("MapErrorToStatus(%q) = %d, want %d", tt.code, got, tt.want)
			}
		})
	}
}

func TestWriteHybridError(t *testing.T) {
	rec := httptest.NewRecorder()
	err := errors.New(errors.InvalidURL, "bad url").WithDetails(map[string]string{"url": "x"})

	WriteHybridError(rec, fmt.Errorf("dispatch: %w", err))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var resp ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Code != string(errors.InvalidURL) {
		t.Errorf("code = %q, want INVALID_URL", resp.Code)
	}
	if resp.Details == nil {
		t.Error("details should be carried through")
	}
}

func TestWriteError_PlainError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, fmt.Errorf("plain"), http.StatusInternalServerError)

	var resp ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Code != string(errors.InternalError) || resp.Error != "plain" {
		t.Errorf("resp = %+v", resp)
	}
}
