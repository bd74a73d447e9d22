package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestHybridError_Error(t *testing.T) {
	tests := []struct {
		name      string
		err       *HybridError
		wantParts []string
	}{
		{
			name:      "with cause",
			err:       Wrap(IOError, "stat failed", errors.New("device busy")),
			wantParts: []string{"IO_ERROR", "stat failed", "device busy"},
		},
		{
			name:      "without cause",
			err:       New(NotFound, "no candidate for 'docs'"),
			wantParts: []string{"NOT_FOUND", "no candidate for 'docs'"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Error()
			for _, part := range tt.wantParts {
				if !strings.Contains(got, part) {
					t.Errorf("Error() = %q, want to contain %q", got, part)
				}
			}
		})
	}
}

func TestHybridError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := Wrap(AccessDenied, "open failed", cause)

	if err.Unwrap() != cause {
		t.Errorf("Unwrap() = %v, want %v", err.Unwrap(), cause)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the cause")
	}

	if New(NotFound, "gone").Unwrap() != nil {
		t.Error("Unwrap() on error without cause should return nil")
	}
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{"nil", nil, ""},
		{"plain error", errors.New("boom"), InternalError},
		{"direct", New(InvalidURL, "bad"), InvalidURL},
		{"wrapped", fmt.Errorf("resolve: %w", New(AccessDenied, "denied")), AccessDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CodeOf(tt.err); got != tt.want {
				t.Errorf("CodeOf() = %q, want %q", got, tt.want)
			}
		})
	}

	if !IsNotFound(fmt.Errorf("x: %w", New(NotFound, "missing"))) {
		t.Error("IsNotFound should see through wrapping")
	}
}

func TestGetSuggestedFixes(t *testing.T) {
	if fixes := GetSuggestedFixes(ConfigInvalid); len(fixes) != 1 {
		t.Errorf("len(GetSuggestedFixes(ConfigInvalid)) = %d, want 1", len(fixes))
	}
	if fixes := GetSuggestedFixes(NotFound); fixes != nil {
		t.Errorf("GetSuggestedFixes(NotFound) = %v, want nil", fixes)
	}

	err := New(ConfigInvalid, "theme file unreadable")
	if len(err.SuggestedFixes) != 1 {
		t.Error("New should attach suggested fixes for the code")
	}
	if err.WithDetails(map[string]string{"file": "theme.toml"}) != err {
		t.Error("WithDetails should return the same error for chaining")
	}
}

func TestGetSuggestedFixes_Independent(t *testing.T) {
	first := New(AccessDenied, "locked")
	second := New(AccessDenied, "also locked")

	first.SuggestedFixes[0].Description = "changed"
	first.SuggestedFixes = append(first.SuggestedFixes, FixAction{Type: RunCommand})

	if second.SuggestedFixes[0].Description == "changed" {
		t.Error("errors with the same code must not share fix actions")
	}
	if ErrorActions[AccessDenied][0].Description == "changed" {
		t.Error("mutating an error's fixes must not change ErrorActions")
	}
	if len(GetSuggestedFixes(AccessDenied)) != 1 {
		t.Errorf("len(GetSuggestedFixes(AccessDenied)) = %d, want 1", len(GetSuggestedFixes(AccessDenied)))
	}
}
