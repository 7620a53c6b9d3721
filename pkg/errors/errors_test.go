package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(CodeValidation, "validation failed", http.StatusBadRequest)

	if err.Code != CodeValidation {
		t.Errorf("expected code %s, got %s", CodeValidation, err.Code)
	}
	if err.Message != "validation failed" {
		t.Errorf("expected message 'validation failed', got %s", err.Message)
	}
	if err.HTTPStatus != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, err.HTTPStatus)
	}
}

func TestWrap(t *testing.T) {
	originalErr := errors.New("server selection timeout")
	wrapped := Wrap(originalErr, CodeInternal, "internal error", http.StatusInternalServerError)

	if wrapped.Err != originalErr {
		t.Errorf("expected wrapped error to contain original error")
	}
	if wrapped.Code != CodeInternal {
		t.Errorf("expected code %s, got %s", CodeInternal, wrapped.Code)
	}
}

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name:     "without underlying error",
			appErr:   &AppError{Code: CodeConflict, Message: "Data with the same date already exists"},
			expected: "CONFLICT: Data with the same date already exists",
		},
		{
			name: "with underlying error",
			appErr: &AppError{
				Code:    CodeInternal,
				Message: "Failed to create booking",
				Err:     errors.New("connection reset"),
			},
			expected: "INTERNAL_ERROR: Failed to create booking (caused by: connection reset)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.appErr.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	originalErr := errors.New("original error")
	appErr := Wrap(originalErr, CodeInternal, "wrapped", http.StatusInternalServerError)

	if errors.Unwrap(appErr) != originalErr {
		t.Errorf("Unwrap() should return original error")
	}
	if !errors.Is(appErr, originalErr) {
		t.Errorf("errors.Is should see through AppError")
	}
}

func TestConflict_AnswersBadRequest(t *testing.T) {
	err := Conflict("Data with the same room_id already exists")

	if err.Code != CodeConflict {
		t.Errorf("expected code %s, got %s", CodeConflict, err.Code)
	}
	if err.StatusCode() != http.StatusBadRequest {
		t.Errorf("StatusCode() = %d, want %d", err.StatusCode(), http.StatusBadRequest)
	}
}

func TestNotFoundWithID(t *testing.T) {
	err := NotFoundWithID("Facility", "999")

	if err.Code != CodeNotFound {
		t.Errorf("expected code %s, got %s", CodeNotFound, err.Code)
	}
	if err.Message != "Facility not found" {
		t.Errorf("expected message 'Facility not found', got %s", err.Message)
	}
	if err.Details["id"] != "999" {
		t.Errorf("expected id detail '999', got %v", err.Details["id"])
	}
}

func TestAsAppError(t *testing.T) {
	t.Run("passes app errors through wrapping", func(t *testing.T) {
		inner := InvalidInput("unknown filter field: color")
		wrapped := fmt.Errorf("listing facilities: %w", inner)

		got := AsAppError(wrapped)
		if got != inner {
			t.Errorf("expected the wrapped AppError to be returned")
		}
	})

	t.Run("converts plain errors to internal", func(t *testing.T) {
		got := AsAppError(errors.New("boom"))
		if got.Code != CodeInternal {
			t.Errorf("expected code %s, got %s", CodeInternal, got.Code)
		}
		if got.StatusCode() != http.StatusInternalServerError {
			t.Errorf("expected status 500, got %d", got.StatusCode())
		}
	})
}

func TestHasCode(t *testing.T) {
	if !HasCode(NotFoundWithID("Facility", "1"), CodeNotFound) {
		t.Error("expected NOT_FOUND code to match")
	}
	if HasCode(Conflict("taken"), CodeNotFound) {
		t.Error("did not expect CONFLICT to match NOT_FOUND")
	}
	if HasCode(errors.New("plain"), CodeInternal) {
		t.Error("plain errors carry no code")
	}
	if !IsAppError(fmt.Errorf("ctx: %w", Timeout("slow"))) {
		t.Error("expected wrapped timeout to be an AppError")
	}
}
