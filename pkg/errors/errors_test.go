package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestConstructorStatusCodes(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		wantCode   string
		wantStatus int
	}{
		{"not found", NotFound("Room"), CodeNotFound, http.StatusNotFound},
		{"invalid range", InvalidRange("end hour must be after start hour"), CodeInvalidRange, http.StatusBadRequest},
		{"invalid input", InvalidInput("invalid body"), CodeInvalidInput, http.StatusBadRequest},
		{"validation", Validation("bad booking", nil), CodeValidation, http.StatusUnprocessableEntity},
		{"forbidden", Forbidden("not the owner"), CodeForbidden, http.StatusForbidden},
		{"conflict", Conflict("window taken"), CodeConflict, http.StatusConflict},
		{"already canceled", AlreadyCanceled("terminal state"), CodeAlreadyCanceled, http.StatusConflict},
		{"internal", Internal("broke", errors.New("cause")), CodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.wantCode {
				t.Errorf("code = %s, want %s", tt.err.Code, tt.wantCode)
			}
			if tt.err.StatusCode() != tt.wantStatus {
				t.Errorf("status = %d, want %d", tt.err.StatusCode(), tt.wantStatus)
			}
		})
	}
}

func TestNotFoundWithIDDetails(t *testing.T) {
	err := NotFoundWithID("Booking", "65a0000000000000000000aa")
	if err.Details["resource"] != "Booking" || err.Details["id"] != "65a0000000000000000000aa" {
		t.Errorf("details = %v", err.Details)
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := Internal("storage unavailable", cause)

	if !errors.Is(err, cause) {
		t.Error("wrapped cause not reachable via errors.Is")
	}
	wrapped := fmt.Errorf("outer: %w", err)
	var appErr *AppError
	if !errors.As(wrapped, &appErr) {
		t.Error("AppError not reachable via errors.As")
	}
}

func TestAsAppError(t *testing.T) {
	conflict := Conflict("window taken")
	if got := AsAppError(conflict); got != conflict {
		t.Error("existing AppError was re-wrapped")
	}

	got := AsAppError(errors.New("plain"))
	if got.Code != CodeInternal {
		t.Errorf("plain error mapped to %s", got.Code)
	}
}

func TestIsAppError(t *testing.T) {
	if !IsAppError(Conflict("x")) {
		t.Error("AppError not recognized")
	}
	if IsAppError(errors.New("plain")) {
		t.Error("plain error recognized as AppError")
	}
}
