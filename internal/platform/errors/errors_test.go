package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestErrorIsMatchesByCode(t *testing.T) {
	err := New(CodeSessionNotFound, "session not found")
	target := New(CodeSessionNotFound, "different message")

	if !stderrors.Is(err, target) {
		t.Fatal("expected errors with equal codes to match")
	}
	other := New(CodeSignupEmailEmpty, "email is required")
	if stderrors.Is(err, other) {
		t.Fatal("expected errors with different codes not to match")
	}
}

func TestWrapUnwrapsCause(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := Wrap(CodeUnknown, "add signup", cause)

	if stderrors.Unwrap(err) != cause {
		t.Fatalf("expected cause %v, got %v", cause, stderrors.Unwrap(err))
	}
	if err.Error() != "add signup" {
		t.Fatalf("expected internal message, got %q", err.Error())
	}
}

func TestCodeHTTPStatus(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{CodeSignupEmailMalformed, http.StatusBadRequest},
		{CodeSessionUnknownElement, http.StatusBadRequest},
		{CodeSessionNotFound, http.StatusNotFound},
		{CodeSessionDisposed, http.StatusGone},
		{CodeProgressUnavailable, http.StatusServiceUnavailable},
		{CodeUnknown, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := tt.code.HTTPStatus(); got != tt.want {
			t.Fatalf("%s: expected status %d, got %d", tt.code, tt.want, got)
		}
	}
}
