package apperrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestHTTPStatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", Validation("invalid_code", "wrong code"), 400},
		{"not found", NotFound("request_not_found", "reset request not found"), 404},
		{"state", State("invalid_state", "not awaiting a code"), 409},
		{"expired", Expired("request_expired", "reset request has expired"), 410},
		{"rate limit", RateLimit("too many requests"), 429},
		{"provider", Provider("invalid_token", "rejected", nil), 502},
		{"upstream", Upstream("webhook_rejected", "status 500", nil), 502},
		{"plain error", errors.New("boom"), 500},
	}

	for _, tc := range cases {
		if got := HTTPStatus(tc.err); got != tc.status {
			t.Fatalf("%s: expected status %d, got %d", tc.name, tc.status, got)
		}
	}
}

func TestCodeOfUnwrapsChain(t *testing.T) {
	inner := Provider("user_not_found", "account not found", nil)
	wrapped := fmt.Errorf("resolving phone: %w", inner)

	if got := CodeOf(wrapped); got != "user_not_found" {
		t.Fatalf("expected code user_not_found, got %q", got)
	}
	if got := KindOf(wrapped); got != KindProvider {
		t.Fatalf("expected provider kind, got %v", got)
	}
	if got := MessageOf(wrapped); got != "account not found" {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestCodeOfPlainError(t *testing.T) {
	err := errors.New("boom")
	if got := CodeOf(err); got != "internal_error" {
		t.Fatalf("expected internal_error, got %q", got)
	}
	if got := MessageOf(err); got != "boom" {
		t.Fatalf("expected raw message fallback, got %q", got)
	}
}
