package zoho

import (
	"net/http"
	"testing"

	"helpdesk-backend/apperrors"
)

func TestParseStatusError(t *testing.T) {
	client := &Client{}

	cases := []struct {
		status int
		code   string
	}{
		{http.StatusUnauthorized, "invalid_token"},
		{http.StatusForbidden, "insufficient_permissions"},
		{http.StatusNotFound, "user_not_found"},
		{http.StatusTooManyRequests, "rate_limit_exceeded"},
		{http.StatusInternalServerError, "service_unavailable"},
		{http.StatusBadGateway, "service_unavailable"},
		{http.StatusTeapot, "provider_error"},
	}

	for _, tc := range cases {
		err := client.parseStatusError(tc.status)
		if got := apperrors.CodeOf(err); got != tc.code {
			t.Fatalf("status %d: expected code %q, got %q", tc.status, tc.code, got)
		}
		if apperrors.KindOf(err) != apperrors.KindProvider {
			t.Fatalf("status %d: expected provider kind", tc.status)
		}
	}
}
