package resetrequest

import (
	"testing"
	"time"

	"helpdesk-backend/constants"
)

func TestGenerateTokenIsUnique(t *testing.T) {
	a, err := GenerateToken()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := GenerateToken()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a == "" || a == b {
		t.Fatalf("expected distinct non-empty tokens, got %q and %q", a, b)
	}
}

func TestResetRequestStateHelpers(t *testing.T) {
	cases := []struct {
		status      string
		terminal    bool
		canGenerate bool
		canConfirm  bool
	}{
		{constants.ResetStatusPending, false, true, false},
		{constants.ResetStatusOtpSent, false, true, false},
		{constants.ResetStatusOtpValidated, false, true, true},
		{constants.ResetStatusCompleted, true, false, false},
		{constants.ResetStatusExpired, true, false, false},
		{constants.ResetStatusFailed, true, false, false},
	}

	for _, tc := range cases {
		r := ResetRequest{Status: tc.status, ExpiresAt: time.Now().Add(time.Hour)}
		if got := r.IsTerminal(); got != tc.terminal {
			t.Fatalf("%s: IsTerminal() = %v, expected %v", tc.status, got, tc.terminal)
		}
		if got := r.CanGenerateOtp(); got != tc.canGenerate {
			t.Fatalf("%s: CanGenerateOtp() = %v, expected %v", tc.status, got, tc.canGenerate)
		}
		if got := r.CanConfirm(); got != tc.canConfirm {
			t.Fatalf("%s: CanConfirm() = %v, expected %v", tc.status, got, tc.canConfirm)
		}
	}
}

func TestResetRequestIsExpired(t *testing.T) {
	live := ResetRequest{ExpiresAt: time.Now().Add(time.Minute)}
	if live.IsExpired() {
		t.Fatal("request with future expiry reported as expired")
	}
	dead := ResetRequest{ExpiresAt: time.Now().Add(-time.Minute)}
	if !dead.IsExpired() {
		t.Fatal("request with past expiry reported as live")
	}
}

func TestOtpCodeIsLive(t *testing.T) {
	future := time.Now().Add(10 * time.Minute)
	past := time.Now().Add(-time.Minute)

	cases := []struct {
		name string
		otp  OtpCode
		live bool
	}{
		{"pending and fresh", OtpCode{Status: constants.OtpStatusPending, ExpiresAt: future}, true},
		{"pending but expired", OtpCode{Status: constants.OtpStatusPending, ExpiresAt: past}, false},
		{"superseded", OtpCode{Status: constants.OtpStatusSuperseded, ExpiresAt: future}, false},
		{"validated", OtpCode{Status: constants.OtpStatusValidated, ExpiresAt: future}, false},
	}

	for _, tc := range cases {
		if got := tc.otp.IsLive(); got != tc.live {
			t.Fatalf("%s: IsLive() = %v, expected %v", tc.name, got, tc.live)
		}
	}
}

func TestOtpCodeAttemptAccounting(t *testing.T) {
	otp := OtpCode{Attempts: 2, MaxAttempts: 3}
	if otp.HasExceededAttempts() {
		t.Fatal("two of three attempts reported as exceeded")
	}
	if got := otp.RemainingAttempts(); got != 1 {
		t.Fatalf("expected 1 remaining attempt, got %d", got)
	}

	otp.Attempts = 3
	if !otp.HasExceededAttempts() {
		t.Fatal("limit reached but not reported as exceeded")
	}
	if got := otp.RemainingAttempts(); got != 0 {
		t.Fatalf("expected 0 remaining attempts, got %d", got)
	}

	otp.Attempts = 5
	if got := otp.RemainingAttempts(); got != 0 {
		t.Fatalf("remaining attempts went negative: %d", got)
	}
}
