package utils

import "testing"

func TestValidatePasswordStrength(t *testing.T) {
	cases := []struct {
		name     string
		password string
		valid    bool
	}{
		{"all requirements met", "Passw0rd", true},
		{"long mixed password", "Troque-Me-Agora-123", true},
		{"too short", "Pw1", false},
		{"no uppercase", "password1", false},
		{"no lowercase", "PASSWORD1", false},
		{"no digit", "Passwords", false},
		{"empty", "", false},
	}

	for _, tc := range cases {
		err := ValidatePasswordStrength(tc.password)
		if tc.valid && err != nil {
			t.Fatalf("%s: expected valid, got %v", tc.name, err)
		}
		if !tc.valid && err == nil {
			t.Fatalf("%s: expected rejection, got nil", tc.name)
		}
	}
}
