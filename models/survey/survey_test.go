package survey

import (
	"testing"
	"time"
)

func TestIsValidRating(t *testing.T) {
	for rating := 1; rating <= 5; rating++ {
		if !IsValidRating(rating) {
			t.Fatalf("rating %d rejected", rating)
		}
	}
	for _, rating := range []int{0, -1, 6, 100} {
		if IsValidRating(rating) {
			t.Fatalf("rating %d accepted", rating)
		}
	}
}

func TestIsTokenValid(t *testing.T) {
	future := time.Now().Add(time.Hour)
	past := time.Now().Add(-time.Hour)

	cases := []struct {
		name   string
		survey SatisfactionSurvey
		token  string
		valid  bool
	}{
		{"matching live token", SatisfactionSurvey{Token: "abc", TokenExpiresAt: &future}, "abc", true},
		{"wrong token", SatisfactionSurvey{Token: "abc", TokenExpiresAt: &future}, "xyz", false},
		{"empty supplied token", SatisfactionSurvey{Token: "abc", TokenExpiresAt: &future}, "", false},
		{"no stored token", SatisfactionSurvey{Token: "", TokenExpiresAt: &future}, "abc", false},
		{"expired token", SatisfactionSurvey{Token: "abc", TokenExpiresAt: &past}, "abc", false},
		{"no expiry set", SatisfactionSurvey{Token: "abc"}, "abc", false},
	}

	for _, tc := range cases {
		if got := tc.survey.IsTokenValid(tc.token); got != tc.valid {
			t.Fatalf("%s: IsTokenValid() = %v, expected %v", tc.name, got, tc.valid)
		}
	}
}

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
