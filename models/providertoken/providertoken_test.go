package providertoken

import (
	"testing"
	"time"
)

func TestIsAccessTokenValid(t *testing.T) {
	future := time.Now().Add(time.Hour)
	past := time.Now().Add(-time.Hour)

	cases := []struct {
		name  string
		token ProviderToken
		valid bool
	}{
		{"live token", ProviderToken{AccessToken: "tok", ExpiresAt: &future}, true},
		{"expired token", ProviderToken{AccessToken: "tok", ExpiresAt: &past}, false},
		{"no token", ProviderToken{ExpiresAt: &future}, false},
		{"no expiry", ProviderToken{AccessToken: "tok"}, false},
	}

	for _, tc := range cases {
		if got := tc.token.IsAccessTokenValid(); got != tc.valid {
			t.Fatalf("%s: IsAccessTokenValid() = %v, expected %v", tc.name, got, tc.valid)
		}
		if got := tc.token.NeedsRefresh(); got == tc.valid {
			t.Fatalf("%s: NeedsRefresh() must be the inverse of validity", tc.name)
		}
	}
}
