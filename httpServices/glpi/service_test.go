package glpi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"helpdesk-backend/apperrors"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	t.Setenv("GLPI_LEGACY_API_URL", srv.URL)
	t.Setenv("GLPI_APP_TOKEN", "app-token")
	t.Setenv("GLPI_USER_TOKEN", "user-token")
	return NewClient()
}

func TestNormalizeBaseURL(t *testing.T) {
	cases := []struct {
		raw      string
		expected string
	}{
		{"https://itsm.example.com", "https://itsm.example.com/apirest.php"},
		{"https://itsm.example.com/", "https://itsm.example.com/apirest.php"},
		{"https://itsm.example.com/apirest.php", "https://itsm.example.com/apirest.php"},
		{"https://itsm.example.com/apirest.php/", "https://itsm.example.com/apirest.php"},
		{"", ""},
	}

	for _, tc := range cases {
		if got := normalizeBaseURL(tc.raw); got != tc.expected {
			t.Fatalf("normalizeBaseURL(%q) = %q, expected %q", tc.raw, got, tc.expected)
		}
	}
}

func TestParseTotal(t *testing.T) {
	cases := []struct {
		header string
		total  int
	}{
		{"0-49/120", 120},
		{"0-2/3", 3},
		{"", 0},
		{"garbage", 0},
		{"0-49/not-a-number", 0},
	}

	for _, tc := range cases {
		if got := parseTotal(tc.header); got != tc.total {
			t.Fatalf("parseTotal(%q) = %d, expected %d", tc.header, got, tc.total)
		}
	}
}

func TestFetchCategories(t *testing.T) {
	killed := false
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("App-Token") != "app-token" {
			t.Fatal("App-Token header missing")
		}
		switch r.URL.Path {
		case "/apirest.php/initSession":
			if r.Header.Get("Authorization") != "user_token user-token" {
				t.Fatalf("unexpected auth header: %q", r.Header.Get("Authorization"))
			}
			json.NewEncoder(w).Encode(initSessionResponse{SessionToken: "session-1"})
		case "/apirest.php/ITILCategory":
			if r.Header.Get("Session-Token") != "session-1" {
				t.Fatal("Session-Token header missing")
			}
			if r.URL.Query().Get("range") != "0-49" {
				t.Fatalf("unexpected range: %q", r.URL.Query().Get("range"))
			}
			w.Header().Set("Content-Range", "0-2/3")
			w.WriteHeader(http.StatusPartialContent)
			json.NewEncoder(w).Encode([]rawCategory{
				{ID: 1, Name: "TI", CompleteName: "TI"},
				{ID: 2, Name: "Incidente", CompleteName: "TI > Incidente"},
				{ID: 2, Name: "Incidente", CompleteName: "TI > Incidente"}, // duplicate
				{ID: 90, Name: "Software", CompleteName: "TI > Incidente > Software"},
			})
		case "/apirest.php/killSession":
			killed = true
			w.WriteHeader(http.StatusOK)
		default:
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
	}))

	entries, err := client.FetchCategories()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 deduplicated entries, got %d", len(entries))
	}

	leaf := entries[2]
	if leaf.GlpiID != 90 || leaf.Name != "Software" {
		t.Fatalf("unexpected leaf entry: %+v", leaf)
	}
	if leaf.FullPath != "TI > Incidente > Software" {
		t.Fatalf("unexpected full path: %q", leaf.FullPath)
	}
	if leaf.ParentPath != "TI > Incidente" {
		t.Fatalf("unexpected parent path: %q", leaf.ParentPath)
	}
	if entries[0].ParentPath != "" {
		t.Fatalf("root entry must have no parent, got %q", entries[0].ParentPath)
	}
	if !killed {
		t.Fatal("session was not closed after fetching")
	}
}

func TestFetchCategoriesSessionFailure(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `["ERROR_WRONG_APP_TOKEN"]`)
	}))

	_, err := client.FetchCategories()
	if err == nil {
		t.Fatal("expected error on session failure")
	}
	if code := apperrors.CodeOf(err); code != "session_error" {
		t.Fatalf("expected session_error, got %q", code)
	}
}
