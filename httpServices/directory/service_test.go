package directory

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"helpdesk-backend/apperrors"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	t.Setenv("DIRECTORY_GATEWAY_URL", srv.URL)
	t.Setenv("DIRECTORY_GATEWAY_API_KEY", "test-key")
	return NewClient(), srv
}

func TestUserExists(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Api-Key") != "test-key" {
			t.Fatalf("missing API key header")
		}
		switch r.URL.Path {
		case "/api/users/joao.silva":
			w.WriteHeader(http.StatusOK)
		case "/api/users/ghost":
			w.WriteHeader(http.StatusNotFound)
		default:
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
	}))

	exists, err := client.UserExists("joao.silva")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !exists {
		t.Fatal("known account reported as missing")
	}

	exists, err = client.UserExists("ghost")
	if err != nil {
		t.Fatalf("a 404 must not be an error, got: %v", err)
	}
	if exists {
		t.Fatal("unknown account reported as existing")
	}
}

func TestUserExistsAuthFailure(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	_, err := client.UserExists("joao.silva")
	if err == nil {
		t.Fatal("expected error on 401")
	}
	if code := apperrors.CodeOf(err); code != "invalid_token" {
		t.Fatalf("expected invalid_token, got %q", code)
	}
}

func TestResetPassword(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/reset-password" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		var req resetPasswordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("unreadable body: %v", err)
		}
		if req.Username != "joao.silva" || req.NewPassword != "Nova-Senha1" {
			t.Fatalf("unexpected payload: %+v", req)
		}
		json.NewEncoder(w).Encode(gatewayResponse{Success: true})
	}))

	if err := client.ResetPassword("joao.silva", "Nova-Senha1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestResetPasswordGatewayRejection(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(gatewayResponse{Success: false, Error: "password policy violation"})
	}))

	err := client.ResetPassword("joao.silva", "Nova-Senha1")
	if err == nil {
		t.Fatal("expected error when gateway reports failure")
	}
	if msg := apperrors.MessageOf(err); msg != "password policy violation" {
		t.Fatalf("gateway error message lost: %q", msg)
	}
}

func TestResetPasswordServerError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	err := client.ResetPassword("joao.silva", "Nova-Senha1")
	if code := apperrors.CodeOf(err); code != "service_unavailable" {
		t.Fatalf("expected service_unavailable, got %q (%v)", code, err)
	}
}
