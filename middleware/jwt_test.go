package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"helpdesk-backend/constants"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

func signToken(t *testing.T, secret string, permissions []string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"username": "maria",
		"exp":      time.Now().Add(time.Hour).Unix(),
	}
	if permissions != nil {
		perms := make([]interface{}, len(permissions))
		for i, p := range permissions {
			perms[i] = p
		}
		claims["permissions"] = perms
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func TestVerifyJWT(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	signed := signToken(t, "test-secret", []string{constants.PermReviewerFull})
	claims, err := VerifyJWT(signed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims["username"] != "maria" {
		t.Fatalf("claims lost: %+v", claims)
	}
}

func TestVerifyJWTWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	signed := signToken(t, "other-secret", nil)
	if _, err := VerifyJWT(signed); err == nil {
		t.Fatal("expected error for token signed with another secret")
	}
}

func TestIsAuthenticated(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	app := fiber.New()
	app.Get("/reviewer", RequirePermissions(constants.ReviewPermissions...), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	app.Get("/open", RequireAnyPermission(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	cases := []struct {
		name   string
		path   string
		token  string
		status int
	}{
		{"reviewer allowed", "/reviewer", signToken(t, "test-secret", []string{constants.PermReviewerFull}), 200},
		{"admin allowed", "/reviewer", signToken(t, "test-secret", []string{constants.PermHelpdeskAdminFull}), 200},
		{"operator denied", "/reviewer", signToken(t, "test-secret", []string{constants.PermOperatorFull}), 403},
		{"no permissions denied", "/reviewer", signToken(t, "test-secret", nil), 403},
		{"any valid token passes open route", "/open", signToken(t, "test-secret", nil), 200},
		{"forged token rejected", "/open", signToken(t, "other-secret", nil), 403},
		{"missing token", "/open", "", 401},
	}

	for _, tc := range cases {
		req := httptest.NewRequest("GET", tc.path, nil)
		if tc.token != "" {
			req.Header.Set("Authorization", "Bearer "+tc.token)
		}
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("%s: request failed: %v", tc.name, err)
		}
		if resp.StatusCode != tc.status {
			t.Fatalf("%s: expected status %d, got %d", tc.name, tc.status, resp.StatusCode)
		}
	}
}

func TestIsAuthenticatedAccessCookie(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	app := fiber.New()
	app.Get("/open", RequireAuthentication(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest("GET", "/open", nil)
	req.AddCookie(&http.Cookie{Name: "access", Value: signToken(t, "test-secret", nil)})

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 via cookie, got %d", resp.StatusCode)
	}
}
