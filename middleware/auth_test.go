package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"courier-admin/constants"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret-do-not-use"

func signTestToken(t *testing.T, permissions []string, expiresIn time.Duration) string {
	t.Helper()
	claims := jwt.MapClaims{
		"id":          1,
		"username":    "ops",
		"permissions": permissions,
		"iat":         time.Now().Unix(),
		"exp":         time.Now().Add(expiresIn).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("failed to sign test token: %v", err)
	}
	return token
}

func newGuardedApp(permissions ...string) *fiber.App {
	app := fiber.New()
	app.Get("/guarded", RequirePermissions(permissions...), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func TestIsAuthenticated(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	app := newGuardedApp(constants.PermBookingsFull)

	cases := []struct {
		name       string
		authHeader string
		cookie     string
		wantStatus int
	}{
		{
			name:       "no credentials",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "malformed header",
			authHeader: "Token abc",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "garbage token",
			authHeader: "Bearer not-a-jwt",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "expired token",
			authHeader: "Bearer " + signTestToken(t, []string{constants.PermBookingsFull}, -time.Hour),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong permission",
			authHeader: "Bearer " + signTestToken(t, []string{constants.PermCouponsFull}, time.Hour),
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "matching permission",
			authHeader: "Bearer " + signTestToken(t, []string{constants.PermBookingsFull}, time.Hour),
			wantStatus: http.StatusOK,
		},
		{
			name:       "cookie fallback",
			cookie:     signTestToken(t, []string{constants.PermBookingsFull}, time.Hour),
			wantStatus: http.StatusOK,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
			if tc.authHeader != "" {
				req.Header.Set("Authorization", tc.authHeader)
			}
			if tc.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "access", Value: tc.cookie})
			}

			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != tc.wantStatus {
				t.Errorf("expected status %d, got %d", tc.wantStatus, resp.StatusCode)
			}
		})
	}
}

func TestSuperAdminBypass(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	app := newGuardedApp(constants.PermSuperAdminFull, constants.PermBookingsFull)
	token := signTestToken(t, []string{constants.PermSuperAdminFull}, time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected super admin grant to pass, got %d", resp.StatusCode)
	}
}

func TestRequireAnyPermission(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	app := fiber.New()
	app.Get("/session", RequireAnyPermission(), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	// Any valid token passes, regardless of its grants.
	token := signTestToken(t, nil, time.Hour)
	req := httptest.NewRequest(http.MethodGet, "/session", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected any authenticated session to pass, got %d", resp.StatusCode)
	}
}
