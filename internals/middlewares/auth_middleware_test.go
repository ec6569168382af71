// internals/middlewares/auth_middleware_test.go
package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bitacademy_backend/internals/middlewares"
)

const testSecret = "unit-test-secret"

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func newAuthApp(allowCookie bool) *fiber.App {
	app := fiber.New()
	app.Get("/admin",
		middlewares.AuthJWT(middlewares.AuthJWTOpts{Secret: testSecret, AllowCookieFallback: allowCookie}),
		middlewares.RequireAdmin(),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{
				"user_id": c.Locals(middlewares.LocUserID),
				"role":    c.Locals(middlewares.LocUserRole),
			})
		})
	return app
}

func TestAuthJWT_MissingToken(t *testing.T) {
	app := newAuthApp(false)
	resp, err := app.Test(httptest.NewRequest("GET", "/admin", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthJWT_BadSignature(t *testing.T) {
	app := newAuthApp(false)

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"id": "u1", "role": "admin"})
	signed, err := tok.SignedString([]byte("wrong-secret"))
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthJWT_ExpiredToken(t *testing.T) {
	app := newAuthApp(false)
	signed := signToken(t, jwt.MapClaims{
		"id":   "u1",
		"role": "admin",
		"exp":  time.Now().Add(-time.Hour).Unix(),
	})

	req := httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthJWT_AdminBearerToken(t *testing.T) {
	app := newAuthApp(false)
	signed := signToken(t, jwt.MapClaims{"id": "u1", "role": "admin"})

	req := httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuthJWT_CookieFallback(t *testing.T) {
	app := newAuthApp(true)
	signed := signToken(t, jwt.MapClaims{"sub": "u2", "role": "owner"})

	req := httptest.NewRequest("GET", "/admin", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: signed})
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireAdmin_StudentForbidden(t *testing.T) {
	app := newAuthApp(false)
	signed := signToken(t, jwt.MapClaims{"id": "u3", "role": "student"})

	req := httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRequireAdmin_MissingRole(t *testing.T) {
	app := newAuthApp(false)
	signed := signToken(t, jwt.MapClaims{"id": "u4"})

	req := httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
