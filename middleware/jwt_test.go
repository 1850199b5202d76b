package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lms/config"
	"lms/models"
)

func newProtectedApp(t *testing.T, roles ...models.Role) *fiber.App {
	t.Helper()
	config.AppConfig = &config.Config{JWTKey: "test-secret"}

	app := fiber.New()
	handlers := []fiber.Handler{JWTMiddleware}
	if len(roles) > 0 {
		handlers = append(handlers, RequireRole(roles...))
	}
	handlers = append(handlers, func(c *fiber.Ctx) error {
		return JsonResponse(c, fiber.StatusOK, true, "ok", fiber.Map{
			"userId": c.Locals("userId"),
			"role":   c.Locals("role"),
		})
	})
	app.Get("/protected", handlers...)
	return app
}

func TestJWTMiddlewareMissingHeader(t *testing.T) {
	app := newProtectedApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/protected", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestJWTMiddlewareMalformedHeader(t *testing.T) {
	app := newProtectedApp(t)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Token abcdef")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestJWTMiddlewareBadSignature(t *testing.T) {
	config.AppConfig = &config.Config{JWTKey: "other-secret"}
	token, err := GenerateJWT(1, "Asha", models.RoleStudent, "asha@example.com")
	require.NoError(t, err)

	app := newProtectedApp(t) // resets JWTKey to test-secret

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestJWTMiddlewareValidToken(t *testing.T) {
	app := newProtectedApp(t)

	token, err := GenerateJWT(42, "Asha", models.RoleStudent, "asha@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireRoleForbidden(t *testing.T) {
	app := newProtectedApp(t, models.RoleTutor, models.RoleAdmin)

	token, err := GenerateJWT(42, "Asha", models.RoleStudent, "asha@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestRequireRoleAllowed(t *testing.T) {
	app := newProtectedApp(t, models.RoleTutor, models.RoleAdmin)

	token, err := GenerateJWT(7, "Ravi", models.RoleAdmin, "ravi@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
