package auth_test

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"disasterhub/core/middleware/auth"
	"disasterhub/core/token"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func setupApp(tokens *token.Service) *fiber.App {
	app := fiber.New()
	app.Get("/me", auth.New(tokens), func(c *fiber.Ctx) error {
		claims := auth.UserFrom(c)
		return c.JSON(fiber.Map{"username": claims.Username})
	})
	app.Delete("/admin-only", auth.New(tokens), auth.RequireRole("admin"), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func TestMissingToken(t *testing.T) {
	app := setupApp(token.NewService("test_secret", time.Hour))

	req := httptest.NewRequest("GET", "/me", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestInvalidToken(t *testing.T) {
	app := setupApp(token.NewService("test_secret", time.Hour))

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestValidTokenPassesClaims(t *testing.T) {
	tokens := token.NewService("test_secret", time.Hour)
	app := setupApp(tokens)

	raw, err := tokens.Generate(7, "reliefAdmin", "admin")
	assert.NoError(t, err)

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "reliefAdmin")
}

func TestRequireRoleRejectsOtherRoles(t *testing.T) {
	tokens := token.NewService("test_secret", time.Hour)
	app := setupApp(tokens)

	raw, err := tokens.Generate(8, "citizen1", "citizen")
	assert.NoError(t, err)

	req := httptest.NewRequest("DELETE", "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestRequireRoleAllowsListedRole(t *testing.T) {
	tokens := token.NewService("test_secret", time.Hour)
	app := setupApp(tokens)

	raw, err := tokens.Generate(9, "reliefAdmin", "admin")
	assert.NoError(t, err)

	req := httptest.NewRequest("DELETE", "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
