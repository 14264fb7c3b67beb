package auth

import (
	"net/http/httptest"
	"testing"

	"pastane-backend/internal/config"
	"pastane-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{JWTSecret: "test-secret-test-secret-test-secret!"}
}

func newProtectedApp(cfg *config.Config) *fiber.App {
	app := fiber.New()
	app.Use(JWTMiddleware(cfg))
	app.Get("/whoami", func(c *fiber.Ctx) error {
		userID, err := CurrentUserID(c)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"user_id": userID})
	})
	app.Get("/admin-only", RequireRole(models.RoleAdmin), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func TestJWTMiddlewareResolvesEditorIdentity(t *testing.T) {
	cfg := testConfig()
	app := newProtectedApp(cfg)

	editor := models.User{ID: 7, Email: "editor@pastane.dev", Role: models.RoleEditor}
	token, err := GenerateToken(cfg.JWTSecret, &editor)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestJWTMiddlewareRejectsMissingToken(t *testing.T) {
	app := newProtectedApp(testConfig())

	req := httptest.NewRequest("GET", "/whoami", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireRoleBlocksEditor(t *testing.T) {
	cfg := testConfig()
	app := newProtectedApp(cfg)

	editor := models.User{ID: 7, Email: "editor@pastane.dev", Role: models.RoleEditor}
	token, err := GenerateToken(cfg.JWTSecret, &editor)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestRequireRoleAllowsAdmin(t *testing.T) {
	cfg := testConfig()
	app := newProtectedApp(cfg)

	admin := models.User{ID: 1, Email: "admin@pastane.dev", Role: models.RoleAdmin}
	token, err := GenerateToken(cfg.JWTSecret, &admin)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
