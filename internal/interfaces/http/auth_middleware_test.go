package http_test

import (
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpiface "github.com/jhoicas/backoffice-api/internal/interfaces/http"
	"github.com/jhoicas/backoffice-api/pkg/jwt"
)

const testSecret = "secreto-de-test"

func newProtectedApp(roles ...string) *fiber.App {
	app := fiber.New()
	group := app.Group("/api", httpiface.AuthMiddleware(testSecret))
	handler := func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": httpiface.GetUserID(c), "role": httpiface.GetRole(c)})
	}
	if len(roles) > 0 {
		group.Get("/recurso", httpiface.RequireRole(roles...), handler)
	} else {
		group.Get("/recurso", handler)
	}
	return app
}

func doRequest(t *testing.T, app *fiber.App, token string) *stdhttp.Response {
	t.Helper()
	req := httptest.NewRequest(stdhttp.MethodGet, "/api/recurso", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func issueToken(t *testing.T, role string) string {
	t.Helper()
	token, err := jwt.Generate(testSecret, "user-1", role, "backoffice-api", 5)
	require.NoError(t, err)
	return token
}

func TestAuthMiddleware_SinTokenDevuelve401(t *testing.T) {
	app := newProtectedApp()
	resp := doRequest(t, app, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenInvalidoDevuelve401(t *testing.T) {
	app := newProtectedApp()
	resp := doRequest(t, app, "no-es-un-jwt")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_FirmaDeOtroSecretoDevuelve401(t *testing.T) {
	app := newProtectedApp()
	token, err := jwt.Generate("otro-secreto", "user-1", "admin", "backoffice-api", 5)
	require.NoError(t, err)
	resp := doRequest(t, app, token)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenValidoPasa(t *testing.T) {
	app := newProtectedApp()
	resp := doRequest(t, app, issueToken(t, "vendedor"))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireRole_AdminAccedeRutaAdmin(t *testing.T) {
	app := newProtectedApp("admin")
	resp := doRequest(t, app, issueToken(t, "admin"))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireRole_VendedorNoAccedeRutaAdmin(t *testing.T) {
	app := newProtectedApp("admin")
	resp := doRequest(t, app, issueToken(t, "vendedor"))
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestRequireRole_TokenSinRolDevuelve401(t *testing.T) {
	app := newProtectedApp("admin")
	resp := doRequest(t, app, issueToken(t, ""))
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireRole_VariosRolesPermitidos(t *testing.T) {
	app := newProtectedApp("admin", "vendedor")
	resp := doRequest(t, app, issueToken(t, "vendedor"))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
