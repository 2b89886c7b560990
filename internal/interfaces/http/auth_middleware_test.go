package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sinv-console/internal/application/auth"
	"github.com/jhoicas/sinv-console/internal/domain"
	"github.com/jhoicas/sinv-console/internal/domain/entity"
	apphttp "github.com/jhoicas/sinv-console/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type fixedSession struct {
	p   auth.Principal
	err error
}

func (f fixedSession) Current() (auth.Principal, error) { return f.p, f.err }

func asRole(role entity.Role) fixedSession {
	return fixedSession{p: auth.Principal{UserID: 7, Role: role, ExpiresAt: time.Now().Add(time.Hour)}}
}

// buildTestApp construye una aplicación Fiber mínima con:
//   - SessionMiddleware para cargar el usuario en locals
//   - RequireRole para autorizar el acceso
//   - Un handler dummy que devuelve 200 si pasa los middlewares
func buildTestApp(session fixedSession, allowedRoles ...entity.Role) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})
	app.Get("/protected",
		apphttp.SessionMiddleware(session),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":      true,
				"role":    apphttp.GetRole(c),
				"user_id": apphttp.GetUserID(c),
			})
		},
	)
	return app
}

func doRequest(t *testing.T, app *fiber.App) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/protected", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	var out map[string]any
	require.NoError(t, json.Unmarshal(body, &out), string(body))
	return resp, out
}

// ──────────────────────────────────────────────────────────────────────────────
// SessionMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestSessionMiddleware_SinSesion(t *testing.T) {
	app := buildTestApp(fixedSession{err: domain.ErrNoSession}, entity.RoleAdministrador)

	resp, body := doRequest(t, app)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "NO_SESSION", body["code"])
}

func TestSessionMiddleware_SesionExpirada(t *testing.T) {
	app := buildTestApp(fixedSession{err: domain.ErrSessionExpired}, entity.RoleAdministrador)

	resp, body := doRequest(t, app)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "SESSION_EXPIRED", body["code"])
}

func TestSessionMiddleware_CargaLocals(t *testing.T) {
	app := buildTestApp(asRole(entity.RoleTrabajador), entity.RoleTrabajador)

	resp, body := doRequest(t, app)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "TRABAJADOR", body["role"])
	assert.EqualValues(t, 7, body["user_id"])
}

// ──────────────────────────────────────────────────────────────────────────────
// RequireRole
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireRole_AdminAccedeRutaAdmin(t *testing.T) {
	app := buildTestApp(asRole(entity.RoleAdministrador), entity.RoleAdministrador)

	resp, body := doRequest(t, app)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["ok"])
}

func TestRequireRole_TrabajadorNoAccedeRutaAdmin(t *testing.T) {
	app := buildTestApp(asRole(entity.RoleTrabajador), entity.RoleAdministrador)

	resp, body := doRequest(t, app)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", body["code"])
}

func TestRequireRole_VariosRolesPermitidos(t *testing.T) {
	app := buildTestApp(asRole(entity.RoleTrabajador), entity.RoleAdministrador, entity.RoleTrabajador)

	resp, _ := doRequest(t, app)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireRole_SinRol(t *testing.T) {
	app := buildTestApp(asRole(""), entity.RoleAdministrador)

	resp, body := doRequest(t, app)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "MISSING_ROLE", body["code"])
}
