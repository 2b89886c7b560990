package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalytics "github.com/jhoicas/sinv-console/internal/application/analytics"
	"github.com/jhoicas/sinv-console/internal/application/auth"
	"github.com/jhoicas/sinv-console/internal/application/dto"
	"github.com/jhoicas/sinv-console/internal/application/form"
	"github.com/jhoicas/sinv-console/internal/application/ports"
	"github.com/jhoicas/sinv-console/internal/application/usecase"
	"github.com/jhoicas/sinv-console/internal/domain"
	"github.com/jhoicas/sinv-console/internal/domain/entity"
	"github.com/jhoicas/sinv-console/internal/domain/rules"
	apphttp "github.com/jhoicas/sinv-console/internal/interfaces/http"
	"github.com/jhoicas/sinv-console/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Backend en memoria (los métodos no usados quedan en la interfaz embebida)
// ──────────────────────────────────────────────────────────────────────────────

type memUsers struct {
	ports.UserGateway
	list []entity.User
}

func (m *memUsers) List(context.Context) ([]entity.User, error) { return m.list, nil }

func (m *memUsers) ToggleStatus(_ context.Context, id int64) (*entity.User, error) {
	for i := range m.list {
		if m.list[i].ID == id {
			m.list[i].Status = !m.list[i].Status
			u := m.list[i]
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

type memStorages struct {
	ports.StorageGateway
	list []entity.Storage
}

func (m *memStorages) List(context.Context) ([]entity.Storage, error) { return m.list, nil }

func (m *memStorages) ByResponsible(_ context.Context, userID int64) (*entity.Storage, error) {
	for _, s := range m.list {
		if s.ResponsibleID != nil && *s.ResponsibleID == userID {
			s := s
			return &s, nil
		}
	}
	return nil, domain.ErrNotFound
}

type memCategories struct {
	ports.CategoryGateway
	list    []entity.Category
	created []dto.CategoryPayload
}

func (m *memCategories) List(context.Context) ([]entity.Category, error) { return m.list, nil }

func (m *memCategories) Create(_ context.Context, in dto.CategoryPayload) (*entity.Category, error) {
	m.created = append(m.created, in)
	c := entity.Category{ID: int64(len(m.list) + 1), Name: in.Name, Status: true}
	m.list = append(m.list, c)
	return &c, nil
}

type memArticles struct {
	ports.ArticleGateway
	list []entity.Article
}

func (m *memArticles) List(context.Context) ([]entity.Article, error) { return m.list, nil }

func (m *memArticles) Delete(_ context.Context, id int64) error {
	for i, a := range m.list {
		if a.ID == id {
			m.list = append(m.list[:i], m.list[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

type tokenAuth struct{ res *dto.SignInResult }

func (a tokenAuth) SignIn(context.Context, dto.SignInPayload) (*dto.SignInResult, error) {
	return a.res, nil
}

type memStore struct{ rec *ports.Credentials }

func (m *memStore) Save(c ports.Credentials) error { m.rec = &c; return nil }
func (m *memStore) Delete() error                  { m.rec = nil; return nil }
func (m *memStore) Load() (ports.Credentials, error) {
	if m.rec == nil {
		return ports.Credentials{}, domain.ErrNotFound
	}
	return *m.rec, nil
}

type testEnv struct {
	app        *fiber.App
	session    *auth.Session
	categories *memCategories
	articles   *memArticles
	users      *memUsers
}

// newEnv levanta el router completo; role vacío deja la consola sin sesión.
func newEnv(t *testing.T, userID int64, role entity.Role) *testEnv {
	t.Helper()
	worker := int64(8)
	users := &memUsers{list: []entity.User{
		{ID: 1, FullName: "Admin", Email: "admin@x.com", Role: entity.RoleAdministrador, Status: true},
		{ID: 8, FullName: "Luis Gómez", Email: "luis@x.com", Role: entity.RoleTrabajador, Status: true},
	}}
	storages := &memStorages{list: []entity.Storage{
		{ID: 3, Identifier: "A-001", Status: true, CategoryID: 1, CategoryName: "Herramientas", ResponsibleID: &worker,
			Articles: []entity.Article{{ID: 5, Name: "Martillo", CategoryID: 1}}},
	}}
	categories := &memCategories{list: []entity.Category{{ID: 1, Name: "Herramientas", Status: true}}}
	articles := &memArticles{list: []entity.Article{{ID: 5, Name: "Martillo", CategoryID: 1, StorageIDs: []int64{3}}}}

	tok, err := jwt.Generate("test-secret", "x", string(role), time.Hour)
	require.NoError(t, err)
	session := auth.NewSession(tokenAuth{res: &dto.SignInResult{
		Token: tok,
		User:  dto.UserWire{ID: userID, FullName: "Operador", Email: "op@x.com"},
		Roles: dto.RoleWire{Name: string(role)},
	}}, &memStore{}, nil)
	if role != "" {
		_, err := session.SignIn(context.Background(), "op@x.com", "Abcdef1!")
		require.NoError(t, err)
	}

	snaps := usecase.NewSnapshotLoader(users, storages, categories, articles)
	registry := form.NewRegistry(time.Hour, nil)
	session.OnSignOut(func() { registry.DiscardOwned() })
	gw := usecase.Gateways{Users: users, Storages: storages, Categories: categories, Articles: articles}

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		Session:     session,
		Engine:      rules.NewEngine(),
		FormUC:      usecase.NewFormUseCase(gw, snaps, session, registry, nil),
		UserUC:      usecase.NewUserUseCase(users),
		StorageUC:   usecase.NewStorageUseCase(storages, snaps),
		CatalogUC:   usecase.NewCatalogUseCase(categories, articles, storages),
		DashboardUC: appanalytics.NewDashboardUseCase(snaps),
	})
	return &testEnv{app: app, session: session, categories: categories, articles: articles, users: users}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) (int, map[string]any) {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	out := map[string]any{}
	if len(bytes.TrimSpace(raw)) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp.StatusCode, out
}

// ──────────────────────────────────────────────────────────────────────────────
// Sesión
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_MeSegunRol(t *testing.T) {
	env := newEnv(t, 1, entity.RoleAdministrador)

	status, body := env.do(t, http.MethodGet, "/api/auth/me", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "ADMINISTRADOR", body["role"])
	assert.Equal(t, "/administrador/home", body["home"])
	assert.Len(t, body["menu"], 6)
}

func TestRouter_SignOutCierraSesionYFormularios(t *testing.T) {
	env := newEnv(t, 1, entity.RoleAdministrador)

	status, opened := env.do(t, http.MethodPost, "/api/forms", map[string]any{"kind": "category.create"})
	require.Equal(t, fiber.StatusCreated, status)

	status, _ = env.do(t, http.MethodPost, "/api/auth/signout", nil)
	assert.Equal(t, fiber.StatusNoContent, status)

	status, body := env.do(t, http.MethodGet, "/api/auth/me", nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "NO_SESSION", body["code"])

	status, body = env.do(t, http.MethodGet, "/api/forms/"+opened["id"].(string), nil)
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "FORM_NOT_FOUND", body["code"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Formularios
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_FormularioCategoriaCicloCompleto(t *testing.T) {
	env := newEnv(t, 1, entity.RoleAdministrador)

	status, view := env.do(t, http.MethodPost, "/api/forms", map[string]any{"kind": "category.create"})
	require.Equal(t, fiber.StatusCreated, status)
	id := view["id"].(string)
	assert.Equal(t, "editing", view["state"])

	status, view = env.do(t, http.MethodPatch, "/api/forms/"+id, map[string]any{"field": "name", "value": "Li"})
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, rules.MsgCategoryMin, view["errors"].(map[string]any)["name"])

	status, _ = env.do(t, http.MethodPatch, "/api/forms/"+id, map[string]any{"field": "name", "value": "Limpieza"})
	require.Equal(t, fiber.StatusOK, status)

	status, out := env.do(t, http.MethodPost, "/api/forms/"+id+"/submit", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "accepted", out["status"])
	require.Len(t, env.categories.created, 1)
	assert.Equal(t, "Limpieza", env.categories.created[0].Name)

	status, body := env.do(t, http.MethodPatch, "/api/forms/"+id, map[string]any{"field": "name", "value": "Otra"})
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "FORM_CLOSED", body["code"])
}

func TestRouter_FormularioErroresDeEntrada(t *testing.T) {
	env := newEnv(t, 1, entity.RoleAdministrador)

	status, body := env.do(t, http.MethodPost, "/api/forms", map[string]any{"kind": "invoice.create"})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "UNKNOWN_FORM", body["code"])

	status, body = env.do(t, http.MethodPost, "/api/forms", map[string]any{})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", body["code"])

	status, view := env.do(t, http.MethodPost, "/api/forms", map[string]any{"kind": "category.create"})
	require.Equal(t, fiber.StatusCreated, status)
	status, body = env.do(t, http.MethodPost, "/api/forms/"+view["id"].(string)+"/blur", map[string]any{"field": "edad"})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "UNKNOWN_FIELD", body["code"])

	status, _ = env.do(t, http.MethodDelete, "/api/forms/"+view["id"].(string), nil)
	assert.Equal(t, fiber.StatusNoContent, status)
	status, _ = env.do(t, http.MethodDelete, "/api/forms/"+view["id"].(string), nil)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestRouter_FormularioPublicoSinSesion(t *testing.T) {
	env := newEnv(t, 0, "")

	status, _ := env.do(t, http.MethodPost, "/api/forms", map[string]any{"kind": "user.register"})
	assert.Equal(t, fiber.StatusCreated, status)

	status, body := env.do(t, http.MethodPost, "/api/forms", map[string]any{"kind": "category.create"})
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "NO_SESSION", body["code"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Entidades y tableros
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_UsuariosSoloAdministrador(t *testing.T) {
	admin := newEnv(t, 1, entity.RoleAdministrador)
	status, _ := admin.do(t, http.MethodPatch, "/api/users/8/status", nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.False(t, admin.users.list[1].Status)

	status, body := admin.do(t, http.MethodPatch, "/api/users/abc/status", nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "INVALID_ID", body["code"])

	worker := newEnv(t, 8, entity.RoleTrabajador)
	status, body = worker.do(t, http.MethodGet, "/api/users", nil)
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", body["code"])
}

func TestRouter_AlmacenDelTrabajador(t *testing.T) {
	env := newEnv(t, 8, entity.RoleTrabajador)

	status, body := env.do(t, http.MethodGet, "/api/storages/mine", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "A-001", body["identifier"])

	other := newEnv(t, 1, entity.RoleTrabajador)
	status, body = other.do(t, http.MethodGet, "/api/storages/mine", nil)
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", body["code"])
}

func TestRouter_EliminarArticulo(t *testing.T) {
	env := newEnv(t, 1, entity.RoleAdministrador)

	status, _ := env.do(t, http.MethodDelete, "/api/articles/5", nil)
	assert.Equal(t, fiber.StatusNoContent, status)
	assert.Empty(t, env.articles.list)

	status, _ = env.do(t, http.MethodDelete, "/api/articles/5", nil)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestRouter_Tableros(t *testing.T) {
	admin := newEnv(t, 1, entity.RoleAdministrador)
	status, body := admin.do(t, http.MethodGet, "/api/dashboard", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.NotEmpty(t, body)

	status, _ = admin.do(t, http.MethodGet, "/api/dashboard/worker", nil)
	assert.Equal(t, fiber.StatusForbidden, status)

	worker := newEnv(t, 8, entity.RoleTrabajador)
	status, _ = worker.do(t, http.MethodGet, "/api/dashboard/worker", nil)
	assert.Equal(t, fiber.StatusOK, status)
}
