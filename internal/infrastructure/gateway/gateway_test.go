package gateway_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jhoicas/sinv-console/internal/application/dto"
	"github.com/jhoicas/sinv-console/internal/domain"
	"github.com/jhoicas/sinv-console/internal/domain/entity"
	"github.com/jhoicas/sinv-console/internal/infrastructure/gateway"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func newClient(t *testing.T, h http.HandlerFunc) (*gateway.Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c := gateway.NewClient(gateway.Config{BaseURL: srv.URL + "/api/", Timeout: 2 * time.Second}, staticToken("tok-123"), nil, nil)
	return c, srv
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

// ─────────────────────────────────────────────────────────────────────────────
// Sobre y errores
// ─────────────────────────────────────────────────────────────────────────────

func TestUsersList_DecodificaSobreYEnviaBearer(t *testing.T) {
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/users/", r.URL.Path)
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		writeJSON(w, 200, `{"status":"OK","error":false,"data":[
			{"id":1,"username":"ana.lopez","fullName":"Ana López","email":"a@x.com","password":"$2a$hash","status":true,"role":{"id":2,"name":"TRABAJADOR"}},
			{"id":2,"username":"root","fullName":"Admin","email":"root@x.com","status":false,"role":{"id":1,"name":"ADMINISTRADOR"}}
		]}`)
	})

	users, err := c.Users().List(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, entity.RoleTrabajador, users[0].Role)
	assert.True(t, users[0].Status)
	assert.Equal(t, "Ana López", users[0].FullName)
	assert.False(t, users[1].Status)
}

func TestCall_RechazoDelServidorTraeMensaje(t *testing.T) {
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 400, `{"status":"BAD_REQUEST","error":true,"message":"Storage identifier already exists"}`)
	})

	_, err := c.Storages().Create(context.Background(), dto.StoragePayload{Identifier: "A-001", CategoryID: 1})
	require.Error(t, err)

	var apiErr *gateway.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 400, apiErr.StatusCode)
	assert.Equal(t, "BAD_REQUEST", apiErr.Status)
	assert.Equal(t, "Storage identifier already exists", apiErr.UserMessage())
	assert.False(t, gateway.IsNetwork(err))
	assert.ErrorIs(t, err, domain.ErrRejected)
}

func TestCall_ErrorEnSobreCon200EsRechazo(t *testing.T) {
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 200, `{"status":"BAD_REQUEST","error":true,"message":"Credenciales incorrectas"}`)
	})

	_, err := c.Auth().SignIn(context.Background(), dto.SignInPayload{Email: "a@x.com", Password: "x"})
	var apiErr *gateway.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Credenciales incorrectas", apiErr.Message)
}

func TestCall_404EsNotFound(t *testing.T) {
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/storage/responsible/9", r.URL.Path)
		writeJSON(w, 404, `{"status":"NOT_FOUND","error":true,"message":"No storage assigned to this user"}`)
	})

	_, err := c.Storages().ByResponsible(context.Background(), 9)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCall_FalloDeRedEsDistinto(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := gateway.NewClient(gateway.Config{BaseURL: url, Timeout: time.Second}, nil, nil, nil)
	_, err := c.Categories().List(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, gateway.ErrNetwork)
	assert.ErrorIs(t, err, domain.ErrBackendUnavailable)
	assert.NotErrorIs(t, err, domain.ErrRejected)
	assert.True(t, gateway.IsNetwork(err))

	var ne *gateway.NetworkError
	require.ErrorAs(t, err, &ne)
	assert.Equal(t, gateway.MsgConnection, ne.UserMessage())
}

func TestCall_PayloadInvalidoNoSaleALaRed(t *testing.T) {
	hits := 0
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) { hits++ })

	_, err := c.Users().Create(context.Background(), dto.UserPayload{
		Username: "ana",
		FullName: "Ana",
		Email:    "no-es-correo",
		RoleID:   2,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, gateway.ErrInvalidPayload)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	var pe *gateway.PayloadError
	require.ErrorAs(t, err, &pe)
	fields := pe.FieldErrors()
	assert.Contains(t, fields, "username")
	assert.Contains(t, fields, "email")
	assert.Equal(t, 0, hits)
}

// ─────────────────────────────────────────────────────────────────────────────
// Endpoints
// ─────────────────────────────────────────────────────────────────────────────

func TestArticles_CrearEnviaCuerpoYDecodifica(t *testing.T) {
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/articles/", r.URL.Path)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Taladro", body["name"])
		assert.Equal(t, float64(5), body["categoryId"])
		assert.Equal(t, []any{float64(1), float64(3)}, body["storageIds"])
		writeJSON(w, 200, `{"status":"OK","data":{"id":10,"name":"Taladro","description":"","status":true,"categoryId":5,"storageIds":[1,3]}}`)
	})

	a, err := c.Articles().Create(context.Background(), dto.ArticlePayload{Name: "Taladro", CategoryID: 5, StorageIDs: []int64{1, 3}})
	require.NoError(t, err)
	assert.Equal(t, int64(10), a.ID)
	assert.Equal(t, int64(5), a.CategoryID)
	assert.Equal(t, []int64{1, 3}, a.StorageIDs)
}

func TestArticles_ListaConCategoriaEmbebida(t *testing.T) {
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 200, `{"status":"OK","data":[{"id":1,"name":"Martillo","description":"d","status":true,
			"category":{"id":7,"name":"Herramientas"},"storages":[{"id":2,"identifier":"A-002"}]}]}`)
	})

	list, err := c.Articles().List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, int64(7), list[0].CategoryID)
	assert.Equal(t, "Herramientas", list[0].CategoryName)
	assert.Equal(t, []int64{2}, list[0].StorageIDs)
}

func TestArticles_Delete(t *testing.T) {
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/articles/4", r.URL.Path)
		writeJSON(w, 200, `{"status":"OK"}`)
	})
	assert.NoError(t, c.Articles().Delete(context.Background(), 4))
}

func TestStorages_ListaConResponsableYArticulos(t *testing.T) {
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 200, `{"status":"OK","data":[{"id":1,"identifier":"A-001","status":true,
			"category":{"id":5,"name":"Eléctricos"},
			"responsible":{"id":9,"fullName":"Beto","email":"b@x.com","status":true},
			"articles":[{"id":3,"name":"Cable","description":"","status":true}]},
			{"id":2,"identifier":"A-002","status":false,"category":{"id":7,"name":"Otros"},"responsible":null,"articles":[]}]}`)
	})

	list, err := c.Storages().List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.True(t, list[0].ResponsibleIs(9))
	assert.Equal(t, "Beto", list[0].ResponsibleName)
	require.Len(t, list[0].Articles, 1)
	assert.Equal(t, int64(5), list[0].Articles[0].CategoryID, "hereda la categoría del almacén")
	assert.False(t, list[1].HasResponsible())
}

func TestStorages_ToggleStatus(t *testing.T) {
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/api/storage/3/status", r.URL.Path)
		writeJSON(w, 200, `{"status":"OK","data":{"id":3,"identifier":"B-1","status":false,"category":{"id":1,"name":"x"}}}`)
	})
	s, err := c.Storages().ToggleStatus(context.Background(), 3)
	require.NoError(t, err)
	assert.False(t, s.Status)
}

func TestUsers_VerifyPasswordSinSobre(t *testing.T) {
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, float64(4), body["userId"])
		writeJSON(w, 200, `{"valid":false}`)
	})

	ok, err := c.Users().VerifyPassword(context.Background(), 4, "Vieja1!x")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUsers_RequestPasswordReset404(t *testing.T) {
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 404, `{"error":"Usuario no encontrado"}`)
	})

	_, err := c.Users().RequestPasswordReset(context.Background(), "nadie@x.com")
	var apiErr *gateway.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Usuario no encontrado", apiErr.Message)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUsers_ResetPasswordTokenInvalido(t *testing.T) {
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 200, `{"valid":"false"}`)
	})

	err := c.Users().ResetPassword(context.Background(), dto.ResetPasswordPayload{Token: "t", NewPassword: "Abcdef1!"})
	var apiErr *gateway.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.NotEmpty(t, apiErr.Message)
}

func TestAuth_SignIn(t *testing.T) {
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/signin", r.URL.Path)
		writeJSON(w, 200, `{"status":"OK","data":{"token":"jwt","tokenType":"Bearer",
			"user":{"id":1,"fullName":"Admin","email":"root@x.com","status":true},"roles":{"id":1,"name":"ADMINISTRADOR"}}}`)
	})

	res, err := c.Auth().SignIn(context.Background(), dto.SignInPayload{Email: "root@x.com", Password: "Abcdef1!"})
	require.NoError(t, err)
	assert.Equal(t, "jwt", res.Token)
	assert.Equal(t, "ADMINISTRADOR", res.Roles.Name)
}
