package usecase_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jhoicas/sinv-console/internal/application/auth"
	"github.com/jhoicas/sinv-console/internal/application/dto"
	"github.com/jhoicas/sinv-console/internal/application/form"
	"github.com/jhoicas/sinv-console/internal/application/usecase"
	"github.com/jhoicas/sinv-console/internal/domain"
	"github.com/jhoicas/sinv-console/internal/domain/entity"
	"github.com/jhoicas/sinv-console/pkg/jwt"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────────────────────────────────────
// Backend falso en memoria
// ─────────────────────────────────────────────────────────────────────────────

type fakeBackend struct {
	mu         sync.Mutex
	users      []entity.User
	storages   []entity.Storage
	categories []entity.Category
	articles   []entity.Article

	passwordOK bool
	listErr    error
	listCalls  map[string]int

	createdUsers    []dto.UserPayload
	updatedUsers    []dto.UserPayload
	storagePayloads []dto.StoragePayload
	articlePayloads []dto.ArticlePayload
	resets          []dto.ResetPasswordPayload
}

func newBackend() *fakeBackend {
	return &fakeBackend{listCalls: map[string]int{}, passwordOK: true}
}

func (b *fakeBackend) count(name string) {
	b.mu.Lock()
	b.listCalls[name]++
	b.mu.Unlock()
}

type fakeUsers struct{ b *fakeBackend }

func (f fakeUsers) List(_ context.Context) ([]entity.User, error) {
	f.b.count("users")
	return f.b.users, f.b.listErr
}

func (f fakeUsers) Get(_ context.Context, id int64) (*entity.User, error) {
	for _, u := range f.b.users {
		if u.ID == id {
			u := u
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f fakeUsers) Create(_ context.Context, in dto.UserPayload) (*entity.User, error) {
	f.b.createdUsers = append(f.b.createdUsers, in)
	return &entity.User{ID: 99, Username: in.Username, FullName: in.FullName, Email: in.Email, Role: entity.RoleTrabajador, Status: true}, nil
}

func (f fakeUsers) Update(_ context.Context, id int64, in dto.UserPayload) (*entity.User, error) {
	f.b.updatedUsers = append(f.b.updatedUsers, in)
	return &entity.User{ID: id, Username: in.Username, FullName: in.FullName, Email: in.Email, Status: true}, nil
}

func (f fakeUsers) ToggleStatus(_ context.Context, id int64) (*entity.User, error) {
	u, err := f.Get(context.Background(), id)
	if err != nil {
		return nil, err
	}
	u.Status = !u.Status
	return u, nil
}

func (f fakeUsers) VerifyPassword(_ context.Context, _ int64, _ string) (bool, error) {
	return f.b.passwordOK, nil
}

func (f fakeUsers) RequestPasswordReset(_ context.Context, email string) (*dto.PasswordResetTicket, error) {
	return &dto.PasswordResetTicket{Message: "Correo enviado a " + email, UserID: 4}, nil
}

func (f fakeUsers) ResetPassword(_ context.Context, in dto.ResetPasswordPayload) error {
	f.b.resets = append(f.b.resets, in)
	return nil
}

type fakeStorages struct{ b *fakeBackend }

func (f fakeStorages) List(_ context.Context) ([]entity.Storage, error) {
	f.b.count("storages")
	return f.b.storages, f.b.listErr
}

func (f fakeStorages) ByResponsible(_ context.Context, userID int64) (*entity.Storage, error) {
	for _, s := range f.b.storages {
		if s.ResponsibleIs(userID) {
			s := s
			return &s, nil
		}
	}
	return nil, fmt.Errorf("almacén del usuario %d: %w", userID, domain.ErrNotFound)
}

func (f fakeStorages) Create(_ context.Context, in dto.StoragePayload) (*entity.Storage, error) {
	f.b.storagePayloads = append(f.b.storagePayloads, in)
	return &entity.Storage{ID: 50, Identifier: in.Identifier, CategoryID: in.CategoryID, ResponsibleID: in.ResponsibleID, Status: true}, nil
}

func (f fakeStorages) Update(_ context.Context, id int64, in dto.StoragePayload) (*entity.Storage, error) {
	f.b.storagePayloads = append(f.b.storagePayloads, in)
	return &entity.Storage{ID: id, Identifier: in.Identifier, CategoryID: in.CategoryID, ResponsibleID: in.ResponsibleID, Status: true}, nil
}

func (f fakeStorages) ToggleStatus(_ context.Context, id int64) (*entity.Storage, error) {
	return &entity.Storage{ID: id}, nil
}

type fakeCategories struct{ b *fakeBackend }

func (f fakeCategories) List(_ context.Context) ([]entity.Category, error) {
	f.b.count("categories")
	return f.b.categories, f.b.listErr
}

func (f fakeCategories) Create(_ context.Context, in dto.CategoryPayload) (*entity.Category, error) {
	return &entity.Category{ID: 7, Name: in.Name, Status: true}, nil
}

type fakeArticles struct{ b *fakeBackend }

func (f fakeArticles) List(_ context.Context) ([]entity.Article, error) {
	f.b.count("articles")
	return f.b.articles, f.b.listErr
}

func (f fakeArticles) Create(_ context.Context, in dto.ArticlePayload) (*entity.Article, error) {
	f.b.articlePayloads = append(f.b.articlePayloads, in)
	return &entity.Article{ID: 300, Name: in.Name, CategoryID: in.CategoryID, StorageIDs: in.StorageIDs, Status: true}, nil
}

func (f fakeArticles) Update(_ context.Context, id int64, in dto.ArticlePayload) (*entity.Article, error) {
	f.b.articlePayloads = append(f.b.articlePayloads, in)
	return &entity.Article{ID: id, Name: in.Name, CategoryID: in.CategoryID, StorageIDs: in.StorageIDs, Status: true}, nil
}

func (f fakeArticles) Delete(_ context.Context, _ int64) error { return nil }

func (b *fakeBackend) gateways() usecase.Gateways {
	return usecase.Gateways{
		Users:      fakeUsers{b},
		Storages:   fakeStorages{b},
		Categories: fakeCategories{b},
		Articles:   fakeArticles{b},
	}
}

type fakeAuth struct {
	res *dto.SignInResult
}

func (f *fakeAuth) SignIn(_ context.Context, _ dto.SignInPayload) (*dto.SignInResult, error) {
	return f.res, nil
}

func signInAs(t *testing.T, userID int64, role entity.Role) *dto.SignInResult {
	t.Helper()
	tok, err := jwt.Generate("test", fmt.Sprint(userID), string(role), time.Hour)
	require.NoError(t, err)
	return &dto.SignInResult{
		Token: tok,
		User:  dto.UserWire{ID: userID, Email: "yo@x.com", FullName: "Yo"},
		Roles: dto.RoleWire{Name: string(role)},
	}
}

// harness arma el caso de uso de formularios; role vacío deja la sesión cerrada.
type harness struct {
	b       *fakeBackend
	forms   *usecase.FormUseCase
	session *auth.Session
	reg     *form.Registry
	auth    *fakeAuth
}

func newHarness(t *testing.T, userID int64, role entity.Role) *harness {
	t.Helper()
	b := newBackend()
	gw := b.gateways()
	fa := &fakeAuth{}
	session := auth.NewSession(fa, nil, nil)
	if role != "" {
		fa.res = signInAs(t, userID, role)
		_, err := session.SignIn(context.Background(), "yo@x.com", "Abcdef1!")
		require.NoError(t, err)
	}
	reg := form.NewRegistry(time.Hour, nil)
	snaps := usecase.NewSnapshotLoader(gw.Users, gw.Storages, gw.Categories, gw.Articles)
	return &harness{
		b:       b,
		forms:   usecase.NewFormUseCase(gw, snaps, session, reg, nil),
		session: session,
		reg:     reg,
		auth:    fa,
	}
}

func (h *harness) fill(t *testing.T, id string, values map[string]string) {
	t.Helper()
	for field, value := range values {
		_, err := h.forms.Change(id, field, value)
		require.NoError(t, err, field)
	}
}
