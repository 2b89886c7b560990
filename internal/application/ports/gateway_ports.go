package ports

import (
	"context"

	"github.com/jhoicas/sinv-console/internal/application/dto"
	"github.com/jhoicas/sinv-console/internal/domain/entity"
)

// UserGateway define el puerto de salida hacia /users del backend SINV.
// La implementación concreta vive en infrastructure/gateway; los casos de uso solo conocen este contrato.
type UserGateway interface {
	List(ctx context.Context) ([]entity.User, error)
	Get(ctx context.Context, id int64) (*entity.User, error)
	Create(ctx context.Context, in dto.UserPayload) (*entity.User, error)
	Update(ctx context.Context, id int64, in dto.UserPayload) (*entity.User, error)
	ToggleStatus(ctx context.Context, id int64) (*entity.User, error)
	// VerifyPassword comprueba la contraseña actual antes de un cambio.
	VerifyPassword(ctx context.Context, userID int64, password string) (bool, error)
	RequestPasswordReset(ctx context.Context, email string) (*dto.PasswordResetTicket, error)
	ResetPassword(ctx context.Context, in dto.ResetPasswordPayload) error
}

// StorageGateway puerto hacia /storage.
type StorageGateway interface {
	List(ctx context.Context) ([]entity.Storage, error)
	// ByResponsible devuelve el almacén custodiado por userID (domain.ErrNotFound si no tiene).
	ByResponsible(ctx context.Context, userID int64) (*entity.Storage, error)
	Create(ctx context.Context, in dto.StoragePayload) (*entity.Storage, error)
	Update(ctx context.Context, id int64, in dto.StoragePayload) (*entity.Storage, error)
	ToggleStatus(ctx context.Context, id int64) (*entity.Storage, error)
}

// CategoryGateway puerto hacia /categories.
type CategoryGateway interface {
	List(ctx context.Context) ([]entity.Category, error)
	Create(ctx context.Context, in dto.CategoryPayload) (*entity.Category, error)
}

// ArticleGateway puerto hacia /articles.
type ArticleGateway interface {
	List(ctx context.Context) ([]entity.Article, error)
	Create(ctx context.Context, in dto.ArticlePayload) (*entity.Article, error)
	Update(ctx context.Context, id int64, in dto.ArticlePayload) (*entity.Article, error)
	Delete(ctx context.Context, id int64) error
}

// AuthGateway puerto hacia /auth.
type AuthGateway interface {
	SignIn(ctx context.Context, in dto.SignInPayload) (*dto.SignInResult, error)
}

// TokenSource entrega el token bearer vigente (vacío si no hay sesión).
type TokenSource interface {
	Token() string
}
