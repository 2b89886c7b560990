package usecase

import (
	"context"

	"github.com/jhoicas/sinv-console/internal/application/dto"
	"github.com/jhoicas/sinv-console/internal/application/ports"
)

// UserUseCase listados y cambios de estado de usuarios.
type UserUseCase struct {
	users ports.UserGateway
}

// NewUserUseCase construye el caso de uso con el puerto del backend.
func NewUserUseCase(users ports.UserGateway) *UserUseCase {
	return &UserUseCase{users: users}
}

// List devuelve todos los usuarios.
func (uc *UserUseCase) List(ctx context.Context) ([]dto.UserResponse, error) {
	list, err := uc.users.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, dto.NewUserResponse(u))
	}
	return out, nil
}

// ToggleStatus activa o desactiva un usuario.
func (uc *UserUseCase) ToggleStatus(ctx context.Context, id int64) (*dto.UserResponse, error) {
	u, err := uc.users.ToggleStatus(ctx, id)
	if err != nil {
		return nil, err
	}
	out := dto.NewUserResponse(*u)
	return &out, nil
}
