package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jhoicas/sinv-console/internal/application/dto"
	"github.com/jhoicas/sinv-console/internal/application/ports"
	"github.com/jhoicas/sinv-console/internal/domain/entity"
)

var _ ports.UserGateway = (*UserService)(nil)

// UserService endpoints de /users.
type UserService struct {
	c *Client
}

func (s *UserService) List(ctx context.Context) ([]entity.User, error) {
	var wire []dto.UserWire
	if err := s.c.call(ctx, http.MethodGet, "/users/", nil, &wire); err != nil {
		return nil, err
	}
	out := make([]entity.User, 0, len(wire))
	for _, w := range wire {
		out = append(out, w.ToEntity())
	}
	return out, nil
}

func (s *UserService) Get(ctx context.Context, id int64) (*entity.User, error) {
	return s.one(ctx, http.MethodGet, fmt.Sprintf("/users/%d", id), nil)
}

func (s *UserService) Create(ctx context.Context, in dto.UserPayload) (*entity.User, error) {
	return s.one(ctx, http.MethodPost, "/users/", in)
}

func (s *UserService) Update(ctx context.Context, id int64, in dto.UserPayload) (*entity.User, error) {
	in.ID = id
	return s.one(ctx, http.MethodPut, fmt.Sprintf("/users/%d", id), in)
}

func (s *UserService) ToggleStatus(ctx context.Context, id int64) (*entity.User, error) {
	return s.one(ctx, http.MethodPatch, fmt.Sprintf("/users/%d/status", id), nil)
}

func (s *UserService) VerifyPassword(ctx context.Context, userID int64, password string) (bool, error) {
	var res dto.VerifyPasswordResult
	err := s.c.callRaw(ctx, http.MethodPost, "/users/verify-password",
		dto.VerifyPasswordPayload{UserID: userID, Password: password}, &res)
	if err != nil {
		return false, err
	}
	return res.Valid, nil
}

func (s *UserService) RequestPasswordReset(ctx context.Context, email string) (*dto.PasswordResetTicket, error) {
	var res dto.PasswordResetTicket
	if err := s.c.callRaw(ctx, http.MethodPost, "/users/request-password-reset", dto.PasswordResetRequest{Email: email}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (s *UserService) ResetPassword(ctx context.Context, in dto.ResetPasswordPayload) error {
	var res dto.ResetPasswordResult
	if err := s.c.callRaw(ctx, http.MethodPost, "/users/reset-password", in, &res); err != nil {
		return err
	}
	if res.Valid != "true" {
		return &APIError{StatusCode: http.StatusBadRequest, Message: "El enlace de restablecimiento no es válido o expiró"}
	}
	return nil
}

func (s *UserService) one(ctx context.Context, method, path string, payload any) (*entity.User, error) {
	var w dto.UserWire
	if err := s.c.call(ctx, method, path, payload, &w); err != nil {
		return nil, err
	}
	u := w.ToEntity()
	return &u, nil
}
