package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jhoicas/sinv-console/internal/application/dto"
	"github.com/jhoicas/sinv-console/internal/application/ports"
)

var _ ports.AuthGateway = (*AuthService)(nil)

// AuthService endpoint de /auth.
type AuthService struct {
	c *Client
}

// SignIn intercambia credenciales por el token del backend.
func (s *AuthService) SignIn(ctx context.Context, in dto.SignInPayload) (*dto.SignInResult, error) {
	var res dto.SignInResult
	if err := s.c.call(ctx, http.MethodPost, "/auth/signin", in, &res); err != nil {
		return nil, err
	}
	if res.Token == "" {
		return nil, fmt.Errorf("gateway: signin sin token en la respuesta")
	}
	return &res, nil
}
