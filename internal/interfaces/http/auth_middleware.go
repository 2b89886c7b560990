package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/sinv-console/internal/application/auth"
	"github.com/jhoicas/sinv-console/internal/application/dto"
	"github.com/jhoicas/sinv-console/internal/domain"
	"github.com/jhoicas/sinv-console/internal/domain/entity"
)

// Locals keys para el usuario autenticado en Fiber.
const (
	LocalUserID    = "user_id"
	LocalRole      = "role"
	LocalPrincipal = "principal"
)

// principalSource lo implementa *auth.Session.
type principalSource interface {
	Current() (auth.Principal, error)
}

// SessionMiddleware exige una sesión vigente y carga UserID y Role en c.Locals.
func SessionMiddleware(session principalSource) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := session.Current()
		switch {
		case errors.Is(err, domain.ErrSessionExpired):
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "SESSION_EXPIRED", Message: "la sesión expiró, inicia sesión de nuevo"})
		case err != nil:
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "NO_SESSION", Message: "inicia sesión para continuar"})
		}
		c.Locals(LocalUserID, p.UserID)
		c.Locals(LocalRole, string(p.Role))
		c.Locals(LocalPrincipal, p)
		return c.Next()
	}
}

// RequireRole autoriza solo a los roles indicados. Debe usarse DESPUÉS de SessionMiddleware.
func RequireRole(roles ...entity.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "la sesión no tiene rol"})
		}
		for _, r := range roles {
			if r == role {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "No tienes permisos para acceder a esta sección."})
	}
}

// GetUserID devuelve el UserID del contexto (después de SessionMiddleware).
func GetUserID(c *fiber.Ctx) int64 {
	id, _ := c.Locals(LocalUserID).(int64)
	return id
}

// GetRole devuelve el rol del contexto (después de SessionMiddleware).
func GetRole(c *fiber.Ctx) entity.Role {
	s, _ := c.Locals(LocalRole).(string)
	return entity.Role(s)
}

// GetPrincipal devuelve el usuario autenticado del contexto.
func GetPrincipal(c *fiber.Ctx) (auth.Principal, bool) {
	p, ok := c.Locals(LocalPrincipal).(auth.Principal)
	return p, ok
}
