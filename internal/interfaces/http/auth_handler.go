package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/sinv-console/internal/application/auth"
)

// AuthHandler sesión del operador. El inicio de sesión es el formulario "signin".
type AuthHandler struct {
	session *auth.Session
}

// NewAuthHandler construye el handler.
func NewAuthHandler(session *auth.Session) *AuthHandler {
	return &AuthHandler{session: session}
}

// Me godoc
// @Summary      Usuario autenticado, inicio y menú según rol
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.MeResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	p, ok := GetPrincipal(c)
	if !ok {
		var err error
		if p, err = h.session.Current(); err != nil {
			return writeError(c, err)
		}
	}
	return c.JSON(auth.Me(p))
}

// SignOut godoc
// @Summary      Cerrar sesión
// @Description  Descarta los formularios abiertos y borra las credenciales guardadas. Idempotente.
// @Tags         auth
// @Success      204
// @Router       /api/auth/signout [post]
func (h *AuthHandler) SignOut(c *fiber.Ctx) error {
	if err := h.session.SignOut(); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
