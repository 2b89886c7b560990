package http

import (
	"github.com/gofiber/fiber/v2"
	appanalytics "github.com/jhoicas/sinv-console/internal/application/analytics"
)

// DashboardHandler maneja los endpoints de los tableros.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Admin devuelve el tablero del administrador.
// GET /api/dashboard
//
// Respuesta: AdminDashboardDTO (totales, artículos y almacenes por categoría, usuarios por
// rol, almacenes vacíos y asignados, 5 artículos más recientes).
func (h *DashboardHandler) Admin(c *fiber.Ctx) error {
	out, err := h.uc.Admin(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Worker devuelve el tablero del trabajador.
// GET /api/dashboard/worker
func (h *DashboardHandler) Worker(c *fiber.Ctx) error {
	out, err := h.uc.Worker(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
