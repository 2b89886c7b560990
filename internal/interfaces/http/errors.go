package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/sinv-console/internal/application/dto"
	"github.com/jhoicas/sinv-console/internal/application/form"
	"github.com/jhoicas/sinv-console/internal/domain"
)

var errorStatus = []struct {
	target error
	status int
	code   string
}{
	{domain.ErrNoSession, fiber.StatusUnauthorized, "NO_SESSION"},
	{domain.ErrSessionExpired, fiber.StatusUnauthorized, "SESSION_EXPIRED"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrRoleNotAllowed, fiber.StatusForbidden, "FORBIDDEN"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
	{domain.ErrFormNotFound, fiber.StatusNotFound, "FORM_NOT_FOUND"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrUnknownForm, fiber.StatusBadRequest, "UNKNOWN_FORM"},
	{domain.ErrUnknownField, fiber.StatusBadRequest, "UNKNOWN_FIELD"},
	{domain.ErrLockedField, fiber.StatusBadRequest, "LOCKED_FIELD"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrSubmitInFlight, fiber.StatusConflict, "SUBMIT_IN_FLIGHT"},
	{domain.ErrFormClosed, fiber.StatusConflict, "FORM_CLOSED"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
	{domain.ErrBackendUnavailable, fiber.StatusBadGateway, "BACKEND_UNAVAILABLE"},
	{domain.ErrRejected, fiber.StatusUnprocessableEntity, "BACKEND_REJECTED"},
}

// writeError traduce errores de dominio y del backend a dto.ErrorResponse.
func writeError(c *fiber.Ctx, err error) error {
	status, code := fiber.StatusInternalServerError, "INTERNAL"
	for _, e := range errorStatus {
		if errors.Is(err, e.target) {
			status, code = e.status, e.code
			break
		}
	}
	msg := err.Error()
	var um form.UserMessager
	if errors.As(err, &um) && um.UserMessage() != "" {
		msg = um.UserMessage()
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

func badID(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id debe ser un entero positivo"})
}

// paramID lee :id como entero positivo.
func paramID(c *fiber.Ctx) (int64, bool) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, false
	}
	return int64(id), true
}
