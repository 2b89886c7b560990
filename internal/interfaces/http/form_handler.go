package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/sinv-console/internal/application/dto"
	"github.com/jhoicas/sinv-console/internal/application/usecase"
	"github.com/jhoicas/sinv-console/internal/domain/rules"
)

// FormHandler expone las sesiones de formulario.
type FormHandler struct {
	uc     *usecase.FormUseCase
	engine *rules.Engine
}

// NewFormHandler construye el handler.
func NewFormHandler(uc *usecase.FormUseCase, engine *rules.Engine) *FormHandler {
	if engine == nil {
		engine = rules.NewEngine()
	}
	return &FormHandler{uc: uc, engine: engine}
}

// Open godoc
// @Summary      Abrir formulario
// @Tags         forms
// @Accept       json
// @Produce      json
// @Param        body  body  dto.OpenFormRequest  true  "Tipo de formulario y entidad a editar"
// @Success      201   {object}  form.View
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/forms [post]
func (h *FormHandler) Open(c *fiber.Ctx) error {
	var in dto.OpenFormRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.check(c, in); err != nil {
		return err
	}
	v, err := h.uc.Open(c.UserContext(), in.Kind, in.EntityID)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(v)
}

// Get godoc
// @Summary      Ver formulario
// @Tags         forms
// @Produce      json
// @Param        id   path  string  true  "ID del formulario"
// @Success      200  {object}  form.View
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/forms/{id} [get]
func (h *FormHandler) Get(c *fiber.Ctx) error {
	v, err := h.uc.Get(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(v)
}

// Change godoc
// @Summary      Cambiar un campo
// @Tags         forms
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del formulario"
// @Param        body  body  dto.ChangeFieldRequest  true  "Campo y valor"
// @Success      200   {object}  form.View
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/forms/{id} [patch]
func (h *FormHandler) Change(c *fiber.Ctx) error {
	var in dto.ChangeFieldRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.check(c, in); err != nil {
		return err
	}
	v, err := h.uc.Change(c.Params("id"), in.Field, in.Text())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(v)
}

// Blur godoc
// @Summary      Marcar campo como tocado
// @Tags         forms
// @Accept       json
// @Produce      json
// @Param        id    path  string           true  "ID del formulario"
// @Param        body  body  dto.BlurRequest  true  "Campo"
// @Success      200   {object}  form.View
// @Router       /api/forms/{id}/blur [post]
func (h *FormHandler) Blur(c *fiber.Ctx) error {
	var in dto.BlurRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.check(c, in); err != nil {
		return err
	}
	v, err := h.uc.Blur(c.Params("id"), in.Field)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(v)
}

// Submit godoc
// @Summary      Enviar formulario
// @Description  200 con status accepted, invalid o rejected; el borrador se conserva salvo en accepted.
// @Tags         forms
// @Produce      json
// @Param        id   path  string  true  "ID del formulario"
// @Success      200  {object}  form.Outcome
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/forms/{id}/submit [post]
func (h *FormHandler) Submit(c *fiber.Ctx) error {
	out, err := h.uc.Submit(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Cancel godoc
// @Summary      Cancelar y descartar formulario
// @Tags         forms
// @Param        id   path  string  true  "ID del formulario"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/forms/{id} [delete]
func (h *FormHandler) Cancel(c *fiber.Ctx) error {
	if err := h.uc.Cancel(c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// check valida el cuerpo con las etiquetas validate; responde 400 con el primer error.
func (h *FormHandler) check(c *fiber.Ctx, in any) error {
	errs := h.engine.Struct(in)
	if len(errs) == 0 {
		return nil
	}
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: errs[0].Field + ": " + errs[0].Reason})
}
