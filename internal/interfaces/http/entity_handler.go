package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/sinv-console/internal/application/usecase"
)

// EntityHandler listados y acciones directas (estado, borrado) sobre las entidades del backend.
type EntityHandler struct {
	users    *usecase.UserUseCase
	storages *usecase.StorageUseCase
	catalog  *usecase.CatalogUseCase
}

// NewEntityHandler construye el handler.
func NewEntityHandler(users *usecase.UserUseCase, storages *usecase.StorageUseCase, catalog *usecase.CatalogUseCase) *EntityHandler {
	return &EntityHandler{users: users, storages: storages, catalog: catalog}
}

// ListUsers godoc
// @Summary      Listar usuarios
// @Tags         users
// @Produce      json
// @Success      200  {array}  dto.UserResponse
// @Router       /api/users [get]
func (h *EntityHandler) ListUsers(c *fiber.Ctx) error {
	out, err := h.users.List(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ToggleUser godoc
// @Summary      Activar o desactivar usuario
// @Tags         users
// @Produce      json
// @Param        id   path  int  true  "ID del usuario"
// @Success      200  {object}  dto.UserResponse
// @Router       /api/users/{id}/status [patch]
func (h *EntityHandler) ToggleUser(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return badID(c)
	}
	out, err := h.users.ToggleStatus(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListStorages godoc
// @Summary      Listar almacenes
// @Tags         storages
// @Produce      json
// @Success      200  {array}  dto.StorageResponse
// @Router       /api/storages [get]
func (h *EntityHandler) ListStorages(c *fiber.Ctx) error {
	out, err := h.storages.List(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// MyStorage godoc
// @Summary      Almacén del trabajador autenticado, con artículos
// @Tags         storages
// @Produce      json
// @Success      200  {object}  dto.StorageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/storages/mine [get]
func (h *EntityHandler) MyStorage(c *fiber.Ctx) error {
	out, err := h.storages.Mine(c.UserContext(), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ToggleStorage godoc
// @Summary      Activar o desactivar almacén
// @Tags         storages
// @Produce      json
// @Param        id   path  int  true  "ID del almacén"
// @Success      200  {object}  dto.StorageResponse
// @Router       /api/storages/{id}/status [patch]
func (h *EntityHandler) ToggleStorage(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return badID(c)
	}
	out, err := h.storages.ToggleStatus(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Responsibles godoc
// @Summary      Candidatos a responsable de un almacén
// @Description  id=0 lista los candidatos para un almacén nuevo.
// @Tags         storages
// @Produce      json
// @Param        id   path  int  true  "ID del almacén (0 para alta)"
// @Success      200  {array}  dto.UserResponse
// @Router       /api/storages/{id}/responsibles [get]
func (h *EntityHandler) Responsibles(c *fiber.Ctx) error {
	var current *int64
	if id, ok := paramID(c); ok {
		current = &id
	} else if c.Params("id") != "0" {
		return badID(c)
	}
	out, err := h.storages.Responsibles(c.UserContext(), current)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListCategories godoc
// @Summary      Listar categorías
// @Tags         categories
// @Produce      json
// @Success      200  {array}  dto.CategoryResponse
// @Router       /api/categories [get]
func (h *EntityHandler) ListCategories(c *fiber.Ctx) error {
	out, err := h.catalog.Categories(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CategoryStorages godoc
// @Summary      Almacenes activos de una categoría
// @Tags         categories
// @Produce      json
// @Param        id   path  int  true  "ID de la categoría"
// @Success      200  {array}  dto.StorageResponse
// @Router       /api/categories/{id}/storages [get]
func (h *EntityHandler) CategoryStorages(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return badID(c)
	}
	out, err := h.catalog.StoragesForCategory(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListArticles godoc
// @Summary      Listar artículos
// @Tags         articles
// @Produce      json
// @Success      200  {array}  dto.ArticleResponse
// @Router       /api/articles [get]
func (h *EntityHandler) ListArticles(c *fiber.Ctx) error {
	out, err := h.catalog.Articles(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteArticle godoc
// @Summary      Eliminar artículo
// @Tags         articles
// @Param        id   path  int  true  "ID del artículo"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/articles/{id} [delete]
func (h *EntityHandler) DeleteArticle(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return badID(c)
	}
	if err := h.catalog.DeleteArticle(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
