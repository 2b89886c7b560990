package dto

import "github.com/jhoicas/sinv-console/internal/domain/entity"

// CategoryWire categoría tal como la serializa GET /categories/.
type CategoryWire struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Status *bool  `json:"status"`
}

// ToEntity convierte al modelo de dominio.
func (w CategoryWire) ToEntity() entity.Category {
	return entity.Category{ID: w.ID, Name: w.Name, Status: boolOr(w.Status, true)}
}

// CategoryPayload cuerpo de POST /categories/.
type CategoryPayload struct {
	Name   string `json:"name" validate:"sinv_category"`
	Status *bool  `json:"status,omitempty"`
}

// CategoryResponse salida de una categoría en la API de la consola.
type CategoryResponse struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Status bool   `json:"status"`
}

// NewCategoryResponse construye la salida desde el dominio.
func NewCategoryResponse(c entity.Category) CategoryResponse {
	return CategoryResponse{ID: c.ID, Name: c.Name, Status: c.Status}
}
