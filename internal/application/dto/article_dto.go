package dto

import "github.com/jhoicas/sinv-console/internal/domain/entity"

// StorageRef almacén embebido en la respuesta de artículos.
type StorageRef struct {
	ID         int64  `json:"id"`
	Identifier string `json:"identifier"`
}

// ArticleWire artículo tal como lo serializan GET /articles/ y los almacenes.
// El backend envía category+storages (ArticleResponseDto) o categoryId+storageIds (ArticlesDto).
type ArticleWire struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Status      *bool        `json:"status"`
	Category    *CategoryRef `json:"category,omitempty"`
	CategoryID  *int64       `json:"categoryId,omitempty"`
	Storages    []StorageRef `json:"storages,omitempty"`
	StorageIDs  []int64      `json:"storageIds,omitempty"`
}

// ToEntity convierte al modelo de dominio.
func (w ArticleWire) ToEntity() entity.Article {
	a := entity.Article{
		ID:          w.ID,
		Name:        w.Name,
		Description: w.Description,
		Status:      boolOr(w.Status, true),
	}
	switch {
	case w.Category != nil:
		a.CategoryID = w.Category.ID
		a.CategoryName = w.Category.Name
	case w.CategoryID != nil:
		a.CategoryID = *w.CategoryID
	}
	if len(w.Storages) > 0 {
		for _, s := range w.Storages {
			a.StorageIDs = append(a.StorageIDs, s.ID)
		}
	} else {
		a.StorageIDs = append(a.StorageIDs, w.StorageIDs...)
	}
	return a
}

// ArticlePayload cuerpo de POST /articles/ y PUT /articles/:id.
type ArticlePayload struct {
	ID          int64   `json:"id,omitempty"`
	Name        string  `json:"name" validate:"sinv_article"`
	Description string  `json:"description" validate:"max=500"`
	CategoryID  int64   `json:"categoryId" validate:"gt=0"`
	StorageIDs  []int64 `json:"storageIds" validate:"dive,gt=0"`
	Status      *bool   `json:"status,omitempty"`
}

// ArticleResponse salida de un artículo en la API de la consola.
type ArticleResponse struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Status       bool    `json:"status"`
	CategoryID   int64   `json:"category_id"`
	CategoryName string  `json:"category_name,omitempty"`
	StorageIDs   []int64 `json:"storage_ids"`
}

// NewArticleResponse construye la salida desde el dominio.
func NewArticleResponse(a entity.Article) ArticleResponse {
	ids := a.StorageIDs
	if ids == nil {
		ids = []int64{}
	}
	return ArticleResponse{
		ID:           a.ID,
		Name:         a.Name,
		Description:  a.Description,
		Status:       a.Status,
		CategoryID:   a.CategoryID,
		CategoryName: a.CategoryName,
		StorageIDs:   ids,
	}
}
