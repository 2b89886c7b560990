package dto

import "github.com/jhoicas/sinv-console/internal/domain/entity"

// StorageWire almacén tal como lo serializa GET /storage/.
type StorageWire struct {
	ID          int64         `json:"id"`
	Identifier  string        `json:"identifier"`
	Status      *bool         `json:"status"`
	Category    *CategoryRef  `json:"category,omitempty"`
	Responsible *UserWire     `json:"responsible,omitempty"`
	Articles    []ArticleWire `json:"articles,omitempty"`
}

// ToEntity convierte al modelo de dominio.
func (w StorageWire) ToEntity() entity.Storage {
	s := entity.Storage{
		ID:         w.ID,
		Identifier: w.Identifier,
		Status:     boolOr(w.Status, true),
	}
	if w.Category != nil {
		s.CategoryID = w.Category.ID
		s.CategoryName = w.Category.Name
	}
	if w.Responsible != nil {
		id := w.Responsible.ID
		s.ResponsibleID = &id
		s.ResponsibleName = w.Responsible.FullName
	}
	s.Articles = make([]entity.Article, 0, len(w.Articles))
	for _, a := range w.Articles {
		art := a.ToEntity()
		if art.CategoryID == 0 {
			art.CategoryID = s.CategoryID
			art.CategoryName = s.CategoryName
		}
		s.Articles = append(s.Articles, art)
	}
	return s
}

// StoragePayload cuerpo de POST /storage/ y PUT /storage/:id.
type StoragePayload struct {
	ID            int64  `json:"id,omitempty"`
	Identifier    string `json:"identifier" validate:"sinv_identifier"`
	CategoryID    int64  `json:"categoryId" validate:"gt=0"`
	ResponsibleID *int64 `json:"responsibleId,omitempty" validate:"omitempty,gt=0"`
	Status        *bool  `json:"status,omitempty"`
}

// StorageResponse salida de un almacén en la API de la consola.
type StorageResponse struct {
	ID              int64             `json:"id"`
	Identifier      string            `json:"identifier"`
	Status          bool              `json:"status"`
	CategoryID      int64             `json:"category_id"`
	CategoryName    string            `json:"category_name"`
	ResponsibleID   *int64            `json:"responsible_id,omitempty"`
	ResponsibleName string            `json:"responsible_name,omitempty"`
	ArticleCount    int               `json:"article_count"`
	Articles        []ArticleResponse `json:"articles,omitempty"`
}

// NewStorageResponse construye la salida; withArticles incluye el detalle de artículos.
func NewStorageResponse(s entity.Storage, withArticles bool) StorageResponse {
	out := StorageResponse{
		ID:              s.ID,
		Identifier:      s.Identifier,
		Status:          s.Status,
		CategoryID:      s.CategoryID,
		CategoryName:    s.CategoryName,
		ResponsibleID:   s.ResponsibleID,
		ResponsibleName: s.ResponsibleName,
		ArticleCount:    len(s.Articles),
	}
	if withArticles {
		out.Articles = make([]ArticleResponse, 0, len(s.Articles))
		for _, a := range s.Articles {
			out.Articles = append(out.Articles, NewArticleResponse(a))
		}
	}
	return out
}
