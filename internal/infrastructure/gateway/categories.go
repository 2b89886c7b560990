package gateway

import (
	"context"
	"net/http"

	"github.com/jhoicas/sinv-console/internal/application/dto"
	"github.com/jhoicas/sinv-console/internal/application/ports"
	"github.com/jhoicas/sinv-console/internal/domain/entity"
)

var _ ports.CategoryGateway = (*CategoryService)(nil)

// CategoryService endpoints de /categories.
type CategoryService struct {
	c *Client
}

func (s *CategoryService) List(ctx context.Context) ([]entity.Category, error) {
	var wire []dto.CategoryWire
	if err := s.c.call(ctx, http.MethodGet, "/categories/", nil, &wire); err != nil {
		return nil, err
	}
	out := make([]entity.Category, 0, len(wire))
	for _, w := range wire {
		out = append(out, w.ToEntity())
	}
	return out, nil
}

func (s *CategoryService) Create(ctx context.Context, in dto.CategoryPayload) (*entity.Category, error) {
	var w dto.CategoryWire
	if err := s.c.call(ctx, http.MethodPost, "/categories/", in, &w); err != nil {
		return nil, err
	}
	c := w.ToEntity()
	return &c, nil
}
