package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jhoicas/sinv-console/internal/application/dto"
	"github.com/jhoicas/sinv-console/internal/application/ports"
	"github.com/jhoicas/sinv-console/internal/domain/entity"
)

var _ ports.ArticleGateway = (*ArticleService)(nil)

// ArticleService endpoints de /articles.
type ArticleService struct {
	c *Client
}

func (s *ArticleService) List(ctx context.Context) ([]entity.Article, error) {
	var wire []dto.ArticleWire
	if err := s.c.call(ctx, http.MethodGet, "/articles/", nil, &wire); err != nil {
		return nil, err
	}
	out := make([]entity.Article, 0, len(wire))
	for _, w := range wire {
		out = append(out, w.ToEntity())
	}
	return out, nil
}

func (s *ArticleService) Create(ctx context.Context, in dto.ArticlePayload) (*entity.Article, error) {
	return s.one(ctx, http.MethodPost, "/articles/", in)
}

func (s *ArticleService) Update(ctx context.Context, id int64, in dto.ArticlePayload) (*entity.Article, error) {
	in.ID = id
	return s.one(ctx, http.MethodPut, fmt.Sprintf("/articles/%d", id), in)
}

func (s *ArticleService) Delete(ctx context.Context, id int64) error {
	return s.c.call(ctx, http.MethodDelete, fmt.Sprintf("/articles/%d", id), nil, nil)
}

func (s *ArticleService) one(ctx context.Context, method, path string, payload any) (*entity.Article, error) {
	var w dto.ArticleWire
	if err := s.c.call(ctx, method, path, payload, &w); err != nil {
		return nil, err
	}
	a := w.ToEntity()
	return &a, nil
}
