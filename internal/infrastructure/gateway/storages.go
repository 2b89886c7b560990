package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jhoicas/sinv-console/internal/application/dto"
	"github.com/jhoicas/sinv-console/internal/application/ports"
	"github.com/jhoicas/sinv-console/internal/domain/entity"
)

var _ ports.StorageGateway = (*StorageService)(nil)

// StorageService endpoints de /storage.
type StorageService struct {
	c *Client
}

func (s *StorageService) List(ctx context.Context) ([]entity.Storage, error) {
	var wire []dto.StorageWire
	if err := s.c.call(ctx, http.MethodGet, "/storage/", nil, &wire); err != nil {
		return nil, err
	}
	out := make([]entity.Storage, 0, len(wire))
	for _, w := range wire {
		out = append(out, w.ToEntity())
	}
	return out, nil
}

func (s *StorageService) ByResponsible(ctx context.Context, userID int64) (*entity.Storage, error) {
	return s.one(ctx, http.MethodGet, fmt.Sprintf("/storage/responsible/%d", userID), nil)
}

func (s *StorageService) Create(ctx context.Context, in dto.StoragePayload) (*entity.Storage, error) {
	return s.one(ctx, http.MethodPost, "/storage/", in)
}

func (s *StorageService) Update(ctx context.Context, id int64, in dto.StoragePayload) (*entity.Storage, error) {
	in.ID = id
	return s.one(ctx, http.MethodPut, fmt.Sprintf("/storage/%d", id), in)
}

func (s *StorageService) ToggleStatus(ctx context.Context, id int64) (*entity.Storage, error) {
	return s.one(ctx, http.MethodPatch, fmt.Sprintf("/storage/%d/status", id), nil)
}

func (s *StorageService) one(ctx context.Context, method, path string, payload any) (*entity.Storage, error) {
	var w dto.StorageWire
	if err := s.c.call(ctx, method, path, payload, &w); err != nil {
		return nil, err
	}
	st := w.ToEntity()
	return &st, nil
}
