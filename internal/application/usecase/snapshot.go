package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/sinv-console/internal/application/ports"
	"github.com/jhoicas/sinv-console/internal/domain/consistency"
	"golang.org/x/sync/errgroup"
)

// SnapshotLoader obtiene en paralelo los listados que pide una validación de consistencia.
type SnapshotLoader struct {
	users      ports.UserGateway
	storages   ports.StorageGateway
	categories ports.CategoryGateway
	articles   ports.ArticleGateway
}

var _ ports.SnapshotSource = (*SnapshotLoader)(nil)

// NewSnapshotLoader construye el cargador.
func NewSnapshotLoader(users ports.UserGateway, storages ports.StorageGateway, categories ports.CategoryGateway, articles ports.ArticleGateway) *SnapshotLoader {
	return &SnapshotLoader{users: users, storages: storages, categories: categories, articles: articles}
}

// Snapshot consulta solo los listados marcados en needs. Si uno falla se cancela el resto.
func (l *SnapshotLoader) Snapshot(ctx context.Context, needs ports.SnapshotNeeds) (consistency.Snapshot, error) {
	var snap consistency.Snapshot
	g, gctx := errgroup.WithContext(ctx)

	if needs.Users {
		g.Go(func() error {
			v, err := l.users.List(gctx)
			if err != nil {
				return fmt.Errorf("usuarios: %w", err)
			}
			snap.Users = v
			return nil
		})
	}
	if needs.Storages {
		g.Go(func() error {
			v, err := l.storages.List(gctx)
			if err != nil {
				return fmt.Errorf("almacenes: %w", err)
			}
			snap.Storages = v
			return nil
		})
	}
	if needs.Categories {
		g.Go(func() error {
			v, err := l.categories.List(gctx)
			if err != nil {
				return fmt.Errorf("categorías: %w", err)
			}
			snap.Categories = v
			return nil
		})
	}
	if needs.Articles {
		g.Go(func() error {
			v, err := l.articles.List(gctx)
			if err != nil {
				return fmt.Errorf("artículos: %w", err)
			}
			snap.Articles = v
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return consistency.Snapshot{}, fmt.Errorf("snapshot: %w", err)
	}
	return snap, nil
}
