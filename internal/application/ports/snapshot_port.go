package ports

import (
	"context"

	"github.com/jhoicas/sinv-console/internal/domain/consistency"
)

// SnapshotNeeds listados que una validación de consistencia necesita.
type SnapshotNeeds struct {
	Users      bool
	Storages   bool
	Categories bool
	Articles   bool
}

// Any indica si hace falta consultar algún listado.
func (n SnapshotNeeds) Any() bool {
	return n.Users || n.Storages || n.Categories || n.Articles
}

// SnapshotSource obtiene la instantánea de entidades justo antes de validar.
type SnapshotSource interface {
	Snapshot(ctx context.Context, needs SnapshotNeeds) (consistency.Snapshot, error)
}
