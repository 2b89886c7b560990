package usecase

import (
	"context"

	"github.com/jhoicas/sinv-console/internal/application/dto"
	"github.com/jhoicas/sinv-console/internal/application/ports"
	"github.com/jhoicas/sinv-console/internal/domain/consistency"
)

// StorageUseCase listados de almacenes, cambio de estado y candidatos a responsable.
type StorageUseCase struct {
	storages  ports.StorageGateway
	snapshots ports.SnapshotSource
}

// NewStorageUseCase construye el caso de uso.
func NewStorageUseCase(storages ports.StorageGateway, snapshots ports.SnapshotSource) *StorageUseCase {
	return &StorageUseCase{storages: storages, snapshots: snapshots}
}

// List devuelve todos los almacenes (sin detalle de artículos).
func (uc *StorageUseCase) List(ctx context.Context) ([]dto.StorageResponse, error) {
	list, err := uc.storages.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StorageResponse, 0, len(list))
	for _, s := range list {
		out = append(out, dto.NewStorageResponse(s, false))
	}
	return out, nil
}

// Mine almacén custodiado por userID, con sus artículos.
func (uc *StorageUseCase) Mine(ctx context.Context, userID int64) (*dto.StorageResponse, error) {
	s, err := uc.storages.ByResponsible(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := dto.NewStorageResponse(*s, true)
	return &out, nil
}

// ToggleStatus activa o desactiva un almacén.
func (uc *StorageUseCase) ToggleStatus(ctx context.Context, id int64) (*dto.StorageResponse, error) {
	s, err := uc.storages.ToggleStatus(ctx, id)
	if err != nil {
		return nil, err
	}
	out := dto.NewStorageResponse(*s, false)
	return &out, nil
}

// Responsibles candidatos a responsable para storageID (nil en el alta).
func (uc *StorageUseCase) Responsibles(ctx context.Context, storageID *int64) ([]dto.UserResponse, error) {
	snap, err := uc.snapshots.Snapshot(ctx, ports.SnapshotNeeds{Users: true, Storages: true})
	if err != nil {
		return nil, err
	}

	candidates := consistency.AvailableResponsibles(snap.Users, snap.Storages, storageID)
	out := make([]dto.UserResponse, 0, len(candidates))
	for _, u := range candidates {
		out = append(out, dto.NewUserResponse(u))
	}
	return out, nil
}
