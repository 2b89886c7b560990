package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/sinv-console/internal/application/auth"
	"github.com/jhoicas/sinv-console/internal/application/dto"
	"github.com/jhoicas/sinv-console/internal/application/form"
	"github.com/jhoicas/sinv-console/internal/application/ports"
	"github.com/jhoicas/sinv-console/internal/domain"
	"github.com/jhoicas/sinv-console/internal/domain/consistency"
	"github.com/jhoicas/sinv-console/internal/domain/entity"
	"github.com/jhoicas/sinv-console/internal/domain/rules"
)

// CategoryDraft borrador de alta de categoría.
type CategoryDraft struct {
	Name   string `json:"name"`
	Status bool   `json:"status"`
}

func openCategoryCreate(_ context.Context, uc *FormUseCase, _ *auth.Principal, _ *int64) (form.Controller, error) {
	return newSession(uc, form.Schema[CategoryDraft]{
		Kind:    "category.create",
		Initial: CategoryDraft{Status: true},
		Fields: []form.FieldSpec[CategoryDraft]{
			form.Text("name", func(d *CategoryDraft) *string { return &d.Name }, rules.CategoryName),
			form.Bool("status", func(d *CategoryDraft) *bool { return &d.Status }),
		},
		Submit: func(ctx context.Context, d CategoryDraft) (any, error) {
			c, err := uc.gw.Categories.Create(ctx, dto.CategoryPayload{Name: strings.TrimSpace(d.Name), Status: boolPtr(d.Status)})
			if err != nil {
				return nil, err
			}
			return dto.NewCategoryResponse(*c), nil
		},
		FailureMessage: MsgCategoryFailed,
	}), nil
}

// StorageDraft borrador de alta y edición de almacén.
type StorageDraft struct {
	ID            *int64 `json:"id,omitempty"`
	Identifier    string `json:"identifier"`
	CategoryID    int64  `json:"categoryId"`
	ResponsibleID *int64 `json:"responsibleId"`
	Status        bool   `json:"status"`
}

func storageSchema(uc *FormUseCase, kind string, initial StorageDraft) form.Schema[StorageDraft] {
	failure := MsgStorageFailed
	if initial.ID != nil {
		failure = MsgStorageUpdFailed
	}
	return form.Schema[StorageDraft]{
		Kind:    kind,
		Initial: initial,
		Fields: []form.FieldSpec[StorageDraft]{
			form.Text("identifier", func(d *StorageDraft) *string { return &d.Identifier }, rules.Identifier),
			form.ID("categoryId", func(d *StorageDraft) *int64 { return &d.CategoryID }),
			form.OptionalID("responsibleId", func(d *StorageDraft) **int64 { return &d.ResponsibleID }),
			form.Bool("status", func(d *StorageDraft) *bool { return &d.Status }),
		},
		Needs:       ports.SnapshotNeeds{Users: true, Storages: true},
		Consistency: storageViolations,
		Submit: func(ctx context.Context, d StorageDraft) (any, error) {
			in := dto.StoragePayload{
				Identifier:    strings.TrimSpace(d.Identifier),
				CategoryID:    d.CategoryID,
				ResponsibleID: d.ResponsibleID,
				Status:        boolPtr(d.Status),
			}
			var (
				s   *entity.Storage
				err error
			)
			if d.ID == nil {
				s, err = uc.gw.Storages.Create(ctx, in)
			} else {
				in.ID = *d.ID
				s, err = uc.gw.Storages.Update(ctx, *d.ID, in)
			}
			if err != nil {
				return nil, err
			}
			return dto.NewStorageResponse(*s, false), nil
		},
		FailureMessage: failure,
	}
}

func storageViolations(d StorageDraft, snap consistency.Snapshot) consistency.Violations {
	var out consistency.Violations
	if !consistency.StorageIdentifierUnique(d.Identifier, snap.Storages, d.ID) {
		out = append(out, consistency.Violation{Field: "identifier", Code: consistency.CodeIdentifierTaken, Message: MsgIdentifierTaken})
	}
	if d.ResponsibleID == nil {
		return out
	}
	switch {
	case !consistency.ResponsibleAvailable(*d.ResponsibleID, snap.Storages, d.ID):
		out = append(out, consistency.Violation{Field: "responsibleId", Code: consistency.CodeResponsibleAssigned, Message: MsgResponsibleTaken})
	case !consistency.ResponsibleEligible(*d.ResponsibleID, snap.Users, snap.Storages, d.ID):
		out = append(out, consistency.Violation{Field: "responsibleId", Code: consistency.CodeResponsibleInvalid, Message: MsgResponsibleRole})
	}
	return out
}

func openStorageCreate(_ context.Context, uc *FormUseCase, _ *auth.Principal, _ *int64) (form.Controller, error) {
	return newSession(uc, storageSchema(uc, "storage.create", StorageDraft{Status: true})), nil
}

func openStorageEdit(ctx context.Context, uc *FormUseCase, _ *auth.Principal, entityID *int64) (form.Controller, error) {
	id, err := requireID("storage.edit", entityID)
	if err != nil {
		return nil, err
	}
	s, err := findStorage(ctx, uc.gw.Storages, id)
	if err != nil {
		return nil, err
	}
	return newSession(uc, storageSchema(uc, "storage.edit", StorageDraft{
		ID:            &s.ID,
		Identifier:    s.Identifier,
		CategoryID:    s.CategoryID,
		ResponsibleID: s.ResponsibleID,
		Status:        s.Status,
	})), nil
}

func findStorage(ctx context.Context, gw ports.StorageGateway, id int64) (*entity.Storage, error) {
	all, err := gw.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].ID == id {
			return &all[i], nil
		}
	}
	return nil, fmt.Errorf("almacén %d: %w", id, domain.ErrNotFound)
}
