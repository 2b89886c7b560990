package usecase

import (
	"context"
	"errors"
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

// ArticleDraft borrador de alta y edición de artículo.
type ArticleDraft struct {
	ID          *int64  `json:"id,omitempty"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	CategoryID  int64   `json:"categoryId"`
	StorageIDs  []int64 `json:"storageIds"`
	Status      bool    `json:"status"`
}

// articleSchema lockCategory bloquea la categoría (edición); lockStorages también los almacenes
// (alta desde el almacén del trabajador).
func articleSchema(uc *FormUseCase, kind string, initial ArticleDraft, lockCategory, lockStorages bool) form.Schema[ArticleDraft] {
	category := form.ID("categoryId", func(d *ArticleDraft) *int64 { return &d.CategoryID })
	if lockCategory {
		category = form.Lock(category)
	}
	storages := form.IDs("storageIds", func(d *ArticleDraft) *[]int64 { return &d.StorageIDs }, false)
	if lockStorages {
		storages = form.Lock(storages)
	}
	failure := MsgArticleFailed
	if initial.ID != nil {
		failure = MsgArticleUpdFailed
	}
	if initial.StorageIDs == nil {
		initial.StorageIDs = []int64{}
	}

	return form.Schema[ArticleDraft]{
		Kind:    kind,
		Initial: initial,
		Fields: []form.FieldSpec[ArticleDraft]{
			form.Text("name", func(d *ArticleDraft) *string { return &d.Name }, rules.ArticleName),
			form.Text("description", func(d *ArticleDraft) *string { return &d.Description }, rules.Description),
			category,
			storages,
			form.Bool("status", func(d *ArticleDraft) *bool { return &d.Status }),
		},
		Needs:       ports.SnapshotNeeds{Articles: true, Storages: true},
		Consistency: articleViolations,
		Submit: func(ctx context.Context, d ArticleDraft) (any, error) {
			in := dto.ArticlePayload{
				Name:        strings.TrimSpace(d.Name),
				Description: strings.TrimSpace(d.Description),
				CategoryID:  d.CategoryID,
				StorageIDs:  d.StorageIDs,
				Status:      boolPtr(d.Status),
			}
			var (
				a   *entity.Article
				err error
			)
			if d.ID == nil {
				a, err = uc.gw.Articles.Create(ctx, in)
			} else {
				in.ID = *d.ID
				a, err = uc.gw.Articles.Update(ctx, *d.ID, in)
			}
			if err != nil {
				return nil, err
			}
			return dto.NewArticleResponse(*a), nil
		},
		FailureMessage: failure,
	}
}

func articleViolations(d ArticleDraft, snap consistency.Snapshot) consistency.Violations {
	var out consistency.Violations
	if !consistency.ArticleNameUnique(d.Name, snap.Articles, d.ID) {
		out = append(out, consistency.Violation{Field: "name", Code: consistency.CodeArticleNameTaken, Message: MsgArticleNameTaken})
	}
	if !consistency.ArticleCategoryMatchesStorages(d.CategoryID, d.StorageIDs, snap.Storages) {
		out = append(out, consistency.Violation{Field: "storageIds", Code: consistency.CodeCategoryMismatch, Message: MsgCategoryMismatch})
	}
	return out
}

func openArticleCreate(_ context.Context, uc *FormUseCase, _ *auth.Principal, _ *int64) (form.Controller, error) {
	return newSession(uc, articleSchema(uc, "article.create", ArticleDraft{Status: true}, false, false)), nil
}

func openArticleEdit(ctx context.Context, uc *FormUseCase, _ *auth.Principal, entityID *int64) (form.Controller, error) {
	id, err := requireID("article.edit", entityID)
	if err != nil {
		return nil, err
	}
	all, err := uc.gw.Articles.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, a := range all {
		if a.ID != id {
			continue
		}
		a := a
		return newSession(uc, articleSchema(uc, "article.edit", ArticleDraft{
			ID:          &a.ID,
			Name:        a.Name,
			Description: a.Description,
			CategoryID:  a.CategoryID,
			StorageIDs:  append([]int64(nil), a.StorageIDs...),
			Status:      a.Status,
		}, true, false)), nil
	}
	return nil, fmt.Errorf("artículo %d: %w", id, domain.ErrNotFound)
}

func openStorageArticleCreate(ctx context.Context, uc *FormUseCase, p *auth.Principal, _ *int64) (form.Controller, error) {
	s, err := uc.gw.Storages.ByResponsible(ctx, p.UserID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, &noticeError{err: err, msg: MsgNoStorageAssigned}
	}
	if err != nil {
		return nil, err
	}
	return newSession(uc, articleSchema(uc, "storage.article.create", ArticleDraft{
		CategoryID: s.CategoryID,
		StorageIDs: []int64{s.ID},
		Status:     true,
	}, true, true)), nil
}
