package usecase

import (
	"context"

	"github.com/jhoicas/sinv-console/internal/application/dto"
	"github.com/jhoicas/sinv-console/internal/application/ports"
	"github.com/jhoicas/sinv-console/internal/domain/consistency"
)

// CatalogUseCase categorías y artículos.
type CatalogUseCase struct {
	categories ports.CategoryGateway
	articles   ports.ArticleGateway
	storages   ports.StorageGateway
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(categories ports.CategoryGateway, articles ports.ArticleGateway, storages ports.StorageGateway) *CatalogUseCase {
	return &CatalogUseCase{categories: categories, articles: articles, storages: storages}
}

// Categories lista las categorías.
func (uc *CatalogUseCase) Categories(ctx context.Context) ([]dto.CategoryResponse, error) {
	list, err := uc.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, dto.NewCategoryResponse(c))
	}
	return out, nil
}

// Articles lista los artículos.
func (uc *CatalogUseCase) Articles(ctx context.Context) ([]dto.ArticleResponse, error) {
	list, err := uc.articles.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ArticleResponse, 0, len(list))
	for _, a := range list {
		out = append(out, dto.NewArticleResponse(a))
	}
	return out, nil
}

// DeleteArticle elimina un artículo; es la única entidad que se borra.
func (uc *CatalogUseCase) DeleteArticle(ctx context.Context, id int64) error {
	return uc.articles.Delete(ctx, id)
}

// StoragesForCategory almacenes activos de una categoría (selector del formulario de artículo).
func (uc *CatalogUseCase) StoragesForCategory(ctx context.Context, categoryID int64) ([]dto.StorageResponse, error) {
	list, err := uc.storages.List(ctx)
	if err != nil {
		return nil, err
	}
	filtered := consistency.StoragesForCategory(list, categoryID)
	out := make([]dto.StorageResponse, 0, len(filtered))
	for _, s := range filtered {
		out = append(out, dto.NewStorageResponse(s, false))
	}
	return out, nil
}
