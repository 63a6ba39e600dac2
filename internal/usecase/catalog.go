package usecase

import (
	"context"

	"github.com/avelora/shopfront/internal/domain/model"
	"github.com/avelora/shopfront/internal/domain/repository"
)

// CatalogUseCase exposes the read side of the catalog to the UI layer.
type CatalogUseCase struct {
	products repository.ProductRepository
}

// NewCatalogUseCase constructs CatalogUseCase.
func NewCatalogUseCase(products repository.ProductRepository) *CatalogUseCase {
	return &CatalogUseCase{products: products}
}

// Get returns one product with its per-size stock.
func (u *CatalogUseCase) Get(ctx context.Context, id string) (*model.Product, error) {
	return u.products.GetByID(ctx, id)
}

// List returns the full catalog.
func (u *CatalogUseCase) List(ctx context.Context) ([]model.Product, error) {
	return u.products.List(ctx)
}
