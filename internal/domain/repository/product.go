package repository

import (
	"context"

	"github.com/avelora/shopfront/internal/domain/model"
)

// ProductRepository gives the core read access to the catalog and write
// access to per-size stock.
type ProductRepository interface {
	GetByID(ctx context.Context, id string) (*model.Product, error)
	GetByName(ctx context.Context, name string) (*model.Product, error)
	List(ctx context.Context) ([]model.Product, error)
	// AdjustStock applies a signed delta to the (product, size) record and
	// recomputes the product total stock in the same transaction. Quantities
	// are clamped at zero. When no per-size record matches, the scalar stock
	// field is adjusted instead. Returns the resulting per-size record.
	AdjustStock(ctx context.Context, productID, size string, delta int) (*model.SizeStock, error)
}
