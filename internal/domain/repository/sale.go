package repository

import (
	"context"

	"github.com/avelora/shopfront/internal/domain/model"
)

// SaleRepository appends and lists immutable sale rows. There is no update
// or delete: sales history survives order reopening.
type SaleRepository interface {
	Append(ctx context.Context, sale *model.Sale) error
	List(ctx context.Context) ([]model.Sale, error)
}
