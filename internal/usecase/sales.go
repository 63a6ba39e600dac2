package usecase

import (
	"context"

	domainErrors "github.com/avelora/shopfront/internal/domain/errors"
	"github.com/avelora/shopfront/internal/domain/model"
	"github.com/avelora/shopfront/internal/domain/repository"
)

// SalesUseCase appends immutable sale rows and serves the sales report.
// It never deduplicates: the at-most-once guarantee belongs to the
// lifecycle transition guard.
type SalesUseCase struct {
	sales repository.SaleRepository
}

// NewSalesUseCase constructs SalesUseCase.
func NewSalesUseCase(sales repository.SaleRepository) *SalesUseCase {
	return &SalesUseCase{sales: sales}
}

// Record appends one sale row for a fulfilled (product, size) pair.
func (u *SalesUseCase) Record(ctx context.Context, productID string, quantity int, size string, unitPrice, costPrice float64) (*model.Sale, error) {
	if quantity <= 0 {
		return nil, domainErrors.ErrInvalidQuantity
	}
	sale := &model.Sale{
		ProductID: productID,
		Quantity:  quantity,
		Size:      size,
		UnitPrice: unitPrice,
		CostPrice: costPrice,
	}
	if err := u.sales.Append(ctx, sale); err != nil {
		return nil, err
	}
	return sale, nil
}

// Report returns all recorded sales, newest first.
func (u *SalesUseCase) Report(ctx context.Context) ([]model.Sale, error) {
	return u.sales.List(ctx)
}
