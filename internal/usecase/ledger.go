package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	domainErrors "github.com/avelora/shopfront/internal/domain/errors"
	"github.com/avelora/shopfront/internal/domain/model"
	"github.com/avelora/shopfront/internal/domain/repository"
)

// LedgerUseCase owns stock debits and credits against the catalog.
type LedgerUseCase struct {
	products repository.ProductRepository
	logger   *slog.Logger
}

// NewLedgerUseCase constructs LedgerUseCase.
func NewLedgerUseCase(products repository.ProductRepository, logger *slog.Logger) *LedgerUseCase {
	return &LedgerUseCase{products: products, logger: logger}
}

// Locate finds the product affected by an item snapshot. Exact id match is
// preferred; a name match is a best-effort recovery for snapshots predating
// an id change and is logged whenever it triggers.
func (u *LedgerUseCase) Locate(ctx context.Context, productID, productName string) (*model.Product, error) {
	product, err := u.products.GetByID(ctx, productID)
	if err == nil {
		return product, nil
	}
	if !errors.Is(err, domainErrors.ErrNotFound) {
		return nil, err
	}

	if productName != "" {
		product, nameErr := u.products.GetByName(ctx, productName)
		if nameErr == nil {
			u.logger.Warn("product located by name fallback",
				slog.String("product_id", productID),
				slog.String("product_name", productName),
				slog.String("matched_id", product.ID),
			)
			return product, nil
		}
		if !errors.Is(nameErr, domainErrors.ErrNotFound) {
			return nil, nameErr
		}
	}
	return nil, domainErrors.ErrNotFound
}

// Debit removes qty units from the (product, size) record, flooring at zero.
func (u *LedgerUseCase) Debit(ctx context.Context, productID, size string, qty int) (*model.SizeStock, error) {
	return u.adjust(ctx, productID, size, -qty)
}

// Credit returns qty units to the (product, size) record, the symmetric
// inverse of Debit. There is no upper clamp.
func (u *LedgerUseCase) Credit(ctx context.Context, productID, size string, qty int) (*model.SizeStock, error) {
	return u.adjust(ctx, productID, size, qty)
}

func (u *LedgerUseCase) adjust(ctx context.Context, productID, size string, delta int) (*model.SizeStock, error) {
	if delta == 0 {
		return nil, &domainErrors.AdjustmentError{ProductID: productID, Size: size, Err: domainErrors.ErrInvalidQuantity}
	}
	record, err := u.products.AdjustStock(ctx, productID, size, delta)
	if err != nil {
		return nil, &domainErrors.AdjustmentError{ProductID: productID, Size: size, Err: err}
	}
	return record, nil
}

// Apply replays a queued stock movement. Used by the reconciler.
func (u *LedgerUseCase) Apply(ctx context.Context, movement model.StockMovement) error {
	if movement.Delta == 0 {
		return fmt.Errorf("movement %d has zero delta", movement.ID)
	}
	_, err := u.adjust(ctx, movement.ProductID, movement.Size, movement.Delta)
	return err
}
