package usecase

import (
	"context"
	"errors"
	"log/slog"

	domainErrors "github.com/avelora/shopfront/internal/domain/errors"
	"github.com/avelora/shopfront/internal/domain/model"
	"github.com/avelora/shopfront/internal/domain/repository"
)

// LifecycleUseCase owns the canonical order status and orchestrates the
// ledger and sales recorder on transitions.
type LifecycleUseCase struct {
	orders    repository.OrderRepository
	movements repository.MovementRepository
	ledger    *LedgerUseCase
	sales     *SalesUseCase
	logger    *slog.Logger
}

// NewLifecycleUseCase constructs LifecycleUseCase.
func NewLifecycleUseCase(
	orders repository.OrderRepository,
	movements repository.MovementRepository,
	ledger *LedgerUseCase,
	sales *SalesUseCase,
	logger *slog.Logger,
) *LifecycleUseCase {
	return &LifecycleUseCase{orders: orders, movements: movements, ledger: ledger, sales: sales, logger: logger}
}

// TransitionResult reports what a transition touched, so partial failures
// are visible to the operator instead of silently absorbed.
type TransitionResult struct {
	OrderID        string
	From           model.OrderStatus
	To             model.OrderStatus
	ItemsAttempted int
	ItemsAdjusted  int
	SalesRecorded  int
	ItemErrors     []error
}

// Transition moves an order to target status. Entering a deducted state from
// a non-deducted one debits stock and records sales once per order; moving
// back to the initial state credits stock symmetrically; any other pair
// changes status only. Per-item failures skip that item and the loop runs to
// completion.
func (u *LifecycleUseCase) Transition(ctx context.Context, orderID string, target model.OrderStatus) (*TransitionResult, error) {
	if !target.Valid() {
		return nil, domainErrors.ErrInvalidStatus
	}

	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	result := &TransitionResult{OrderID: order.ID, From: order.Status, To: target}

	// The status write goes first. Once the stored order reads as deducted,
	// a retried fulfillment classifies as deducted-to-deducted and leaves
	// inventory alone, so the debit and sale below run once per order even
	// when the caller retries after a failure here.
	if err := u.orders.UpdateStatus(ctx, orderID, target); err != nil {
		return nil, err
	}

	switch {
	case target.Deducted() && !order.Status.Deducted():
		u.fulfill(ctx, order, result)
	case !target.Deducted() && order.Status.Deducted():
		u.reopen(ctx, order, result)
	}
	return result, nil
}

func (u *LifecycleUseCase) fulfill(ctx context.Context, order *model.Order, result *TransitionResult) {
	for _, item := range order.Items {
		result.ItemsAttempted++

		product, err := u.ledger.Locate(ctx, item.ProductID, item.ProductName)
		if err != nil {
			adj := &domainErrors.AdjustmentError{ProductID: item.ProductID, Size: item.Size, Err: err}
			result.ItemErrors = append(result.ItemErrors, adj)
			u.logger.Error("product missing during fulfillment, stock movement lost",
				slog.String("order", order.ID),
				slog.String("product", item.ProductID),
				slog.String("size", item.Size),
			)
			continue
		}

		if _, err := u.ledger.Debit(ctx, product.ID, item.Size, item.Quantity); err != nil {
			result.ItemErrors = append(result.ItemErrors, err)
			u.deferMovement(ctx, order.ID, product.ID, item.Size, -item.Quantity, err)
		} else {
			result.ItemsAdjusted++
		}

		if _, err := u.sales.Record(ctx, product.ID, item.Quantity, item.Size, item.UnitPrice, product.CostPrice); err != nil {
			result.ItemErrors = append(result.ItemErrors, err)
			u.logger.Error("sale record failed",
				slog.String("order", order.ID),
				slog.String("product", product.ID),
				slog.String("error", err.Error()),
			)
		} else {
			result.SalesRecorded++
		}
	}
}

func (u *LifecycleUseCase) reopen(ctx context.Context, order *model.Order, result *TransitionResult) {
	for _, item := range order.Items {
		result.ItemsAttempted++

		product, err := u.ledger.Locate(ctx, item.ProductID, item.ProductName)
		if err != nil {
			adj := &domainErrors.AdjustmentError{ProductID: item.ProductID, Size: item.Size, Err: err}
			result.ItemErrors = append(result.ItemErrors, adj)
			u.logger.Error("product missing during reopen, stock movement lost",
				slog.String("order", order.ID),
				slog.String("product", item.ProductID),
				slog.String("size", item.Size),
			)
			continue
		}

		if _, err := u.ledger.Credit(ctx, product.ID, item.Size, item.Quantity); err != nil {
			result.ItemErrors = append(result.ItemErrors, err)
			u.deferMovement(ctx, order.ID, product.ID, item.Size, item.Quantity, err)
		} else {
			result.ItemsAdjusted++
		}
	}
}

// deferMovement queues a failed adjustment for the reconciler. Lookup
// failures are not queued: retrying a movement against a product that does
// not exist cannot succeed.
func (u *LifecycleUseCase) deferMovement(ctx context.Context, orderID, productID, size string, delta int, cause error) {
	if errors.Is(cause, domainErrors.ErrNotFound) {
		return
	}
	movement := &model.StockMovement{OrderID: orderID, ProductID: productID, Size: size, Delta: delta}
	if err := u.movements.Enqueue(ctx, movement); err != nil {
		u.logger.Error("stock movement enqueue failed",
			slog.String("order", orderID),
			slog.String("product", productID),
			slog.String("error", err.Error()),
		)
		return
	}
	u.logger.Warn("stock adjustment deferred to reconciler",
		slog.String("order", orderID),
		slog.String("product", productID),
		slog.String("size", size),
		slog.Int("delta", delta),
		slog.String("cause", cause.Error()),
	)
}

// Get returns a single order.
func (u *LifecycleUseCase) Get(ctx context.Context, orderID string) (*model.Order, error) {
	return u.orders.GetByID(ctx, orderID)
}

// List returns all orders, newest first.
func (u *LifecycleUseCase) List(ctx context.Context) ([]model.Order, error) {
	return u.orders.List(ctx)
}

// PendingMovements returns a locked batch of queued stock movements.
func (u *LifecycleUseCase) PendingMovements(ctx context.Context, limit int) ([]model.StockMovement, error) {
	return u.movements.SelectBatchForRetry(ctx, limit)
}

// ApplyMovement replays one queued movement and resolves it on success.
func (u *LifecycleUseCase) ApplyMovement(ctx context.Context, movement model.StockMovement) error {
	if err := u.ledger.Apply(ctx, movement); err != nil {
		return err
	}
	return u.movements.Resolve(ctx, movement.ID)
}
