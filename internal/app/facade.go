package app

import (
	"context"
	"log/slog"

	"github.com/avelora/shopfront/internal/domain/model"
	"github.com/avelora/shopfront/internal/usecase"
)

// TransitionNotifier pushes order status changes to an external consumer.
type TransitionNotifier interface {
	OrderTransitioned(ctx context.Context, orderID string, displayID int64, from, to model.OrderStatus) error
}

// StorefrontFacade aggregates the use cases behind the HTTP and worker surfaces.
type StorefrontFacade struct {
	intake    *usecase.IntakeUseCase
	lifecycle *usecase.LifecycleUseCase
	catalog   *usecase.CatalogUseCase
	sales     *usecase.SalesUseCase
	notifier  TransitionNotifier
	logger    *slog.Logger
}

// NewStorefrontFacade constructs StorefrontFacade.
func NewStorefrontFacade(
	intake *usecase.IntakeUseCase,
	lifecycle *usecase.LifecycleUseCase,
	catalog *usecase.CatalogUseCase,
	sales *usecase.SalesUseCase,
	notifier TransitionNotifier,
	logger *slog.Logger,
) *StorefrontFacade {
	return &StorefrontFacade{
		intake:    intake,
		lifecycle: lifecycle,
		catalog:   catalog,
		sales:     sales,
		notifier:  notifier,
		logger:    logger,
	}
}

func (f *StorefrontFacade) CreateOrder(ctx context.Context, draft usecase.OrderDraft) (*model.Order, string, error) {
	return f.intake.Create(ctx, draft)
}

func (f *StorefrontFacade) Orders(ctx context.Context) ([]model.Order, error) {
	return f.lifecycle.List(ctx)
}

func (f *StorefrontFacade) Order(ctx context.Context, id string) (*model.Order, error) {
	return f.lifecycle.Get(ctx, id)
}

// TransitionOrder changes order status. Notification is best effort: a
// webhook failure never rolls back a committed transition.
func (f *StorefrontFacade) TransitionOrder(ctx context.Context, id string, target model.OrderStatus) (*usecase.TransitionResult, error) {
	order, err := f.lifecycle.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	result, err := f.lifecycle.Transition(ctx, id, target)
	if err != nil {
		return result, err
	}

	if notifyErr := f.notifier.OrderTransitioned(ctx, order.ID, order.DisplayID, result.From, result.To); notifyErr != nil {
		f.logger.Error("transition notification failed",
			slog.String("order", order.ID),
			slog.String("error", notifyErr.Error()),
		)
	}
	return result, nil
}

func (f *StorefrontFacade) Products(ctx context.Context) ([]model.Product, error) {
	return f.catalog.List(ctx)
}

func (f *StorefrontFacade) Product(ctx context.Context, id string) (*model.Product, error) {
	return f.catalog.Get(ctx, id)
}

func (f *StorefrontFacade) SalesReport(ctx context.Context) ([]model.Sale, error) {
	return f.sales.Report(ctx)
}

func (f *StorefrontFacade) PendingMovements(ctx context.Context, limit int) ([]model.StockMovement, error) {
	return f.lifecycle.PendingMovements(ctx, limit)
}

func (f *StorefrontFacade) ApplyMovement(ctx context.Context, movement model.StockMovement) error {
	return f.lifecycle.ApplyMovement(ctx, movement)
}
