// Package facade holds storefront facade stubs for HTTP-layer tests. They
// live apart from the repository stubs so the shared test package stays
// importable from usecase unit tests.
package facade

import (
	"context"
	"time"

	"github.com/avelora/shopfront/internal/domain/model"
	"github.com/avelora/shopfront/internal/usecase"
)

// OrderFacadeStub provides controllable behaviour for order endpoints.
type OrderFacadeStub struct {
	CreateFn     func(context.Context, usecase.OrderDraft) (*model.Order, string, error)
	OrdersFn     func(context.Context) ([]model.Order, error)
	OrderFn      func(context.Context, string) (*model.Order, error)
	TransitionFn func(context.Context, string, model.OrderStatus) (*usecase.TransitionResult, error)
}

// CreateOrder delegates to provided function or returns a default order.
func (s OrderFacadeStub) CreateOrder(ctx context.Context, draft usecase.OrderDraft) (*model.Order, string, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, draft)
	}
	return &model.Order{ID: "o-1", DisplayID: 1, Status: model.OrderStatusPending}, "", nil
}

// Orders returns predefined orders.
func (s OrderFacadeStub) Orders(ctx context.Context) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx)
	}
	return []model.Order{{ID: "o-1", DisplayID: 1, Status: model.OrderStatusPending, CreatedAt: time.Unix(0, 0)}}, nil
}

// Order returns a predefined order by id.
func (s OrderFacadeStub) Order(ctx context.Context, id string) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, id)
	}
	return &model.Order{ID: id, DisplayID: 1, Status: model.OrderStatusPending}, nil
}

// TransitionOrder executes the configured transition handler.
func (s OrderFacadeStub) TransitionOrder(ctx context.Context, id string, target model.OrderStatus) (*usecase.TransitionResult, error) {
	if s.TransitionFn != nil {
		return s.TransitionFn(ctx, id, target)
	}
	return &usecase.TransitionResult{OrderID: id, From: model.OrderStatusPending, To: target}, nil
}

// CatalogFacadeStub simulates catalog reads.
type CatalogFacadeStub struct {
	ProductsFn func(context.Context) ([]model.Product, error)
	ProductFn  func(context.Context, string) (*model.Product, error)
}

// Products returns the configured catalog or a default one-item catalog.
func (s CatalogFacadeStub) Products(ctx context.Context) ([]model.Product, error) {
	if s.ProductsFn != nil {
		return s.ProductsFn(ctx)
	}
	return []model.Product{{ID: "p-1", Name: "hoodie", Price: 10, Inventory: []model.SizeStock{{Size: "M", Quantity: 3}}}}, nil
}

// Product returns a single configured product.
func (s CatalogFacadeStub) Product(ctx context.Context, id string) (*model.Product, error) {
	if s.ProductFn != nil {
		return s.ProductFn(ctx, id)
	}
	return &model.Product{ID: id, Name: "hoodie", Price: 10}, nil
}

// SalesFacadeStub simulates the sales report.
type SalesFacadeStub struct {
	ReportFn func(context.Context) ([]model.Sale, error)
}

// SalesReport returns preconfigured sales.
func (s SalesFacadeStub) SalesReport(ctx context.Context) ([]model.Sale, error) {
	if s.ReportFn != nil {
		return s.ReportFn(ctx)
	}
	return []model.Sale{{ID: 1, ProductID: "p-1", Quantity: 1, Size: "M", UnitPrice: 10, CostPrice: 4, SoldAt: time.Unix(0, 0)}}, nil
}

// StorefrontFacadeStub aggregates the facade stubs for router-level tests.
type StorefrontFacadeStub struct {
	OrderFacadeStub
	CatalogFacadeStub
	SalesFacadeStub
}
