package handlers

import (
	"context"

	"github.com/avelora/shopfront/internal/domain/model"
	"github.com/avelora/shopfront/internal/usecase"
)

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	CreateOrder(ctx context.Context, draft usecase.OrderDraft) (*model.Order, string, error)
	Orders(ctx context.Context) ([]model.Order, error)
	Order(ctx context.Context, id string) (*model.Order, error)
	TransitionOrder(ctx context.Context, id string, target model.OrderStatus) (*usecase.TransitionResult, error)
}

// CatalogFacade provides catalog read operations.
type CatalogFacade interface {
	Products(ctx context.Context) ([]model.Product, error)
	Product(ctx context.Context, id string) (*model.Product, error)
}

// SalesFacade provides the sales report.
type SalesFacade interface {
	SalesReport(ctx context.Context) ([]model.Sale, error)
}

// StorefrontFacade aggregates the full set of operations used across handlers.
type StorefrontFacade interface {
	OrderFacade
	CatalogFacade
	SalesFacade
}
