package repository

import (
	"context"

	"github.com/avelora/shopfront/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
type OrderRepository interface {
	// Create persists a new order and fills its display id and timestamps.
	Create(ctx context.Context, order *model.Order) error
	GetByID(ctx context.Context, id string) (*model.Order, error)
	List(ctx context.Context) ([]model.Order, error)
	// UpdateStatus writes the status string, retrying alternate casings when
	// the store rejects the value.
	UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) error
}
