package errors

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrAlreadyExists   = errors.New("already exists")
	ErrEmptyOrder      = errors.New("order has no items")
	ErrInvalidQuantity = errors.New("invalid quantity")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidStatus   = errors.New("invalid order status")
	ErrNotPurchasable  = errors.New("product is not purchasable")
	ErrStatusRejected  = errors.New("status value rejected by store")
)

// AdjustmentError reports a failed inventory movement. It names the product
// and size so a lost stock adjustment is never silent.
type AdjustmentError struct {
	ProductID string
	Size      string
	Err       error
}

func (e *AdjustmentError) Error() string {
	return fmt.Sprintf("inventory adjustment for product %q size %q: %v", e.ProductID, e.Size, e.Err)
}

func (e *AdjustmentError) Unwrap() error {
	return e.Err
}
