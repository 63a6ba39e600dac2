package model

import "time"

// Sale is one append-only row per (product, size) pair consumed by a
// fulfilled order item. Rows are never updated or deleted.
type Sale struct {
	ID        int64
	ProductID string
	Quantity  int
	Size      string
	UnitPrice float64
	CostPrice float64
	SoldAt    time.Time
}

// Margin returns the per-unit margin used for reporting.
func (s Sale) Margin() float64 {
	return s.UnitPrice - s.CostPrice
}
