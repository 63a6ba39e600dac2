package model

import "time"

// StockMovement is a ledger adjustment that failed to persist during a
// transition and awaits retry by the reconciler. Delta is negative for a
// debit and positive for a credit.
type StockMovement struct {
	ID          int64
	OrderID     string
	ProductID   string
	Size        string
	Delta       int
	Attempts    int
	RequestedAt time.Time
}
