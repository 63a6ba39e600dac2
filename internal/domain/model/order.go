package model

import (
	"fmt"
	"strings"
	"time"
)

// OrderStatus describes order fulfillment lifecycle.
type OrderStatus string

const (
	OrderStatusPending           OrderStatus = "Pending"
	OrderStatusConfirmedInMarket OrderStatus = "ConfirmedInMarket"
	OrderStatusInTransit         OrderStatus = "InTransit"
	OrderStatusDelivered         OrderStatus = "Delivered"
)

// Deducted reports whether stock has been debited for an order in this state.
// Every state except the initial one is a deducted state.
func (s OrderStatus) Deducted() bool {
	return s != OrderStatusPending
}

// Valid reports whether the status belongs to the closed lifecycle set.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmedInMarket, OrderStatusInTransit, OrderStatusDelivered:
		return true
	}
	return false
}

// ParseOrderStatus maps a stored status string to its canonical form.
// The store keeps statuses as free text in several casings; parsing is
// case-insensitive so the ambiguity never leaks past this point.
func ParseOrderStatus(raw string) (OrderStatus, error) {
	for _, s := range []OrderStatus{
		OrderStatusPending,
		OrderStatusConfirmedInMarket,
		OrderStatusInTransit,
		OrderStatusDelivered,
	} {
		if strings.EqualFold(raw, string(s)) {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown order status %q", raw)
}

// OrderItem is a snapshot of a purchased position, immutable after order creation.
type OrderItem struct {
	ProductID   string
	ProductName string
	Quantity    int
	UnitPrice   float64
	Size        string
}

// CustomerInfo carries contact and delivery details. The core stores it
// verbatim and never interprets it.
type CustomerInfo struct {
	Name    string
	Phone   string
	Address string
	Note    string
}

// Order describes a customer purchase registered through intake.
type Order struct {
	ID             string
	DisplayID      int64
	Items          []OrderItem
	TotalAmount    float64
	DeliveryCost   float64
	Status         OrderStatus
	CustomerInfo   CustomerInfo
	ReviewRequired bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
