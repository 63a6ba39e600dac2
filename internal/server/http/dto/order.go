package dto

import "time"

// OrderItemPayload describes one order position on the wire.
type OrderItemPayload struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Size        string  `json:"size"`
}

// CustomerPayload describes contact and delivery details.
type CustomerPayload struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Note    string `json:"note,omitempty"`
}

// CreateOrderRequest describes order intake payload. The total is the
// client's claim and is re-verified server-side.
type CreateOrderRequest struct {
	Items        []OrderItemPayload `json:"items"`
	Total        float64            `json:"total"`
	DeliveryCost float64            `json:"delivery_cost"`
	Customer     CustomerPayload    `json:"customer"`
}

// CreateOrderResponse returns the persisted order and the messaging handoff link.
type CreateOrderResponse struct {
	Order   OrderResponse `json:"order"`
	Handoff string        `json:"handoff,omitempty"`
}

// OrderResponse describes a stored order.
type OrderResponse struct {
	ID             string             `json:"id"`
	DisplayID      int64              `json:"display_id"`
	Items          []OrderItemPayload `json:"items"`
	Total          float64            `json:"total"`
	DeliveryCost   float64            `json:"delivery_cost"`
	Status         string             `json:"status"`
	Customer       CustomerPayload    `json:"customer"`
	ReviewRequired bool               `json:"review_required,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

// TransitionRequest describes a status change request.
type TransitionRequest struct {
	Status string `json:"status"`
}

// TransitionResponse reports what the status change touched.
type TransitionResponse struct {
	OrderID        string   `json:"order_id"`
	From           string   `json:"from"`
	To             string   `json:"to"`
	ItemsAttempted int      `json:"items_attempted"`
	ItemsAdjusted  int      `json:"items_adjusted"`
	SalesRecorded  int      `json:"sales_recorded"`
	Errors         []string `json:"errors,omitempty"`
}
