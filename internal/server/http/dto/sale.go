package dto

import "time"

// SaleResponse describes one recorded sale row.
type SaleResponse struct {
	ID        int64     `json:"id"`
	ProductID string    `json:"product_id"`
	Quantity  int       `json:"quantity"`
	Size      string    `json:"size"`
	UnitPrice float64   `json:"unit_price"`
	CostPrice float64   `json:"cost_price"`
	Margin    float64   `json:"margin"`
	SoldAt    time.Time `json:"sold_at"`
}
