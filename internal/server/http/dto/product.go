package dto

// SizeStockPayload describes stock for one size.
type SizeStockPayload struct {
	Size     string `json:"size"`
	Quantity int    `json:"quantity"`
}

// ProductResponse describes a catalog item with its stock breakdown.
type ProductResponse struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Price       float64            `json:"price"`
	IsImported  bool               `json:"is_imported"`
	TotalStock  int                `json:"total_stock"`
	Purchasable bool               `json:"purchasable"`
	Sizes       []SizeStockPayload `json:"sizes,omitempty"`
}
