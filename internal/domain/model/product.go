package model

// SizeStock holds the stock count for one size of a product.
type SizeStock struct {
	Size     string
	Quantity int
}

// Product describes a catalog item as the fulfillment core sees it.
type Product struct {
	ID         string
	Name       string
	Price      float64
	CostPrice  float64
	IsImported bool
	Stock      int
	Inventory  []SizeStock
}

// TotalStock derives overall stock: the sum over per-size records when the
// breakdown exists, otherwise the scalar stock field.
func (p Product) TotalStock() int {
	if len(p.Inventory) == 0 {
		return p.Stock
	}
	total := 0
	for _, s := range p.Inventory {
		total += s.Quantity
	}
	return total
}

// Purchasable reports whether the product can be ordered. Imported products
// are fulfilled on a back-order basis and are always orderable.
func (p Product) Purchasable() bool {
	return p.IsImported || p.TotalStock() > 0
}
