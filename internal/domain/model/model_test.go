package model

import "testing"

func TestOrderStatusDeducted(t *testing.T) {
	cases := []struct {
		status   OrderStatus
		deducted bool
	}{
		{OrderStatusPending, false},
		{OrderStatusConfirmedInMarket, true},
		{OrderStatusInTransit, true},
		{OrderStatusDelivered, true},
	}

	for _, tc := range cases {
		if tc.status.Deducted() != tc.deducted {
			t.Fatalf("status %s: expected deducted=%v", tc.status, tc.deducted)
		}
	}
}

func TestParseOrderStatusCasings(t *testing.T) {
	cases := []struct {
		raw  string
		want OrderStatus
	}{
		{"Pending", OrderStatusPending},
		{"PENDING", OrderStatusPending},
		{"pending", OrderStatusPending},
		{"ConfirmedInMarket", OrderStatusConfirmedInMarket},
		{"CONFIRMEDINMARKET", OrderStatusConfirmedInMarket},
		{"intransit", OrderStatusInTransit},
		{"DELIVERED", OrderStatusDelivered},
	}

	for _, tc := range cases {
		got, err := ParseOrderStatus(tc.raw)
		if err != nil {
			t.Fatalf("parse %q: %v", tc.raw, err)
		}
		if got != tc.want {
			t.Fatalf("parse %q: expected %s, got %s", tc.raw, tc.want, got)
		}
	}

	if _, err := ParseOrderStatus("Shipped"); err == nil {
		t.Fatal("expected error for unknown status")
	}
}

func TestProductTotalStock(t *testing.T) {
	withBreakdown := Product{
		Stock: 99,
		Inventory: []SizeStock{
			{Size: "S", Quantity: 2},
			{Size: "M", Quantity: 3},
		},
	}
	if got := withBreakdown.TotalStock(); got != 5 {
		t.Fatalf("expected total 5, got %d", got)
	}

	scalarOnly := Product{Stock: 7}
	if got := scalarOnly.TotalStock(); got != 7 {
		t.Fatalf("expected scalar fallback 7, got %d", got)
	}
}

func TestProductPurchasable(t *testing.T) {
	outOfStock := Product{Inventory: []SizeStock{{Size: "S", Quantity: 0}}}
	if outOfStock.Purchasable() {
		t.Fatal("zero inventory product must not be purchasable")
	}

	imported := Product{IsImported: true}
	if !imported.Purchasable() {
		t.Fatal("imported product must always be purchasable")
	}

	inStock := Product{Stock: 1}
	if !inStock.Purchasable() {
		t.Fatal("product with scalar stock must be purchasable")
	}
}
