package usecase

import (
	"context"
	"errors"
	"testing"

	domainErrors "github.com/avelora/shopfront/internal/domain/errors"
	"github.com/avelora/shopfront/internal/domain/model"
	testhelpers "github.com/avelora/shopfront/internal/test"
)

func TestLedgerDebitFloorsAtZero(t *testing.T) {
	products := testhelpers.NewProductRepositoryStub(
		&model.Product{ID: "p-1", Name: "Wool Coat", Inventory: []model.SizeStock{{Size: "M", Quantity: 3}}},
	)
	uc := NewLedgerUseCase(products, discardLogger())

	record, err := uc.Debit(context.Background(), "p-1", "M", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record.Quantity != 0 {
		t.Fatalf("expected floor at 0, got %d", record.Quantity)
	}

	record, err = uc.Debit(context.Background(), "p-1", "M", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record.Quantity != 0 {
		t.Fatalf("repeated debit must stay at 0, got %d", record.Quantity)
	}
}

func TestLedgerCreditIsSymmetricInverse(t *testing.T) {
	products := testhelpers.NewProductRepositoryStub(
		&model.Product{ID: "p-1", Name: "Wool Coat", Inventory: []model.SizeStock{{Size: "M", Quantity: 7}}},
	)
	uc := NewLedgerUseCase(products, discardLogger())

	if _, err := uc.Debit(context.Background(), "p-1", "M", 4); err != nil {
		t.Fatalf("debit failed: %v", err)
	}
	record, err := uc.Credit(context.Background(), "p-1", "M", 4)
	if err != nil {
		t.Fatalf("credit failed: %v", err)
	}
	if record.Quantity != 7 {
		t.Fatalf("expected inventory restored to 7, got %d", record.Quantity)
	}
}

func TestLedgerScalarFallbackWhenSizeUnknown(t *testing.T) {
	products := testhelpers.NewProductRepositoryStub(
		&model.Product{ID: "p-1", Name: "Silk Scarf", Stock: 10},
	)
	uc := NewLedgerUseCase(products, discardLogger())

	record, err := uc.Debit(context.Background(), "p-1", "OneSize", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record.Quantity != 7 {
		t.Fatalf("expected scalar stock 7, got %d", record.Quantity)
	}
}

func TestLedgerAdjustWrapsFailure(t *testing.T) {
	products := testhelpers.NewProductRepositoryStub()
	uc := NewLedgerUseCase(products, discardLogger())

	_, err := uc.Debit(context.Background(), "ghost", "M", 1)
	var adj *domainErrors.AdjustmentError
	if !errors.As(err, &adj) {
		t.Fatalf("expected AdjustmentError, got %v", err)
	}
	if adj.ProductID != "ghost" || adj.Size != "M" {
		t.Fatalf("adjustment error must name product and size: %+v", adj)
	}
	if !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatal("expected wrapped not-found cause")
	}
}

func TestLedgerLocatePrefersExactID(t *testing.T) {
	products := testhelpers.NewProductRepositoryStub(
		&model.Product{ID: "p-1", Name: "Wool Coat"},
		&model.Product{ID: "p-2", Name: "Wool Coat"},
	)
	uc := NewLedgerUseCase(products, discardLogger())

	product, err := uc.Locate(context.Background(), "p-2", "Wool Coat")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if product.ID != "p-2" {
		t.Fatalf("expected id match to win, got %s", product.ID)
	}
}

func TestLedgerLocateFallsBackToName(t *testing.T) {
	products := testhelpers.NewProductRepositoryStub(
		&model.Product{ID: "p-new", Name: "Wool Coat"},
	)
	uc := NewLedgerUseCase(products, discardLogger())

	product, err := uc.Locate(context.Background(), "p-old", "Wool Coat")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if product.ID != "p-new" {
		t.Fatalf("expected name fallback to find p-new, got %s", product.ID)
	}

	if _, err := uc.Locate(context.Background(), "p-old", "No Such Name"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
