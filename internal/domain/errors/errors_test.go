package errors

import (
	stdErrors "errors"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
	}{
		{"not found", ErrNotFound},
		{"already exists", ErrAlreadyExists},
		{"empty order", ErrEmptyOrder},
		{"invalid quantity", ErrInvalidQuantity},
		{"invalid amount", ErrInvalidAmount},
		{"invalid status", ErrInvalidStatus},
		{"not purchasable", ErrNotPurchasable},
		{"status rejected", ErrStatusRejected},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if !stdErrors.Is(tc.err, tc.err) {
				t.Fatalf("expected error to match itself: %v", tc.err)
			}
		})
	}
}

func TestAdjustmentErrorWrapsCause(t *testing.T) {
	adj := &AdjustmentError{ProductID: "p-1", Size: "M", Err: ErrNotFound}

	if !stdErrors.Is(adj, ErrNotFound) {
		t.Fatal("expected adjustment error to wrap its cause")
	}

	var target *AdjustmentError
	if !stdErrors.As(error(adj), &target) {
		t.Fatal("expected errors.As to extract AdjustmentError")
	}
	if target.ProductID != "p-1" || target.Size != "M" {
		t.Fatalf("unexpected fields: %+v", target)
	}
}
