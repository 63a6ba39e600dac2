package usecase

import (
	"context"
	"log/slog"
	"math"

	"github.com/avelora/shopfront/internal/domain/model"
	"github.com/avelora/shopfront/internal/domain/repository"
)

// PricingUseCase recomputes an order's true cost from authoritative catalog
// data and decides whether to trust the client-submitted total.
type PricingUseCase struct {
	products  repository.ProductRepository
	tolerance float64
	logger    *slog.Logger
}

// NewPricingUseCase constructs PricingUseCase.
func NewPricingUseCase(products repository.ProductRepository, tolerance float64, logger *slog.Logger) *PricingUseCase {
	return &PricingUseCase{products: products, tolerance: tolerance, logger: logger}
}

// PriceVerification reports the outcome of a single verification run.
type PriceVerification struct {
	ServerTotal  float64
	Corrected    bool
	ReviewNeeded bool
}

// Verify runs exactly once at order creation, before first persistence.
// A missing product never aborts the order: its claimed unit price is used
// and the order is flagged for manual review. A total diverging from the
// recomputation by more than the tolerance is overwritten in place.
func (u *PricingUseCase) Verify(ctx context.Context, order *model.Order) PriceVerification {
	var (
		subtotal     float64
		reviewNeeded bool
	)

	for _, item := range order.Items {
		unitPrice := item.UnitPrice
		product, err := u.products.GetByID(ctx, item.ProductID)
		if err != nil {
			reviewNeeded = true
			u.logger.Warn("price lookup failed, using claimed unit price",
				slog.String("product", item.ProductID),
				slog.String("error", err.Error()),
			)
		} else {
			unitPrice = product.Price
		}
		subtotal += unitPrice * float64(item.Quantity)
	}

	serverTotal := subtotal + order.DeliveryCost
	// floatSlack absorbs binary representation error so a difference landing
	// exactly on the tolerance still counts as within it.
	const floatSlack = 1e-9
	corrected := math.Abs(serverTotal-order.TotalAmount) > u.tolerance+floatSlack
	if corrected {
		u.logger.Warn("claimed total diverges from catalog, overwriting",
			slog.String("order", order.ID),
			slog.Float64("claimed", order.TotalAmount),
			slog.Float64("recomputed", serverTotal),
		)
		order.TotalAmount = serverTotal
	}
	if reviewNeeded {
		order.ReviewRequired = true
	}

	return PriceVerification{ServerTotal: serverTotal, Corrected: corrected, ReviewNeeded: reviewNeeded}
}
