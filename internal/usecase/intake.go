package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	domainErrors "github.com/avelora/shopfront/internal/domain/errors"
	"github.com/avelora/shopfront/internal/domain/model"
	"github.com/avelora/shopfront/internal/domain/repository"
)

// DraftItem is one proposed order position as claimed by the client.
type DraftItem struct {
	ProductID   string  `validate:"required"`
	ProductName string  `validate:"required"`
	Quantity    int     `validate:"required,gte=1"`
	UnitPrice   float64 `validate:"gte=0"`
	Size        string  `validate:"required"`
}

// OrderDraft is a proposed order before verification and persistence.
type OrderDraft struct {
	Items        []DraftItem `validate:"required,min=1,dive"`
	ClaimedTotal float64     `validate:"gte=0"`
	DeliveryCost float64     `validate:"gte=0"`
	Customer     model.CustomerInfo
}

// IntakeUseCase turns a client-proposed order into a persisted one: it
// validates the draft, runs price verification, persists, and builds the
// messaging-channel handoff link.
type IntakeUseCase struct {
	orders     repository.OrderRepository
	products   repository.ProductRepository
	pricing    *PricingUseCase
	validate   *validatorv10.Validate
	handoffURL string
	logger     *slog.Logger
}

// NewIntakeUseCase constructs IntakeUseCase.
func NewIntakeUseCase(
	orders repository.OrderRepository,
	products repository.ProductRepository,
	pricing *PricingUseCase,
	handoffURL string,
	logger *slog.Logger,
) *IntakeUseCase {
	v := validatorv10.New()
	v.RegisterStructValidation(draftStructValidation, OrderDraft{})
	return &IntakeUseCase{
		orders:     orders,
		products:   products,
		pricing:    pricing,
		validate:   v,
		handoffURL: handoffURL,
		logger:     logger,
	}
}

// draftStructValidation rejects drafts carrying the same (product, size)
// pair twice; duplicates would debit stock twice for one logical position.
func draftStructValidation(sl validatorv10.StructLevel) {
	draft := sl.Current().Interface().(OrderDraft)

	seen := make(map[string]struct{}, len(draft.Items))
	for _, item := range draft.Items {
		key := item.ProductID + "\x00" + strings.ToLower(strings.TrimSpace(item.Size))
		if _, dup := seen[key]; dup {
			sl.ReportError(draft.Items, "items", "Items", "unique_product_size", item.ProductID)
			return
		}
		seen[key] = struct{}{}
	}
}

// Create registers a new order in the initial state and returns it together
// with the handoff deep link.
func (u *IntakeUseCase) Create(ctx context.Context, draft OrderDraft) (*model.Order, string, error) {
	if err := u.validate.Struct(draft); err != nil {
		return nil, "", fmt.Errorf("%w: %v", domainErrors.ErrEmptyOrder, err)
	}

	for _, item := range draft.Items {
		product, err := u.products.GetByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, domainErrors.ErrNotFound) {
				// The verifier degrades gracefully for unknown products.
				continue
			}
			return nil, "", err
		}
		if !product.Purchasable() {
			return nil, "", fmt.Errorf("%w: %s", domainErrors.ErrNotPurchasable, product.ID)
		}
	}

	items := make([]model.OrderItem, 0, len(draft.Items))
	for _, item := range draft.Items {
		items = append(items, model.OrderItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Size:        item.Size,
		})
	}

	order := &model.Order{
		ID:           uuid.NewString(),
		Items:        items,
		TotalAmount:  draft.ClaimedTotal,
		DeliveryCost: draft.DeliveryCost,
		Status:       model.OrderStatusPending,
		CustomerInfo: draft.Customer,
	}

	verification := u.pricing.Verify(ctx, order)
	if verification.Corrected {
		u.logger.Info("order total corrected at intake",
			slog.String("order", order.ID),
			slog.Float64("total", order.TotalAmount),
		)
	}

	if err := u.orders.Create(ctx, order); err != nil {
		return nil, "", err
	}

	return order, u.handoffLink(order), nil
}

// handoffLink builds the deep link handed to the external messaging channel.
// Empty when no handoff base is configured.
func (u *IntakeUseCase) handoffLink(order *model.Order) string {
	if u.handoffURL == "" {
		return ""
	}
	base, err := url.Parse(u.handoffURL)
	if err != nil {
		u.logger.Warn("invalid handoff base url", slog.String("error", err.Error()))
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Order #%d\n", order.DisplayID)
	for _, item := range order.Items {
		fmt.Fprintf(&b, "%s (%s) x%d\n", item.ProductName, item.Size, item.Quantity)
	}
	fmt.Fprintf(&b, "Total: %.2f", order.TotalAmount)

	q := base.Query()
	q.Set("text", b.String())
	base.RawQuery = q.Encode()
	return base.String()
}
