package usecase

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/avelora/shopfront/internal/config"
	"github.com/avelora/shopfront/internal/domain/repository"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	NewCatalogUseCase,
	NewLedgerUseCase,
	NewSalesUseCase,
	NewLifecycleUseCase,
	func(products repository.ProductRepository, cfg *config.Config, logger *slog.Logger) *PricingUseCase {
		return NewPricingUseCase(products, cfg.PriceTolerance, logger)
	},
	func(orders repository.OrderRepository, products repository.ProductRepository, pricing *PricingUseCase, cfg *config.Config, logger *slog.Logger) *IntakeUseCase {
		return NewIntakeUseCase(orders, products, pricing, cfg.HandoffURL, logger)
	},
)
