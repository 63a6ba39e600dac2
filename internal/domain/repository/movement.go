package repository

import (
	"context"

	"github.com/avelora/shopfront/internal/domain/model"
)

// MovementRepository queues stock adjustments that failed to persist so the
// reconciler can retry them later.
type MovementRepository interface {
	Enqueue(ctx context.Context, movement *model.StockMovement) error
	// SelectBatchForRetry locks up to limit pending movements for this
	// worker and bumps their attempt counters.
	SelectBatchForRetry(ctx context.Context, limit int) ([]model.StockMovement, error)
	Resolve(ctx context.Context, movementID int64) error
}
