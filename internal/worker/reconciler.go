package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/avelora/shopfront/internal/domain/model"
)

// FulfillmentFacade exposes the subset of application functionality required by the worker.
type FulfillmentFacade interface {
	PendingMovements(ctx context.Context, limit int) ([]model.StockMovement, error)
	ApplyMovement(ctx context.Context, movement model.StockMovement) error
}

// Reconciler drains the queue of deferred stock movements concurrently,
// re-applying ledger adjustments that failed during a transition.
type Reconciler struct {
	facade       FulfillmentFacade
	pollInterval time.Duration
	batchSize    int
	workers      int
	logger       *slog.Logger

	jobs   chan model.StockMovement
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewReconciler constructs the reconciler worker pool.
func NewReconciler(facade FulfillmentFacade, pollInterval time.Duration, batchSize, workers int, logger *slog.Logger) *Reconciler {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &Reconciler{
		facade:       facade,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		workers:      workers,
		logger:       logger,
		jobs:         make(chan model.StockMovement, batchSize*workers),
	}
}

// Start launches background processing. The caller's context is only a
// carrier of values: startup hooks cancel it right after Start returns, so
// the pool runs on a detached context that ends on Stop.
func (r *Reconciler) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	r.cancel = cancel

	for i := 0; i < r.workers; i++ {
		r.wg.Add(1)
		go r.worker(runCtx)
	}

	r.wg.Add(1)
	go r.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (r *Reconciler) Stop() {
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.mu.Unlock()

	r.wg.Wait()
}

func (r *Reconciler) dispatch(ctx context.Context) {
	defer r.wg.Done()
	defer close(r.jobs)
	ticker := time.NewTicker(r.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.fetchAndDispatch(ctx)
		}
	}
}

func (r *Reconciler) fetchAndDispatch(ctx context.Context) {
	movements, err := r.facade.PendingMovements(ctx, r.batchSize)
	if err != nil {
		r.logger.Error("fetch pending stock movements failed", slog.String("error", err.Error()))
		return
	}
	for _, movement := range movements {
		select {
		case <-ctx.Done():
			return
		case r.jobs <- movement:
		}
	}
}

func (r *Reconciler) worker(ctx context.Context) {
	defer r.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case movement, ok := <-r.jobs:
			if !ok {
				return
			}
			r.handleMovement(ctx, movement)
		}
	}
}

func (r *Reconciler) handleMovement(ctx context.Context, movement model.StockMovement) {
	if err := r.facade.ApplyMovement(ctx, movement); err != nil {
		// Stays queued; the next poll picks it up again.
		r.logger.Error("stock movement retry failed",
			slog.Int64("movement", movement.ID),
			slog.String("product", movement.ProductID),
			slog.String("size", movement.Size),
			slog.Int("attempts", movement.Attempts),
			slog.String("error", err.Error()),
		)
		return
	}
	r.logger.Info("stock movement reconciled",
		slog.Int64("movement", movement.ID),
		slog.String("order", movement.OrderID),
		slog.String("product", movement.ProductID),
		slog.Int("delta", movement.Delta),
	)
}
