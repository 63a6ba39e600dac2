package test

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/avelora/shopfront/internal/domain/model"
)

// MovementApplyCall stores information about ApplyMovement invocations.
type MovementApplyCall struct {
	MovementID int64
	ProductID  string
	Delta      int
}

// ReconcilerFacadeStub mimics worker interactions with the storefront facade.
type ReconcilerFacadeStub struct {
	Batches          [][]model.StockMovement
	PendingFn        func(context.Context, int) ([]model.StockMovement, error)
	ApplyFn          func(context.Context, model.StockMovement) error
	Applied          []MovementApplyCall
	mu               sync.Mutex
	pendingCallCount int32
}

// Lock exposes internal mutex for external synchronization.
func (s *ReconcilerFacadeStub) Lock() { s.mu.Lock() }

// Unlock releases previously acquired lock.
func (s *ReconcilerFacadeStub) Unlock() { s.mu.Unlock() }

// PendingMovements returns batches from the configured queue.
func (s *ReconcilerFacadeStub) PendingMovements(ctx context.Context, limit int) ([]model.StockMovement, error) {
	if s.PendingFn != nil {
		return s.PendingFn(ctx, limit)
	}
	call := atomic.AddInt32(&s.pendingCallCount, 1)
	if int(call) <= len(s.Batches) {
		return s.Batches[call-1], nil
	}
	time.Sleep(10 * time.Millisecond)
	return nil, nil
}

// ApplyMovement records replay requests.
func (s *ReconcilerFacadeStub) ApplyMovement(ctx context.Context, movement model.StockMovement) error {
	if s.ApplyFn != nil {
		return s.ApplyFn(ctx, movement)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Applied = append(s.Applied, MovementApplyCall{MovementID: movement.ID, ProductID: movement.ProductID, Delta: movement.Delta})
	return nil
}

// NotifierCall stores one notification delivered to TransitionNotifierStub.
type NotifierCall struct {
	OrderID   string
	DisplayID int64
	From      model.OrderStatus
	To        model.OrderStatus
}

// TransitionNotifierStub records transition notifications.
type TransitionNotifierStub struct {
	Err   error
	Calls []NotifierCall
	mu    sync.Mutex
}

// OrderTransitioned records the notification and returns the configured error.
func (s *TransitionNotifierStub) OrderTransitioned(_ context.Context, orderID string, displayID int64, from, to model.OrderStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls = append(s.Calls, NotifierCall{OrderID: orderID, DisplayID: displayID, From: from, To: to})
	return s.Err
}
