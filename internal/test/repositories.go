package test

import (
	"context"
	"strings"
	"sync"
	"time"

	domainErrors "github.com/avelora/shopfront/internal/domain/errors"
	"github.com/avelora/shopfront/internal/domain/model"
)

// ProductRepositoryStub keeps products in memory and applies stock
// adjustments with the same clamping rules as the real repository.
type ProductRepositoryStub struct {
	GetByIDFn   func(context.Context, string) (*model.Product, error)
	GetByNameFn func(context.Context, string) (*model.Product, error)
	AdjustFn    func(context.Context, string, string, int) (*model.SizeStock, error)

	mu       sync.Mutex
	Products map[string]*model.Product
	Adjusts  []StockAdjustCall
}

// StockAdjustCall records one AdjustStock invocation.
type StockAdjustCall struct {
	ProductID string
	Size      string
	Delta     int
}

// NewProductRepositoryStub constructs a stub preloaded with products.
func NewProductRepositoryStub(products ...*model.Product) *ProductRepositoryStub {
	stub := &ProductRepositoryStub{Products: make(map[string]*model.Product)}
	for _, p := range products {
		stub.Products[p.ID] = p
	}
	return stub
}

// GetByID fetches a product by id or returns not found.
func (s *ProductRepositoryStub) GetByID(ctx context.Context, id string) (*model.Product, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.Products[id]; ok {
		clone := *p
		return &clone, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByName fetches a product by exact name or returns not found.
func (s *ProductRepositoryStub) GetByName(ctx context.Context, name string) (*model.Product, error) {
	if s.GetByNameFn != nil {
		return s.GetByNameFn(ctx, name)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.Products {
		if p.Name == name {
			clone := *p
			return &clone, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// List returns all stored products.
func (s *ProductRepositoryStub) List(ctx context.Context) ([]model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]model.Product, 0, len(s.Products))
	for _, p := range s.Products {
		result = append(result, *p)
	}
	return result, nil
}

// AdjustStock mutates the matching per-size record, or the scalar stock when
// no size matches, clamping at zero.
func (s *ProductRepositoryStub) AdjustStock(ctx context.Context, productID, size string, delta int) (*model.SizeStock, error) {
	s.mu.Lock()
	s.Adjusts = append(s.Adjusts, StockAdjustCall{ProductID: productID, Size: size, Delta: delta})
	s.mu.Unlock()

	if s.AdjustFn != nil {
		return s.AdjustFn(ctx, productID, size, delta)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.Products[productID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}

	normalized := strings.ToLower(strings.TrimSpace(size))
	for i := range p.Inventory {
		if strings.ToLower(strings.TrimSpace(p.Inventory[i].Size)) == normalized {
			next := p.Inventory[i].Quantity + delta
			if next < 0 {
				next = 0
			}
			p.Inventory[i].Quantity = next
			record := p.Inventory[i]
			return &record, nil
		}
	}

	next := p.Stock + delta
	if next < 0 {
		next = 0
	}
	p.Stock = next
	return &model.SizeStock{Size: size, Quantity: next}, nil
}

// QuantityFor reads the current quantity for a (product, size) pair.
func (s *ProductRepositoryStub) QuantityFor(productID, size string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.Products[productID]
	if !ok {
		return 0
	}
	for _, rec := range p.Inventory {
		if rec.Size == size {
			return rec.Quantity
		}
	}
	return p.Stock
}

// OrderRepositoryStub stores orders in memory.
type OrderRepositoryStub struct {
	CreateFn       func(context.Context, *model.Order) error
	GetByIDFn      func(context.Context, string) (*model.Order, error)
	ListFn         func(context.Context) ([]model.Order, error)
	UpdateStatusFn func(context.Context, string, model.OrderStatus) error

	mu            sync.Mutex
	Orders        map[string]*model.Order
	NextDisplayID int64
	StatusUpdates []StatusUpdateCall
}

// StatusUpdateCall records one UpdateStatus invocation.
type StatusUpdateCall struct {
	OrderID string
	Status  model.OrderStatus
}

// NewOrderRepositoryStub constructs an empty in-memory order store.
func NewOrderRepositoryStub() *OrderRepositoryStub {
	return &OrderRepositoryStub{Orders: make(map[string]*model.Order), NextDisplayID: 1}
}

// Create stores the order and assigns a display id.
func (s *OrderRepositoryStub) Create(ctx context.Context, order *model.Order) error {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, order)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.Orders[order.ID]; exists {
		return domainErrors.ErrAlreadyExists
	}
	order.DisplayID = s.NextDisplayID
	s.NextDisplayID++
	order.CreatedAt = time.Now()
	order.UpdatedAt = order.CreatedAt
	clone := *order
	s.Orders[order.ID] = &clone
	return nil
}

// GetByID returns a copy of the stored order.
func (s *OrderRepositoryStub) GetByID(ctx context.Context, id string) (*model.Order, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if o, ok := s.Orders[id]; ok {
		clone := *o
		return &clone, nil
	}
	return nil, domainErrors.ErrNotFound
}

// List returns all stored orders.
func (s *OrderRepositoryStub) List(ctx context.Context) ([]model.Order, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]model.Order, 0, len(s.Orders))
	for _, o := range s.Orders {
		result = append(result, *o)
	}
	return result, nil
}

// UpdateStatus records the call and mutates the stored order.
func (s *OrderRepositoryStub) UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) error {
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, orderID, status)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.StatusUpdates = append(s.StatusUpdates, StatusUpdateCall{OrderID: orderID, Status: status})
	o, ok := s.Orders[orderID]
	if !ok {
		return domainErrors.ErrNotFound
	}
	o.Status = status
	return nil
}

// SaleRepositoryStub appends sales in memory.
type SaleRepositoryStub struct {
	AppendFn func(context.Context, *model.Sale) error

	mu    sync.Mutex
	Sales []model.Sale
	next  int64
}

// Append stores the sale unless an override is configured.
func (s *SaleRepositoryStub) Append(ctx context.Context, sale *model.Sale) error {
	if s.AppendFn != nil {
		return s.AppendFn(ctx, sale)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	sale.ID = s.next
	sale.SoldAt = time.Now()
	s.Sales = append(s.Sales, *sale)
	return nil
}

// List returns recorded sales.
func (s *SaleRepositoryStub) List(ctx context.Context) ([]model.Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]model.Sale, len(s.Sales))
	copy(result, s.Sales)
	return result, nil
}

// Count returns the number of recorded sales.
func (s *SaleRepositoryStub) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Sales)
}

// MovementRepositoryStub queues stock movements in memory.
type MovementRepositoryStub struct {
	EnqueueFn func(context.Context, *model.StockMovement) error
	SelectFn  func(context.Context, int) ([]model.StockMovement, error)
	ResolveFn func(context.Context, int64) error

	mu        sync.Mutex
	Pending   []model.StockMovement
	Resolved  []int64
	next      int64
	selectIdx int
}

// Enqueue stores a movement and assigns an id.
func (s *MovementRepositoryStub) Enqueue(ctx context.Context, movement *model.StockMovement) error {
	if s.EnqueueFn != nil {
		return s.EnqueueFn(ctx, movement)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	movement.ID = s.next
	movement.RequestedAt = time.Now()
	s.Pending = append(s.Pending, *movement)
	return nil
}

// SelectBatchForRetry returns each pending movement exactly once.
func (s *MovementRepositoryStub) SelectBatchForRetry(ctx context.Context, limit int) ([]model.StockMovement, error) {
	if s.SelectFn != nil {
		return s.SelectFn(ctx, limit)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selectIdx >= len(s.Pending) {
		return nil, nil
	}
	end := s.selectIdx + limit
	if end > len(s.Pending) {
		end = len(s.Pending)
	}
	batch := make([]model.StockMovement, end-s.selectIdx)
	copy(batch, s.Pending[s.selectIdx:end])
	s.selectIdx = end
	return batch, nil
}

// Resolve records resolution of a movement.
func (s *MovementRepositoryStub) Resolve(ctx context.Context, movementID int64) error {
	if s.ResolveFn != nil {
		return s.ResolveFn(ctx, movementID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Resolved = append(s.Resolved, movementID)
	return nil
}
