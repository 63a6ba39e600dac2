package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/avelora/shopfront/internal/domain/errors"
	"github.com/avelora/shopfront/internal/domain/model"
	"github.com/avelora/shopfront/internal/domain/repository"
)

// pgxPool is the subset of pgxpool.Pool the storage relies on. Kept narrow
// so tests can substitute a mock pool.
type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
}

type productRepository struct {
	storage *Storage
}

type orderRepository struct {
	storage *Storage
}

type saleRepository struct {
	storage *Storage
}

type movementRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Products() repository.ProductRepository {
	return &productRepository{storage: s}
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) Sales() repository.SaleRepository {
	return &saleRepository{storage: s}
}

func (s *Storage) Movements() repository.MovementRepository {
	return &movementRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS products (
            id TEXT PRIMARY KEY,
            name TEXT NOT NULL,
            price DOUBLE PRECISION NOT NULL DEFAULT 0,
            cost_price DOUBLE PRECISION NOT NULL DEFAULT 0,
            is_imported BOOLEAN NOT NULL DEFAULT FALSE,
            stock INT NOT NULL DEFAULT 0
        )`,
		`CREATE TABLE IF NOT EXISTS inventory (
            product_id TEXT NOT NULL REFERENCES products(id),
            size TEXT NOT NULL,
            quantity INT NOT NULL DEFAULT 0,
            PRIMARY KEY (product_id, size)
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id TEXT PRIMARY KEY,
            display_id BIGSERIAL UNIQUE,
            total_amount DOUBLE PRECISION NOT NULL,
            delivery_cost DOUBLE PRECISION NOT NULL DEFAULT 0,
            status TEXT NOT NULL,
            items JSONB NOT NULL,
            customer_info JSONB NOT NULL DEFAULT '{}',
            review_required BOOLEAN NOT NULL DEFAULT FALSE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS sales (
            id BIGSERIAL PRIMARY KEY,
            product_id TEXT NOT NULL,
            quantity INT NOT NULL,
            size TEXT NOT NULL,
            unit_price DOUBLE PRECISION NOT NULL,
            cost_price DOUBLE PRECISION NOT NULL,
            sold_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS stock_movements (
            id BIGSERIAL PRIMARY KEY,
            order_id TEXT NOT NULL,
            product_id TEXT NOT NULL,
            size TEXT NOT NULL,
            delta INT NOT NULL,
            attempts INT NOT NULL DEFAULT 0,
            requested_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_orders_created ON orders(created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_sales_product ON sales(product_id, sold_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_movements_requested ON stock_movements(requested_at)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// --- ProductRepository implementation ---

func (r *productRepository) GetByID(ctx context.Context, id string) (*model.Product, error) {
	const query = `SELECT id, name, price, cost_price, is_imported, stock FROM products WHERE id=$1`
	return r.fetchOne(ctx, query, id)
}

func (r *productRepository) GetByName(ctx context.Context, name string) (*model.Product, error) {
	const query = `SELECT id, name, price, cost_price, is_imported, stock FROM products WHERE name=$1 ORDER BY id LIMIT 1`
	return r.fetchOne(ctx, query, name)
}

func (r *productRepository) fetchOne(ctx context.Context, query string, arg any) (*model.Product, error) {
	var p model.Product
	err := r.storage.pool.QueryRow(ctx, query, arg).Scan(&p.ID, &p.Name, &p.Price, &p.CostPrice, &p.IsImported, &p.Stock)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}

	inventory, err := r.inventoryFor(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	p.Inventory = inventory
	return &p, nil
}

func (r *productRepository) inventoryFor(ctx context.Context, productID string) ([]model.SizeStock, error) {
	const query = `SELECT size, quantity FROM inventory WHERE product_id=$1 ORDER BY size`
	rows, err := r.storage.pool.Query(ctx, query, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.SizeStock
	for rows.Next() {
		var s model.SizeStock
		if err := rows.Scan(&s.Size, &s.Quantity); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *productRepository) List(ctx context.Context) ([]model.Product, error) {
	const productQuery = `SELECT id, name, price, cost_price, is_imported, stock FROM products ORDER BY name`
	rows, err := r.storage.pool.Query(ctx, productQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []model.Product
	index := make(map[string]int)
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.CostPrice, &p.IsImported, &p.Stock); err != nil {
			return nil, err
		}
		index[p.ID] = len(products)
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	const inventoryQuery = `SELECT product_id, size, quantity FROM inventory ORDER BY product_id, size`
	invRows, err := r.storage.pool.Query(ctx, inventoryQuery)
	if err != nil {
		return nil, err
	}
	defer invRows.Close()

	for invRows.Next() {
		var productID string
		var s model.SizeStock
		if err := invRows.Scan(&productID, &s.Size, &s.Quantity); err != nil {
			return nil, err
		}
		if i, ok := index[productID]; ok {
			products[i].Inventory = append(products[i].Inventory, s)
		}
	}
	if err := invRows.Err(); err != nil {
		return nil, err
	}
	return products, nil
}

// AdjustStock applies delta to the matching per-size record, or to the
// scalar stock when no size matches. The UPDATE clamps at zero so a debit
// can never drive a quantity negative; the row lock it takes is the
// serialization point for concurrent orders touching the same record. The
// product total is never stored: it derives from these figures at read time
// (Product.TotalStock), so it cannot drift from the breakdown.
func (r *productRepository) AdjustStock(ctx context.Context, productID, size string, delta int) (*model.SizeStock, error) {
	normalized := normalizeSize(size)

	var record model.SizeStock
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const adjustQuery = `UPDATE inventory
                             SET quantity = GREATEST(0, quantity + $3)
                             WHERE product_id=$1 AND LOWER(BTRIM(size))=$2
                             RETURNING size, quantity`
		err := tx.QueryRow(ctx, adjustQuery, productID, normalized, delta).Scan(&record.Size, &record.Quantity)
		if err == nil {
			return nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return err
		}

		// No per-size record: the scalar stock is the only adjustable figure.
		const scalarQuery = `UPDATE products
                             SET stock = GREATEST(0, stock + $2)
                             WHERE id=$1
                             RETURNING stock`
		if err := tx.QueryRow(ctx, scalarQuery, productID, delta).Scan(&record.Quantity); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrNotFound
			}
			return err
		}
		record.Size = size
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func normalizeSize(size string) string {
	return strings.ToLower(strings.TrimSpace(size))
}

// --- OrderRepository implementation ---

// orderItemRecord is the JSONB shape of an item snapshot.
type orderItemRecord struct {
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	Size        string  `json:"size"`
}

type customerInfoRecord struct {
	Name    string `json:"name,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	Note    string `json:"note,omitempty"`
}

func encodeItems(items []model.OrderItem) ([]byte, error) {
	records := make([]orderItemRecord, 0, len(items))
	for _, it := range items {
		records = append(records, orderItemRecord(it))
	}
	return json.Marshal(records)
}

func decodeItems(raw []byte) ([]model.OrderItem, error) {
	var records []orderItemRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, err
	}
	items := make([]model.OrderItem, 0, len(records))
	for _, rec := range records {
		items = append(items, model.OrderItem(rec))
	}
	return items, nil
}

func (r *orderRepository) Create(ctx context.Context, order *model.Order) error {
	items, err := encodeItems(order.Items)
	if err != nil {
		return fmt.Errorf("encode items: %w", err)
	}
	info, err := json.Marshal(customerInfoRecord(order.CustomerInfo))
	if err != nil {
		return fmt.Errorf("encode customer info: %w", err)
	}

	const query = `INSERT INTO orders (id, total_amount, delivery_cost, status, items, customer_info, review_required)
                   VALUES ($1, $2, $3, $4, $5, $6, $7)
                   RETURNING display_id, created_at, updated_at`

	return r.writeStatusRetrying(order.Status, func(status string) error {
		err := r.storage.pool.QueryRow(ctx, query,
			order.ID, order.TotalAmount, order.DeliveryCost, status, items, info, order.ReviewRequired,
		).Scan(&order.DisplayID, &order.CreatedAt, &order.UpdatedAt)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return domainErrors.ErrAlreadyExists
			}
			return err
		}
		return nil
	})
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*model.Order, error) {
	const query = `SELECT id, display_id, total_amount, delivery_cost, status, items, customer_info, review_required, created_at, updated_at
                   FROM orders WHERE id=$1`
	return r.scanOrder(r.storage.pool.QueryRow(ctx, query, id))
}

func (r *orderRepository) scanOrder(row pgx.Row) (*model.Order, error) {
	var (
		o         model.Order
		rawStatus string
		items     []byte
		info      []byte
	)
	err := row.Scan(&o.ID, &o.DisplayID, &o.TotalAmount, &o.DeliveryCost, &rawStatus, &items, &info, &o.ReviewRequired, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}

	status, err := model.ParseOrderStatus(rawStatus)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domainErrors.ErrInvalidStatus, err)
	}
	o.Status = status

	if o.Items, err = decodeItems(items); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}
	var rec customerInfoRecord
	if err := json.Unmarshal(info, &rec); err != nil {
		return nil, fmt.Errorf("decode customer info: %w", err)
	}
	o.CustomerInfo = model.CustomerInfo(rec)
	return &o, nil
}

func (r *orderRepository) List(ctx context.Context) ([]model.Order, error) {
	const query = `SELECT id, display_id, total_amount, delivery_cost, status, items, customer_info, review_required, created_at, updated_at
                   FROM orders ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		order, err := r.scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) error {
	const query = `UPDATE orders SET status=$1, updated_at=NOW() WHERE id=$2`
	return r.writeStatusRetrying(status, func(candidate string) error {
		tag, err := r.storage.pool.Exec(ctx, query, candidate, orderID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domainErrors.ErrNotFound
		}
		return nil
	})
}

// writeStatusRetrying runs the write with the canonical status casing first
// and falls back to uppercase, then lowercase, when the store rejects the
// value. Any other failure class aborts immediately.
func (r *orderRepository) writeStatusRetrying(status model.OrderStatus, write func(status string) error) error {
	var lastErr error
	for _, candidate := range statusCasings(status) {
		err := write(candidate)
		if err == nil {
			return nil
		}
		if !isEnumRejection(err) {
			return err
		}
		r.storage.logger.Warn("status casing rejected by store",
			slog.String("status", candidate),
			slog.String("error", err.Error()),
		)
		lastErr = err
	}
	return fmt.Errorf("%w: %v", domainErrors.ErrStatusRejected, lastErr)
}

func statusCasings(status model.OrderStatus) []string {
	s := string(status)
	return []string{s, strings.ToUpper(s), strings.ToLower(s)}
}

// isEnumRejection reports whether the error belongs to the "value not
// accepted" class: a check constraint or enum cast refusing the status text.
func isEnumRejection(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	switch pgErr.Code {
	case "23514", "22P02": // check_violation, invalid_text_representation
		return true
	}
	return false
}

// --- SaleRepository implementation ---

func (r *saleRepository) Append(ctx context.Context, sale *model.Sale) error {
	const query = `INSERT INTO sales (product_id, quantity, size, unit_price, cost_price)
                   VALUES ($1, $2, $3, $4, $5)
                   RETURNING id, sold_at`
	return r.storage.pool.QueryRow(ctx, query,
		sale.ProductID, sale.Quantity, sale.Size, sale.UnitPrice, sale.CostPrice,
	).Scan(&sale.ID, &sale.SoldAt)
}

func (r *saleRepository) List(ctx context.Context) ([]model.Sale, error) {
	const query = `SELECT id, product_id, quantity, size, unit_price, cost_price, sold_at
                   FROM sales ORDER BY sold_at DESC`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Sale
	for rows.Next() {
		var s model.Sale
		if err := rows.Scan(&s.ID, &s.ProductID, &s.Quantity, &s.Size, &s.UnitPrice, &s.CostPrice, &s.SoldAt); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// --- MovementRepository implementation ---

func (r *movementRepository) Enqueue(ctx context.Context, movement *model.StockMovement) error {
	const query = `INSERT INTO stock_movements (order_id, product_id, size, delta)
                   VALUES ($1, $2, $3, $4)
                   RETURNING id, requested_at`
	return r.storage.pool.QueryRow(ctx, query,
		movement.OrderID, movement.ProductID, movement.Size, movement.Delta,
	).Scan(&movement.ID, &movement.RequestedAt)
}

func (r *movementRepository) SelectBatchForRetry(ctx context.Context, limit int) ([]model.StockMovement, error) {
	const selectQuery = `SELECT id, order_id, product_id, size, delta, attempts, requested_at
                         FROM stock_movements
                         ORDER BY requested_at
                         LIMIT $1
                         FOR UPDATE SKIP LOCKED`

	var movements []model.StockMovement
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, selectQuery, limit)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var m model.StockMovement
			if err := rows.Scan(&m.ID, &m.OrderID, &m.ProductID, &m.Size, &m.Delta, &m.Attempts, &m.RequestedAt); err != nil {
				return err
			}
			if _, err := tx.Exec(ctx, `UPDATE stock_movements SET attempts = attempts + 1 WHERE id=$1`, m.ID); err != nil {
				return err
			}
			m.Attempts++
			movements = append(movements, m)
		}
		if err := rows.Err(); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return movements, nil
}

func (r *movementRepository) Resolve(ctx context.Context, movementID int64) error {
	const query = `DELETE FROM stock_movements WHERE id=$1`
	tag, err := r.storage.pool.Exec(ctx, query, movementID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}
