package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// ProductService manages the product catalog and manual stock adjustments.
// Sale-driven decrements live in SaleService; purchase-driven increments in
// PurchaseService. All three serialize on the same product row locks.
type ProductService interface {
	CreateProduct(ctx context.Context, input ProductInput) (*Product, error)
	UpdateProduct(ctx context.Context, productID string, input ProductInput) (*Product, error)
	GetProduct(ctx context.Context, productID string) (*Product, error)
	GetProducts(ctx context.Context) ([]Product, error)
	// DeleteProduct deactivates a product. Rows are kept because historical
	// sale items reference them.
	DeleteProduct(ctx context.Context, productID string) error
	// AdjustStock applies a signed quantity delta (stock take, breakage,
	// correction) and records an ADJUSTMENT movement. The resulting quantity
	// must stay non-negative.
	AdjustStock(ctx context.Context, productID string, delta int, reason string) (*Product, error)
	GetMovements(ctx context.Context, productID string) ([]StockMovement, error)
}

type productService struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewProductService constructs a ProductService backed by PostgreSQL.
func NewProductService(pool *pgxpool.Pool, logger *zap.Logger) ProductService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &productService{pool: pool, logger: logger}
}

func validateProductInput(input ProductInput) error {
	if input.Name == "" {
		return fmt.Errorf("product name is required")
	}
	if input.Quantity < 0 {
		return fmt.Errorf("quantity cannot be negative, got %d", input.Quantity)
	}
	if input.BuyPrice.IsNegative() {
		return fmt.Errorf("buy price cannot be negative, got %s", input.BuyPrice)
	}
	if input.SellPrice.IsNegative() {
		return fmt.Errorf("sell price cannot be negative, got %s", input.SellPrice)
	}
	if input.LowStockThreshold < 0 {
		return fmt.Errorf("low stock threshold cannot be negative, got %d", input.LowStockThreshold)
	}
	return nil
}

const productColumns = `id, name, category, quantity, buy_price, sell_price,
	low_stock_threshold, expiry_date, supplier_id, is_active, created_at, updated_at`

func scanProduct(row pgx.Row) (*Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.Name, &p.Category, &p.Quantity, &p.BuyPrice, &p.SellPrice,
		&p.LowStockThreshold, &p.ExpiryDate, &p.SupplierID, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *productService) CreateProduct(ctx context.Context, input ProductInput) (*Product, error) {
	if err := validateProductInput(input); err != nil {
		return nil, err
	}
	threshold := input.LowStockThreshold
	if threshold == 0 {
		threshold = 5
	}

	p, err := scanProduct(s.pool.QueryRow(ctx, `
		INSERT INTO products (id, name, category, quantity, buy_price, sell_price, low_stock_threshold, expiry_date, supplier_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+productColumns,
		uuid.NewString(), input.Name, input.Category, input.Quantity,
		input.BuyPrice, input.SellPrice, threshold, input.ExpiryDate, input.SupplierID,
	))
	if err != nil {
		return nil, fmt.Errorf("create product %q: %w", input.Name, err)
	}
	s.logger.Info("product created", zap.String("product_id", p.ID), zap.String("name", p.Name))
	return p, nil
}

func (s *productService) UpdateProduct(ctx context.Context, productID string, input ProductInput) (*Product, error) {
	if err := validateProductInput(input); err != nil {
		return nil, err
	}

	p, err := scanProduct(s.pool.QueryRow(ctx, `
		UPDATE products
		SET name = $1, category = $2, quantity = $3, buy_price = $4, sell_price = $5,
		    low_stock_threshold = $6, expiry_date = $7, supplier_id = $8, updated_at = NOW()
		WHERE id = $9 AND is_active = true
		RETURNING `+productColumns,
		input.Name, input.Category, input.Quantity, input.BuyPrice, input.SellPrice,
		input.LowStockThreshold, input.ExpiryDate, input.SupplierID, productID,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, &ProductNotFoundError{ProductID: productID}
	}
	if err != nil {
		return nil, fmt.Errorf("update product %s: %w", productID, err)
	}
	return p, nil
}

func (s *productService) GetProduct(ctx context.Context, productID string) (*Product, error) {
	p, err := scanProduct(s.pool.QueryRow(ctx,
		"SELECT "+productColumns+" FROM products WHERE id = $1 AND is_active = true", productID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, &ProductNotFoundError{ProductID: productID}
	}
	if err != nil {
		return nil, fmt.Errorf("fetch product %s: %w", productID, err)
	}
	return p, nil
}

func (s *productService) GetProducts(ctx context.Context) ([]Product, error) {
	rows, err := s.pool.Query(ctx,
		"SELECT "+productColumns+" FROM products WHERE is_active = true ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.Quantity, &p.BuyPrice, &p.SellPrice,
			&p.LowStockThreshold, &p.ExpiryDate, &p.SupplierID, &p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (s *productService) DeleteProduct(ctx context.Context, productID string) error {
	tag, err := s.pool.Exec(ctx,
		"UPDATE products SET is_active = false, updated_at = NOW() WHERE id = $1 AND is_active = true",
		productID)
	if err != nil {
		return fmt.Errorf("deactivate product %s: %w", productID, err)
	}
	if tag.RowsAffected() == 0 {
		return &ProductNotFoundError{ProductID: productID}
	}
	return nil
}

func (s *productService) AdjustStock(ctx context.Context, productID string, delta int, reason string) (*Product, error) {
	if delta == 0 {
		return nil, fmt.Errorf("adjustment delta cannot be zero")
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, &PersistenceError{Op: "begin adjustment transaction", Err: err}
	}
	defer tx.Rollback(ctx)

	var current int
	err = tx.QueryRow(ctx,
		"SELECT quantity FROM products WHERE id = $1 AND is_active = true FOR UPDATE",
		productID,
	).Scan(&current)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, &ProductNotFoundError{ProductID: productID}
	}
	if err != nil {
		return nil, &PersistenceError{Op: "lock product row", Err: err}
	}

	if current+delta < 0 {
		return nil, &InsufficientStockError{ProductID: productID, Available: current, Requested: -delta}
	}

	p, err := scanProduct(tx.QueryRow(ctx, `
		UPDATE products SET quantity = quantity + $1, updated_at = NOW()
		WHERE id = $2
		RETURNING `+productColumns, delta, productID))
	if err != nil {
		return nil, &PersistenceError{Op: "apply adjustment", Err: err}
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO stock_movements (product_id, movement_type, quantity, notes)
		VALUES ($1, $2, $3, $4)
	`, productID, MovementAdjustment, delta, reason); err != nil {
		return nil, &PersistenceError{Op: "record adjustment movement", Err: err}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, &PersistenceError{Op: "commit adjustment", Err: err}
	}

	s.logger.Info("stock adjusted",
		zap.String("product_id", productID), zap.Int("delta", delta), zap.String("reason", reason))
	return p, nil
}

func (s *productService) GetMovements(ctx context.Context, productID string) ([]StockMovement, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, product_id, movement_type, quantity, reference_id, notes, created_at
		FROM stock_movements
		WHERE product_id = $1
		ORDER BY id DESC
	`, productID)
	if err != nil {
		return nil, fmt.Errorf("query movements for product %s: %w", productID, err)
	}
	defer rows.Close()

	var movements []StockMovement
	for rows.Next() {
		var m StockMovement
		if err := rows.Scan(&m.ID, &m.ProductID, &m.MovementType, &m.Quantity,
			&m.ReferenceID, &m.Notes, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		movements = append(movements, m)
	}
	return movements, rows.Err()
}
