package core

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PurchaseService records goods receipts from suppliers. Receiving a purchase
// is the inverse of completing a sale: the same row locks serialize it against
// concurrent decrements, and the product's buy price is re-derived as the
// weighted average of the old stock and the received units.
type PurchaseService interface {
	CreatePurchase(ctx context.Context, supplierID string, lines []PurchaseLineInput, notes string) (*Purchase, error)
	GetPurchase(ctx context.Context, purchaseID string) (*Purchase, error)
	GetPurchases(ctx context.Context) ([]Purchase, error)
}

type purchaseService struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewPurchaseService constructs a PurchaseService backed by PostgreSQL.
func NewPurchaseService(pool *pgxpool.Pool, logger *zap.Logger) PurchaseService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &purchaseService{pool: pool, logger: logger}
}

func (s *purchaseService) CreatePurchase(ctx context.Context, supplierID string, lines []PurchaseLineInput, notes string) (*Purchase, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("purchase must have at least one line")
	}
	for i, line := range lines {
		if line.ProductID == "" {
			return nil, fmt.Errorf("line %d: missing product reference", i+1)
		}
		if line.Quantity <= 0 {
			return nil, fmt.Errorf("line %d: quantity must be positive, got %d", i+1, line.Quantity)
		}
		if line.UnitCost.IsNegative() {
			return nil, fmt.Errorf("line %d: unit cost cannot be negative, got %s", i+1, line.UnitCost)
		}
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, &PersistenceError{Op: "begin purchase transaction", Err: err}
	}
	defer tx.Rollback(ctx)

	var supplierExists bool
	if err := tx.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM suppliers WHERE id = $1 AND is_active = true)", supplierID,
	).Scan(&supplierExists); err != nil {
		return nil, &PersistenceError{Op: "resolve supplier", Err: err}
	}
	if !supplierExists {
		return nil, fmt.Errorf("supplier %s: %w", supplierID, ErrNotFound)
	}

	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.UnitCost.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	purchaseID := uuid.NewString()
	purchase := &Purchase{ID: purchaseID, SupplierID: supplierID, Total: total, Notes: notes}
	err = tx.QueryRow(ctx, `
		INSERT INTO purchases (id, supplier_id, total, notes)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`, purchaseID, supplierID, total, notes).Scan(&purchase.CreatedAt)
	if err != nil {
		return nil, &PersistenceError{Op: "insert purchase", Err: err}
	}

	// Same stable lock order as the sale path.
	ordered := make([]PurchaseLineInput, len(lines))
	copy(ordered, lines)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ProductID < ordered[j].ProductID })

	for _, line := range ordered {
		var name string
		var oldQty int
		var oldCost decimal.Decimal
		err := tx.QueryRow(ctx,
			"SELECT name, quantity, buy_price FROM products WHERE id = $1 AND is_active = true FOR UPDATE",
			line.ProductID,
		).Scan(&name, &oldQty, &oldCost)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &ProductNotFoundError{ProductID: line.ProductID}
		}
		if err != nil {
			return nil, &PersistenceError{Op: "lock product row", Err: err}
		}

		// Weighted average cost over old stock plus the received units.
		newQty := oldQty + line.Quantity
		oldQtyDec := decimal.NewFromInt(int64(oldQty))
		recvQtyDec := decimal.NewFromInt(int64(line.Quantity))
		newCost := oldQtyDec.Mul(oldCost).Add(recvQtyDec.Mul(line.UnitCost)).
			Div(decimal.NewFromInt(int64(newQty)))

		if _, err := tx.Exec(ctx, `
			UPDATE products SET quantity = $1, buy_price = $2, updated_at = NOW() WHERE id = $3
		`, newQty, newCost, line.ProductID); err != nil {
			return nil, &PersistenceError{Op: "apply receipt", Err: err}
		}

		lineTotal := line.UnitCost.Mul(recvQtyDec)
		var itemID int64
		err = tx.QueryRow(ctx, `
			INSERT INTO purchase_items (purchase_id, product_id, quantity, unit_cost, line_total)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`, purchaseID, line.ProductID, line.Quantity, line.UnitCost, lineTotal).Scan(&itemID)
		if err != nil {
			return nil, &PersistenceError{Op: "insert purchase item", Err: err}
		}
		purchase.Items = append(purchase.Items, PurchaseItem{
			ID:         itemID,
			PurchaseID: purchaseID,
			ProductID:  line.ProductID,
			Quantity:   line.Quantity,
			UnitCost:   line.UnitCost,
			LineTotal:  lineTotal,
		})

		if _, err := tx.Exec(ctx, `
			INSERT INTO stock_movements (product_id, movement_type, quantity, reference_id, notes)
			VALUES ($1, $2, $3, $4, $5)
		`, line.ProductID, MovementPurchase, line.Quantity, purchaseID,
			fmt.Sprintf("Received %d × %s @ %s", line.Quantity, name, line.UnitCost.StringFixed(2))); err != nil {
			return nil, &PersistenceError{Op: "record purchase movement", Err: err}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, &PersistenceError{Op: "commit purchase", Err: err}
	}

	s.logger.Info("purchase received",
		zap.String("purchase_id", purchaseID),
		zap.String("supplier_id", supplierID),
		zap.String("total", total.StringFixed(2)))
	return purchase, nil
}

func (s *purchaseService) GetPurchase(ctx context.Context, purchaseID string) (*Purchase, error) {
	var p Purchase
	err := s.pool.QueryRow(ctx, `
		SELECT id, supplier_id, total, notes, created_at
		FROM purchases WHERE id = $1`, purchaseID,
	).Scan(&p.ID, &p.SupplierID, &p.Total, &p.Notes, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("purchase %s: %w", purchaseID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("fetch purchase %s: %w", purchaseID, err)
	}

	items, err := s.fetchPurchaseItems(ctx, purchaseID)
	if err != nil {
		return nil, err
	}
	p.Items = items
	return &p, nil
}

func (s *purchaseService) GetPurchases(ctx context.Context) ([]Purchase, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, supplier_id, total, notes, created_at
		FROM purchases ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query purchases: %w", err)
	}
	defer rows.Close()

	var purchases []Purchase
	for rows.Next() {
		var p Purchase
		if err := rows.Scan(&p.ID, &p.SupplierID, &p.Total, &p.Notes, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan purchase: %w", err)
		}
		purchases = append(purchases, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range purchases {
		items, err := s.fetchPurchaseItems(ctx, purchases[i].ID)
		if err != nil {
			return nil, err
		}
		purchases[i].Items = items
	}
	return purchases, nil
}

func (s *purchaseService) fetchPurchaseItems(ctx context.Context, purchaseID string) ([]PurchaseItem, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, purchase_id, product_id, quantity, unit_cost, line_total
		FROM purchase_items WHERE purchase_id = $1 ORDER BY id`, purchaseID)
	if err != nil {
		return nil, fmt.Errorf("query purchase items: %w", err)
	}
	defer rows.Close()

	var items []PurchaseItem
	for rows.Next() {
		var item PurchaseItem
		if err := rows.Scan(&item.ID, &item.PurchaseID, &item.ProductID,
			&item.Quantity, &item.UnitCost, &item.LineTotal); err != nil {
			return nil, fmt.Errorf("scan purchase item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
