package core

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// SaleService is the sole authority for turning a cart into a durable sale
// while preserving inventory non-negativity. The stock-sufficiency check and
// the decrement run inside one transaction with the product rows locked, so
// two concurrent sales for the last unit of a product can never both commit.
type SaleService interface {
	// CompleteSale validates the candidate, computes totals, and atomically
	// inserts the sale with its items while decrementing stock. On any domain
	// error no row differs from its pre-call state.
	CompleteSale(ctx context.Context, candidate SaleCandidate) (*Sale, error)

	// ReverseSale undoes a completed sale: restores each item's quantity and
	// deletes the sale record, all in one transaction.
	ReverseSale(ctx context.Context, saleID string) error

	// RecordPayment adds a payment against a credit or partial sale and
	// re-derives its payment status.
	RecordPayment(ctx context.Context, saleID string, amount decimal.Decimal) (*Sale, error)

	GetSale(ctx context.Context, saleID string) (*Sale, error)
	GetSales(ctx context.Context, filter SaleFilter) ([]Sale, error)
}

type saleService struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewSaleService constructs a SaleService backed by PostgreSQL.
func NewSaleService(pool *pgxpool.Pool, logger *zap.Logger) SaleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &saleService{pool: pool, logger: logger}
}

// stockLine is the per-product aggregation of a candidate's items, used for
// locking and decrementing. Candidates may repeat a product across lines; the
// sufficiency check has to see the combined quantity.
type stockLine struct {
	productID string
	quantity  int
}

func aggregateByProduct(items []CandidateItem) []stockLine {
	totals := make(map[string]int, len(items))
	for _, item := range items {
		totals[item.ProductID] += item.Quantity
	}
	lines := make([]stockLine, 0, len(totals))
	for id, qty := range totals {
		lines = append(lines, stockLine{productID: id, quantity: qty})
	}
	// Lock product rows in a stable order so concurrent sales touching the
	// same products cannot deadlock.
	sort.Slice(lines, func(i, j int) bool { return lines[i].productID < lines[j].productID })
	return lines
}

func (s *saleService) CompleteSale(ctx context.Context, candidate SaleCandidate) (*Sale, error) {
	if err := candidate.Validate(); err != nil {
		return nil, err
	}
	totals := candidate.Totals()

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, &PersistenceError{Op: "begin sale transaction", Err: err}
	}
	defer tx.Rollback(ctx)

	// Authoritative stock check: lock every touched product row and verify
	// availability against the combined requested quantity.
	names := make(map[string]string, len(candidate.Items))
	for _, line := range aggregateByProduct(candidate.Items) {
		var name string
		var available int
		err := tx.QueryRow(ctx,
			"SELECT name, quantity FROM products WHERE id = $1 AND is_active = true FOR UPDATE",
			line.productID,
		).Scan(&name, &available)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &ProductNotFoundError{ProductID: line.productID}
		}
		if err != nil {
			return nil, &PersistenceError{Op: "lock product row", Err: err}
		}
		if available < line.quantity {
			return nil, &InsufficientStockError{
				ProductID: line.productID,
				Available: available,
				Requested: line.quantity,
			}
		}
		names[line.productID] = name
	}

	status, amountPaid, err := derivePayment(candidate.CustomerID, totals.Total, candidate.AmountPaid)
	if err != nil {
		return nil, err
	}

	if candidate.CustomerID != nil {
		var exists bool
		if err := tx.QueryRow(ctx,
			"SELECT EXISTS(SELECT 1 FROM customers WHERE id = $1)", *candidate.CustomerID,
		).Scan(&exists); err != nil {
			return nil, &PersistenceError{Op: "resolve customer", Err: err}
		}
		if !exists {
			return nil, &InvalidItemError{Line: 0, Reason: fmt.Sprintf("customer %s not found", *candidate.CustomerID)}
		}
	}

	saleID := uuid.NewString()
	var idempotencyKey *string
	if candidate.IdempotencyKey != "" {
		idempotencyKey = &candidate.IdempotencyKey
	}

	var createdAt time.Time
	err = tx.QueryRow(ctx, `
		INSERT INTO sales (id, customer_id, subtotal, discount, tax, total, payment_method, amount_paid, payment_status, idempotency_key)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (idempotency_key) DO NOTHING
		RETURNING created_at
	`, saleID, candidate.CustomerID, totals.Subtotal, totals.DiscountAmount, totals.Tax, totals.Total,
		candidate.PaymentMethod, amountPaid, string(status), idempotencyKey,
	).Scan(&createdAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrDuplicateSale
	}
	if err != nil {
		return nil, &PersistenceError{Op: "insert sale", Err: err}
	}

	sale := &Sale{
		ID:            saleID,
		CustomerID:    candidate.CustomerID,
		Subtotal:      totals.Subtotal,
		Discount:      totals.DiscountAmount,
		Tax:           totals.Tax,
		Total:         totals.Total,
		PaymentMethod: candidate.PaymentMethod,
		AmountPaid:    amountPaid,
		PaymentStatus: status,
		CreatedAt:     createdAt,
	}

	// Insert line items with the price frozen at sale time.
	for _, item := range candidate.Items {
		lineTotal := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		var itemID int64
		err = tx.QueryRow(ctx, `
			INSERT INTO sale_items (sale_id, product_id, quantity, unit_price, line_total)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`, saleID, item.ProductID, item.Quantity, item.UnitPrice, lineTotal).Scan(&itemID)
		if err != nil {
			return nil, &PersistenceError{Op: "insert sale item", Err: err}
		}
		sale.Items = append(sale.Items, SaleItem{
			ID:          itemID,
			SaleID:      saleID,
			ProductID:   item.ProductID,
			ProductName: names[item.ProductID],
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			LineTotal:   lineTotal,
		})
	}

	// Decrement stock and append audit movements. The rows are already locked,
	// so no other transaction can interleave between check and decrement.
	for _, line := range aggregateByProduct(candidate.Items) {
		_, err = tx.Exec(ctx, `
			UPDATE products SET quantity = quantity - $1, updated_at = NOW() WHERE id = $2
		`, line.quantity, line.productID)
		if err != nil {
			return nil, &PersistenceError{Op: "decrement stock", Err: err}
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO stock_movements (product_id, movement_type, quantity, reference_id, notes)
			VALUES ($1, $2, $3, $4, $5)
		`, line.productID, MovementSale, -line.quantity, saleID,
			fmt.Sprintf("Sold %d × %s", line.quantity, names[line.productID]))
		if err != nil {
			return nil, &PersistenceError{Op: "record sale movement", Err: err}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, &PersistenceError{Op: "commit sale", Err: err}
	}

	s.logger.Info("sale completed",
		zap.String("sale_id", saleID),
		zap.Int("lines", len(sale.Items)),
		zap.String("total", totals.Total.StringFixed(2)),
		zap.String("payment_status", string(status)))
	return sale, nil
}

func (s *saleService) ReverseSale(ctx context.Context, saleID string) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return &PersistenceError{Op: "begin reversal transaction", Err: err}
	}
	defer tx.Rollback(ctx)

	var lockedID string
	err = tx.QueryRow(ctx,
		"SELECT id FROM sales WHERE id = $1 FOR UPDATE", saleID,
	).Scan(&lockedID)
	if errors.Is(err, pgx.ErrNoRows) {
		return &SaleNotFoundError{SaleID: saleID}
	}
	if err != nil {
		return &PersistenceError{Op: "lock sale row", Err: err}
	}

	rows, err := tx.Query(ctx,
		"SELECT product_id, quantity FROM sale_items WHERE sale_id = $1", saleID)
	if err != nil {
		return &PersistenceError{Op: "fetch sale items", Err: err}
	}
	restore := make(map[string]int)
	for rows.Next() {
		var productID string
		var quantity int
		if err := rows.Scan(&productID, &quantity); err != nil {
			rows.Close()
			return &PersistenceError{Op: "scan sale item", Err: err}
		}
		restore[productID] += quantity
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return &PersistenceError{Op: "iterate sale items", Err: err}
	}

	productIDs := make([]string, 0, len(restore))
	for id := range restore {
		productIDs = append(productIDs, id)
	}
	sort.Strings(productIDs)

	for _, productID := range productIDs {
		qty := restore[productID]
		// Lock the row even for an increment so the restore serializes with
		// concurrent sales of the same product.
		var current int
		if err := tx.QueryRow(ctx,
			"SELECT quantity FROM products WHERE id = $1 FOR UPDATE", productID,
		).Scan(&current); err != nil {
			return &PersistenceError{Op: "lock product row for restore", Err: err}
		}
		if _, err := tx.Exec(ctx,
			"UPDATE products SET quantity = quantity + $1, updated_at = NOW() WHERE id = $2",
			qty, productID,
		); err != nil {
			return &PersistenceError{Op: "restore stock", Err: err}
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO stock_movements (product_id, movement_type, quantity, reference_id, notes)
			VALUES ($1, $2, $3, $4, $5)
		`, productID, MovementSaleReversal, qty, saleID,
			fmt.Sprintf("Reversed sale %s: restored %d units", saleID, qty)); err != nil {
			return &PersistenceError{Op: "record reversal movement", Err: err}
		}
	}

	// Cascades to sale_items.
	if _, err := tx.Exec(ctx, "DELETE FROM sales WHERE id = $1", saleID); err != nil {
		return &PersistenceError{Op: "delete sale", Err: err}
	}

	if err := tx.Commit(ctx); err != nil {
		return &PersistenceError{Op: "commit reversal", Err: err}
	}

	s.logger.Info("sale reversed", zap.String("sale_id", saleID), zap.Int("products_restored", len(restore)))
	return nil
}

func (s *saleService) RecordPayment(ctx context.Context, saleID string, amount decimal.Decimal) (*Sale, error) {
	if !amount.IsPositive() {
		return nil, &InvalidItemError{Line: 0, Reason: fmt.Sprintf("payment amount must be positive, got %s", amount)}
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, &PersistenceError{Op: "begin payment transaction", Err: err}
	}
	defer tx.Rollback(ctx)

	var total, paid decimal.Decimal
	err = tx.QueryRow(ctx,
		"SELECT total, amount_paid FROM sales WHERE id = $1 FOR UPDATE", saleID,
	).Scan(&total, &paid)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, &SaleNotFoundError{SaleID: saleID}
	}
	if err != nil {
		return nil, &PersistenceError{Op: "lock sale row", Err: err}
	}

	newPaid := paid.Add(amount)
	status := PaymentPartial
	if newPaid.GreaterThanOrEqual(total) {
		status = PaymentPaid
		newPaid = total
	}

	if _, err := tx.Exec(ctx,
		"UPDATE sales SET amount_paid = $1, payment_status = $2 WHERE id = $3",
		newPaid, string(status), saleID,
	); err != nil {
		return nil, &PersistenceError{Op: "update payment", Err: err}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, &PersistenceError{Op: "commit payment", Err: err}
	}

	s.logger.Info("payment recorded",
		zap.String("sale_id", saleID),
		zap.String("amount", amount.StringFixed(2)),
		zap.String("payment_status", string(status)))
	return s.GetSale(ctx, saleID)
}

// ── Queries ──────────────────────────────────────────────────────────────────

func (s *saleService) GetSale(ctx context.Context, saleID string) (*Sale, error) {
	var sale Sale
	err := s.pool.QueryRow(ctx, `
		SELECT id, customer_id, subtotal, discount, tax, total, payment_method, amount_paid, payment_status, created_at
		FROM sales
		WHERE id = $1
	`, saleID).Scan(
		&sale.ID, &sale.CustomerID, &sale.Subtotal, &sale.Discount, &sale.Tax, &sale.Total,
		&sale.PaymentMethod, &sale.AmountPaid, &sale.PaymentStatus, &sale.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, &SaleNotFoundError{SaleID: saleID}
	}
	if err != nil {
		return nil, &PersistenceError{Op: "fetch sale", Err: err}
	}

	items, err := s.fetchSaleItems(ctx, saleID)
	if err != nil {
		return nil, err
	}
	sale.Items = items
	return &sale, nil
}

func (s *saleService) GetSales(ctx context.Context, filter SaleFilter) ([]Sale, error) {
	query := `
		SELECT id, customer_id, subtotal, discount, tax, total, payment_method, amount_paid, payment_status, created_at
		FROM sales
		WHERE 1=1`
	var args []any
	if filter.CustomerID != "" {
		args = append(args, filter.CustomerID)
		query += fmt.Sprintf(" AND customer_id = $%d", len(args))
	}
	if !filter.From.IsZero() {
		args = append(args, filter.From)
		query += fmt.Sprintf(" AND created_at >= $%d", len(args))
	}
	if !filter.To.IsZero() {
		args = append(args, filter.To)
		query += fmt.Sprintf(" AND created_at < $%d", len(args))
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, &PersistenceError{Op: "query sales", Err: err}
	}
	defer rows.Close()

	var sales []Sale
	for rows.Next() {
		var sale Sale
		if err := rows.Scan(
			&sale.ID, &sale.CustomerID, &sale.Subtotal, &sale.Discount, &sale.Tax, &sale.Total,
			&sale.PaymentMethod, &sale.AmountPaid, &sale.PaymentStatus, &sale.CreatedAt,
		); err != nil {
			return nil, &PersistenceError{Op: "scan sale", Err: err}
		}
		sales = append(sales, sale)
	}
	if err := rows.Err(); err != nil {
		return nil, &PersistenceError{Op: "iterate sales", Err: err}
	}

	for i := range sales {
		items, err := s.fetchSaleItems(ctx, sales[i].ID)
		if err != nil {
			return nil, err
		}
		sales[i].Items = items
	}
	return sales, nil
}

func (s *saleService) fetchSaleItems(ctx context.Context, saleID string) ([]SaleItem, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT si.id, si.sale_id, si.product_id, p.name, si.quantity, si.unit_price, si.line_total
		FROM sale_items si
		JOIN products p ON p.id = si.product_id
		WHERE si.sale_id = $1
		ORDER BY si.id
	`, saleID)
	if err != nil {
		return nil, &PersistenceError{Op: "query sale items", Err: err}
	}
	defer rows.Close()

	var items []SaleItem
	for rows.Next() {
		var item SaleItem
		if err := rows.Scan(&item.ID, &item.SaleID, &item.ProductID, &item.ProductName,
			&item.Quantity, &item.UnitPrice, &item.LineTotal); err != nil {
			return nil, &PersistenceError{Op: "scan sale item", Err: err}
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
