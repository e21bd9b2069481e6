package core

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// AdvisoryService derives reorder advisories from the live catalog. Pure
// reads; the dashboard and quick-action panels consume its output.
type AdvisoryService interface {
	// GetStockAlerts returns the products at or below their low-stock
	// threshold, the ones fully out of stock, and the ones expiring within
	// horizonDays. Out-of-stock products are not repeated in the low-stock
	// list.
	GetStockAlerts(ctx context.Context, horizonDays int) (*StockAlerts, error)
}

type advisoryService struct {
	pool *pgxpool.Pool
}

// NewAdvisoryService constructs an AdvisoryService backed by PostgreSQL.
func NewAdvisoryService(pool *pgxpool.Pool) AdvisoryService {
	return &advisoryService{pool: pool}
}

func (s *advisoryService) GetStockAlerts(ctx context.Context, horizonDays int) (*StockAlerts, error) {
	if horizonDays <= 0 {
		horizonDays = 30
	}
	horizon := time.Now().AddDate(0, 0, horizonDays)

	rows, err := s.pool.Query(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE is_active = true
		  AND (quantity <= low_stock_threshold OR (expiry_date IS NOT NULL AND expiry_date <= $1))
		ORDER BY name
	`, horizon)
	if err != nil {
		return nil, fmt.Errorf("query stock alerts: %w", err)
	}
	defer rows.Close()

	alerts := &StockAlerts{
		LowStock:   []Product{},
		OutOfStock: []Product{},
		NearExpiry: []Product{},
	}
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.Quantity, &p.BuyPrice, &p.SellPrice,
			&p.LowStockThreshold, &p.ExpiryDate, &p.SupplierID, &p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan alert product: %w", err)
		}
		switch {
		case p.Quantity == 0:
			alerts.OutOfStock = append(alerts.OutOfStock, p)
		case p.Quantity <= p.LowStockThreshold:
			alerts.LowStock = append(alerts.LowStock, p)
		}
		if p.ExpiryDate != nil && !p.ExpiryDate.After(horizon) {
			alerts.NearExpiry = append(alerts.NearExpiry, p)
		}
	}
	return alerts, rows.Err()
}
