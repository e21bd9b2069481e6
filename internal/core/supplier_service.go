package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SupplierService manages supplier reference records.
type SupplierService interface {
	CreateSupplier(ctx context.Context, input SupplierInput) (*Supplier, error)
	GetSupplier(ctx context.Context, supplierID string) (*Supplier, error)
	GetSuppliers(ctx context.Context) ([]Supplier, error)
}

type supplierService struct {
	pool *pgxpool.Pool
}

// NewSupplierService constructs a SupplierService backed by PostgreSQL.
func NewSupplierService(pool *pgxpool.Pool) SupplierService {
	return &supplierService{pool: pool}
}

func (s *supplierService) CreateSupplier(ctx context.Context, input SupplierInput) (*Supplier, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("supplier name is required")
	}

	var sup Supplier
	err := s.pool.QueryRow(ctx, `
		INSERT INTO suppliers (id, name, email, phone, address)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, email, phone, address, is_active, created_at`,
		uuid.NewString(), input.Name, input.Email, input.Phone, input.Address,
	).Scan(&sup.ID, &sup.Name, &sup.Email, &sup.Phone, &sup.Address, &sup.IsActive, &sup.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create supplier %q: %w", input.Name, err)
	}
	return &sup, nil
}

func (s *supplierService) GetSupplier(ctx context.Context, supplierID string) (*Supplier, error) {
	var sup Supplier
	err := s.pool.QueryRow(ctx, `
		SELECT id, name, email, phone, address, is_active, created_at
		FROM suppliers WHERE id = $1`, supplierID,
	).Scan(&sup.ID, &sup.Name, &sup.Email, &sup.Phone, &sup.Address, &sup.IsActive, &sup.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("supplier %s: %w", supplierID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("fetch supplier %s: %w", supplierID, err)
	}
	return &sup, nil
}

func (s *supplierService) GetSuppliers(ctx context.Context) ([]Supplier, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, email, phone, address, is_active, created_at
		FROM suppliers WHERE is_active = true ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query suppliers: %w", err)
	}
	defer rows.Close()

	var suppliers []Supplier
	for rows.Next() {
		var sup Supplier
		if err := rows.Scan(&sup.ID, &sup.Name, &sup.Email, &sup.Phone, &sup.Address,
			&sup.IsActive, &sup.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		suppliers = append(suppliers, sup)
	}
	return suppliers, rows.Err()
}
