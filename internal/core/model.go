package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a catalog entry with live on-hand stock.
// Quantity is kept non-negative by the sale workflow's in-transaction stock
// check and backstopped by a CHECK constraint on the products table.
type Product struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Category          string          `json:"category"`
	Quantity          int             `json:"quantity"`
	BuyPrice          decimal.Decimal `json:"buy_price"`
	SellPrice         decimal.Decimal `json:"sell_price"`
	LowStockThreshold int             `json:"low_stock_threshold"`
	ExpiryDate        *time.Time      `json:"expiry_date,omitempty"`
	SupplierID        *string         `json:"supplier_id,omitempty"`
	IsActive          bool            `json:"is_active"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// ProductInput carries the writable fields of a product.
type ProductInput struct {
	Name              string          `json:"name"`
	Category          string          `json:"category"`
	Quantity          int             `json:"quantity"`
	BuyPrice          decimal.Decimal `json:"buy_price"`
	SellPrice         decimal.Decimal `json:"sell_price"`
	LowStockThreshold int             `json:"low_stock_threshold"`
	ExpiryDate        *time.Time      `json:"expiry_date,omitempty"`
	SupplierID        *string         `json:"supplier_id,omitempty"`
}

// Customer is a reference record for credit sales.
type Customer struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// CustomerInput carries the writable fields of a customer.
type CustomerInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// Supplier is a reference record for products and purchases.
type Supplier struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// SupplierInput carries the writable fields of a supplier.
type SupplierInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// Purchase is a goods receipt from a supplier. Receiving a purchase increments
// product stock and re-derives each product's buy price as a weighted average cost.
type Purchase struct {
	ID         string          `json:"id"`
	SupplierID string          `json:"supplier_id"`
	Total      decimal.Decimal `json:"total"`
	Notes      string          `json:"notes,omitempty"`
	Items      []PurchaseItem  `json:"items"`
	CreatedAt  time.Time       `json:"created_at"`
}

// PurchaseItem is one product line within a purchase.
type PurchaseItem struct {
	ID         int64           `json:"id"`
	PurchaseID string          `json:"purchase_id"`
	ProductID  string          `json:"product_id"`
	Quantity   int             `json:"quantity"`
	UnitCost   decimal.Decimal `json:"unit_cost"`
	LineTotal  decimal.Decimal `json:"line_total"`
}

// PurchaseLineInput is a single line when creating a purchase.
type PurchaseLineInput struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
}

// Movement types recorded in the stock_movements audit trail.
const (
	MovementSale         = "SALE"
	MovementSaleReversal = "SALE_REVERSAL"
	MovementPurchase     = "PURCHASE"
	MovementAdjustment   = "ADJUSTMENT"
)

// StockMovement is one entry in the append-only stock audit trail.
type StockMovement struct {
	ID           int64     `json:"id"`
	ProductID    string    `json:"product_id"`
	MovementType string    `json:"movement_type"`
	Quantity     int       `json:"quantity"` // signed: negative for outbound
	ReferenceID  *string   `json:"reference_id,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// StockAlerts is the reorder advisory output: the product subsets a dashboard
// or quick-action panel needs.
type StockAlerts struct {
	LowStock   []Product `json:"low_stock"`
	OutOfStock []Product `json:"out_of_stock"`
	NearExpiry []Product `json:"near_expiry"`
}
