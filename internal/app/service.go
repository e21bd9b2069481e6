package app

import (
	"context"

	"github.com/Seeka1-GIFT/Shawed-POS-sub001/internal/core"
	"github.com/shopspring/decimal"
)

// ApplicationService is the single interface every adapter (web, CLI) calls.
// It decouples presentation from business logic: implementations contain no
// HTTP types and no display logic of any kind.
type ApplicationService interface {
	// Catalog
	CreateProduct(ctx context.Context, input core.ProductInput) (*core.Product, error)
	UpdateProduct(ctx context.Context, productID string, input core.ProductInput) (*core.Product, error)
	GetProduct(ctx context.Context, productID string) (*core.Product, error)
	ListProducts(ctx context.Context) (*ProductListResult, error)
	DeleteProduct(ctx context.Context, productID string) error
	AdjustStock(ctx context.Context, req AdjustStockRequest) (*core.Product, error)
	GetStockMovements(ctx context.Context, productID string) ([]core.StockMovement, error)

	// Reorder advisory
	GetStockAlerts(ctx context.Context, horizonDays int) (*core.StockAlerts, error)

	// Customers and suppliers
	CreateCustomer(ctx context.Context, input core.CustomerInput) (*core.Customer, error)
	GetCustomer(ctx context.Context, customerID string) (*core.Customer, error)
	ListCustomers(ctx context.Context) (*CustomerListResult, error)
	CreateSupplier(ctx context.Context, input core.SupplierInput) (*core.Supplier, error)
	GetSupplier(ctx context.Context, supplierID string) (*core.Supplier, error)
	ListSuppliers(ctx context.Context) (*SupplierListResult, error)

	// Purchases (goods receipt)
	CreatePurchase(ctx context.Context, req CreatePurchaseRequest) (*core.Purchase, error)
	GetPurchase(ctx context.Context, purchaseID string) (*core.Purchase, error)
	ListPurchases(ctx context.Context) (*PurchaseListResult, error)

	// Sales — the transactional core
	CompleteSale(ctx context.Context, candidate core.SaleCandidate) (*core.Sale, error)
	ReverseSale(ctx context.Context, saleID string) error
	RecordPayment(ctx context.Context, saleID string, amount decimal.Decimal) (*core.Sale, error)
	GetSale(ctx context.Context, saleID string) (*core.Sale, error)
	ListSales(ctx context.Context, filter core.SaleFilter) (*SaleListResult, error)
}
