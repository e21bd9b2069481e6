package app

import (
	"context"

	"github.com/Seeka1-GIFT/Shawed-POS-sub001/internal/core"
	"github.com/shopspring/decimal"
)

type appService struct {
	products  core.ProductService
	customers core.CustomerService
	suppliers core.SupplierService
	purchases core.PurchaseService
	sales     core.SaleService
	advisory  core.AdvisoryService
}

// NewAppService constructs an appService that satisfies ApplicationService.
func NewAppService(
	products core.ProductService,
	customers core.CustomerService,
	suppliers core.SupplierService,
	purchases core.PurchaseService,
	sales core.SaleService,
	advisory core.AdvisoryService,
) ApplicationService {
	return &appService{
		products:  products,
		customers: customers,
		suppliers: suppliers,
		purchases: purchases,
		sales:     sales,
		advisory:  advisory,
	}
}

// ── Catalog ──────────────────────────────────────────────────────────────────

func (s *appService) CreateProduct(ctx context.Context, input core.ProductInput) (*core.Product, error) {
	return s.products.CreateProduct(ctx, input)
}

func (s *appService) UpdateProduct(ctx context.Context, productID string, input core.ProductInput) (*core.Product, error) {
	return s.products.UpdateProduct(ctx, productID, input)
}

func (s *appService) GetProduct(ctx context.Context, productID string) (*core.Product, error) {
	return s.products.GetProduct(ctx, productID)
}

func (s *appService) ListProducts(ctx context.Context) (*ProductListResult, error) {
	products, err := s.products.GetProducts(ctx)
	if err != nil {
		return nil, err
	}
	return &ProductListResult{Products: products}, nil
}

func (s *appService) DeleteProduct(ctx context.Context, productID string) error {
	return s.products.DeleteProduct(ctx, productID)
}

func (s *appService) AdjustStock(ctx context.Context, req AdjustStockRequest) (*core.Product, error) {
	return s.products.AdjustStock(ctx, req.ProductID, req.Delta, req.Reason)
}

func (s *appService) GetStockMovements(ctx context.Context, productID string) ([]core.StockMovement, error) {
	return s.products.GetMovements(ctx, productID)
}

// ── Reorder advisory ─────────────────────────────────────────────────────────

func (s *appService) GetStockAlerts(ctx context.Context, horizonDays int) (*core.StockAlerts, error) {
	return s.advisory.GetStockAlerts(ctx, horizonDays)
}

// ── Customers and suppliers ──────────────────────────────────────────────────

func (s *appService) CreateCustomer(ctx context.Context, input core.CustomerInput) (*core.Customer, error) {
	return s.customers.CreateCustomer(ctx, input)
}

func (s *appService) GetCustomer(ctx context.Context, customerID string) (*core.Customer, error) {
	return s.customers.GetCustomer(ctx, customerID)
}

func (s *appService) ListCustomers(ctx context.Context) (*CustomerListResult, error) {
	customers, err := s.customers.GetCustomers(ctx)
	if err != nil {
		return nil, err
	}
	return &CustomerListResult{Customers: customers}, nil
}

func (s *appService) CreateSupplier(ctx context.Context, input core.SupplierInput) (*core.Supplier, error) {
	return s.suppliers.CreateSupplier(ctx, input)
}

func (s *appService) GetSupplier(ctx context.Context, supplierID string) (*core.Supplier, error) {
	return s.suppliers.GetSupplier(ctx, supplierID)
}

func (s *appService) ListSuppliers(ctx context.Context) (*SupplierListResult, error) {
	suppliers, err := s.suppliers.GetSuppliers(ctx)
	if err != nil {
		return nil, err
	}
	return &SupplierListResult{Suppliers: suppliers}, nil
}

// ── Purchases ────────────────────────────────────────────────────────────────

func (s *appService) CreatePurchase(ctx context.Context, req CreatePurchaseRequest) (*core.Purchase, error) {
	return s.purchases.CreatePurchase(ctx, req.SupplierID, req.Lines, req.Notes)
}

func (s *appService) GetPurchase(ctx context.Context, purchaseID string) (*core.Purchase, error) {
	return s.purchases.GetPurchase(ctx, purchaseID)
}

func (s *appService) ListPurchases(ctx context.Context) (*PurchaseListResult, error) {
	purchases, err := s.purchases.GetPurchases(ctx)
	if err != nil {
		return nil, err
	}
	return &PurchaseListResult{Purchases: purchases}, nil
}

// ── Sales ────────────────────────────────────────────────────────────────────

func (s *appService) CompleteSale(ctx context.Context, candidate core.SaleCandidate) (*core.Sale, error) {
	return s.sales.CompleteSale(ctx, candidate)
}

func (s *appService) ReverseSale(ctx context.Context, saleID string) error {
	return s.sales.ReverseSale(ctx, saleID)
}

func (s *appService) RecordPayment(ctx context.Context, saleID string, amount decimal.Decimal) (*core.Sale, error) {
	return s.sales.RecordPayment(ctx, saleID, amount)
}

func (s *appService) GetSale(ctx context.Context, saleID string) (*core.Sale, error) {
	return s.sales.GetSale(ctx, saleID)
}

func (s *appService) ListSales(ctx context.Context, filter core.SaleFilter) (*SaleListResult, error) {
	sales, err := s.sales.GetSales(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &SaleListResult{Sales: sales}, nil
}
