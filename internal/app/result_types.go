package app

import "github.com/Seeka1-GIFT/Shawed-POS-sub001/internal/core"

// ProductListResult is returned by ListProducts.
type ProductListResult struct {
	Products []core.Product `json:"products"`
}

// CustomerListResult is returned by ListCustomers.
type CustomerListResult struct {
	Customers []core.Customer `json:"customers"`
}

// SupplierListResult is returned by ListSuppliers.
type SupplierListResult struct {
	Suppliers []core.Supplier `json:"suppliers"`
}

// PurchaseListResult is returned by ListPurchases.
type PurchaseListResult struct {
	Purchases []core.Purchase `json:"purchases"`
}

// SaleListResult is returned by ListSales.
type SaleListResult struct {
	Sales []core.Sale `json:"sales"`
}
