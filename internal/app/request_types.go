package app

import (
	"github.com/Seeka1-GIFT/Shawed-POS-sub001/internal/core"
	"github.com/shopspring/decimal"
)

// AdjustStockRequest is the input for a manual stock adjustment.
type AdjustStockRequest struct {
	ProductID string `json:"product_id"`
	Delta     int    `json:"delta"` // signed; negative removes stock
	Reason    string `json:"reason"`
}

// CreatePurchaseRequest is the input for recording a goods receipt.
type CreatePurchaseRequest struct {
	SupplierID string                   `json:"supplier_id"`
	Notes      string                   `json:"notes"`
	Lines      []core.PurchaseLineInput `json:"lines"`
}

// RecordPaymentRequest is the input for paying down a credit sale.
type RecordPaymentRequest struct {
	Amount decimal.Decimal `json:"amount"`
}
