package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus of a completed sale.
type PaymentStatus string

const (
	PaymentPaid    PaymentStatus = "Paid"
	PaymentPartial PaymentStatus = "Partial/Credit"
	PaymentCredit  PaymentStatus = "Credit"
)

// DiscountType declares how SaleCandidate.Discount is interpreted.
// It is explicit on purpose: inferring "percent vs absolute" from the
// magnitude of the value makes a 100-unit absolute discount
// indistinguishable from a 100% one.
type DiscountType string

const (
	DiscountPercent  DiscountType = "percent"
	DiscountAbsolute DiscountType = "absolute"
)

// CandidateItem is one cart line submitted for sale completion.
type CandidateItem struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// SaleCandidate is the boundary input of the sale transaction processor.
// It is assembled client-side (see Cart) and holds no references to live
// catalog state: every authoritative check happens inside CompleteSale.
type SaleCandidate struct {
	CustomerID     *string         `json:"customer_id,omitempty"`
	Items          []CandidateItem `json:"items"`
	Discount       decimal.Decimal `json:"discount"`
	DiscountType   DiscountType    `json:"discount_type"`
	Tax            decimal.Decimal `json:"tax"`
	PaymentMethod  string          `json:"payment_method"`
	AmountPaid     decimal.Decimal `json:"amount_paid"`
	IdempotencyKey string          `json:"idempotency_key,omitempty"`
}

// Sale is a persisted, immutable transaction record. The only permitted
// mutations after creation are payment recording and full reversal.
type Sale struct {
	ID            string          `json:"id"`
	CustomerID    *string         `json:"customer_id,omitempty"`
	Items         []SaleItem      `json:"items"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Discount      decimal.Decimal `json:"discount"`
	Tax           decimal.Decimal `json:"tax"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod string          `json:"payment_method"`
	AmountPaid    decimal.Decimal `json:"amount_paid"`
	PaymentStatus PaymentStatus   `json:"payment_status"`
	CreatedAt     time.Time       `json:"created_at"`
}

// SaleItem is one product line within a sale. UnitPrice and LineTotal are
// frozen at sale time; later catalog price changes never touch them.
type SaleItem struct {
	ID          int64           `json:"id"`
	SaleID      string          `json:"sale_id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"` // snapshot, joined at read time
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// SaleFilter narrows GetSales results. Zero values mean "no filter".
type SaleFilter struct {
	CustomerID string
	From       time.Time
	To         time.Time
}
