package core

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// SaleTotals is the monetary breakdown of a candidate, computed before any
// persistence happens.
type SaleTotals struct {
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	Tax            decimal.Decimal
	Total          decimal.Decimal
}

// Validate checks the structural preconditions of a candidate in the order the
// processor applies them: empty cart first, then per-line item validity, then
// header fields. It touches no catalog state.
func (c *SaleCandidate) Validate() error {
	if len(c.Items) == 0 {
		return ErrEmptyCart
	}
	for i, item := range c.Items {
		switch {
		case item.ProductID == "":
			return &InvalidItemError{Line: i + 1, Reason: "missing product reference"}
		case item.Quantity <= 0:
			return &InvalidItemError{Line: i + 1, Reason: fmt.Sprintf("quantity must be positive, got %d", item.Quantity)}
		case item.UnitPrice.IsNegative():
			return &InvalidItemError{Line: i + 1, Reason: fmt.Sprintf("unit price cannot be negative, got %s", item.UnitPrice)}
		}
	}
	if c.Discount.IsNegative() {
		return &InvalidItemError{Line: 0, Reason: fmt.Sprintf("discount cannot be negative, got %s", c.Discount)}
	}
	if c.Tax.IsNegative() {
		return &InvalidItemError{Line: 0, Reason: fmt.Sprintf("tax cannot be negative, got %s", c.Tax)}
	}
	if c.AmountPaid.IsNegative() {
		return &InvalidItemError{Line: 0, Reason: fmt.Sprintf("amount paid cannot be negative, got %s", c.AmountPaid)}
	}
	switch c.DiscountType {
	case DiscountPercent:
		if c.Discount.GreaterThan(oneHundred) {
			return &InvalidItemError{Line: 0, Reason: fmt.Sprintf("percent discount cannot exceed 100, got %s", c.Discount)}
		}
	case DiscountAbsolute, "":
		// empty defaults to absolute; zero discount is the common case
	default:
		return &InvalidItemError{Line: 0, Reason: fmt.Sprintf("unknown discount type %q", c.DiscountType)}
	}
	return nil
}

// Totals computes subtotal, discount amount, and total for the candidate.
// total = subtotal + tax - discount. A percent discount applies to the
// subtotal; an absolute discount is taken as-is.
func (c *SaleCandidate) Totals() SaleTotals {
	subtotal := decimal.Zero
	for _, item := range c.Items {
		subtotal = subtotal.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	discountAmount := c.Discount
	if c.DiscountType == DiscountPercent {
		discountAmount = subtotal.Mul(c.Discount).Div(oneHundred)
	}

	return SaleTotals{
		Subtotal:       subtotal,
		DiscountAmount: discountAmount,
		Tax:            c.Tax,
		Total:          subtotal.Add(c.Tax).Sub(discountAmount),
	}
}

// derivePayment resolves the payment status and effective amount paid.
//
// Walk-in policy (no customer): the submitted amount must cover the total —
// otherwise ErrCreditRequiresCustomer — and the recorded amount is clamped to
// the total (overpayment is change handed back, not a balance). With a
// customer, the amount dominates the caller's declared intent: amountPaid >=
// total is Paid regardless, a partial payment is Partial/Credit, and zero is
// Credit.
func derivePayment(customerID *string, total, amountPaid decimal.Decimal) (PaymentStatus, decimal.Decimal, error) {
	if customerID == nil {
		if amountPaid.LessThan(total) {
			return "", decimal.Zero, ErrCreditRequiresCustomer
		}
		return PaymentPaid, total, nil
	}

	switch {
	case amountPaid.GreaterThanOrEqual(total):
		return PaymentPaid, total, nil
	case amountPaid.IsPositive():
		return PaymentPartial, amountPaid, nil
	default:
		return PaymentCredit, decimal.Zero, nil
	}
}
