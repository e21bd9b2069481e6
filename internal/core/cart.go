package core

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Cart assembles a candidate sale on a POS terminal before submission. It is
// purely local: quantities are checked only against the last-known catalog
// snapshot (advisory), and nothing here mutates remote state. The
// authoritative stock check happens inside CompleteSale.
type Cart struct {
	lines []cartLine
}

type cartLine struct {
	productID string
	name      string
	quantity  int
	unitPrice decimal.Decimal
	known     int // last-known catalog quantity, advisory ceiling
}

// NewCart returns an empty cart.
func NewCart() *Cart {
	return &Cart{}
}

// AddItem merges quantity into an existing line for the product, or appends a
// new line priced at the product's current sell price.
func (c *Cart) AddItem(p Product, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("quantity must be positive, got %d", quantity)
	}
	for i := range c.lines {
		if c.lines[i].productID == p.ID {
			return c.SetQuantity(p.ID, c.lines[i].quantity+quantity)
		}
	}
	if quantity > p.Quantity {
		return fmt.Errorf("only %d of %s in stock", p.Quantity, p.Name)
	}
	c.lines = append(c.lines, cartLine{
		productID: p.ID,
		name:      p.Name,
		quantity:  quantity,
		unitPrice: p.SellPrice,
		known:     p.Quantity,
	})
	return nil
}

// SetQuantity replaces the quantity of an existing line. The new quantity must
// be positive and within the last-known catalog quantity.
func (c *Cart) SetQuantity(productID string, quantity int) error {
	for i := range c.lines {
		if c.lines[i].productID != productID {
			continue
		}
		if quantity <= 0 {
			return fmt.Errorf("quantity must be positive, got %d", quantity)
		}
		if quantity > c.lines[i].known {
			return fmt.Errorf("only %d of %s in stock", c.lines[i].known, c.lines[i].name)
		}
		c.lines[i].quantity = quantity
		return nil
	}
	return fmt.Errorf("product %s is not in the cart", productID)
}

// RemoveItem deletes the line for the product. Removing an absent product is
// a no-op.
func (c *Cart) RemoveItem(productID string) {
	for i := range c.lines {
		if c.lines[i].productID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// Len returns the number of distinct lines.
func (c *Cart) Len() int { return len(c.lines) }

// Subtotal returns the provisional sum of line totals.
func (c *Cart) Subtotal() decimal.Decimal {
	subtotal := decimal.Zero
	for _, l := range c.lines {
		subtotal = subtotal.Add(l.unitPrice.Mul(decimal.NewFromInt(int64(l.quantity))))
	}
	return subtotal
}

// BuildCandidate snapshots the cart into a SaleCandidate ready for submission.
// The cart itself is left untouched so a rejected candidate can be corrected
// and resubmitted.
func (c *Cart) BuildCandidate(customerID *string, discount decimal.Decimal, discountType DiscountType,
	tax decimal.Decimal, paymentMethod string, amountPaid decimal.Decimal) SaleCandidate {

	items := make([]CandidateItem, 0, len(c.lines))
	for _, l := range c.lines {
		items = append(items, CandidateItem{
			ProductID: l.productID,
			Quantity:  l.quantity,
			UnitPrice: l.unitPrice,
		})
	}
	return SaleCandidate{
		CustomerID:    customerID,
		Items:         items,
		Discount:      discount,
		DiscountType:  discountType,
		Tax:           tax,
		PaymentMethod: paymentMethod,
		AmountPaid:    amountPaid,
	}
}
