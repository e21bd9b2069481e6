package core_test

import (
	"errors"
	"testing"

	"github.com/Seeka1-GIFT/Shawed-POS-sub001/internal/core"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestSaleCandidate_Totals(t *testing.T) {
	t.Run("PercentDiscountAppliesToSubtotal", func(t *testing.T) {
		// Two lines: 2 × 10.00 and 3 × 5.00 with a 5% discount and no tax.
		c := core.SaleCandidate{
			Items: []core.CandidateItem{
				{ProductID: "p1", Quantity: 2, UnitPrice: dec("10.00")},
				{ProductID: "p2", Quantity: 3, UnitPrice: dec("5.00")},
			},
			Discount:     dec("5"),
			DiscountType: core.DiscountPercent,
		}
		totals := c.Totals()
		assert.True(t, totals.Subtotal.Equal(dec("35.00")), "subtotal = %s", totals.Subtotal)
		assert.True(t, totals.DiscountAmount.Equal(dec("1.75")), "discount = %s", totals.DiscountAmount)
		assert.True(t, totals.Total.Equal(dec("33.25")), "total = %s", totals.Total)
	})

	t.Run("AbsoluteDiscountTakenAsIs", func(t *testing.T) {
		c := core.SaleCandidate{
			Items: []core.CandidateItem{
				{ProductID: "p1", Quantity: 4, UnitPrice: dec("12.50")},
			},
			Discount:     dec("10.00"),
			DiscountType: core.DiscountAbsolute,
			Tax:          dec("2.50"),
		}
		totals := c.Totals()
		assert.True(t, totals.Subtotal.Equal(dec("50.00")))
		assert.True(t, totals.DiscountAmount.Equal(dec("10.00")))
		assert.True(t, totals.Total.Equal(dec("42.50")), "total = subtotal + tax - discount")
	})

	t.Run("EmptyDiscountTypeMeansAbsolute", func(t *testing.T) {
		c := core.SaleCandidate{
			Items:    []core.CandidateItem{{ProductID: "p1", Quantity: 1, UnitPrice: dec("100")}},
			Discount: dec("100"),
		}
		require.NoError(t, c.Validate())
		assert.True(t, c.Totals().Total.IsZero(), "a 100-unit absolute discount on a 100 subtotal zeroes the total")
	})

	t.Run("DiscountAppliedOnceForRepeatedProductLines", func(t *testing.T) {
		// Same product on two lines still contributes once per unit.
		c := core.SaleCandidate{
			Items: []core.CandidateItem{
				{ProductID: "p1", Quantity: 1, UnitPrice: dec("10.00")},
				{ProductID: "p1", Quantity: 1, UnitPrice: dec("10.00")},
			},
			Discount:     dec("50"),
			DiscountType: core.DiscountPercent,
		}
		totals := c.Totals()
		assert.True(t, totals.Subtotal.Equal(dec("20.00")))
		assert.True(t, totals.Total.Equal(dec("10.00")))
	})
}

func TestSaleCandidate_Validate(t *testing.T) {
	valid := func() core.SaleCandidate {
		return core.SaleCandidate{
			Items:      []core.CandidateItem{{ProductID: "p1", Quantity: 1, UnitPrice: dec("1.00")}},
			AmountPaid: dec("1.00"),
		}
	}

	t.Run("EmptyCartRejectedFirst", func(t *testing.T) {
		// An empty cart wins even when other fields are also invalid.
		c := core.SaleCandidate{Discount: dec("-5")}
		assert.ErrorIs(t, c.Validate(), core.ErrEmptyCart)
	})

	t.Run("LineErrorsCarryPosition", func(t *testing.T) {
		c := valid()
		c.Items = append(c.Items, core.CandidateItem{ProductID: "p2", Quantity: 0, UnitPrice: dec("1.00")})
		var invalid *core.InvalidItemError
		require.ErrorAs(t, c.Validate(), &invalid)
		assert.Equal(t, 2, invalid.Line)
	})

	t.Run("MissingProductReference", func(t *testing.T) {
		c := valid()
		c.Items[0].ProductID = ""
		var invalid *core.InvalidItemError
		assert.ErrorAs(t, c.Validate(), &invalid)
	})

	t.Run("NegativeUnitPrice", func(t *testing.T) {
		c := valid()
		c.Items[0].UnitPrice = dec("-0.01")
		var invalid *core.InvalidItemError
		assert.ErrorAs(t, c.Validate(), &invalid)
	})

	t.Run("NegativeHeaderFields", func(t *testing.T) {
		for name, mutate := range map[string]func(*core.SaleCandidate){
			"discount":    func(c *core.SaleCandidate) { c.Discount = dec("-1") },
			"tax":         func(c *core.SaleCandidate) { c.Tax = dec("-1") },
			"amount paid": func(c *core.SaleCandidate) { c.AmountPaid = dec("-1") },
		} {
			c := valid()
			mutate(&c)
			assert.Error(t, c.Validate(), "negative %s must be rejected", name)
		}
	})

	t.Run("PercentDiscountOver100Rejected", func(t *testing.T) {
		c := valid()
		c.Discount = dec("100.01")
		c.DiscountType = core.DiscountPercent
		assert.Error(t, c.Validate())

		c.Discount = dec("100")
		assert.NoError(t, c.Validate(), "exactly 100 percent is allowed")
	})

	t.Run("AbsoluteDiscountOver100Allowed", func(t *testing.T) {
		// A large absolute discount is legal; it is a currency amount, not a rate.
		c := valid()
		c.Discount = dec("250")
		c.DiscountType = core.DiscountAbsolute
		assert.NoError(t, c.Validate())
	})

	t.Run("UnknownDiscountTypeRejected", func(t *testing.T) {
		c := valid()
		c.DiscountType = "fraction"
		var invalid *core.InvalidItemError
		require.ErrorAs(t, c.Validate(), &invalid)
	})
}

func TestIsDomainError(t *testing.T) {
	assert.True(t, core.IsDomainError(core.ErrEmptyCart))
	assert.True(t, core.IsDomainError(core.ErrCreditRequiresCustomer))
	assert.True(t, core.IsDomainError(&core.InsufficientStockError{ProductID: "p1", Available: 1, Requested: 2}))
	assert.True(t, core.IsDomainError(&core.ProductNotFoundError{ProductID: "p1"}))
	assert.False(t, core.IsDomainError(&core.PersistenceError{Op: "commit", Err: errors.New("conn reset")}))
	assert.False(t, core.IsDomainError(errors.New("something else")))
}
