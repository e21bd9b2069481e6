package core

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDerivePayment(t *testing.T) {
	customer := "cust-1"
	total := decimal.NewFromInt(100)

	t.Run("WalkInMustPayInFull", func(t *testing.T) {
		_, _, err := derivePayment(nil, total, decimal.NewFromInt(99))
		assert.ErrorIs(t, err, ErrCreditRequiresCustomer)

		_, _, err = derivePayment(nil, total, decimal.Zero)
		assert.ErrorIs(t, err, ErrCreditRequiresCustomer)
	})

	t.Run("WalkInOverpaymentClampedToTotal", func(t *testing.T) {
		status, paid, err := derivePayment(nil, total, decimal.NewFromInt(150))
		require.NoError(t, err)
		assert.Equal(t, PaymentPaid, status)
		assert.True(t, paid.Equal(total), "change is handed back, not recorded")
	})

	t.Run("CustomerFullPaymentIsPaid", func(t *testing.T) {
		status, paid, err := derivePayment(&customer, total, total)
		require.NoError(t, err)
		assert.Equal(t, PaymentPaid, status)
		assert.True(t, paid.Equal(total))
	})

	t.Run("CustomerPartialPaymentIsPartial", func(t *testing.T) {
		status, paid, err := derivePayment(&customer, total, decimal.NewFromInt(40))
		require.NoError(t, err)
		assert.Equal(t, PaymentPartial, status)
		assert.True(t, paid.Equal(decimal.NewFromInt(40)))
	})

	t.Run("CustomerZeroPaymentIsCredit", func(t *testing.T) {
		status, paid, err := derivePayment(&customer, total, decimal.Zero)
		require.NoError(t, err)
		assert.Equal(t, PaymentCredit, status)
		assert.True(t, paid.IsZero())
	})
}

func TestAggregateByProduct(t *testing.T) {
	lines := aggregateByProduct([]CandidateItem{
		{ProductID: "b", Quantity: 2},
		{ProductID: "a", Quantity: 1},
		{ProductID: "b", Quantity: 3},
	})
	require.Len(t, lines, 2)
	assert.Equal(t, "a", lines[0].productID, "lines come back sorted by product ID")
	assert.Equal(t, 1, lines[0].quantity)
	assert.Equal(t, "b", lines[1].productID)
	assert.Equal(t, 5, lines[1].quantity, "repeated product lines aggregate")
}
