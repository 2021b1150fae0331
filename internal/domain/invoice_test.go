package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestInvoiceRecompute_Unpaid(t *testing.T) {
	inv := Invoice{}
	inv.Recompute(d("6500.00"), d("0"))

	assert.Equal(t, InvoiceUnpaid, inv.PaymentStatus)
	assert.True(t, d("0.00").Equal(inv.AmountPaid))
	assert.True(t, d("6500.00").Equal(inv.BalanceDue))
}

func TestInvoiceRecompute_Partial(t *testing.T) {
	inv := Invoice{}
	inv.Recompute(d("6500.00"), d("2000.00"))

	assert.Equal(t, InvoicePartial, inv.PaymentStatus)
	assert.True(t, d("2000.00").Equal(inv.AmountPaid))
	assert.True(t, d("4500.00").Equal(inv.BalanceDue))
}

func TestInvoiceRecompute_Paid(t *testing.T) {
	inv := Invoice{}
	inv.Recompute(d("6500.00"), d("6500.00"))

	assert.Equal(t, InvoicePaid, inv.PaymentStatus)
	assert.True(t, inv.BalanceDue.IsZero())
}

// Overpaying keeps the recorded amount but the balance stays exactly 0,
// never negative.
func TestInvoiceRecompute_Overpaid(t *testing.T) {
	inv := Invoice{}
	inv.Recompute(d("6500.00"), d("7000.00"))

	assert.Equal(t, InvoicePaid, inv.PaymentStatus)
	assert.True(t, d("7000.00").Equal(inv.AmountPaid))
	assert.True(t, inv.BalanceDue.IsZero())
}

func TestInvoiceRecompute_Idempotent(t *testing.T) {
	inv := Invoice{}
	inv.Recompute(d("6500.00"), d("2000.00"))
	first := inv
	inv.Recompute(d("6500.00"), d("2000.00"))

	assert.Equal(t, first.PaymentStatus, inv.PaymentStatus)
	assert.True(t, first.AmountPaid.Equal(inv.AmountPaid))
	assert.True(t, first.BalanceDue.Equal(inv.BalanceDue))
}

// When the order total changes after a payment, the projection moves
// with it: a paid invoice can fall back to partial.
func TestInvoiceRecompute_TotalGrows(t *testing.T) {
	inv := Invoice{}
	inv.Recompute(d("2000.00"), d("2000.00"))
	assert.Equal(t, InvoicePaid, inv.PaymentStatus)

	inv.Recompute(d("3500.00"), d("2000.00"))
	assert.Equal(t, InvoicePartial, inv.PaymentStatus)
	assert.True(t, d("1500.00").Equal(inv.BalanceDue))
}

func TestShouldIssueReceipt(t *testing.T) {
	cases := []struct {
		name       string
		prev, next PaymentState
		hasReceipt bool
		want       bool
	}{
		{"pending to completed", PaymentPending, PaymentCompleted, false, true},
		{"failed to completed", PaymentFailed, PaymentCompleted, false, true},
		{"already completed", PaymentCompleted, PaymentCompleted, false, false},
		{"completed but receipt exists", PaymentPending, PaymentCompleted, true, false},
		{"pending stays pending", PaymentPending, PaymentPending, false, false},
		{"completed to failed", PaymentCompleted, PaymentFailed, false, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ShouldIssueReceipt(tc.prev, tc.next, tc.hasReceipt))
		})
	}
}
