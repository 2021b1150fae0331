package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	InvoiceUnpaid  PaymentStatus = "unpaid"
	InvoicePartial PaymentStatus = "partial"
	InvoicePaid    PaymentStatus = "paid"
)

// Invoice is created together with its order and stays a pure projection
// of the order total and the set of completed payments.
type Invoice struct {
	ID            int64           `json:"id"`
	OrderID       int64           `json:"order_id"`
	InvoiceNumber string          `json:"invoice_number"`
	IssuedDate    time.Time       `json:"issued_date"`
	DueDate       time.Time       `json:"due_date"`
	PaymentStatus PaymentStatus   `json:"payment_status"`
	AmountPaid    decimal.Decimal `json:"amount_paid"`
	BalanceDue    decimal.Decimal `json:"balance_due"`
}

// Recompute derives amount_paid, balance_due and payment_status from the
// order total and the sum of completed payments. It is idempotent; the
// balance never goes negative and is forced to exactly 0 once paid.
func (inv *Invoice) Recompute(orderTotal, completedSum decimal.Decimal) {
	inv.AmountPaid = completedSum.Round(2)
	inv.BalanceDue = orderTotal.Sub(inv.AmountPaid).Round(2)

	switch {
	case inv.AmountPaid.IsZero():
		inv.PaymentStatus = InvoiceUnpaid
	case inv.AmountPaid.GreaterThanOrEqual(orderTotal):
		inv.PaymentStatus = InvoicePaid
		inv.BalanceDue = decimal.NewFromInt(0)
	default:
		inv.PaymentStatus = InvoicePartial
	}
}

type PaymentMethod string

const (
	MethodCash     PaymentMethod = "cash"
	MethodCard     PaymentMethod = "card"
	MethodTransfer PaymentMethod = "transfer"
)

func (m PaymentMethod) Valid() bool {
	return m == MethodCash || m == MethodCard || m == MethodTransfer
}

type PaymentState string

const (
	PaymentPending   PaymentState = "pending"
	PaymentCompleted PaymentState = "completed"
	PaymentFailed    PaymentState = "failed"
)

func (s PaymentState) Valid() bool {
	return s == PaymentPending || s == PaymentCompleted || s == PaymentFailed
}

type Payment struct {
	ID                   int64           `json:"id"`
	InvoiceID            int64           `json:"invoice_id"`
	Amount               decimal.Decimal `json:"amount"`
	Method               PaymentMethod   `json:"payment_method"`
	Status               PaymentState    `json:"status"`
	TransactionReference string          `json:"transaction_reference,omitempty"`
	PaymentDate          time.Time       `json:"payment_date"`
	Notes                string          `json:"notes,omitempty"`
}

// ShouldIssueReceipt is the at-most-once rule for receipts: only a payment
// that just transitioned into completed, and has no receipt yet, gets one.
func ShouldIssueReceipt(prev, next PaymentState, hasReceipt bool) bool {
	return next == PaymentCompleted && prev != PaymentCompleted && !hasReceipt
}

// Receipt is immutable once created; exactly one may exist per payment.
type Receipt struct {
	ID            int64     `json:"id"`
	PaymentID     int64     `json:"payment_id"`
	ReceiptNumber string    `json:"receipt_number"`
	GeneratedDate time.Time `json:"generated_date"`
}
