package billing

import (
	"github.com/shopspring/decimal"

	"laundryhub/internal/domain"
)

type RecordPaymentRequest struct {
	InvoiceID            int64           `json:"invoice_id" binding:"required"`
	Amount               decimal.Decimal `json:"amount" binding:"required"`
	Method               string          `json:"payment_method" binding:"required"`
	Status               string          `json:"status"`
	TransactionReference string          `json:"transaction_reference"`
	Notes                string          `json:"notes"`
}

// UpdatePaymentRequest is partial: nil fields keep their current value.
type UpdatePaymentRequest struct {
	Amount               *decimal.Decimal `json:"amount"`
	Method               *string          `json:"payment_method"`
	Status               *string          `json:"status"`
	TransactionReference *string          `json:"transaction_reference"`
	Notes                *string          `json:"notes"`
}

// PaymentResult is what a payment write returns: the payment, the freshly
// recomputed invoice, and the receipt when one was issued by this write.
type PaymentResult struct {
	Payment domain.Payment  `json:"payment"`
	Invoice domain.Invoice  `json:"invoice"`
	Receipt *domain.Receipt `json:"receipt,omitempty"`
}
