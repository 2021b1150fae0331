package billing

import (
	"context"
	"time"

	"laundryhub/internal/domain"
	"laundryhub/internal/repository"
)

type BillingRepository interface {
	GetInvoice(ctx context.Context, id int64) (*domain.Invoice, error)
	GetInvoiceByOrderID(ctx context.Context, orderID int64) (*domain.Invoice, error)
	ListInvoices(ctx context.Context) ([]domain.Invoice, error)

	GetPayment(ctx context.Context, id int64) (*domain.Payment, error)
	ListPayments(ctx context.Context, invoiceID int64) ([]domain.Payment, error)
	RecordPayment(ctx context.Context, p *domain.Payment, nextReceiptNumber func() string) (*domain.Receipt, error)
	UpdatePayment(ctx context.Context, p *domain.Payment, nextReceiptNumber func() string) (*domain.Receipt, error)

	GetReceipt(ctx context.Context, id int64) (*domain.Receipt, error)
	GetReceiptByPaymentID(ctx context.Context, paymentID int64) (*domain.Receipt, error)
	ListReceipts(ctx context.Context) ([]domain.Receipt, error)

	PaymentStatistics(ctx context.Context) (*repository.PaymentStats, error)
	ListOverdueInvoices(ctx context.Context, asOf time.Time) ([]repository.OverdueInvoice, error)
}

type NumberGenerator interface {
	Next(prefix string) string
}
