package billing

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"laundryhub/internal/domain"
	"laundryhub/internal/pkg/sequence"
	"laundryhub/internal/repository"
)

type Service struct {
	repo    BillingRepository
	numbers NumberGenerator
}

func NewService(repo BillingRepository, numbers NumberGenerator) *Service {
	return &Service{repo: repo, numbers: numbers}
}

// RecordPayment creates a payment and runs the write pipeline: the
// payment row, the ledger recompute and any receipt issuance commit or
// fail together. Overpayment is allowed; the invoice balance floors at 0.
func (s *Service) RecordPayment(ctx context.Context, req RecordPaymentRequest) (*PaymentResult, error) {
	method := domain.PaymentMethod(req.Method)
	if !method.Valid() {
		return nil, ErrValidation
	}

	status := domain.PaymentState(req.Status)
	if req.Status == "" {
		status = domain.PaymentPending
	}
	if !status.Valid() {
		return nil, ErrValidation
	}

	if req.Amount.IsNegative() || req.Amount.IsZero() {
		return nil, ErrValidation
	}

	if _, err := s.repo.GetInvoice(ctx, req.InvoiceID); err != nil {
		return nil, notFoundOr(err)
	}

	ref := req.TransactionReference
	if ref == "" {
		ref = uuid.NewString()
	}

	p := &domain.Payment{
		InvoiceID:            req.InvoiceID,
		Amount:               req.Amount.Round(2),
		Method:               method,
		Status:               status,
		TransactionReference: ref,
		PaymentDate:          time.Now().UTC(),
		Notes:                req.Notes,
	}

	receipt, err := s.repo.RecordPayment(ctx, p, s.nextReceiptNumber)
	if err != nil {
		return nil, err
	}

	inv, err := s.repo.GetInvoice(ctx, p.InvoiceID)
	if err != nil {
		return nil, err
	}

	return &PaymentResult{Payment: *p, Invoice: *inv, Receipt: receipt}, nil
}

// UpdatePayment rewrites a payment. The ledger recomputes regardless of
// which field changed; a receipt is issued only on the transition into
// completed, at most once per payment.
func (s *Service) UpdatePayment(ctx context.Context, paymentID int64, req UpdatePaymentRequest) (*PaymentResult, error) {
	p, err := s.repo.GetPayment(ctx, paymentID)
	if err != nil {
		return nil, notFoundOr(err)
	}

	if req.Amount != nil {
		if req.Amount.IsNegative() || req.Amount.IsZero() {
			return nil, ErrValidation
		}
		p.Amount = req.Amount.Round(2)
	}
	if req.Method != nil {
		method := domain.PaymentMethod(*req.Method)
		if !method.Valid() {
			return nil, ErrValidation
		}
		p.Method = method
	}
	if req.Status != nil {
		status := domain.PaymentState(*req.Status)
		if !status.Valid() {
			return nil, ErrValidation
		}
		p.Status = status
	}
	if req.TransactionReference != nil {
		p.TransactionReference = *req.TransactionReference
	}
	if req.Notes != nil {
		p.Notes = *req.Notes
	}

	receipt, err := s.repo.UpdatePayment(ctx, p, s.nextReceiptNumber)
	if err != nil {
		return nil, notFoundOr(err)
	}

	inv, err := s.repo.GetInvoice(ctx, p.InvoiceID)
	if err != nil {
		return nil, err
	}

	return &PaymentResult{Payment: *p, Invoice: *inv, Receipt: receipt}, nil
}

func (s *Service) GetInvoice(ctx context.Context, id int64) (*domain.Invoice, error) {
	inv, err := s.repo.GetInvoice(ctx, id)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return inv, nil
}

func (s *Service) ListInvoices(ctx context.Context) ([]domain.Invoice, error) {
	return s.repo.ListInvoices(ctx)
}

// PaymentHistory lists every payment recorded against an invoice, newest
// first.
func (s *Service) PaymentHistory(ctx context.Context, invoiceID int64) ([]domain.Payment, error) {
	if _, err := s.repo.GetInvoice(ctx, invoiceID); err != nil {
		return nil, notFoundOr(err)
	}
	return s.repo.ListPayments(ctx, invoiceID)
}

func (s *Service) GetPayment(ctx context.Context, id int64) (*domain.Payment, error) {
	p, err := s.repo.GetPayment(ctx, id)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return p, nil
}

func (s *Service) GetReceiptForPayment(ctx context.Context, paymentID int64) (*domain.Receipt, error) {
	r, err := s.repo.GetReceiptByPaymentID(ctx, paymentID)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return r, nil
}

func (s *Service) GetReceipt(ctx context.Context, id int64) (*domain.Receipt, error) {
	r, err := s.repo.GetReceipt(ctx, id)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return r, nil
}

func (s *Service) ListReceipts(ctx context.Context) ([]domain.Receipt, error) {
	return s.repo.ListReceipts(ctx)
}

func (s *Service) PaymentStatistics(ctx context.Context) (*repository.PaymentStats, error) {
	return s.repo.PaymentStatistics(ctx)
}

func (s *Service) nextReceiptNumber() string {
	return s.numbers.Next(sequence.ReceiptPrefix)
}

func notFoundOr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
