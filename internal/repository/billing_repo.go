package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"laundryhub/internal/domain"
)

type BillingRepository struct {
	db *gorm.DB
}

func NewBillingRepository(db *gorm.DB) *BillingRepository {
	return &BillingRepository{db: db}
}

type invoiceModel struct {
	ID            int64           `gorm:"column:id;primaryKey"`
	OrderID       int64           `gorm:"column:order_id;uniqueIndex"`
	InvoiceNumber string          `gorm:"column:invoice_number;uniqueIndex;size:20"`
	IssuedDate    time.Time       `gorm:"column:issued_date"`
	DueDate       time.Time       `gorm:"column:due_date;index"`
	PaymentStatus string          `gorm:"column:payment_status;size:20;index"`
	AmountPaid    decimal.Decimal `gorm:"column:amount_paid;type:decimal(10,2)"`
	BalanceDue    decimal.Decimal `gorm:"column:balance_due;type:decimal(10,2)"`
}

func (invoiceModel) TableName() string { return "invoices" }

type paymentModel struct {
	ID                   int64           `gorm:"column:id;primaryKey"`
	InvoiceID            int64           `gorm:"column:invoice_id;index"`
	Amount               decimal.Decimal `gorm:"column:amount;type:decimal(10,2)"`
	Method               string          `gorm:"column:payment_method;size:20"`
	Status               string          `gorm:"column:status;size:20;index"`
	TransactionReference string          `gorm:"column:transaction_reference;size:100"`
	PaymentDate          time.Time       `gorm:"column:payment_date"`
	Notes                string          `gorm:"column:notes"`
}

func (paymentModel) TableName() string { return "payments" }

type receiptModel struct {
	ID            int64     `gorm:"column:id;primaryKey"`
	PaymentID     int64     `gorm:"column:payment_id;uniqueIndex"`
	ReceiptNumber string    `gorm:"column:receipt_number;uniqueIndex;size:20"`
	GeneratedDate time.Time `gorm:"column:generated_date"`
}

func (receiptModel) TableName() string { return "receipts" }

func toDomainInvoice(m invoiceModel) *domain.Invoice {
	return &domain.Invoice{
		ID:            m.ID,
		OrderID:       m.OrderID,
		InvoiceNumber: m.InvoiceNumber,
		IssuedDate:    m.IssuedDate,
		DueDate:       m.DueDate,
		PaymentStatus: domain.PaymentStatus(m.PaymentStatus),
		AmountPaid:    m.AmountPaid,
		BalanceDue:    m.BalanceDue,
	}
}

func toInvoiceModel(inv *domain.Invoice) invoiceModel {
	return invoiceModel{
		ID:            inv.ID,
		OrderID:       inv.OrderID,
		InvoiceNumber: inv.InvoiceNumber,
		IssuedDate:    inv.IssuedDate,
		DueDate:       inv.DueDate,
		PaymentStatus: string(inv.PaymentStatus),
		AmountPaid:    inv.AmountPaid,
		BalanceDue:    inv.BalanceDue,
	}
}

func toDomainPayment(m paymentModel) *domain.Payment {
	return &domain.Payment{
		ID:                   m.ID,
		InvoiceID:            m.InvoiceID,
		Amount:               m.Amount,
		Method:               domain.PaymentMethod(m.Method),
		Status:               domain.PaymentState(m.Status),
		TransactionReference: m.TransactionReference,
		PaymentDate:          m.PaymentDate,
		Notes:                m.Notes,
	}
}

func toPaymentModel(p *domain.Payment) paymentModel {
	return paymentModel{
		ID:                   p.ID,
		InvoiceID:            p.InvoiceID,
		Amount:               p.Amount,
		Method:               string(p.Method),
		Status:               string(p.Status),
		TransactionReference: p.TransactionReference,
		PaymentDate:          p.PaymentDate,
		Notes:                p.Notes,
	}
}

func toDomainReceipt(m receiptModel) *domain.Receipt {
	return &domain.Receipt{
		ID:            m.ID,
		PaymentID:     m.PaymentID,
		ReceiptNumber: m.ReceiptNumber,
		GeneratedDate: m.GeneratedDate,
	}
}

func (r *BillingRepository) GetInvoice(ctx context.Context, id int64) (*domain.Invoice, error) {
	var m invoiceModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainInvoice(m), nil
}

func (r *BillingRepository) GetInvoiceByOrderID(ctx context.Context, orderID int64) (*domain.Invoice, error) {
	var m invoiceModel
	tx := r.db.WithContext(ctx).Where("order_id = ?", orderID).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainInvoice(m), nil
}

func (r *BillingRepository) ListInvoices(ctx context.Context) ([]domain.Invoice, error) {
	var ms []invoiceModel
	tx := r.db.WithContext(ctx).Order("issued_date DESC").Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.Invoice, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainInvoice(m))
	}
	return out, nil
}

func (r *BillingRepository) GetPayment(ctx context.Context, id int64) (*domain.Payment, error) {
	var m paymentModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainPayment(m), nil
}

func (r *BillingRepository) ListPayments(ctx context.Context, invoiceID int64) ([]domain.Payment, error) {
	var ms []paymentModel
	tx := r.db.WithContext(ctx).Where("invoice_id = ?", invoiceID).
		Order("payment_date DESC").Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.Payment, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainPayment(m))
	}
	return out, nil
}

// RecordPayment runs the whole write pipeline in one transaction:
// insert the payment, recompute the invoice ledger, and issue a receipt
// when the payment lands directly in completed. The invoice row is locked
// so concurrent writers on the same aggregate serialize.
func (r *BillingRepository) RecordPayment(ctx context.Context, p *domain.Payment, nextReceiptNumber func() string) (*domain.Receipt, error) {
	var receipt *domain.Receipt
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ivm invoiceModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&ivm, p.InvoiceID).Error; err != nil {
			return err
		}

		pm := toPaymentModel(p)
		if err := tx.Create(&pm).Error; err != nil {
			return err
		}
		*p = *toDomainPayment(pm)

		orderTotal, err := orderTotalAmount(tx, ivm.OrderID)
		if err != nil {
			return err
		}
		if err := recomputeInvoiceDerived(tx, &ivm, orderTotal); err != nil {
			return err
		}

		if domain.ShouldIssueReceipt(domain.PaymentPending, p.Status, false) {
			receipt, err = issueReceipt(tx, p.ID, nextReceiptNumber())
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return receipt, nil
}

// UpdatePayment rewrites a payment and re-runs the same pipeline. The
// ledger recomputes unconditionally; the receipt is issued only when this
// update is the transition into completed and none exists yet.
func (r *BillingRepository) UpdatePayment(ctx context.Context, p *domain.Payment, nextReceiptNumber func() string) (*domain.Receipt, error) {
	var receipt *domain.Receipt
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ivm invoiceModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&ivm, p.InvoiceID).Error; err != nil {
			return err
		}

		var prev paymentModel
		if err := tx.First(&prev, p.ID).Error; err != nil {
			return err
		}
		prevStatus := domain.PaymentState(prev.Status)

		if err := tx.Model(&paymentModel{}).Where("id = ?", p.ID).
			Updates(map[string]any{
				"amount":                p.Amount,
				"payment_method":        string(p.Method),
				"status":                string(p.Status),
				"transaction_reference": p.TransactionReference,
				"notes":                 p.Notes,
			}).Error; err != nil {
			return err
		}

		orderTotal, err := orderTotalAmount(tx, ivm.OrderID)
		if err != nil {
			return err
		}
		if err := recomputeInvoiceDerived(tx, &ivm, orderTotal); err != nil {
			return err
		}

		var receiptCnt int64
		if err := tx.Model(&receiptModel{}).Where("payment_id = ?", p.ID).
			Count(&receiptCnt).Error; err != nil {
			return err
		}
		if domain.ShouldIssueReceipt(prevStatus, p.Status, receiptCnt > 0) {
			receipt, err = issueReceipt(tx, p.ID, nextReceiptNumber())
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return receipt, nil
}

func orderTotalAmount(tx *gorm.DB, orderID int64) (decimal.Decimal, error) {
	var om orderModel
	if err := tx.First(&om, orderID).Error; err != nil {
		return decimal.Decimal{}, err
	}
	return om.TotalAmount, nil
}

// recomputeInvoiceDerived re-derives amount_paid, balance_due and
// payment_status from the completed payments under the invoice. Shared by
// the payment pipeline and the order-total recompute.
func recomputeInvoiceDerived(tx *gorm.DB, ivm *invoiceModel, orderTotal decimal.Decimal) error {
	var sum decimal.NullDecimal
	if err := tx.Model(&paymentModel{}).
		Where("invoice_id = ? AND status = ?", ivm.ID, string(domain.PaymentCompleted)).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&sum).Error; err != nil {
		return err
	}

	inv := toDomainInvoice(*ivm)
	inv.Recompute(orderTotal, sum.Decimal)

	if err := tx.Model(&invoiceModel{}).Where("id = ?", ivm.ID).
		Updates(map[string]any{
			"amount_paid":    inv.AmountPaid,
			"balance_due":    inv.BalanceDue,
			"payment_status": string(inv.PaymentStatus),
		}).Error; err != nil {
		return err
	}

	ivm.AmountPaid = inv.AmountPaid
	ivm.BalanceDue = inv.BalanceDue
	ivm.PaymentStatus = string(inv.PaymentStatus)
	return nil
}

func issueReceipt(tx *gorm.DB, paymentID int64, number string) (*domain.Receipt, error) {
	m := receiptModel{
		PaymentID:     paymentID,
		ReceiptNumber: number,
		GeneratedDate: time.Now().UTC(),
	}
	if err := tx.Create(&m).Error; err != nil {
		return nil, err
	}
	return toDomainReceipt(m), nil
}

func (r *BillingRepository) GetReceipt(ctx context.Context, id int64) (*domain.Receipt, error) {
	var m receiptModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainReceipt(m), nil
}

func (r *BillingRepository) GetReceiptByPaymentID(ctx context.Context, paymentID int64) (*domain.Receipt, error) {
	var m receiptModel
	tx := r.db.WithContext(ctx).Where("payment_id = ?", paymentID).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainReceipt(m), nil
}

func (r *BillingRepository) ListReceipts(ctx context.Context) ([]domain.Receipt, error) {
	var ms []receiptModel
	tx := r.db.WithContext(ctx).Order("generated_date DESC").Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.Receipt, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainReceipt(m))
	}
	return out, nil
}

type PaymentStats struct {
	TotalPayments   decimal.Decimal `json:"total_payments"`
	PendingPayments int64           `json:"pending_payments"`
}

func (r *BillingRepository) PaymentStatistics(ctx context.Context) (*PaymentStats, error) {
	var stats PaymentStats
	db := r.db.WithContext(ctx)

	var total decimal.NullDecimal
	if err := db.Model(&paymentModel{}).
		Where("status = ?", string(domain.PaymentCompleted)).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error; err != nil {
		return nil, err
	}
	stats.TotalPayments = total.Decimal

	if err := db.Model(&paymentModel{}).
		Where("status = ?", string(domain.PaymentPending)).
		Count(&stats.PendingPayments).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}

// OverdueInvoice carries what the reminder job needs to text a customer.
type OverdueInvoice struct {
	InvoiceNumber string          `gorm:"column:invoice_number"`
	OrderNumber   string          `gorm:"column:order_number"`
	BalanceDue    decimal.Decimal `gorm:"column:balance_due"`
	DueDate       time.Time       `gorm:"column:due_date"`
	CustomerName  string          `gorm:"column:customer_name"`
	CustomerPhone string          `gorm:"column:customer_phone"`
}

func (r *BillingRepository) ListOverdueInvoices(ctx context.Context, asOf time.Time) ([]OverdueInvoice, error) {
	var out []OverdueInvoice
	err := r.db.WithContext(ctx).
		Table("invoices").
		Select(`invoices.invoice_number, invoices.balance_due, invoices.due_date,
			orders.order_number, customers.name AS customer_name, customers.phone AS customer_phone`).
		Joins("JOIN orders ON orders.id = invoices.order_id").
		Joins("JOIN customers ON customers.id = orders.customer_id").
		Where("invoices.due_date < ? AND invoices.payment_status <> ?", asOf, string(domain.InvoicePaid)).
		Where("orders.status <> ?", string(domain.OrderCancelled)).
		Scan(&out).Error
	return out, err
}
