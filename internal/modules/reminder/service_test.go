package reminder

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"laundryhub/internal/repository"
)

type mockBillingReader struct {
	mock.Mock
}

func (m *mockBillingReader) ListOverdueInvoices(ctx context.Context, asOf time.Time) ([]repository.OverdueInvoice, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.OverdueInvoice), args.Error(1)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) Notify(phone, message string) bool {
	args := m.Called(phone, message)
	return args.Bool(0)
}

func TestRun_SendsOneTextPerOverdueInvoice(t *testing.T) {
	billing := new(mockBillingReader)
	sms := new(mockNotifier)
	svc := NewService(billing, sms, "")

	billing.On("ListOverdueInvoices", mock.Anything, mock.Anything).Return([]repository.OverdueInvoice{
		{
			InvoiceNumber: "INV20250101120000",
			OrderNumber:   "ORD20250101120000",
			BalanceDue:    decimal.RequireFromString("1500.00"),
			CustomerName:  "Ada",
			CustomerPhone: "+2348030000000",
		},
		{
			InvoiceNumber: "INV20250102130000",
			OrderNumber:   "ORD20250102130000",
			BalanceDue:    decimal.RequireFromString("250.50"),
			CustomerName:  "Bayo",
			CustomerPhone: "+2348030000001",
		},
	}, nil)
	sms.On("Notify", "+2348030000000", mock.MatchedBy(func(msg string) bool {
		return strings.Contains(msg, "INV20250101120000") && strings.Contains(msg, "1500.00")
	})).Return(true)
	sms.On("Notify", "+2348030000001", mock.Anything).Return(false)

	sent, err := svc.Run(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 1, sent)
	sms.AssertNumberOfCalls(t, "Notify", 2)
}

func TestRun_NoOverdueInvoices(t *testing.T) {
	billing := new(mockBillingReader)
	sms := new(mockNotifier)
	svc := NewService(billing, sms, "")

	billing.On("ListOverdueInvoices", mock.Anything, mock.Anything).Return([]repository.OverdueInvoice{}, nil)

	sent, err := svc.Run(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 0, sent)
	sms.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
}
