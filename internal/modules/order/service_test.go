package order

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"laundryhub/internal/domain"
	"laundryhub/internal/repository"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type mockOrderRepo struct {
	mock.Mock
}

func (m *mockOrderRepo) CreateWithInvoice(ctx context.Context, o *domain.Order, items []domain.OrderItem, inv *domain.Invoice) error {
	args := m.Called(ctx, o, items, inv)
	o.ID = 1
	return args.Error(0)
}

func (m *mockOrderRepo) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *mockOrderRepo) List(ctx context.Context) ([]domain.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *mockOrderRepo) ListByCustomer(ctx context.Context, customerID int64) ([]domain.Order, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *mockOrderRepo) ListItems(ctx context.Context, orderID int64) ([]domain.OrderItem, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OrderItem), args.Error(1)
}

func (m *mockOrderRepo) GetItem(ctx context.Context, orderID, itemID int64) (*domain.OrderItem, error) {
	args := m.Called(ctx, orderID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OrderItem), args.Error(1)
}

func (m *mockOrderRepo) AddItem(ctx context.Context, it *domain.OrderItem) error {
	args := m.Called(ctx, it)
	return args.Error(0)
}

func (m *mockOrderRepo) UpdateItem(ctx context.Context, it *domain.OrderItem) error {
	args := m.Called(ctx, it)
	return args.Error(0)
}

func (m *mockOrderRepo) RemoveItem(ctx context.Context, orderID, itemID int64) error {
	args := m.Called(ctx, orderID, itemID)
	return args.Error(0)
}

func (m *mockOrderRepo) UpdateStatus(ctx context.Context, orderID int64, status domain.OrderStatus) (*domain.Order, error) {
	args := m.Called(ctx, orderID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *mockOrderRepo) UpdateAssignment(ctx context.Context, orderID int64, role domain.StaffRole, staffID *int64) error {
	args := m.Called(ctx, orderID, role, staffID)
	return args.Error(0)
}

func (m *mockOrderRepo) Statistics(ctx context.Context) (*repository.OrderStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.OrderStats), args.Error(1)
}

type mockCatalogReader struct {
	mock.Mock
}

func (m *mockCatalogReader) GetGarmentType(ctx context.Context, id int64) (*domain.GarmentType, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GarmentType), args.Error(1)
}

func (m *mockCatalogReader) GetServiceType(ctx context.Context, id int64) (*domain.ServiceType, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ServiceType), args.Error(1)
}

type mockCustomerReader struct {
	mock.Mock
}

func (m *mockCustomerReader) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

type mockStaffReader struct {
	mock.Mock
}

func (m *mockStaffReader) GetActiveByIDAndRole(ctx context.Context, id int64, role domain.StaffRole) (*domain.Staff, error) {
	args := m.Called(ctx, id, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Staff), args.Error(1)
}

type mockInvoiceReader struct {
	mock.Mock
}

func (m *mockInvoiceReader) GetInvoiceByOrderID(ctx context.Context, orderID int64) (*domain.Invoice, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

type fixedNumbers struct {
	n int
}

func (f *fixedNumbers) Next(prefix string) string {
	f.n++
	return prefix + "20250101120000"
}

type mockSMS struct {
	mock.Mock
}

func (m *mockSMS) Notify(phone, message string) bool {
	args := m.Called(phone, message)
	return args.Bool(0)
}

type recordingPublisher struct {
	events []any
}

func (p *recordingPublisher) Publish(event any) int {
	p.events = append(p.events, event)
	return 1
}

type orderFixture struct {
	orders    *mockOrderRepo
	catalog   *mockCatalogReader
	customers *mockCustomerReader
	staff     *mockStaffReader
	invoices  *mockInvoiceReader
	sms       *mockSMS
	admins    *recordingPublisher
	svc       *Service
}

func newOrderFixture() *orderFixture {
	f := &orderFixture{
		orders:    new(mockOrderRepo),
		catalog:   new(mockCatalogReader),
		customers: new(mockCustomerReader),
		staff:     new(mockStaffReader),
		invoices:  new(mockInvoiceReader),
		sms:       new(mockSMS),
		admins:    &recordingPublisher{},
	}
	f.svc = NewService(f.orders, f.catalog, f.customers, f.staff, f.invoices, &fixedNumbers{}, f.sms, f.admins)
	return f
}

func managerCap() domain.Capability {
	return domain.Capability{UserID: 1, Profile: domain.ProfileStaff, ProfileID: 1, StaffRole: domain.RoleManager, IsManager: true}
}

func customerCap(profileID int64) domain.Capability {
	return domain.Capability{UserID: 2, Profile: domain.ProfileCustomer, ProfileID: profileID}
}

func TestCreateOrder_DerivesTotalsAndInvoice(t *testing.T) {
	f := newOrderFixture()

	f.customers.On("GetByID", mock.Anything, int64(5)).Return(&domain.Customer{ID: 5, Name: "Ada", Phone: "080"}, nil)
	f.catalog.On("GetServiceType", mock.Anything, int64(2)).Return(&domain.ServiceType{
		ID: 2, Name: "express", PriceMultiplier: d("2.0"),
	}, nil)
	f.catalog.On("GetGarmentType", mock.Anything, int64(3)).Return(&domain.GarmentType{
		ID: 3, Name: "native_wear", BasePrice: d("1000.00"),
	}, nil)
	f.orders.On("CreateWithInvoice", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	details, err := f.svc.Create(context.Background(), managerCap(), CreateOrderRequest{
		CustomerID:    5,
		ServiceTypeID: 2,
		DeliveryType:  "pickup",
		Items:         []CreateItemRequest{{GarmentTypeID: 3, Quantity: 3}},
	})

	assert.NoError(t, err)
	assert.True(t, d("6000.00").Equal(details.Order.Subtotal))
	assert.True(t, d("500.00").Equal(details.Order.DeliveryFee))
	assert.True(t, d("6500.00").Equal(details.Order.TotalAmount))
	assert.Equal(t, domain.OrderPending, details.Order.Status)
	assert.Equal(t, "ORD20250101120000", details.Order.OrderNumber)
	assert.Equal(t, "INV20250101120000", details.Invoice.InvoiceNumber)
	assert.Equal(t, domain.InvoiceUnpaid, details.Invoice.PaymentStatus)
	assert.True(t, d("6500.00").Equal(details.Invoice.BalanceDue))
	assert.Len(t, f.admins.events, 1)
}

func TestCreateOrder_CustomerForcedToOwnProfile(t *testing.T) {
	f := newOrderFixture()

	f.customers.On("GetByID", mock.Anything, int64(9)).Return(&domain.Customer{ID: 9, Name: "Bayo"}, nil)
	f.catalog.On("GetServiceType", mock.Anything, int64(1)).Return(&domain.ServiceType{
		ID: 1, Name: "regular", PriceMultiplier: d("1.0"),
	}, nil)
	f.orders.On("CreateWithInvoice", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	details, err := f.svc.Create(context.Background(), customerCap(9), CreateOrderRequest{
		CustomerID:    5,
		ServiceTypeID: 1,
		DeliveryType:  "byself",
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(9), details.Order.CustomerID)
	f.customers.AssertNotCalled(t, "GetByID", mock.Anything, int64(5))
}

func TestCreateOrder_CustomerMayOmitCustomerID(t *testing.T) {
	f := newOrderFixture()

	f.customers.On("GetByID", mock.Anything, int64(9)).Return(&domain.Customer{ID: 9, Name: "Bayo"}, nil)
	f.catalog.On("GetServiceType", mock.Anything, int64(1)).Return(&domain.ServiceType{
		ID: 1, Name: "regular", PriceMultiplier: d("1.0"),
	}, nil)
	f.orders.On("CreateWithInvoice", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	details, err := f.svc.Create(context.Background(), customerCap(9), CreateOrderRequest{
		ServiceTypeID: 1,
		DeliveryType:  "byself",
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(9), details.Order.CustomerID)
}

func TestCreateOrder_StaffMustPickCustomer(t *testing.T) {
	f := newOrderFixture()

	_, err := f.svc.Create(context.Background(), managerCap(), CreateOrderRequest{
		ServiceTypeID: 1,
		DeliveryType:  "byself",
	})

	assert.ErrorIs(t, err, ErrValidation)
	f.orders.AssertNotCalled(t, "CreateWithInvoice")
}

func TestCreateOrder_InvalidDeliveryType(t *testing.T) {
	f := newOrderFixture()

	_, err := f.svc.Create(context.Background(), managerCap(), CreateOrderRequest{
		CustomerID:    5,
		ServiceTypeID: 1,
		DeliveryType:  "courier",
	})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateOrder_UnknownCustomer(t *testing.T) {
	f := newOrderFixture()

	f.customers.On("GetByID", mock.Anything, int64(5)).Return(nil, gorm.ErrRecordNotFound)

	_, err := f.svc.Create(context.Background(), managerCap(), CreateOrderRequest{
		CustomerID:    5,
		ServiceTypeID: 1,
		DeliveryType:  "byself",
	})

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetOrder_CustomerCannotSeeOthers(t *testing.T) {
	f := newOrderFixture()

	f.orders.On("GetByID", mock.Anything, int64(1)).Return(&domain.Order{ID: 1, CustomerID: 5}, nil)

	_, err := f.svc.Get(context.Background(), 1, customerCap(9))

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestListOrders_CustomerSeesOwnOnly(t *testing.T) {
	f := newOrderFixture()

	f.orders.On("ListByCustomer", mock.Anything, int64(9)).Return([]domain.Order{{ID: 1, CustomerID: 9}}, nil)

	orders, err := f.svc.List(context.Background(), customerCap(9))

	assert.NoError(t, err)
	assert.Len(t, orders, 1)
	f.orders.AssertNotCalled(t, "List", mock.Anything)
}

func TestUpdateStatus_TerminalOrderRejected(t *testing.T) {
	f := newOrderFixture()

	f.orders.On("GetByID", mock.Anything, int64(1)).Return(&domain.Order{ID: 1, Status: domain.OrderDelivered}, nil)

	_, err := f.svc.UpdateStatus(context.Background(), 1, "processing")

	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
}

func TestUpdateStatus_ReadySendsSMS(t *testing.T) {
	f := newOrderFixture()

	f.orders.On("GetByID", mock.Anything, int64(1)).Return(&domain.Order{ID: 1, CustomerID: 5, Status: domain.OrderProcessing}, nil)
	f.orders.On("UpdateStatus", mock.Anything, int64(1), domain.OrderReady).Return(&domain.Order{
		ID: 1, CustomerID: 5, Status: domain.OrderReady, OrderNumber: "ORD20250101120000",
	}, nil)
	f.customers.On("GetByID", mock.Anything, int64(5)).Return(&domain.Customer{ID: 5, Name: "Ada", Phone: "+234803"}, nil)
	f.sms.On("Notify", "+234803", mock.MatchedBy(func(msg string) bool {
		return assert.ObjectsAreEqual("Hello Ada, your laundry order #ORD20250101120000 is ready for pickup/delivery. Thank you!", msg)
	})).Return(true)

	o, err := f.svc.UpdateStatus(context.Background(), 1, "ready")

	assert.NoError(t, err)
	assert.Equal(t, domain.OrderReady, o.Status)
	f.sms.AssertExpectations(t)
}

func TestUpdateStatus_SMSFailureDoesNotFailTransition(t *testing.T) {
	f := newOrderFixture()

	f.orders.On("GetByID", mock.Anything, int64(1)).Return(&domain.Order{ID: 1, CustomerID: 5, Status: domain.OrderProcessing}, nil)
	f.orders.On("UpdateStatus", mock.Anything, int64(1), domain.OrderReady).Return(&domain.Order{
		ID: 1, CustomerID: 5, Status: domain.OrderReady, OrderNumber: "ORD20250101120000",
	}, nil)
	f.customers.On("GetByID", mock.Anything, int64(5)).Return(&domain.Customer{ID: 5, Name: "Ada", Phone: "+234803"}, nil)
	f.sms.On("Notify", mock.Anything, mock.Anything).Return(false)

	_, err := f.svc.UpdateStatus(context.Background(), 1, "ready")

	assert.NoError(t, err)
}

func TestUpdateStatus_InvalidStatus(t *testing.T) {
	f := newOrderFixture()

	_, err := f.svc.UpdateStatus(context.Background(), 1, "shipped")

	assert.ErrorIs(t, err, ErrValidation)
}

func TestAssign_RequiresManager(t *testing.T) {
	f := newOrderFixture()

	cap := domain.Capability{Profile: domain.ProfileStaff, StaffRole: domain.RoleWasher}
	staffID := int64(3)
	_, err := f.svc.Assign(context.Background(), 1, AssignStaffRequest{Type: "washer", StaffID: &staffID}, cap)

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestAssign_RoleMustMatch(t *testing.T) {
	f := newOrderFixture()

	f.orders.On("GetByID", mock.Anything, int64(1)).Return(&domain.Order{ID: 1}, nil)
	staffID := int64(3)
	f.staff.On("GetActiveByIDAndRole", mock.Anything, staffID, domain.RoleIroner).Return(nil, gorm.ErrRecordNotFound)

	_, err := f.svc.Assign(context.Background(), 1, AssignStaffRequest{Type: "ironer", StaffID: &staffID}, managerCap())

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAssign_OnlyWasherOrIronerSlots(t *testing.T) {
	f := newOrderFixture()

	staffID := int64(3)
	_, err := f.svc.Assign(context.Background(), 1, AssignStaffRequest{Type: "delivery", StaffID: &staffID}, managerCap())

	assert.ErrorIs(t, err, ErrValidation)
}

func TestAssign_ClearSlot(t *testing.T) {
	f := newOrderFixture()

	f.orders.On("GetByID", mock.Anything, int64(1)).Return(&domain.Order{ID: 1}, nil)
	f.orders.On("UpdateAssignment", mock.Anything, int64(1), domain.RoleWasher, (*int64)(nil)).Return(nil)

	staff, err := f.svc.Assign(context.Background(), 1, AssignStaffRequest{Type: "washer"}, managerCap())

	assert.NoError(t, err)
	assert.Nil(t, staff)
	f.orders.AssertExpectations(t)
}

func TestAddItem_PricesAgainstOrderServiceType(t *testing.T) {
	f := newOrderFixture()

	f.orders.On("GetByID", mock.Anything, int64(1)).Return(&domain.Order{ID: 1, ServiceTypeID: 2}, nil)
	f.catalog.On("GetServiceType", mock.Anything, int64(2)).Return(&domain.ServiceType{ID: 2, PriceMultiplier: d("2.0")}, nil)
	f.catalog.On("GetGarmentType", mock.Anything, int64(4)).Return(&domain.GarmentType{ID: 4, BasePrice: d("2500.00")}, nil)
	f.orders.On("AddItem", mock.Anything, mock.Anything).Return(nil)

	it, err := f.svc.AddItem(context.Background(), 1, CreateItemRequest{GarmentTypeID: 4, Quantity: 2})

	assert.NoError(t, err)
	assert.True(t, d("5000.00").Equal(it.UnitPrice))
	assert.True(t, d("10000.00").Equal(it.TotalPrice))
}

func TestAddItem_RejectsNonPositiveQuantity(t *testing.T) {
	f := newOrderFixture()

	_, err := f.svc.AddItem(context.Background(), 1, CreateItemRequest{GarmentTypeID: 4, Quantity: 0})

	assert.ErrorIs(t, err, ErrValidation)
}
