package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"laundryhub/internal/domain"
	"laundryhub/internal/modules/notification"
	"laundryhub/internal/pkg/sequence"
	"laundryhub/internal/repository"
)

type Service struct {
	orders    OrderRepository
	catalog   CatalogReader
	customers CustomerReader
	staff     StaffReader
	invoices  InvoiceReader
	numbers   NumberGenerator
	sms       Notifier
	admins    AdminPublisher
}

func NewService(
	orders OrderRepository,
	catalog CatalogReader,
	customers CustomerReader,
	staff StaffReader,
	invoices InvoiceReader,
	numbers NumberGenerator,
	sms Notifier,
	admins AdminPublisher,
) *Service {
	return &Service{
		orders:    orders,
		catalog:   catalog,
		customers: customers,
		staff:     staff,
		invoices:  invoices,
		numbers:   numbers,
		sms:       sms,
		admins:    admins,
	}
}

// Create builds the whole aggregate: prices every item against the
// current catalog, derives the totals, and persists the order, its items
// and its invoice in one transaction. The admin push afterwards is
// fire-and-forget.
func (s *Service) Create(ctx context.Context, cap domain.Capability, req CreateOrderRequest) (*OrderDetails, error) {
	deliveryType := domain.DeliveryType(req.DeliveryType)
	if !deliveryType.Valid() {
		return nil, ErrValidation
	}

	// Customers place orders for themselves only. Staff pick the customer.
	if cap.Profile == domain.ProfileCustomer {
		req.CustomerID = cap.ProfileID
	} else if req.CustomerID == 0 {
		return nil, fmt.Errorf("%w: customer_id is required", ErrValidation)
	}

	customer, err := s.customers.GetByID(ctx, req.CustomerID)
	if err != nil {
		return nil, notFoundOr(err)
	}

	serviceType, err := s.catalog.GetServiceType(ctx, req.ServiceTypeID)
	if err != nil {
		return nil, notFoundOr(err)
	}

	items := make([]domain.OrderItem, 0, len(req.Items))
	for _, ir := range req.Items {
		if ir.Quantity <= 0 {
			return nil, ErrValidation
		}
		garment, err := s.catalog.GetGarmentType(ctx, ir.GarmentTypeID)
		if err != nil {
			return nil, notFoundOr(err)
		}
		it := domain.OrderItem{
			GarmentTypeID: garment.ID,
			Quantity:      ir.Quantity,
		}
		it.Price(garment.BasePrice, serviceType.PriceMultiplier)
		items = append(items, it)
	}

	now := time.Now().UTC()
	o := &domain.Order{
		OrderNumber:   s.numbers.Next(sequence.OrderPrefix),
		CustomerID:    customer.ID,
		ServiceTypeID: serviceType.ID,
		DeliveryType:  deliveryType,
		Status:        domain.OrderPending,
		Notes:         req.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	o.RecomputeTotals(items)

	dueDate := now.AddDate(0, 0, 7)
	if req.DueDate != nil {
		dueDate = *req.DueDate
	}
	inv := &domain.Invoice{
		InvoiceNumber: s.numbers.Next(sequence.InvoicePrefix),
		IssuedDate:    now,
		DueDate:       dueDate,
		PaymentStatus: domain.InvoiceUnpaid,
		AmountPaid:    decimal.NewFromInt(0),
		BalanceDue:    o.TotalAmount,
	}

	if err := s.orders.CreateWithInvoice(ctx, o, items, inv); err != nil {
		return nil, err
	}

	if s.admins != nil {
		s.admins.Publish(newOrderEvent(o, customer))
	}

	return &OrderDetails{Order: *o, Items: items, Invoice: inv}, nil
}

func (s *Service) Get(ctx context.Context, orderID int64, cap domain.Capability) (*OrderDetails, error) {
	o, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, notFoundOr(err)
	}
	if !canSeeOrder(o, cap) {
		return nil, ErrForbidden
	}

	items, err := s.orders.ListItems(ctx, o.ID)
	if err != nil {
		return nil, err
	}

	inv, err := s.invoices.GetInvoiceByOrderID(ctx, o.ID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return &OrderDetails{Order: *o, Items: items, Invoice: inv}, nil
}

func (s *Service) List(ctx context.Context, cap domain.Capability) ([]domain.Order, error) {
	if cap.Profile == domain.ProfileCustomer && !cap.IsManager {
		return s.orders.ListByCustomer(ctx, cap.ProfileID)
	}
	return s.orders.List(ctx)
}

// AddItem prices the new line against the current catalog (the price is
// frozen on the item from here on) and lets the repository recompute the
// order totals synchronously.
func (s *Service) AddItem(ctx context.Context, orderID int64, req CreateItemRequest) (*domain.OrderItem, error) {
	if req.Quantity <= 0 {
		return nil, ErrValidation
	}

	o, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, notFoundOr(err)
	}

	serviceType, err := s.catalog.GetServiceType(ctx, o.ServiceTypeID)
	if err != nil {
		return nil, notFoundOr(err)
	}
	garment, err := s.catalog.GetGarmentType(ctx, req.GarmentTypeID)
	if err != nil {
		return nil, notFoundOr(err)
	}

	it := &domain.OrderItem{
		OrderID:       o.ID,
		GarmentTypeID: garment.ID,
		Quantity:      req.Quantity,
	}
	it.Price(garment.BasePrice, serviceType.PriceMultiplier)

	if err := s.orders.AddItem(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *Service) UpdateItem(ctx context.Context, orderID, itemID int64, req UpdateItemRequest) (*domain.OrderItem, error) {
	if req.Quantity <= 0 {
		return nil, ErrValidation
	}

	o, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, notFoundOr(err)
	}
	it, err := s.orders.GetItem(ctx, orderID, itemID)
	if err != nil {
		return nil, notFoundOr(err)
	}

	serviceType, err := s.catalog.GetServiceType(ctx, o.ServiceTypeID)
	if err != nil {
		return nil, notFoundOr(err)
	}
	garment, err := s.catalog.GetGarmentType(ctx, req.GarmentTypeID)
	if err != nil {
		return nil, notFoundOr(err)
	}

	it.GarmentTypeID = garment.ID
	it.Quantity = req.Quantity
	it.Price(garment.BasePrice, serviceType.PriceMultiplier)

	if err := s.orders.UpdateItem(ctx, it); err != nil {
		return nil, notFoundOr(err)
	}
	return it, nil
}

func (s *Service) RemoveItem(ctx context.Context, orderID, itemID int64) error {
	if err := s.orders.RemoveItem(ctx, orderID, itemID); err != nil {
		return notFoundOr(err)
	}
	return nil
}

// UpdateStatus moves the order to any status in the enumeration as long
// as the order is not already in a terminal state. Entering ready fires
// the customer SMS; a failed send never rolls the transition back.
func (s *Service) UpdateStatus(ctx context.Context, orderID int64, newStatus string) (*domain.Order, error) {
	status := domain.OrderStatus(newStatus)
	if !status.Valid() {
		return nil, ErrValidation
	}

	o, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, notFoundOr(err)
	}
	if o.Status.Terminal() && status != o.Status {
		return nil, ErrInvalidStatusTransition
	}

	updated, err := s.orders.UpdateStatus(ctx, orderID, status)
	if err != nil {
		return nil, notFoundOr(err)
	}

	if status == domain.OrderReady && s.sms != nil {
		if customer, err := s.customers.GetByID(ctx, updated.CustomerID); err == nil {
			msg := fmt.Sprintf(
				"Hello %s, your laundry order #%s is ready for pickup/delivery. Thank you!",
				customer.Name, updated.OrderNumber,
			)
			s.sms.Notify(customer.Phone, msg)
		}
	}

	return updated, nil
}

// Assign sets or clears one staff slot on the order. Only managers may
// call this; the staff member must hold the requested role and be active.
func (s *Service) Assign(ctx context.Context, orderID int64, req AssignStaffRequest, cap domain.Capability) (*domain.Staff, error) {
	if !cap.IsManager {
		return nil, ErrForbidden
	}

	role := domain.StaffRole(req.Type)
	if role != domain.RoleWasher && role != domain.RoleIroner {
		return nil, ErrValidation
	}

	if _, err := s.orders.GetByID(ctx, orderID); err != nil {
		return nil, notFoundOr(err)
	}

	if req.StaffID == nil {
		if err := s.orders.UpdateAssignment(ctx, orderID, role, nil); err != nil {
			return nil, notFoundOr(err)
		}
		return nil, nil
	}

	staff, err := s.staff.GetActiveByIDAndRole(ctx, *req.StaffID, role)
	if err != nil {
		return nil, notFoundOr(err)
	}

	if err := s.orders.UpdateAssignment(ctx, orderID, role, &staff.ID); err != nil {
		return nil, notFoundOr(err)
	}
	return staff, nil
}

func (s *Service) Statistics(ctx context.Context) (*repository.OrderStats, error) {
	return s.orders.Statistics(ctx)
}

func canSeeOrder(o *domain.Order, cap domain.Capability) bool {
	if cap.Profile == domain.ProfileStaff || cap.IsManager {
		return true
	}
	return cap.Profile == domain.ProfileCustomer && o.CustomerID == cap.ProfileID
}

func newOrderEvent(o *domain.Order, c *domain.Customer) notification.NewOrderEvent {
	return notification.NewOrderEvent{
		Type:         notification.EventNewOrder,
		OrderID:      o.ID,
		Customer:     c.Name,
		Total:        o.TotalAmount.StringFixed(2),
		DeliveryType: string(o.DeliveryType),
		CreatedAt:    o.CreatedAt,
	}
}

func notFoundOr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
