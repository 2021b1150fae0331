package order

import (
	"context"

	"laundryhub/internal/domain"
	"laundryhub/internal/repository"
)

type OrderRepository interface {
	CreateWithInvoice(ctx context.Context, o *domain.Order, items []domain.OrderItem, inv *domain.Invoice) error
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	List(ctx context.Context) ([]domain.Order, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]domain.Order, error)
	ListItems(ctx context.Context, orderID int64) ([]domain.OrderItem, error)
	GetItem(ctx context.Context, orderID, itemID int64) (*domain.OrderItem, error)
	AddItem(ctx context.Context, it *domain.OrderItem) error
	UpdateItem(ctx context.Context, it *domain.OrderItem) error
	RemoveItem(ctx context.Context, orderID, itemID int64) error
	UpdateStatus(ctx context.Context, orderID int64, status domain.OrderStatus) (*domain.Order, error)
	UpdateAssignment(ctx context.Context, orderID int64, role domain.StaffRole, staffID *int64) error
	Statistics(ctx context.Context) (*repository.OrderStats, error)
}

type CatalogReader interface {
	GetGarmentType(ctx context.Context, id int64) (*domain.GarmentType, error)
	GetServiceType(ctx context.Context, id int64) (*domain.ServiceType, error)
}

type CustomerReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
}

type StaffReader interface {
	GetActiveByIDAndRole(ctx context.Context, id int64, role domain.StaffRole) (*domain.Staff, error)
}

type InvoiceReader interface {
	GetInvoiceByOrderID(ctx context.Context, orderID int64) (*domain.Invoice, error)
}

// NumberGenerator issues unique document numbers for a given prefix.
type NumberGenerator interface {
	Next(prefix string) string
}

// Notifier is the best-effort SMS hook fired on the ready transition.
type Notifier interface {
	Notify(phone, message string) bool
}

// AdminPublisher pushes realtime events to connected admin clients.
type AdminPublisher interface {
	Publish(event any) int
}
