package order

import (
	"time"

	"laundryhub/internal/domain"
)

type CreateItemRequest struct {
	GarmentTypeID int64 `json:"garment_type_id" binding:"required"`
	Quantity      int   `json:"quantity" binding:"required,gt=0"`
}

// CreateOrderRequest: customer callers may omit customer_id, the order is
// theirs regardless; staff must say who they are booking for.
type CreateOrderRequest struct {
	CustomerID    int64               `json:"customer_id"`
	ServiceTypeID int64               `json:"service_type_id" binding:"required"`
	DeliveryType  string              `json:"delivery_type" binding:"required"`
	Notes         string              `json:"notes"`
	DueDate       *time.Time          `json:"due_date"`
	Items         []CreateItemRequest `json:"items"`
}

type UpdateItemRequest struct {
	GarmentTypeID int64 `json:"garment_type_id" binding:"required"`
	Quantity      int   `json:"quantity" binding:"required,gt=0"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type AssignStaffRequest struct {
	Type    string `json:"type" binding:"required"`
	StaffID *int64 `json:"staff_id"`
}

// OrderDetails is the aggregate view: the order with its items and
// invoice.
type OrderDetails struct {
	Order   domain.Order       `json:"order"`
	Items   []domain.OrderItem `json:"items"`
	Invoice *domain.Invoice    `json:"invoice,omitempty"`
}
