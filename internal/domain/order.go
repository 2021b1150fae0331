package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"laundryhub/internal/pkg/pricing"
)

type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderReady      OrderStatus = "ready"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderProcessing, OrderReady, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further status changes are accepted.
func (s OrderStatus) Terminal() bool {
	return s == OrderDelivered || s == OrderCancelled
}

type DeliveryType string

const (
	DeliveryPickup DeliveryType = "pickup"
	DeliveryBySelf DeliveryType = "byself"
)

func (d DeliveryType) Valid() bool {
	return d == DeliveryPickup || d == DeliveryBySelf
}

// Order is the aggregate root: it owns its items and its invoice, and all
// of its money fields are derived, never set by callers.
type Order struct {
	ID             int64           `json:"id"`
	OrderNumber    string          `json:"order_number"`
	CustomerID     int64           `json:"customer_id"`
	ServiceTypeID  int64           `json:"service_type_id"`
	DeliveryType   DeliveryType    `json:"delivery_type"`
	Status         OrderStatus     `json:"status"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	DeliveryFee    decimal.Decimal `json:"delivery_fee"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	AssignedWasher *int64          `json:"assigned_washer,omitempty"`
	AssignedIroner *int64          `json:"assigned_ironer,omitempty"`
	Notes          string          `json:"notes,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

type OrderItem struct {
	ID            int64           `json:"id"`
	OrderID       int64           `json:"order_id"`
	GarmentTypeID int64           `json:"garment_type_id"`
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	TotalPrice    decimal.Decimal `json:"total_price"`
}

// Price freezes the item's unit and line prices from the given catalog
// values. Later catalog edits do not reprice saved items.
func (it *OrderItem) Price(basePrice, multiplier decimal.Decimal) {
	it.UnitPrice = pricing.UnitPrice(basePrice, multiplier)
	it.TotalPrice = pricing.LineTotal(it.UnitPrice, it.Quantity)
}

// RecomputeTotals rebuilds subtotal, delivery fee and total from the full
// item set. Invariant: TotalAmount == Subtotal + DeliveryFee.
func (o *Order) RecomputeTotals(items []OrderItem) {
	lineTotals := make([]decimal.Decimal, 0, len(items))
	for _, it := range items {
		lineTotals = append(lineTotals, it.TotalPrice)
	}
	o.Subtotal = pricing.Subtotal(lineTotals)
	o.DeliveryFee = pricing.DeliveryFee(o.DeliveryType == DeliveryPickup)
	o.TotalAmount = pricing.Total(o.Subtotal, o.DeliveryFee)
}
