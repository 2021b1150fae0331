package notification

import "time"

// NewOrderEvent is pushed on the admin_notifications channel whenever an
// order is created.
type NewOrderEvent struct {
	Type         string    `json:"type"`
	OrderID      int64     `json:"order_id"`
	Customer     string    `json:"customer"`
	Total        string    `json:"total"`
	DeliveryType string    `json:"delivery_type"`
	CreatedAt    time.Time `json:"created_at"`
}

const EventNewOrder = "NEW_ORDER"
