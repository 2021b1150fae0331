package domain

import "time"

type Feedback struct {
	ID         int64     `json:"id"`
	CustomerID int64     `json:"customer_id"`
	OrderID    int64     `json:"order_id"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"created_at"`
}
