package domain

import "time"

type StaffRole string

const (
	RoleWasher   StaffRole = "washer"
	RoleIroner   StaffRole = "ironer"
	RoleDelivery StaffRole = "delivery"
	RoleManager  StaffRole = "manager"
)

func (r StaffRole) Valid() bool {
	switch r {
	case RoleWasher, RoleIroner, RoleDelivery, RoleManager:
		return true
	}
	return false
}

type Staff struct {
	ID            int64     `json:"id"`
	UserID        *int64    `json:"user_id,omitempty"`
	Name          string    `json:"name"`
	Role          StaffRole `json:"role"`
	Phone         string    `json:"phone"`
	AccountNumber *string   `json:"account_number,omitempty"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
}
