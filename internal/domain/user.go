package domain

import "time"

type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	IsSuperuser  bool      `json:"is_superuser"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type ProfileKind string

const (
	ProfileCustomer ProfileKind = "customer"
	ProfileStaff    ProfileKind = "staff"
	ProfileNone     ProfileKind = "none"
)

// AccountProfile is resolved once at login: a user account is linked to a
// customer profile, a staff profile, or neither. Exactly one of Customer
// and Staff is set depending on Kind.
type AccountProfile struct {
	Kind     ProfileKind `json:"kind"`
	Customer *Customer   `json:"customer,omitempty"`
	Staff    *Staff      `json:"staff,omitempty"`
}

// Capability is the resolved caller identity the core receives; it never
// performs authentication itself.
type Capability struct {
	UserID    int64
	Profile   ProfileKind
	ProfileID int64
	StaffRole StaffRole
	IsManager bool
}
