package staff

type CreateStaffRequest struct {
	Name          string  `json:"name" binding:"required"`
	Role          string  `json:"role" binding:"required"`
	Phone         string  `json:"phone"`
	AccountNumber *string `json:"account_number"`
}

// UpdateStaffRequest carries the mutable fields only. Role is fixed at
// creation so assignments never drift out from under their role check.
type UpdateStaffRequest struct {
	Name          *string `json:"name"`
	Phone         *string `json:"phone"`
	AccountNumber *string `json:"account_number"`
	IsActive      *bool   `json:"is_active"`
}
