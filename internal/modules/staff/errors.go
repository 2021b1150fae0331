package staff

import "errors"

var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("staff member not found")
)
