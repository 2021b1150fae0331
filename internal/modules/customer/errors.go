package customer

import "errors"

var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("customer not found")
)
