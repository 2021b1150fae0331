package catalog

import "errors"

var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrInUse      = errors.New("catalog entry is referenced by existing orders")
)
