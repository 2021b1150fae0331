package domain

import "github.com/shopspring/decimal"

// GarmentType is a catalog entry carrying the base price for one kind of
// garment. Prices copied onto order items stay fixed even when the
// catalog entry changes later.
type GarmentType struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	BasePrice   decimal.Decimal `json:"base_price"`
	Description string          `json:"description"`
}

// ServiceType scales a garment's base price. regular is 1.0, express is
// typically 2.0.
type ServiceType struct {
	ID              int64           `json:"id"`
	Name            string          `json:"name"`
	PriceMultiplier decimal.Decimal `json:"price_multiplier"`
	Description     string          `json:"description"`
}
