package catalog

import "github.com/shopspring/decimal"

type CreateGarmentTypeRequest struct {
	Name        string          `json:"name" binding:"required"`
	BasePrice   decimal.Decimal `json:"base_price" binding:"required"`
	Description string          `json:"description"`
}

type UpdateGarmentTypeRequest struct {
	Name        *string          `json:"name"`
	BasePrice   *decimal.Decimal `json:"base_price"`
	Description *string          `json:"description"`
}

type CreateServiceTypeRequest struct {
	Name            string          `json:"name" binding:"required"`
	PriceMultiplier decimal.Decimal `json:"price_multiplier" binding:"required"`
	Description     string          `json:"description"`
}

type UpdateServiceTypeRequest struct {
	Name            *string          `json:"name"`
	PriceMultiplier *decimal.Decimal `json:"price_multiplier"`
	Description     *string          `json:"description"`
}
