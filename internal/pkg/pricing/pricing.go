// Package pricing computes all order money amounts with exact decimal
// arithmetic. It holds no state: the same inputs always produce the same
// outputs, and catalog prices are passed in explicitly by the caller.
package pricing

import "github.com/shopspring/decimal"

var (
	pickupFee = decimal.RequireFromString("500.00")
	zero      = decimal.NewFromInt(0)
)

// UnitPrice is the garment base price scaled by the service multiplier,
// rounded to 2 places.
func UnitPrice(basePrice, multiplier decimal.Decimal) decimal.Decimal {
	return basePrice.Mul(multiplier).Round(2)
}

// LineTotal is the unit price times quantity, rounded to 2 places.
func LineTotal(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity))).Round(2)
}

// DeliveryFee is a flat 500.00 surcharge for pickup orders and 0.00 when
// the customer collects the laundry themselves.
func DeliveryFee(pickup bool) decimal.Decimal {
	if pickup {
		return pickupFee
	}
	return zero
}

func Subtotal(lineTotals []decimal.Decimal) decimal.Decimal {
	sum := zero
	for _, lt := range lineTotals {
		sum = sum.Add(lt)
	}
	return sum.Round(2)
}

func Total(subtotal, deliveryFee decimal.Decimal) decimal.Decimal {
	return subtotal.Add(deliveryFee).Round(2)
}
