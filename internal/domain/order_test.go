package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderItemPrice_FreezesCatalogValues(t *testing.T) {
	it := OrderItem{Quantity: 3}
	it.Price(d("1000.00"), d("2.0"))

	assert.True(t, d("2000.00").Equal(it.UnitPrice))
	assert.True(t, d("6000.00").Equal(it.TotalPrice))
}

func TestRecomputeTotals_BySelf(t *testing.T) {
	o := Order{DeliveryType: DeliveryBySelf}
	items := []OrderItem{
		{TotalPrice: d("6000.00")},
		{TotalPrice: d("1500.00")},
	}
	o.RecomputeTotals(items)

	assert.True(t, d("7500.00").Equal(o.Subtotal))
	assert.True(t, o.DeliveryFee.IsZero())
	assert.True(t, d("7500.00").Equal(o.TotalAmount))
}

func TestRecomputeTotals_Pickup(t *testing.T) {
	o := Order{DeliveryType: DeliveryPickup}
	o.RecomputeTotals([]OrderItem{{TotalPrice: d("6000.00")}})

	assert.True(t, d("500.00").Equal(o.DeliveryFee))
	assert.True(t, d("6500.00").Equal(o.TotalAmount))
}

func TestRecomputeTotals_NoItems(t *testing.T) {
	o := Order{DeliveryType: DeliveryPickup, Subtotal: d("9999.00")}
	o.RecomputeTotals(nil)

	assert.True(t, o.Subtotal.IsZero())
	assert.True(t, d("500.00").Equal(o.TotalAmount))
}

func TestOrderStatusTerminal(t *testing.T) {
	assert.False(t, OrderPending.Terminal())
	assert.False(t, OrderProcessing.Terminal())
	assert.False(t, OrderReady.Terminal())
	assert.True(t, OrderDelivered.Terminal())
	assert.True(t, OrderCancelled.Terminal())
}

func TestEnumValidity(t *testing.T) {
	assert.True(t, OrderStatus("ready").Valid())
	assert.False(t, OrderStatus("shipped").Valid())
	assert.True(t, DeliveryType("pickup").Valid())
	assert.False(t, DeliveryType("courier").Valid())
	assert.True(t, StaffRole("ironer").Valid())
	assert.False(t, StaffRole("driver").Valid())
	assert.True(t, PaymentMethod("cash").Valid())
	assert.False(t, PaymentMethod("crypto").Valid())
	assert.True(t, PaymentState("completed").Valid())
	assert.False(t, PaymentState("settled").Valid())
}
