package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculate_BelowThresholdPaysShipping(t *testing.T) {
	p := Calculate([]Line{{Price: 19.99, Qty: 2}, {Price: 5, Qty: 1}})

	assert.Equal(t, 44.98, p.ItemsPrice)
	assert.Equal(t, 10.0, p.ShippingPrice)
	assert.Equal(t, 6.75, p.TaxPrice)
	assert.Equal(t, 61.73, p.TotalPrice)
}

func TestCalculate_AboveThresholdShipsFree(t *testing.T) {
	p := Calculate([]Line{{Price: 89.99, Qty: 2}})

	assert.Equal(t, 179.98, p.ItemsPrice)
	assert.Equal(t, 0.0, p.ShippingPrice)
	assert.Equal(t, 27.0, p.TaxPrice)
	assert.Equal(t, 206.98, p.TotalPrice)
}

func TestCalculate_ExactlyThresholdStillPaysShipping(t *testing.T) {
	p := Calculate([]Line{{Price: 100, Qty: 1}})

	assert.Equal(t, 10.0, p.ShippingPrice)
	assert.Equal(t, 125.0, p.TotalPrice)
}

func TestCalculate_Empty(t *testing.T) {
	p := Calculate(nil)

	assert.Equal(t, 0.0, p.ItemsPrice)
	assert.Equal(t, 10.0, p.TotalPrice)
}

func TestDiffers(t *testing.T) {
	assert.False(t, Differs(10.00, 10.005))
	assert.True(t, Differs(10.00, 10.02))
}
