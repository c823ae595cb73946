// Package pricing computes the checkout breakdown shared by carts and orders.
package pricing

import (
	"github.com/shopspring/decimal"

	"storefront.dev/shop/pkg/models"
)

var (
	TaxRate               = decimal.NewFromFloat(0.15)
	FreeShippingThreshold = decimal.NewFromInt(100)
	FlatShipping          = decimal.NewFromInt(10)
)

// Line is anything with a unit price and a quantity.
type Line struct {
	Price float64
	Qty   int
}

// Calculate returns items, tax, shipping and total rounded to cents.
// Shipping is free strictly above the threshold.
func Calculate(lines []Line) models.Prices {
	items := decimal.Zero
	for _, l := range lines {
		items = items.Add(decimal.NewFromFloat(l.Price).Mul(decimal.NewFromInt(int64(l.Qty))))
	}
	items = items.Round(2)

	shipping := FlatShipping
	if items.GreaterThan(FreeShippingThreshold) {
		shipping = decimal.Zero
	}
	tax := items.Mul(TaxRate).Round(2)
	total := items.Add(shipping).Add(tax).Round(2)

	return models.Prices{
		ItemsPrice:    items.InexactFloat64(),
		TaxPrice:      tax.InexactFloat64(),
		ShippingPrice: shipping.InexactFloat64(),
		TotalPrice:    total.InexactFloat64(),
	}
}

func FromCartItems(items []models.CartItem) []Line {
	lines := make([]Line, len(items))
	for i, it := range items {
		lines[i] = Line{Price: it.Price, Qty: it.Qty}
	}
	return lines
}

func FromOrderItems(items []models.OrderItem) []Line {
	lines := make([]Line, len(items))
	for i, it := range items {
		lines[i] = Line{Price: it.Price, Qty: it.Qty}
	}
	return lines
}

// Differs reports whether two amounts disagree by more than a cent.
func Differs(a, b float64) bool {
	return decimal.NewFromFloat(a).Sub(decimal.NewFromFloat(b)).Abs().GreaterThan(decimal.NewFromFloat(0.01))
}
