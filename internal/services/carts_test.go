package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront.dev/shop/pkg/cart"
)

func TestCartCheckout(t *testing.T) {
	f := newOrderFixture(t)
	svc := NewCartService(cart.NewMemoryStore(), NewCatalogService(f.products, nil), f.svc)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "sess", f.headset.ID, 1)
	require.NoError(t, err)
	c, err := svc.AddItem(ctx, "sess", f.headset.ID, 2)
	require.NoError(t, err)
	require.Len(t, c.CartItems, 1)
	assert.Equal(t, 2, c.CartItems[0].Qty)
	assert.Equal(t, 61.73, c.TotalPrice)

	_, err = svc.Checkout(ctx, f.customer, "sess")
	assertStatus(t, err, http.StatusBadRequest, "Shipping address is required")

	_, err = svc.SaveShippingAddress(ctx, "sess", shipping)
	require.NoError(t, err)
	_, err = svc.SavePaymentMethod(ctx, "sess", "Midtrans")
	require.NoError(t, err)

	order, err := svc.Checkout(ctx, f.customer, "sess")
	require.NoError(t, err)
	assert.Equal(t, 61.73, order.TotalPrice)
	assert.Equal(t, f.customer.ID, order.User)

	after, err := svc.Get(ctx, "sess")
	require.NoError(t, err)
	assert.Empty(t, after.CartItems)
	assert.Equal(t, "Midtrans", after.PaymentMethod)
}

func TestCartAddItem_OverStock(t *testing.T) {
	f := newOrderFixture(t)
	svc := NewCartService(cart.NewMemoryStore(), NewCatalogService(f.products, nil), f.svc)

	_, err := svc.AddItem(context.Background(), "sess", f.headset.ID, 11)
	assertStatus(t, err, http.StatusBadRequest, "Not enough stock for Headset")
}
