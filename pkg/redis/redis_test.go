package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	redisclient "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"storefront.dev/shop/pkg/cart"
	"storefront.dev/shop/pkg/models"
)

func newTestClient(t *testing.T) (*miniredis.Miniredis, *redisclient.Client) {
	t.Helper()
	server := miniredis.RunT(t)
	client := NewClient(server.Addr(), "")
	t.Cleanup(func() { _ = client.Close() })
	return server, client
}

func TestProductCache(t *testing.T) {
	_, client := newTestClient(t)
	cache := NewProductCache(client)
	ctx := context.Background()

	product := &models.Product{ID: bson.NewObjectID(), Name: "Airpods", Category: "Electronics", Price: 89.99}

	_, err := cache.Get(ctx, product.ID)
	assert.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, cache.Set(ctx, product))
	cached, err := cache.Get(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Airpods", cached.Name)
	assert.Equal(t, 89.99, cached.Price)

	require.NoError(t, cache.Delete(ctx, product.ID))
	_, err = cache.Get(ctx, product.ID)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestProductCache_DeleteMany(t *testing.T) {
	server, client := newTestClient(t)
	cache := NewProductCache(client)
	ctx := context.Background()

	a := &models.Product{ID: bson.NewObjectID(), Name: "Keyboard", Category: "Electronics"}
	b := &models.Product{ID: bson.NewObjectID(), Name: "Camera", Category: "Photo"}
	require.NoError(t, cache.Set(ctx, a))
	require.NoError(t, cache.Set(ctx, b))
	assert.Len(t, server.Keys(), 2)

	require.NoError(t, cache.Delete(ctx, a.ID, b.ID))
	assert.Empty(t, server.Keys())
	assert.NoError(t, cache.Delete(ctx))
}

func TestCartStoreRoundTrip(t *testing.T) {
	server, client := newTestClient(t)
	store := NewCartStore(client)
	ctx := context.Background()

	_, err := store.Load(ctx, "missing")
	assert.ErrorIs(t, err, cart.ErrNotFound)

	svc, err := cart.Open(ctx, store, "s1")
	require.NoError(t, err)

	product := &models.Product{ID: bson.NewObjectID(), Name: "Camera", Price: 50, CountInStock: 5}
	require.NoError(t, svc.AddItem(ctx, product, 2))
	require.NoError(t, svc.SaveShippingAddress(ctx, models.ShippingAddress{
		Address: "1 Main St", City: "Springfield", PostalCode: "12345", Country: "US",
	}))
	require.NoError(t, svc.SavePaymentMethod(ctx, "Midtrans"))

	loaded, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, loaded.CartItems, 1)
	assert.Equal(t, product.ID, loaded.CartItems[0].Product)
	assert.Equal(t, 2, loaded.CartItems[0].Qty)
	assert.Equal(t, "Springfield", loaded.ShippingAddress.City)
	assert.Equal(t, "Midtrans", loaded.PaymentMethod)
	assert.Equal(t, 100.0, loaded.ItemsPrice)
	assert.Equal(t, 125.0, loaded.TotalPrice)

	assert.Greater(t, server.TTL("cart:s1").Hours(), 24.0)

	require.NoError(t, store.Delete(ctx, "s1"))
	_, err = store.Load(ctx, "s1")
	assert.ErrorIs(t, err, cart.ErrNotFound)
}
