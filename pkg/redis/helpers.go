package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	redisclient "github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/v2/bson"

	"storefront.dev/shop/pkg/models"
)

const productTTL = 24 * time.Hour

// ErrCacheMiss is returned when a product is not cached.
var ErrCacheMiss = errors.New("cache miss")

type ProductCache struct {
	client *redisclient.Client
}

func NewProductCache(client *redisclient.Client) *ProductCache {
	return &ProductCache{client: client}
}

func productKey(id bson.ObjectID) string {
	return fmt.Sprintf("product:%s", id.Hex())
}

func (c *ProductCache) Get(ctx context.Context, id bson.ObjectID) (*models.Product, error) {
	productJSON, err := c.client.Get(ctx, productKey(id)).Result()
	if errors.Is(err, redisclient.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}

	var product models.Product
	if err := json.Unmarshal([]byte(productJSON), &product); err != nil {
		return nil, fmt.Errorf("failed to unmarshal product: %w", err)
	}
	return &product, nil
}

func (c *ProductCache) Set(ctx context.Context, product *models.Product) error {
	productJSON, err := json.Marshal(product)
	if err != nil {
		return fmt.Errorf("failed to marshal product %s: %w", product.ID.Hex(), err)
	}

	if err := c.client.Set(ctx, productKey(product.ID), productJSON, productTTL).Err(); err != nil {
		return fmt.Errorf("failed to cache product %s: %w", product.ID.Hex(), err)
	}
	return nil
}

// Delete evicts the given products in one round trip.
func (c *ProductCache) Delete(ctx context.Context, ids ...bson.ObjectID) error {
	if len(ids) == 0 {
		return nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = productKey(id)
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to evict %d products from cache: %w", len(ids), err)
	}
	return nil
}
