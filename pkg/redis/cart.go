package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	redisclient "github.com/redis/go-redis/v9"

	"storefront.dev/shop/pkg/cart"
	"storefront.dev/shop/pkg/models"
)

const cartTTL = 7 * 24 * time.Hour

// CartStore keeps each cart in a hash at cart:{sessionId}. Items and the
// shipping address are JSON encoded fields.
type CartStore struct {
	client *redisclient.Client
}

func NewCartStore(client *redisclient.Client) *CartStore {
	return &CartStore{client: client}
}

func cartKey(sessionID string) string {
	return fmt.Sprintf("cart:%s", sessionID)
}

func (s *CartStore) Load(ctx context.Context, sessionID string) (*models.Cart, error) {
	data, err := s.client.HGetAll(ctx, cartKey(sessionID)).Result()
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, cart.ErrNotFound
	}

	c := &models.Cart{SessionID: sessionID, PaymentMethod: data["payment_method"]}
	if items, ok := data["items"]; ok {
		if err := json.Unmarshal([]byte(items), &c.CartItems); err != nil {
			return nil, fmt.Errorf("failed to unmarshal cart items: %w", err)
		}
	}
	if address, ok := data["shipping_address"]; ok {
		c.ShippingAddress = &models.ShippingAddress{}
		if err := json.Unmarshal([]byte(address), c.ShippingAddress); err != nil {
			return nil, fmt.Errorf("failed to unmarshal shipping address: %w", err)
		}
	}
	c.ItemsPrice = parseFloat(data["items_price"])
	c.TaxPrice = parseFloat(data["tax_price"])
	c.ShippingPrice = parseFloat(data["shipping_price"])
	c.TotalPrice = parseFloat(data["total_price"])
	if updated, err := time.Parse(time.RFC3339, data["updated_at"]); err == nil {
		c.UpdatedAt = updated
	}
	return c, nil
}

// Save replaces the stored cart and refreshes its TTL.
func (s *CartStore) Save(ctx context.Context, c *models.Cart) error {
	items, err := json.Marshal(c.CartItems)
	if err != nil {
		return fmt.Errorf("failed to marshal cart items: %w", err)
	}

	fields := map[string]interface{}{
		"items":          string(items),
		"payment_method": c.PaymentMethod,
		"items_price":    fmt.Sprintf("%.2f", c.ItemsPrice),
		"tax_price":      fmt.Sprintf("%.2f", c.TaxPrice),
		"shipping_price": fmt.Sprintf("%.2f", c.ShippingPrice),
		"total_price":    fmt.Sprintf("%.2f", c.TotalPrice),
		"updated_at":     c.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if c.ShippingAddress != nil {
		address, err := json.Marshal(c.ShippingAddress)
		if err != nil {
			return fmt.Errorf("failed to marshal shipping address: %w", err)
		}
		fields["shipping_address"] = string(address)
	}

	key := cartKey(c.SessionID)
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, key)
	pipe.HSet(ctx, key, fields)
	pipe.Expire(ctx, key, cartTTL)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save cart %s: %w", c.SessionID, err)
	}
	return nil
}

func (s *CartStore) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, cartKey(sessionID)).Err()
}

func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}
