package redis

import (
	"context"

	redisclient "github.com/redis/go-redis/v9"

	"storefront.dev/shop/pkg/global"
)

var client *redisclient.Client

func NewClient(address, password string) *redisclient.Client {
	return redisclient.NewClient(&redisclient.Options{
		Addr:     address,
		Password: password,
		DB:       0,
		Protocol: 2,
	})
}

// InitRedis creates the shared client. A failed ping is logged but not fatal:
// the product cache degrades to direct reads.
func InitRedis(cfg *global.Config) *redisclient.Client {
	client = NewClient(cfg.RedisAddress, cfg.RedisPassword)

	ctx, cancel := global.GetDefaultTimer()
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		global.Log.WithField("address", cfg.RedisAddress).Warnf("Redis unavailable: %v", err)
	} else {
		global.Log.WithField("address", cfg.RedisAddress).Info("Connected to Redis successfully")
	}
	return client
}

func Ping(ctx context.Context) error {
	if client == nil {
		return nil
	}
	return client.Ping(ctx).Err()
}

func Close() error {
	if client == nil {
		return nil
	}
	return client.Close()
}
