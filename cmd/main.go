package main

import (
	"context"

	"github.com/joho/godotenv"

	"storefront.dev/shop/internal/router"
	"storefront.dev/shop/internal/services"
	"storefront.dev/shop/pkg/ai"
	"storefront.dev/shop/pkg/auth"
	"storefront.dev/shop/pkg/global"
	"storefront.dev/shop/pkg/mongo"
	"storefront.dev/shop/pkg/payment"
	"storefront.dev/shop/pkg/redis"
)

func main() {
	if err := godotenv.Load(); err != nil {
		global.Log.Warn("No .env file found, reading configuration from the environment")
	}

	cfg := global.LoadConfig()
	global.SetLogLevel(cfg.Env)

	mongo.InitMongoDB(cfg)
	defer func() {
		ctx, cancel := global.GetDefaultTimer()
		defer cancel()
		if err := mongo.Disconnect(ctx); err != nil {
			global.Log.WithError(err).Error("Failed to disconnect from MongoDB")
		}
	}()
	mongo.EnsureIndexesOnStartup()

	cache := redis.InitRedis(cfg)
	defer redis.Close()

	ai.InitializeAIService(cfg)

	db := mongo.GetDatabase()
	products := mongo.NewProductStore(db)
	orderStore := mongo.NewOrderStore(db)
	users := mongo.NewUserStore(db)

	var gateway payment.Gateway
	if cfg.MidtransServerKey != "" {
		gateway = payment.NewMidtrans(cfg.MidtransServerKey, cfg.MidtransClientKey, cfg.MidtransProduction)
	} else {
		global.Log.Warn("MIDTRANS_SERVER_KEY is not set, payment endpoints are disabled")
	}

	productCache := redis.NewProductCache(cache)
	catalog := services.NewCatalogService(products, productCache)
	orders := services.NewOrderService(orderStore, products, users, productCache)
	tokens := auth.NewTokenIssuer(cfg.JWTSecret)

	handler := &router.Handler{
		Catalog:   catalog,
		Orders:    orders,
		Users:     services.NewUserService(users, tokens),
		Admin:     services.NewAdminService(mongo.NewAnalyticsStore(db)),
		Payments:  services.NewPaymentService(gateway, orders),
		Carts:     services.NewCartService(redis.NewCartStore(cache), catalog, orders),
		Providers: auth.NewProviders(cfg.OAuthCallbackBase,
			cfg.GoogleClientID, cfg.GoogleClientSecret,
			cfg.GitHubClientID, cfg.GitHubClientSecret),
		FrontendURL:  cfg.FrontendURL,
		SecureCookie: cfg.IsProduction(),
		Checks: map[string]func(ctx context.Context) error{
			"database": mongo.Ping,
			"cache":    redis.Ping,
		},
	}

	router.InitEngine(cfg)
	router.InitializeRoutes(handler)

	global.Log.WithField("port", cfg.Port).Info("Server is running")
	if err := router.Router.Run(":" + cfg.Port); err != nil {
		global.Log.Fatalf("Failed to run server: %v", err)
	}
}
