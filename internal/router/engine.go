package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"storefront.dev/shop/pkg/global"
)

var Router *gin.Engine

var defaultOrigins = []string{"http://localhost:3000", "http://localhost:5173"}

func InitEngine(cfg *global.Config) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	// cors.New panics on an empty origin list.
	origins := cfg.AllowOrigins
	if len(origins) == 0 {
		global.Log.WithField("origins", defaultOrigins).Warn("No CORS origins configured, using defaults")
		origins = defaultOrigins
	}

	Router = gin.New()
	Router.Use(RequestLogger(), gin.Recovery())
	Router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", "X-Cache"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}

func InitializeRoutes(h *Handler) {
	protect := Protect(h.Users)
	admin := Admin()

	api := Router.Group("/api")
	{
		api.GET("/health", h.HealthCheck)

		products := api.Group("/products")
		{
			products.GET("", h.GetProducts)
			products.POST("", protect, admin, h.CreateProduct)
			products.GET("/top", h.GetTopProducts)
			products.GET("/categories", h.GetProductCategories)
			products.GET("/:id", h.GetProductByID)
			products.PUT("/:id", protect, admin, h.UpdateProduct)
			products.DELETE("/:id", protect, admin, h.DeleteProduct)
			products.POST("/:id/reviews", protect, h.CreateProductReview)
			products.GET("/:id/recommendations", h.GetProductRecommendations)
		}

		orders := api.Group("/orders", protect)
		{
			orders.POST("", h.CreateOrder)
			orders.GET("", admin, h.GetOrders)
			orders.GET("/export/csv", admin, h.ExportOrdersCSV)
			orders.GET("/myorders", h.GetMyOrders)
			orders.GET("/:id", h.GetOrderByID)
			orders.PUT("/:id/pay", h.UpdateOrderToPaid)
			orders.PUT("/:id/deliver", admin, h.UpdateOrderToDelivered)
			orders.PUT("/:id/cancel", h.CancelOrder)
			orders.GET("/:id/invoice", h.GetOrderInvoice)
		}

		users := api.Group("/users")
		{
			users.POST("", h.RegisterUser)
			users.POST("/login", h.AuthUser)
			users.GET("/profile", protect, h.GetUserProfile)
			users.PUT("/profile", protect, h.UpdateUserProfile)
			users.GET("", protect, admin, h.GetUsers)
			users.GET("/:id", protect, admin, h.GetUserByID)
			users.PUT("/:id", protect, admin, h.UpdateUser)
			users.DELETE("/:id", protect, admin, h.DeleteUser)
		}

		oauth := api.Group("/auth")
		{
			oauth.GET("/:provider", h.OAuthStart)
			oauth.GET("/:provider/callback", h.OAuthCallback)
		}

		adminGroup := api.Group("/admin", protect, admin)
		{
			adminGroup.GET("/summary", h.GetSummary)
			adminGroup.GET("/sales-over-time", h.GetSalesOverTime)
			adminGroup.GET("/insights", h.GetInsights)
		}

		paymentGroup := api.Group("/payment")
		{
			paymentGroup.POST("/create-order", protect, h.CreatePaymentOrder)
			paymentGroup.POST("/notification", h.PaymentNotification)
		}

		config := api.Group("/config")
		{
			config.GET("/razorpay", h.GetPaymentConfig)
			config.GET("/payment", h.GetPaymentConfig)
		}

		cartGroup := api.Group("/cart/:sessionId")
		{
			cartGroup.GET("", h.GetCart)
			cartGroup.POST("/items", h.AddToCart)
			cartGroup.DELETE("/items/:productId", h.RemoveFromCart)
			cartGroup.PUT("/shipping", h.SaveShippingAddress)
			cartGroup.PUT("/payment-method", h.SavePaymentMethod)
			cartGroup.DELETE("/clear", h.ClearCart)
			cartGroup.POST("/checkout", protect, h.Checkout)
		}
	}
}
