package handler

import (
	"crypto-checkout/internal/adapter/http/middleware"
	redisStore "crypto-checkout/internal/adapter/storage/redis"
	"crypto-checkout/internal/core/ports"
	"crypto-checkout/web"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	OrderSvc       ports.OrderService
	ShippingSvc    ports.ShippingService
	NotifySvc      ports.NotificationService
	RateLimitStore *redisStore.RateLimitStore // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	r.SetHTMLTemplate(web.Templates())

	// Health check (verifies Redis when the redis backend is active)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	// Rate limit rules
	rules := middleware.DefaultRateLimitRules()

	// Helper: return rate limiter middleware if store is available, else noop.
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	// Storefront pages
	pageHandler := NewPageHandler()
	r.GET("/", pageHandler.Index)
	r.GET("/products", pageHandler.Products)
	r.GET("/checkout", pageHandler.Checkout)
	r.GET("/gallery", pageHandler.Gallery)
	r.GET("/videos", pageHandler.Videos)
	r.GET("/contact", pageHandler.Contact)

	// JSON API
	api := r.Group("/api")

	orderHandler := NewOrderHandler(deps.OrderSvc)
	crypto := api.Group("/crypto")
	{
		crypto.POST("/create-order", rl("order_create"), orderHandler.CreateOrder)
		crypto.GET("/order/:orderId/:coin/status", rl("order_status"), orderHandler.OrderStatus)
	}

	shippingHandler := NewShippingHandler(deps.ShippingSvc)
	api.POST("/shipping/quote", rl("shipping"), shippingHandler.Quote)

	webhookHandler := NewWebhookHandler(deps.NotifySvc)
	api.POST("/checkout/webhook", rl("webhook"), webhookHandler.Forward)

	return r
}
