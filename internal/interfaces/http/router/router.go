package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vendora/backend/internal/infrastructure/auth"
	"github.com/vendora/backend/internal/infrastructure/config"
	"github.com/vendora/backend/internal/infrastructure/logger"
	"github.com/vendora/backend/internal/interfaces/http/handler"
	"github.com/vendora/backend/internal/interfaces/http/middleware"
)

// Dependencies carries everything the HTTP surface needs
type Dependencies struct {
	Config *config.Config
	Logger *zap.Logger
	JWT    *auth.JWTService

	Health        *handler.HealthHandler
	Webhooks      *handler.WebhookHandler
	Products      *handler.ProductHandler
	AdminProducts *handler.AdminProductHandler
	Vendors       *handler.VendorHandler
	Orders        *handler.OrderHandler
	Notifications *handler.NotificationHandler
}

// New assembles the gin engine: the middleware chain and every route.
//
// Webhooks sit outside the authenticated API group: the storefront
// calls them directly and carries no bearer token. Everything under
// /api/v1 except /health requires a token; /admin additionally
// requires the admin role and /vendor the vendor role.
func New(deps Dependencies) *gin.Engine {
	cfg := deps.Config
	log := deps.Logger

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		// SetTrustedProxies only errors on unparseable CIDRs, which the
		// config layer has already validated
		_ = engine.SetTrustedProxies(cfg.HTTP.TrustedProxies)
	}

	engine.Use(logger.Recovery(log))
	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.CORSWithConfig(corsConfig(cfg)))
	engine.Use(middleware.Secure())
	engine.Use(middleware.Tracing(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
	}))
	engine.Use(middleware.SpanErrorMarker())
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	if cfg.HTTP.RequestTimeout > 0 {
		engine.Use(middleware.Timeout(cfg.HTTP.RequestTimeout))
	}

	engine.GET("/health", deps.Health.Health)

	webhooks := engine.Group("/webhooks")
	webhooks.POST("/orders/create", deps.Webhooks.OrderCreated)

	api := engine.Group("/api/v1", middleware.Authenticate(deps.JWT, log))

	admin := api.Group("/admin", middleware.RequireAdmin())
	{
		admin.GET("/products", deps.AdminProducts.List)
		admin.GET("/products/:id", deps.AdminProducts.Get)
		admin.POST("/products/:id/publish", deps.AdminProducts.Publish)
		admin.POST("/products/:id/reject", deps.AdminProducts.Reject)

		admin.POST("/vendors", deps.Vendors.Create)
		admin.GET("/vendors", deps.Vendors.List)
		admin.GET("/vendors/:id", deps.Vendors.Get)
		admin.PUT("/vendors/:id/credential", deps.Vendors.SetCredential)
		admin.POST("/vendors/:id/suspend", deps.Vendors.Suspend)
		admin.POST("/vendors/:id/reinstate", deps.Vendors.Reinstate)
		admin.POST("/vendors/:id/token", deps.Vendors.IssueToken)
	}

	vendorAPI := api.Group("/vendor", middleware.RequireVendor())
	{
		vendorAPI.POST("/products", deps.Products.Submit)
		vendorAPI.GET("/products", deps.Products.List)
		vendorAPI.GET("/products/:id", deps.Products.Get)
		vendorAPI.PUT("/products/:id", deps.Products.Update)
		vendorAPI.DELETE("/products/:id", deps.Products.Deactivate)
		vendorAPI.PUT("/variants/:id", deps.Products.UpdateVariant)

		vendorAPI.GET("/orders", deps.Orders.List)
		vendorAPI.GET("/orders/:id", deps.Orders.Get)
		vendorAPI.POST("/orders/:id/fulfill", deps.Orders.Fulfill)
		vendorAPI.POST("/orders/:id/cancel", deps.Orders.Cancel)
	}

	api.GET("/notifications", deps.Notifications.List)
	api.GET("/notifications/unread", deps.Notifications.UnreadCount)
	api.POST("/notifications/:id/read", deps.Notifications.MarkRead)

	return engine
}

func corsConfig(cfg *config.Config) middleware.CORSConfig {
	corsCfg := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsCfg.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsCfg.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	return corsCfg
}
