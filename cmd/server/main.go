package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	catalogapp "github.com/vendora/backend/internal/application/catalog"
	integrationapp "github.com/vendora/backend/internal/application/integration"
	notificationapp "github.com/vendora/backend/internal/application/notification"
	orderingapp "github.com/vendora/backend/internal/application/ordering"
	vendorapp "github.com/vendora/backend/internal/application/vendor"
	"github.com/vendora/backend/internal/domain/integration"
	"github.com/vendora/backend/internal/infrastructure/auth"
	"github.com/vendora/backend/internal/infrastructure/cache"
	"github.com/vendora/backend/internal/infrastructure/config"
	"github.com/vendora/backend/internal/infrastructure/email"
	"github.com/vendora/backend/internal/infrastructure/event"
	"github.com/vendora/backend/internal/infrastructure/logger"
	"github.com/vendora/backend/internal/infrastructure/persistence"
	"github.com/vendora/backend/internal/infrastructure/shopify"
	"github.com/vendora/backend/internal/infrastructure/telemetry"
	"github.com/vendora/backend/internal/interfaces/http/handler"
	"github.com/vendora/backend/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting marketplace backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	variantRepo := persistence.NewGormVariantRepository(db.DB)
	vendorRepo := persistence.NewGormVendorRepository(db.DB)
	orderRepo := persistence.NewGormVendorOrderRepository(db.DB)
	notificationRepo := persistence.NewGormNotificationRepository(db.DB)

	// Event bus with the notification dispatcher subscribed
	bus := event.NewInMemoryEventBus(log)

	var sender notificationapp.EmailSender
	if cfg.Email.Enabled {
		sender = email.NewSMTPSender(cfg.Email, log)
	} else {
		sender = email.NewNopSender(log)
	}
	dispatcher := notificationapp.NewDispatcher(notificationRepo, vendorRepo, sender, log)
	bus.Subscribe(dispatcher, dispatcher.EventTypes()...)

	// Publish lock: Redis when configured, in-process otherwise
	var publishLock integrationapp.PublishLock
	if cfg.Redis.Host != "" {
		redisLock, err := cache.NewRedisPublishLock(cache.RedisConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			if err := redisLock.Close(); err != nil {
				log.Error("Error closing Redis connection", zap.Error(err))
			}
		}()
		publishLock = redisLock
		log.Info("Publish lock backed by Redis")
	} else {
		publishLock = cache.NewInMemoryPublishLock()
		log.Warn("Redis not configured, publish lock is process-local")
	}

	storefront := shopify.NewClient(shopify.Config{
		APIVersion: cfg.Storefront.APIVersion,
		Timeout:    cfg.Storefront.Timeout,
	}, log)

	var match integration.MatchStrategy
	if cfg.Storefront.VariantMatchMode == "normalized" {
		match = integration.MatchNormalized
	}

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	productService := catalogapp.NewProductService(productRepo, variantRepo, vendorRepo, bus, log)
	publishService := integrationapp.NewPublishService(integrationapp.PublishServiceConfig{
		ProductRepo:    productRepo,
		VariantRepo:    variantRepo,
		VendorRepo:     vendorRepo,
		Storefront:     storefront,
		Lock:           publishLock,
		EventPublisher: bus,
		Logger:         log,
		Match:          match,
		LocationID:     cfg.Storefront.DefaultLocationID,
		LockTTL:        cfg.Storefront.LockTTL,
	})
	ingestionService := orderingapp.NewIngestionService(orderRepo, vendorRepo, bus, log)
	orderService := orderingapp.NewOrderService(orderRepo, log)
	vendorService := vendorapp.NewService(vendorRepo, log)
	notificationService := notificationapp.NewService(notificationRepo)

	engine := router.New(router.Dependencies{
		Config:        cfg,
		Logger:        log,
		JWT:           jwtService,
		Health:        handler.NewHealthHandler(db),
		Webhooks:      handler.NewWebhookHandler(ingestionService, log),
		Products:      handler.NewProductHandler(productService),
		AdminProducts: handler.NewAdminProductHandler(productService, publishService),
		Vendors:       handler.NewVendorHandler(vendorService, jwtService),
		Orders:        handler.NewOrderHandler(orderService),
		Notifications: handler.NewNotificationHandler(notificationService),
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
