package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	diningapp "github.com/resto/backend/internal/application/dining"
	identityapp "github.com/resto/backend/internal/application/identity"
	inventoryapp "github.com/resto/backend/internal/application/inventory"
	partnerapp "github.com/resto/backend/internal/application/partner"
	"github.com/resto/backend/internal/infrastructure/auth"
	"github.com/resto/backend/internal/infrastructure/config"
	"github.com/resto/backend/internal/infrastructure/event"
	"github.com/resto/backend/internal/infrastructure/logger"
	"github.com/resto/backend/internal/infrastructure/persistence"
	"github.com/resto/backend/internal/interfaces/http/handler"
	"github.com/resto/backend/internal/interfaces/http/middleware"
	"github.com/resto/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
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

	log.Info("Starting Resto Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories
	ingredientRepo := persistence.NewGormIngredientRepository(db.DB)
	batchRepo := persistence.NewGormBatchRepository(db.DB)
	supplierRepo := persistence.NewGormSupplierRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	tableRepo := persistence.NewGormTableRepository(db.DB)

	txScope := persistence.NewGormTransactionScope(db.DB)

	// Event bus with the alert log subscriber
	eventBus := event.NewInMemoryEventBus(log)
	eventBus.Subscribe(event.NewAlertSubscriber(log))

	// JWT token service
	jwtService := auth.NewJWTService(cfg.JWT)

	// Application services
	executor := inventoryapp.NewAllocationExecutor(txScope)
	executor.SetEventPublisher(eventBus)

	ingredientService := inventoryapp.NewIngredientService(ingredientRepo, batchRepo)
	importService := inventoryapp.NewImportService(txScope, supplierRepo)
	importService.SetEventPublisher(eventBus)
	exportService := inventoryapp.NewExportService(txScope, executor)
	monitorService := inventoryapp.NewMonitorService(batchRepo, ingredientRepo)
	authService := identityapp.NewAuthService(userRepo, jwtService)
	supplierService := partnerapp.NewSupplierService(supplierRepo)
	tableService := diningapp.NewTableService(tableRepo, cfg.Dining.OrderBaseURL)

	// Gin engine and middleware
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Invalid trusted proxies", zap.Error(err))
		}
	}

	middleware.SetupValidator()

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

	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(corsCfg))
	engine.Use(middleware.BodyLimit(4 << 20))

	// HTTP handlers
	handlers := router.Handlers{
		Auth:       handler.NewAuthHandler(authService),
		Ingredient: handler.NewIngredientHandler(ingredientService),
		Import:     handler.NewImportHandler(importService),
		Export:     handler.NewExportHandler(exportService),
		Monitor:    handler.NewMonitorHandler(monitorService),
		Supplier:   handler.NewSupplierHandler(supplierService),
		Table:      handler.NewTableHandler(tableService),
		System:     handler.NewSystemHandler(db),
	}
	router.Setup(engine, jwtService, handlers)

	// Background sweep that turns expiry and low-stock conditions into
	// log alerts at a fixed cadence
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	if cfg.Alerts.Enabled {
		go runAlertSweep(sweepCtx, log, monitorService, cfg.Alerts)
	}

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	stopSweep()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// runAlertSweep polls the monitor queries and logs anything that needs
// attention. The log subscriber on the event bus covers allocation-time
// alerts; this sweep catches conditions that develop while nothing moves,
// like batches aging toward expiry.
func runAlertSweep(ctx context.Context, log *zap.Logger, monitor *inventoryapp.MonitorService, cfg config.AlertsConfig) {
	ticker := time.NewTicker(cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		expiring, err := monitor.FindExpiring(ctx, cfg.ExpiryWindowDays)
		if err != nil {
			log.Error("Expiry sweep failed", zap.Error(err))
		} else {
			for _, batch := range expiring {
				log.Warn("Batch nearing expiry",
					zap.String("batch_id", batch.ID.String()),
					zap.String("ingredient_id", batch.IngredientID.String()),
					zap.String("expiry_date", batch.ExpiryDate),
					zap.Int("days_until_expiry", batch.DaysUntilExpiry),
					zap.String("remaining", batch.RemainingQuantity.String()),
				)
			}
		}

		lowStock, err := monitor.FindLowStock(ctx)
		if err != nil {
			log.Error("Low-stock sweep failed", zap.Error(err))
			continue
		}
		for _, level := range lowStock {
			log.Warn("Ingredient below stock threshold",
				zap.String("ingredient_id", level.Ingredient.ID.String()),
				zap.String("name", level.Ingredient.Name),
				zap.String("available", level.Available.String()),
				zap.String("threshold", level.Ingredient.LowStockThreshold.String()),
			)
		}
	}
}
