package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/sangkips/gestor-mesas/internal/application/service"
	"github.com/sangkips/gestor-mesas/internal/config"
	domainRepo "github.com/sangkips/gestor-mesas/internal/domain/repository"
	"github.com/sangkips/gestor-mesas/internal/infrastructure/database"
	"github.com/sangkips/gestor-mesas/internal/infrastructure/messaging"
	"github.com/sangkips/gestor-mesas/internal/infrastructure/repository"
	"github.com/sangkips/gestor-mesas/internal/presentation/http/handler"
	"github.com/sangkips/gestor-mesas/internal/presentation/http/routes"
	"github.com/sangkips/gestor-mesas/pkg/printer"
	"github.com/sangkips/gestor-mesas/pkg/utils"
	"gorm.io/gorm"
)

const (
	shutdownTimeout      = 10 * time.Second
	idempotencySweepTick = time.Hour
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to database
	db, err := database.Open(&cfg.Database, cfg.App.Debug)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	store, closeStore, err := newCollectionStore(ctx, cfg, db)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	defer closeStore()

	events, err := messaging.NewPublisherFromConfig(&cfg.Events)
	if err != nil {
		log.Printf("Warning: Failed to initialize event publisher, logging events instead: %v", err)
		events = messaging.NewLogPublisher()
	}
	defer events.Close()

	// Load the floor
	floor := service.NewFloorService(store, events)
	if err := floor.Load(ctx); err != nil {
		log.Fatalf("Failed to load floor state: %v", err)
	}

	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours)
	if cfg.Auth.Enabled && cfg.Auth.PINHash == "" {
		log.Printf("Warning: AUTH_ENABLED is set but AUTH_PIN_HASH is empty; every login will be refused")
	}

	// Initialize thermal printer
	thermalPrinter, err := printer.NewPrinterFromConfig(
		cfg.Printer.Type,
		cfg.Printer.USBPath,
		cfg.Printer.Address,
	)
	if err != nil {
		log.Printf("Warning: Failed to initialize printer: %v", err)
		thermalPrinter = printer.NewNullPrinter()
	}
	defer thermalPrinter.Close()

	// Initialize services
	authService := service.NewAuthService(cfg.Auth.Enabled, cfg.Auth.PINHash, jwtManager)
	tableService := service.NewTableService(floor)
	catalogService := service.NewCatalogService(floor)
	purchaseService := service.NewPurchaseService(floor)
	dashboardService := service.NewDashboardService(floor)
	settingsService := service.NewSettingsService(repository.NewSettingsRepository(db), cfg.Printer.StoreName)
	printerService := service.NewPrinterService(thermalPrinter, floor, settingsService, cfg.Printer.Type, cfg.Printer.Width)

	idempotencyRepo := repository.NewIdempotencyRepository(db)
	go sweepIdempotencyKeys(ctx, idempotencyRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Table:     handler.NewTableHandler(tableService),
		Catalog:   handler.NewCatalogHandler(catalogService),
		Purchase:  handler.NewPurchaseHandler(purchaseService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
		Printer:   handler.NewPrinterHandler(printerService),
		Settings:  handler.NewSettingsHandler(settingsService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
		Stop:            ctx.Done(),
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
		log.Printf("Environment: %s", cfg.App.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Warning: Server forced to shutdown: %v", err)
	}
}

// newCollectionStore picks where the floor collections live
func newCollectionStore(ctx context.Context, cfg *config.Config, db *gorm.DB) (domainRepo.CollectionRepository, func(), error) {
	switch cfg.Storage.Driver {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, nil, err
		}
		log.Printf("Storing floor collections in redis at %s", cfg.Redis.Addr)
		return repository.NewRedisCollectionRepository(client, cfg.Storage.Prefix), func() { client.Close() }, nil
	default:
		log.Printf("Storing floor collections in the %s database", cfg.Database.Driver)
		return repository.NewCollectionRepository(db), func() {}, nil
	}
}

func sweepIdempotencyKeys(ctx context.Context, repo domainRepo.IdempotencyRepository) {
	ticker := time.NewTicker(idempotencySweepTick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := repo.DeleteExpired(ctx); err != nil {
				log.Printf("Warning: failed to delete expired idempotency keys: %v", err)
			}
		}
	}
}
