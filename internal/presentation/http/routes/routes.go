package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/gestor-mesas/internal/config"
	domainRepo "github.com/sangkips/gestor-mesas/internal/domain/repository"
	"github.com/sangkips/gestor-mesas/internal/presentation/http/handler"
	"github.com/sangkips/gestor-mesas/internal/presentation/http/middleware"
	"github.com/sangkips/gestor-mesas/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth      *handler.AuthHandler
	Table     *handler.TableHandler
	Catalog   *handler.CatalogHandler
	Purchase  *handler.PurchaseHandler
	Dashboard *handler.DashboardHandler
	Printer   *handler.PrinterHandler
	Settings  *handler.SettingsHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
	// Stop ends background goroutines owned by middleware
	Stop <-chan struct{}
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	limiter := newRateLimiter(&deps.Cfg.RateLimit, deps.Stop)

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":       "ok",
			"service":      deps.Cfg.App.Name,
			"rate_limiter": limiter.Stats(),
		})
	})

	v1 := router.Group("/api/v1")
	{
		// Public routes
		if deps.Cfg.Auth.Enabled {
			v1.POST("/auth/login", h.Auth.Login)
		}

		api := v1.Group("")
		if deps.Cfg.Auth.Enabled {
			api.Use(middleware.AuthMiddleware(deps.JWTManager))
		}
		api.Use(limiter.Middleware())

		idempotent := middleware.Idempotency(middleware.IdempotencyConfig{Repo: deps.IdempotencyRepo})

		registerTableRoutes(api, h, idempotent)
		registerViewRoutes(api, h)
		registerCatalogRoutes(api, h)
		registerPurchaseRoutes(api, h, idempotent)

		api.GET("/printer/status", h.Printer.GetStatus)
		api.GET("/settings", h.Settings.Get)
		api.PUT("/settings", h.Settings.Update)
	}

	return router
}

func newRateLimiter(cfg *config.RateLimitConfig, stop <-chan struct{}) *middleware.ClientRateLimiter {
	rlCfg := middleware.DefaultRateLimiterConfig()
	if cfg.Requests > 0 && cfg.Duration > 0 {
		rlCfg.RequestsPerSecond = float64(cfg.Requests) / float64(cfg.Duration)
		rlCfg.BurstSize = cfg.Requests
	}
	rlCfg.CleanupInterval = 5 * time.Minute
	rlCfg.EntryTTL = 10 * time.Minute
	return middleware.NewClientRateLimiter(rlCfg, stop)
}

func registerTableRoutes(api *gin.RouterGroup, h *Handlers, idempotent gin.HandlerFunc) {
	tables := api.Group("/tables")
	{
		tables.GET("", h.Table.List)
		tables.POST("", h.Table.Create)
		tables.GET("/open", h.Dashboard.OpenTables)
		tables.GET("/invoiced", h.Dashboard.InvoicedTables)
		tables.GET("/:id", h.Table.Get)
		tables.PUT("/:id", h.Table.Update)
		tables.PATCH("/:id/name", h.Table.Rename)
		tables.DELETE("/:id", h.Table.Delete)
		tables.PUT("/:id/split", h.Table.SetSplit)
		tables.PUT("/:id/total", h.Table.SetManualTotal)
		tables.PUT("/:id/payments", h.Table.SetPayments)
		tables.POST("/:id/products", h.Table.AddProduct)
		tables.PUT("/:id/products/:pid", h.Table.UpdateProduct)
		tables.DELETE("/:id/products/:pid", h.Table.RemoveProduct)
		tables.POST("/:id/products/:pid/deliver", h.Table.Deliver)
		tables.POST("/:id/payment-records", idempotent, h.Table.AddPayment)
		tables.DELETE("/:id/payment-records/:rid", h.Table.RemovePayment)
		tables.POST("/:id/print", h.Printer.PrintTable)
	}
}

func registerViewRoutes(api *gin.RouterGroup, h *Handlers) {
	api.GET("/view", h.Dashboard.GetView)
	api.PUT("/view", h.Dashboard.SetView)
	api.GET("/waiting-list", h.Dashboard.WaitingList)
	api.GET("/dashboard", h.Dashboard.GetStats)
	api.GET("/reports/sales", h.Dashboard.Sales)
	api.GET("/reports/sales.xlsx", h.Dashboard.SalesXLSX)
}

func registerCatalogRoutes(api *gin.RouterGroup, h *Handlers) {
	menu := api.Group("/menu")
	{
		menu.GET("", h.Catalog.ListMenu)
		menu.POST("", h.Catalog.CreateMenuItem)
		menu.PUT("", h.Catalog.ReplaceMenu)
		menu.DELETE("/:id", h.Catalog.DeleteMenuItem)
	}

	inventory := api.Group("/inventory")
	{
		inventory.GET("", h.Catalog.ListInventory)
		inventory.POST("", h.Catalog.CreateInventoryItem)
		inventory.PUT("", h.Catalog.ReplaceInventory)
		inventory.DELETE("/:id", h.Catalog.DeleteInventoryItem)
	}
}

func registerPurchaseRoutes(api *gin.RouterGroup, h *Handlers, idempotent gin.HandlerFunc) {
	purchases := api.Group("/purchases")
	{
		purchases.GET("", h.Purchase.List)
		purchases.POST("", idempotent, h.Purchase.Create)
		purchases.PUT("", h.Purchase.Replace)
		purchases.DELETE("/:id", h.Purchase.Delete)
	}
}
