package routes

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/schedularhq/schedular-api/internal/config"
	domainRepo "github.com/schedularhq/schedular-api/internal/domain/repository"
	"github.com/schedularhq/schedular-api/internal/presentation/http/handler"
	"github.com/schedularhq/schedular-api/internal/presentation/http/middleware"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Wizard   *handler.WizardHandler
	Sale     *handler.SaleHandler
	Product  *handler.ProductHandler
	Delivery *handler.DeliveryHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Catalog and delivery lookups, open to any client
		registerCatalogRoutes(v1, h)

		// Terminal-scoped routes: every request must name its terminal
		terminal := v1.Group("")
		terminal.Use(middleware.TerminalMiddleware())

		// Per-terminal rate limiter
		rateLimiter := middleware.NewTerminalRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		terminal.Use(rateLimiter.Middleware())

		registerWizardRoutes(terminal, h)
		registerSaleRoutes(terminal, h, deps)
	}

	return router
}

func registerCatalogRoutes(v1 *gin.RouterGroup, h *Handlers) {
	products := v1.Group("/products")
	{
		products.GET("", h.Product.List)
		products.GET("/:sku", h.Product.Get)
		products.GET("/:sku/availability", h.Product.Availability)
	}

	delivery := v1.Group("/delivery")
	{
		delivery.POST("/calculate", h.Delivery.Quote)
		delivery.GET("/window", h.Delivery.DateWindow)
	}
}

func registerWizardRoutes(terminal *gin.RouterGroup, h *Handlers) {
	wizard := terminal.Group("/wizard")
	{
		wizard.POST("/session", h.Wizard.StartSession)
		wizard.POST("/detach", h.Wizard.EndSession)
		wizard.GET("/state", h.Wizard.State)

		wizard.PUT("/customer", h.Wizard.UpdateCustomer)
		wizard.PUT("/delivery", h.Wizard.UpdateDelivery)
		wizard.PUT("/payment", h.Wizard.UpdatePayment)
		wizard.PUT("/discount", h.Wizard.SetDiscount)
		wizard.PUT("/deposit", h.Wizard.SetDeposit)

		wizard.POST("/lines", h.Wizard.AddLine)
		wizard.PATCH("/lines/:id", h.Wizard.UpdateLine)
		wizard.DELETE("/lines/:id", h.Wizard.RemoveLine)

		wizard.POST("/next", h.Wizard.Next)
		wizard.POST("/prev", h.Wizard.Prev)
		wizard.POST("/goto", h.Wizard.GoTo)
		wizard.POST("/complete", h.Wizard.Complete)
		wizard.POST("/restart", h.Wizard.Restart)
	}
}

func registerSaleRoutes(terminal *gin.RouterGroup, h *Handlers, deps *Deps) {
	sales := terminal.Group("/sales")
	{
		idempotent := middleware.IdempotencyRequired(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		})

		sales.POST("", idempotent, h.Sale.Create)
		sales.GET("", h.Sale.List)
		sales.GET("/:id", h.Sale.Get)
		sales.PATCH("/:id", h.Sale.Patch)
		sales.POST("/:id/cancel", idempotent, h.Sale.Cancel)
	}

	// Order-number lookup, the identifier printed on receipts. Lives under
	// /orders because /sales/:id already owns that wildcard position.
	orders := terminal.Group("/orders")
	{
		orders.GET("/:number", h.Sale.GetByNumber)
	}
}
