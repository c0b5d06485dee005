package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/schedularhq/schedular-api/internal/application/service"
	"github.com/schedularhq/schedular-api/internal/config"
	"github.com/schedularhq/schedular-api/internal/infrastructure/database"
	"github.com/schedularhq/schedular-api/internal/infrastructure/draftstore"
	"github.com/schedularhq/schedular-api/internal/infrastructure/repository"
	domainRepo "github.com/schedularhq/schedular-api/internal/domain/repository"
	"github.com/schedularhq/schedular-api/internal/presentation/http/handler"
	"github.com/schedularhq/schedular-api/internal/presentation/http/routes"
	"github.com/schedularhq/schedular-api/pkg/notify"
	"github.com/schedularhq/schedular-api/pkg/orderapi"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed the showroom catalog
	if err := database.SeedCatalog(db); err != nil {
		log.Printf("Warning: Failed to seed catalog: %v", err)
	}

	// Draft persistence: Redis when reachable, in-memory otherwise.
	// A terminal that loses its draft on restart just starts a fresh
	// sale, so the fallback trades durability for availability.
	var draftStore domainRepo.DraftStore
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		log.Printf("Warning: Redis unreachable (%v), using in-memory draft store", err)
		draftStore = draftstore.NewMemoryDraftStore(cfg.Sale.DraftVersion)
	} else {
		draftStore = draftstore.NewRedisDraftStore(redisClient, cfg.Sale.DraftKey, cfg.Sale.DraftVersion, cfg.Sale.DraftTTL)
	}
	cancel()

	// Initialize repositories
	productRepo := repository.NewProductRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Outbound order API client
	orderClient := orderapi.NewClient(cfg.OrderAPI.BaseURL, cfg.OrderAPI.APIKey, cfg.OrderAPI.Timeout)

	// Initialize services
	totalsCalc := service.NewTotalsCalculator(&cfg.Sale)
	productService := service.NewProductService(productRepo)
	deliveryService := service.NewDeliveryService(&cfg.Sale)
	saleService := service.NewSaleService(saleRepo, productRepo, totalsCalc, &cfg.Sale)
	wizardService := service.NewWizardService(
		draftStore,
		productService,
		deliveryService,
		totalsCalc,
		notify.NewLogNotifier(),
		service.LogNavigator{},
		orderClient,
		&cfg.Sale,
	)

	// Initialize handlers
	handlers := &routes.Handlers{
		Wizard:   handler.NewWizardHandler(wizardService),
		Sale:     handler.NewSaleHandler(saleService),
		Product:  handler.NewProductHandler(productService),
		Delivery: handler.NewDeliveryHandler(deliveryService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	// Start server
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}
	log.Printf("%s listening on :%s", cfg.App.Name, port)
	if err := router.Run(":" + port); err != nil {
		log.Printf("Server error: %v", err)
		os.Exit(1)
	}
}
