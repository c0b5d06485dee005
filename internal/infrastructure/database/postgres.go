package database

import (
	"fmt"
	"log"

	"github.com/schedularhq/schedular-api/internal/config"
	"github.com/schedularhq/schedular-api/internal/domain/entity"
	"github.com/schedularhq/schedular-api/internal/domain/enum"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Info

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		&entity.Product{},
		&entity.Sale{},
		&entity.SaleItem{},
		&entity.IdempotencyKey{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedCatalog loads the showroom catalog so a fresh install has sellable
// stock. Existing SKUs are left untouched; prices are cents.
func SeedCatalog(db *gorm.DB) error {
	log.Println("Seeding product catalog...")

	catalog := []entity.Product{
		{
			SKU: "DT-1001", Name: "Oak Dining Table", PriceCents: 199900, RRPCents: 199900,
			StockStatus: enum.StockStatusInStock, Quantity: 12,
			Image: "/images/products/oak-dining-table.png",
			Colors: entity.ColorList{
				{Name: "Natural Oak", Value: "#C8956D"},
				{Name: "Dark Walnut", Value: "#4A2C17"},
			},
		},
		{
			SKU: "SF-2040", Name: "Leather Sofa", PriceCents: 149900, RRPCents: 149900,
			StockStatus: enum.StockStatusLowStock, Quantity: 3,
			Image: "/images/products/leather-sofa-tan.png",
			Colors: entity.ColorList{
				{Name: "Tan", Value: "#CD853F"},
				{Name: "Black", Value: "#1A1A1A"},
			},
		},
		{
			SKU: "BS-3055", Name: "Bookshelf", PriceCents: 79900, RRPCents: 79900,
			StockStatus: enum.StockStatusOutOfStock, Quantity: 0,
			LeadTimeDays: 14, LeadTimeText: "ETA: 2-3 Weeks",
			Image: "/images/products/bookshelf-walnut.png",
		},
		{
			SKU: "CH-4110", Name: "Office Chair", PriceCents: 39900, RRPCents: 39900,
			StockStatus: enum.StockStatusInStock, Quantity: 28,
			Image: "/images/products/office-chair.png",
			Colors: entity.ColorList{
				{Name: "Black", Value: "#1C1C1C"},
				{Name: "Navy", Value: "#1B2951"},
			},
		},
		{
			SKU: "BD-5201", Name: "Queen Memory Foam Mattress", PriceCents: 129900, RRPCents: 129900,
			StockStatus: enum.StockStatusOutOfStock, Quantity: 0,
			LeadTimeDays: 28, LeadTimeText: "ETA: 4-6 Weeks",
			Image: "/images/products/memory-foam-mattress.png",
		},
		{
			SKU: "LT-6088", Name: "Modern Floor Lamp", PriceCents: 24900, RRPCents: 24900,
			StockStatus: enum.StockStatusInStock, Quantity: 15,
			Image: "/images/products/modern-floor-lamp.png",
		},
		{
			SKU: "CF-7134", Name: "Glass Coffee Table", PriceCents: 64900, RRPCents: 64900,
			StockStatus: enum.StockStatusLowStock, Quantity: 2,
			Image: "/images/products/glass-coffee-table.png",
		},
		{
			SKU: "DR-8095", Name: "6-Drawer Dresser", PriceCents: 89900, RRPCents: 89900,
			StockStatus: enum.StockStatusDiscontinued, Quantity: 0,
			LeadTimeText: "No Longer Available",
			Image:        "/images/products/6-drawer-dresser.png",
			Colors: entity.ColorList{
				{Name: "Arctic White", Value: "#F8F8FF"},
				{Name: "Dove Gray", Value: "#696969"},
			},
		},
	}

	for i := range catalog {
		var existing entity.Product
		if err := db.Where("sku = ?", catalog[i].SKU).First(&existing).Error; err != nil {
			if err := db.Create(&catalog[i]).Error; err != nil {
				log.Printf("Warning: failed to seed product %s: %v", catalog[i].SKU, err)
			}
		}
	}

	log.Println("Product catalog seeded")
	return nil
}
