package repository

import (
	"context"

	"github.com/schedularhq/schedular-api/internal/domain/entity"
)

// ProductRepository defines the interface for catalog data operations
type ProductRepository interface {
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	GetBySKUs(ctx context.Context, skus []string) ([]entity.Product, error)
	List(ctx context.Context, search string) ([]entity.Product, error)
	Upsert(ctx context.Context, product *entity.Product) error
}
