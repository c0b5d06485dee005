package repository

import (
	"context"
	"errors"

	"github.com/schedularhq/schedular-api/internal/domain/entity"
	domainRepo "github.com/schedularhq/schedular-api/internal/domain/repository"
	"gorm.io/gorm"
)

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *gorm.DB) domainRepo.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	var product entity.Product
	err := r.db.WithContext(ctx).First(&product, "sku = ?", sku).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &product, err
}

// GetBySKUs retrieves multiple products in a single query
func (r *productRepository) GetBySKUs(ctx context.Context, skus []string) ([]entity.Product, error) {
	if len(skus) == 0 {
		return []entity.Product{}, nil
	}
	var products []entity.Product
	err := r.db.WithContext(ctx).
		Where("sku IN ?", skus).
		Find(&products).Error
	return products, err
}

func (r *productRepository) List(ctx context.Context, search string) ([]entity.Product, error) {
	var products []entity.Product
	query := r.db.WithContext(ctx).Order("sku ASC")
	if search != "" {
		like := "%" + search + "%"
		query = query.Where("name ILIKE ? OR sku ILIKE ?", like, like)
	}
	err := query.Find(&products).Error
	return products, err
}

func (r *productRepository) Upsert(ctx context.Context, product *entity.Product) error {
	var existing entity.Product
	err := r.db.WithContext(ctx).First(&existing, "sku = ?", product.SKU).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.WithContext(ctx).Create(product).Error
	}
	if err != nil {
		return err
	}
	product.ID = existing.ID
	return r.db.WithContext(ctx).Save(product).Error
}
