package service

import (
	"context"
	"log"
	"sync"

	"github.com/schedularhq/schedular-api/internal/domain/entity"
	"github.com/schedularhq/schedular-api/internal/domain/repository"
)

// ProductService answers catalog questions for the wizard. Lookups go
// through an explicit in-process cache owned by this service; a repository
// failure is reported as "unknown", never as an error, so a flaky catalog
// cannot crash a sale in progress.
type ProductService struct {
	productRepo repository.ProductRepository

	mu    sync.RWMutex
	cache map[string]*entity.Product
}

// NewProductService creates a new product service
func NewProductService(productRepo repository.ProductRepository) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		cache:       make(map[string]*entity.Product),
	}
}

// GetProduct resolves a SKU to its catalog entry, or nil when the SKU is
// unknown or the catalog is unreachable.
func (s *ProductService) GetProduct(ctx context.Context, sku string) *entity.Product {
	s.mu.RLock()
	cached, ok := s.cache[sku]
	s.mu.RUnlock()
	if ok {
		return cached
	}

	product, err := s.productRepo.GetBySKU(ctx, sku)
	if err != nil {
		log.Printf("catalog lookup failed for %s: %v", sku, err)
		return nil
	}
	if product == nil {
		return nil
	}

	s.mu.Lock()
	s.cache[sku] = product
	s.mu.Unlock()
	return product
}

// CheckAvailability reports whether qty units of the SKU can be sold.
// Unknown SKUs and lookup failures count as unavailable.
func (s *ProductService) CheckAvailability(ctx context.Context, sku string, qty int) bool {
	product := s.GetProduct(ctx, sku)
	if product == nil {
		return false
	}
	return product.Available(qty)
}

// ValidateCustomer reports whether a customer reference looks usable. The
// customer directory lives outside this system, so only an empty reference
// is rejected; a directory outage must not block a sale.
func (s *ProductService) ValidateCustomer(ctx context.Context, customerRef string) bool {
	return customerRef != ""
}

// ListProducts returns the catalog, optionally filtered by a search term.
func (s *ProductService) ListProducts(ctx context.Context, search string) ([]entity.Product, error) {
	return s.productRepo.List(ctx, search)
}

// ClearCache drops every cached entry. Called after catalog updates.
func (s *ProductService) ClearCache() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = make(map[string]*entity.Product)
}
