package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/schedularhq/schedular-api/internal/domain/entity"
	"github.com/schedularhq/schedular-api/internal/domain/enum"
	"github.com/schedularhq/schedular-api/pkg/pagination"
)

// SaleRepository defines the interface for sale order data operations
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error)
	GetByOrderNumber(ctx context.Context, orderNumber int) (*entity.Sale, error)
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Sale, error)
	Update(ctx context.Context, sale *entity.Sale) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.OrderStatus) error
	ReplaceItems(ctx context.Context, saleID uuid.UUID, items []entity.SaleItem) error
	List(ctx context.Context, params *SaleFilterParams) ([]entity.Sale, int64, error)
	NextOrderNumber(ctx context.Context) (int, error)
}

// SaleFilterParams contains filtering parameters for sale queries
type SaleFilterParams struct {
	Pagination *pagination.PaginationParams
	Status     *enum.OrderStatus
	StartDate  *time.Time
	EndDate    *time.Time
	SortBy     string
	SortOrder  string
}
