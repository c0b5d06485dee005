package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/schedularhq/schedular-api/internal/config"
	"github.com/schedularhq/schedular-api/internal/domain/entity"
	"github.com/schedularhq/schedular-api/internal/domain/enum"
	"github.com/schedularhq/schedular-api/internal/domain/repository"
	"github.com/schedularhq/schedular-api/pkg/apperror"
	"github.com/schedularhq/schedular-api/pkg/money"
)

// SaleService handles persisted sale orders. Totals are always recomputed
// here from the submitted items, never trusted from the client.
type SaleService struct {
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
	calc        *TotalsCalculator
	cfg         *config.SaleConfig
}

// NewSaleService creates a new sale service
func NewSaleService(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	calc *TotalsCalculator,
	cfg *config.SaleConfig,
) *SaleService {
	return &SaleService{
		saleRepo:    saleRepo,
		productRepo: productRepo,
		calc:        calc,
		cfg:         cfg,
	}
}

// SaleItemInput represents an item on an incoming sale
type SaleItemInput struct {
	SKU        string
	Name       string
	Qty        int
	PriceCents int64
	Color      string
}

// CreateSaleInput represents the create sale input
type CreateSaleInput struct {
	Customer         entity.Customer
	Items            []SaleItemInput
	Delivery         entity.DeliveryDetails
	Payment          entity.PaymentSelection
	DeliveryFeeCents int64
}

// CreateSale persists a new sale: totals recomputed server-side, sequential
// order number assigned, status pending.
func (s *SaleService) CreateSale(ctx context.Context, input *CreateSaleInput) (*entity.Sale, error) {
	if len(input.Items) == 0 {
		return nil, apperror.NewBadRequestError("a sale requires at least one item")
	}
	for _, item := range input.Items {
		if item.Qty < 1 {
			return nil, apperror.NewBadRequestError("item quantity must be at least 1")
		}
		if item.PriceCents < 0 {
			return nil, apperror.NewBadRequestError("item price cannot be negative")
		}
	}

	input.Payment.DiscountPercent = clampPercent(input.Payment.DiscountPercent, s.cfg.MaxDiscountPercent)

	items := s.buildItems(ctx, input.Items)
	subtotal := int64(0)
	for _, item := range items {
		subtotal += int64(item.Qty) * item.UnitPrice
	}
	deliveryFee := input.DeliveryFeeCents + s.calc.AddOnFeeCents(&input.Delivery)
	discount := money.CalculateDiscount(subtotal+deliveryFee, input.Payment.DiscountPercent)
	total := subtotal + deliveryFee - discount

	if input.Payment.DepositCents < 0 || input.Payment.DepositCents > total {
		return nil, apperror.NewBadRequestError("deposit must be between zero and the order total")
	}

	orderNumber, err := s.saleRepo.NextOrderNumber(ctx)
	if err != nil {
		return nil, apperror.ErrInternalServer
	}

	sale := &entity.Sale{
		OrderNumber: orderNumber,
		Status:      enum.OrderStatusPending,
		Subtotal:    subtotal,
		DeliveryFee: deliveryFee,
		Discount:    discount,
		Total:       total,
		Items:       items,
	}
	if err := sale.SetCustomer(&input.Customer); err != nil {
		return nil, apperror.ErrInternalServer
	}
	if err := sale.SetDelivery(&input.Delivery); err != nil {
		return nil, apperror.ErrInternalServer
	}
	if err := sale.SetPayment(&input.Payment); err != nil {
		return nil, apperror.ErrInternalServer
	}

	if err := s.saleRepo.Create(ctx, sale); err != nil {
		return nil, apperror.ErrInternalServer
	}
	return sale, nil
}

// buildItems converts inputs to sale items, filling missing names from the
// catalog when the SKU is known.
func (s *SaleService) buildItems(ctx context.Context, inputs []SaleItemInput) []entity.SaleItem {
	skus := make([]string, 0, len(inputs))
	for _, in := range inputs {
		if in.Name == "" {
			skus = append(skus, in.SKU)
		}
	}

	names := make(map[string]string)
	if len(skus) > 0 {
		if products, err := s.productRepo.GetBySKUs(ctx, skus); err == nil {
			for _, p := range products {
				names[p.SKU] = p.Name
			}
		}
	}

	items := make([]entity.SaleItem, 0, len(inputs))
	for _, in := range inputs {
		name := in.Name
		if name == "" {
			name = names[in.SKU]
		}
		items = append(items, entity.SaleItem{
			SKU:       in.SKU,
			Name:      name,
			UnitPrice: in.PriceCents,
			Qty:       in.Qty,
			Color:     in.Color,
		})
	}
	return items
}

// GetSale retrieves a sale with its items.
func (s *SaleService) GetSale(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, apperror.ErrInternalServer
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	return sale, nil
}

// GetSaleByNumber retrieves a single sale by its sequential order number,
// the identifier printed on receipts and read back over the phone.
func (s *SaleService) GetSaleByNumber(ctx context.Context, orderNumber int) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetByOrderNumber(ctx, orderNumber)
	if err != nil {
		return nil, apperror.ErrInternalServer
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	return sale, nil
}

// ListSales retrieves sales with filtering and pagination.
func (s *SaleService) ListSales(ctx context.Context, params *repository.SaleFilterParams) ([]entity.Sale, int64, error) {
	sales, total, err := s.saleRepo.List(ctx, params)
	if err != nil {
		return nil, 0, apperror.ErrInternalServer
	}
	return sales, total, nil
}

// UpdateSaleInput represents a partial sale update; nil fields are left
// untouched.
type UpdateSaleInput struct {
	Customer         *entity.Customer
	Items            []SaleItemInput
	Delivery         *entity.DeliveryDetails
	Payment          *entity.PaymentSelection
	Status           *enum.OrderStatus
	DeliveryFeeCents *int64
}

// UpdateSale applies a partial update and recomputes totals when anything
// money-bearing changed.
func (s *SaleService) UpdateSale(ctx context.Context, id uuid.UUID, input *UpdateSaleInput) (*entity.Sale, error) {
	sale, err := s.GetSale(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale.Status == enum.OrderStatusCancelled {
		return nil, apperror.NewBadRequestError("cannot update a cancelled sale")
	}

	if input.Customer != nil {
		if err := sale.SetCustomer(input.Customer); err != nil {
			return nil, apperror.ErrInternalServer
		}
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, apperror.NewBadRequestError("invalid status")
		}
		sale.Status = *input.Status
	}

	// The stored fee column includes add-on fees; recover the base portion
	// before any delivery change so it can be re-applied afterwards.
	baseFee := sale.DeliveryFee
	if prev, perr := sale.Delivery(); perr == nil {
		baseFee -= s.calc.AddOnFeeCents(prev)
	}
	if input.DeliveryFeeCents != nil {
		baseFee = *input.DeliveryFeeCents
	}

	moneyChanged := false
	if input.Delivery != nil {
		if err := sale.SetDelivery(input.Delivery); err != nil {
			return nil, apperror.ErrInternalServer
		}
		moneyChanged = true
	}
	if input.Payment != nil {
		input.Payment.DiscountPercent = clampPercent(input.Payment.DiscountPercent, s.cfg.MaxDiscountPercent)
		if err := sale.SetPayment(input.Payment); err != nil {
			return nil, apperror.ErrInternalServer
		}
		moneyChanged = true
	}
	if input.DeliveryFeeCents != nil {
		moneyChanged = true
	}
	if input.Items != nil {
		items := s.buildItems(ctx, input.Items)
		if err := s.saleRepo.ReplaceItems(ctx, sale.ID, items); err != nil {
			return nil, apperror.ErrInternalServer
		}
		sale.Items = items
		moneyChanged = true
	}

	if moneyChanged {
		delivery, err := sale.Delivery()
		if err != nil {
			return nil, apperror.ErrInternalServer
		}
		payment, err := sale.Payment()
		if err != nil {
			return nil, apperror.ErrInternalServer
		}

		subtotal := int64(0)
		for _, item := range sale.Items {
			subtotal += int64(item.Qty) * item.UnitPrice
		}
		deliveryFee := baseFee + s.calc.AddOnFeeCents(delivery)
		discount := money.CalculateDiscount(subtotal+deliveryFee, payment.DiscountPercent)

		sale.Subtotal = subtotal
		sale.DeliveryFee = deliveryFee
		sale.Discount = discount
		sale.Total = subtotal + deliveryFee - discount
	}

	if err := s.saleRepo.Update(ctx, sale); err != nil {
		return nil, apperror.ErrInternalServer
	}
	return sale, nil
}

// CancelSale marks a sale cancelled. Cancelling twice is rejected.
func (s *SaleService) CancelSale(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	sale, err := s.GetSale(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale.Status == enum.OrderStatusCancelled {
		return nil, apperror.ErrOrderAlreadyCancel
	}

	if err := s.saleRepo.UpdateStatus(ctx, id, enum.OrderStatusCancelled); err != nil {
		return nil, apperror.ErrInternalServer
	}
	sale.Status = enum.OrderStatusCancelled
	return sale, nil
}

func clampPercent(pct, max float64) float64 {
	if pct < 0 {
		return 0
	}
	if pct > max {
		return max
	}
	return pct
}
