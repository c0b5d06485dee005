package request

import (
	"github.com/schedularhq/schedular-api/internal/application/service"
	"github.com/schedularhq/schedular-api/internal/domain/entity"
	"github.com/schedularhq/schedular-api/pkg/money"
	"github.com/shopspring/decimal"
)

// SaleItemRequest is one item on an incoming sale. Price is decimal
// dollars on the wire and converted to cents exactly.
type SaleItemRequest struct {
	SKU   string          `json:"sku" binding:"required"`
	Name  string          `json:"name"`
	Qty   int             `json:"qty" binding:"required,min=1"`
	Price decimal.Decimal `json:"price" binding:"required"`
	Color string          `json:"color"`
}

// PaymentRequest carries the payment selection; deposit is decimal dollars.
type PaymentRequest struct {
	Method          string          `json:"method" binding:"required"`
	Deposit         decimal.Decimal `json:"deposit"`
	DiscountPercent float64         `json:"discount_percent" binding:"min=0"`
}

// CreateSaleRequest represents a create sale request
type CreateSaleRequest struct {
	Customer    entity.Customer        `json:"customer" binding:"required"`
	Items       []SaleItemRequest      `json:"items" binding:"required,min=1,dive"`
	Delivery    entity.DeliveryDetails `json:"delivery" binding:"required"`
	Payment     PaymentRequest         `json:"payment" binding:"required"`
	DeliveryFee decimal.Decimal        `json:"delivery_fee"`
}

// UpdateSaleRequest represents a partial sale update; nil fields are left
// untouched.
type UpdateSaleRequest struct {
	Customer    *entity.Customer        `json:"customer"`
	Items       []SaleItemRequest       `json:"items"`
	Delivery    *entity.DeliveryDetails `json:"delivery"`
	Payment     *PaymentRequest         `json:"payment"`
	Status      *string                 `json:"status"`
	DeliveryFee *decimal.Decimal        `json:"delivery_fee"`
}

// ToItems converts wire items to service inputs.
func ToItems(items []SaleItemRequest) []service.SaleItemInput {
	out := make([]service.SaleItemInput, 0, len(items))
	for _, item := range items {
		out = append(out, service.SaleItemInput{
			SKU:        item.SKU,
			Name:       item.Name,
			Qty:        item.Qty,
			PriceCents: money.CentsFromDecimal(item.Price),
			Color:      item.Color,
		})
	}
	return out
}
