package entity

import (
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/schedularhq/schedular-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Sale represents a submitted sale order. Customer, delivery and payment are
// stored as JSON documents; items are relational rows. All money columns are
// cents.
type Sale struct {
	ID           uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	OrderNumber  int              `gorm:"uniqueIndex;not null" json:"order_number"`
	CustomerJSON string           `gorm:"type:text;not null" json:"-"`
	DeliveryJSON string           `gorm:"type:text;not null" json:"-"`
	PaymentJSON  string           `gorm:"type:text;not null" json:"-"`
	Status       enum.OrderStatus `gorm:"size:32;default:'draft';index" json:"status"`
	Subtotal     int64            `gorm:"default:0" json:"-"`
	DeliveryFee  int64            `gorm:"default:0" json:"-"`
	Discount     int64            `gorm:"default:0" json:"-"`
	Total        int64            `gorm:"default:0" json:"-"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
	DeletedAt    gorm.DeletedAt   `gorm:"index" json:"-"`

	// Relationships
	Items []SaleItem `gorm:"foreignKey:SaleID" json:"items,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal dollars and
// inline the JSON documents for API responses
func (s Sale) MarshalJSON() ([]byte, error) {
	type Alias Sale
	customer, err := s.Customer()
	if err != nil {
		log.Printf("sale %d: corrupt customer document: %v", s.OrderNumber, err)
	}
	delivery, err := s.Delivery()
	if err != nil {
		log.Printf("sale %d: corrupt delivery document: %v", s.OrderNumber, err)
	}
	payment, err := s.Payment()
	if err != nil {
		log.Printf("sale %d: corrupt payment document: %v", s.OrderNumber, err)
	}
	return json.Marshal(&struct {
		Alias
		Customer *Customer         `json:"customer"`
		Delivery *DeliveryDetails  `json:"delivery"`
		Payment  *PaymentSelection `json:"payment"`
		Totals   SaleTotalsJSON    `json:"totals"`
	}{
		Alias:    Alias(s),
		Customer: customer,
		Delivery: delivery,
		Payment:  payment,
		Totals: SaleTotalsJSON{
			Subtotal:    float64(s.Subtotal) / 100,
			DeliveryFee: float64(s.DeliveryFee) / 100,
			Discount:    float64(s.Discount) / 100,
			Total:       float64(s.Total) / 100,
		},
	})
}

// SaleTotalsJSON is the dollars view of the stored cent totals.
type SaleTotalsJSON struct {
	Subtotal    float64 `json:"subtotal"`
	DeliveryFee float64 `json:"deliveryFee"`
	Discount    float64 `json:"discount"`
	Total       float64 `json:"total"`
}

// BeforeCreate generates a UUID before creating a new sale
func (s *Sale) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Sale model
func (Sale) TableName() string {
	return "sales"
}

// Customer unmarshals the stored customer document.
func (s *Sale) Customer() (*Customer, error) {
	var c Customer
	if err := json.Unmarshal([]byte(s.CustomerJSON), &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Delivery unmarshals the stored delivery document.
func (s *Sale) Delivery() (*DeliveryDetails, error) {
	var d DeliveryDetails
	if err := json.Unmarshal([]byte(s.DeliveryJSON), &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// Payment unmarshals the stored payment document.
func (s *Sale) Payment() (*PaymentSelection, error) {
	var p PaymentSelection
	if err := json.Unmarshal([]byte(s.PaymentJSON), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// SetCustomer stores the customer document.
func (s *Sale) SetCustomer(c *Customer) error {
	raw, err := json.Marshal(c)
	if err != nil {
		return err
	}
	s.CustomerJSON = string(raw)
	return nil
}

// SetDelivery stores the delivery document.
func (s *Sale) SetDelivery(d *DeliveryDetails) error {
	raw, err := json.Marshal(d)
	if err != nil {
		return err
	}
	s.DeliveryJSON = string(raw)
	return nil
}

// SetPayment stores the payment document.
func (s *Sale) SetPayment(p *PaymentSelection) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return err
	}
	s.PaymentJSON = string(raw)
	return nil
}

// SaleItem represents a line item on a persisted sale. UnitPrice is cents.
type SaleItem struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	SaleID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"sale_id"`
	SKU       string         `gorm:"size:100;not null" json:"sku"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	UnitPrice int64          `gorm:"not null" json:"-"`
	Qty       int            `gorm:"not null" json:"qty"`
	Color     string         `gorm:"size:50" json:"color,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (si SaleItem) MarshalJSON() ([]byte, error) {
	type Alias SaleItem
	return json.Marshal(&struct {
		Alias
		Price float64 `json:"price"`
	}{
		Alias: Alias(si),
		Price: float64(si.UnitPrice) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new sale item
func (si *SaleItem) BeforeCreate(tx *gorm.DB) error {
	if si.ID == uuid.Nil {
		si.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SaleItem model
func (SaleItem) TableName() string {
	return "sale_items"
}
