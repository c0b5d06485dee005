package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/schedularhq/schedular-api/internal/domain/enum"
	"gorm.io/gorm"
)

// ColorOption is a selectable finish for a product.
type ColorOption struct {
	Name  string `json:"name"`
	Value string `json:"value"` // hex swatch
}

// ColorList stores color options as a JSON column.
type ColorList []ColorOption

func (c ColorList) Value() (driver.Value, error) {
	if len(c) == 0 {
		return nil, nil
	}
	return json.Marshal(c)
}

func (c *ColorList) Scan(value interface{}) error {
	if value == nil {
		*c = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, c)
	case string:
		return json.Unmarshal([]byte(v), c)
	}
	return errors.New("unsupported color list column type")
}

// Product represents a catalog item. Prices are stored in cents; RRPCents is
// the recommended retail price used for the displayed savings comparison.
type Product struct {
	ID           uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	SKU          string           `gorm:"size:100;unique;not null" json:"sku"`
	Name         string           `gorm:"size:255;not null" json:"name"`
	PriceCents   int64            `gorm:"default:0" json:"-"`
	RRPCents     int64            `gorm:"default:0" json:"-"`
	StockStatus  enum.StockStatus `gorm:"size:32;default:'in-stock'" json:"stock_status"`
	Quantity     int              `gorm:"default:0" json:"quantity"`
	LeadTimeDays int              `gorm:"default:0" json:"lead_time_days,omitempty"`
	LeadTimeText string           `gorm:"size:100" json:"lead_time_text,omitempty"`
	Image        string           `gorm:"size:255" json:"image,omitempty"`
	Colors       ColorList        `gorm:"type:text" json:"colors,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
	DeletedAt    gorm.DeletedAt   `gorm:"index" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (p Product) MarshalJSON() ([]byte, error) {
	type Alias Product
	return json.Marshal(&struct {
		Alias
		Price float64 `json:"price"`
		RRP   float64 `json:"rrp"`
	}{
		Alias: Alias(p),
		Price: float64(p.PriceCents) / 100,
		RRP:   float64(p.RRPCents) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// Available reports whether the requested quantity can be fulfilled from
// stock right now.
func (p *Product) Available(qty int) bool {
	if !p.StockStatus.Sellable() {
		return false
	}
	return p.Quantity >= qty
}
