package service

import (
	"context"
	"strings"
	"time"

	"github.com/schedularhq/schedular-api/internal/config"
	"github.com/schedularhq/schedular-api/internal/domain/entity"
)

// DeliveryService estimates base delivery fees and exposes the bookable
// date window. The base fee depends on the delivery zone; the add-on
// service fees are a separate fixed table applied by the totals calculator.
type DeliveryService struct {
	cfg *config.SaleConfig
	now func() time.Time
}

// NewDeliveryService creates a new delivery service
func NewDeliveryService(cfg *config.SaleConfig) *DeliveryService {
	return &DeliveryService{cfg: cfg, now: time.Now}
}

// zoneSurchargeCents maps postcode prefixes to delivery surcharges on top
// of the configured base fee. Unlisted postcodes pay the base fee only.
var zoneSurchargeCents = map[string]int64{
	"8": 2500, // regional
	"9": 5000, // remote
}

// CalculateFee quotes the base delivery fee in cents for a postcode and
// cart. Bulky carts (five or more units) pay a flat handling surcharge.
func (s *DeliveryService) CalculateFee(ctx context.Context, postcode string, lines []entity.LineItem) int64 {
	fee := s.cfg.DefaultDeliveryFeeCents

	postcode = strings.TrimSpace(postcode)
	if postcode != "" {
		if surcharge, ok := zoneSurchargeCents[postcode[:1]]; ok {
			fee += surcharge
		}
	}

	units := 0
	for _, line := range lines {
		units += line.Qty
	}
	if units >= 5 {
		fee += 2000
	}
	return fee
}

// DateWindow returns the earliest and latest bookable delivery dates,
// day-granular, derived from the configured lead times.
func (s *DeliveryService) DateWindow() (earliest, latest time.Time) {
	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return today.AddDate(0, 0, s.cfg.MinDeliveryDays), today.AddDate(0, 0, s.cfg.MaxDeliveryDays)
}
