package service

import (
	"github.com/schedularhq/schedular-api/internal/config"
	"github.com/schedularhq/schedular-api/internal/domain/entity"
	"github.com/schedularhq/schedular-api/pkg/money"
)

// Totals is the derived money view of a draft. All amounts are cents. It is
// recomputed from its inputs on every change and never persisted on its own.
type Totals struct {
	SubtotalCents    int64 `json:"subtotalCents"`
	DeliveryFeeCents int64 `json:"deliveryFeeCents"`
	DiscountCents    int64 `json:"discountCents"`
	TotalCents       int64 `json:"totalCents"`
	RRPTotalCents    int64 `json:"rrpTotalCents"`
	SavingsCents     int64 `json:"savingsCents"`
	DepositCents     int64 `json:"depositCents"`
	BalanceDueCents  int64 `json:"balanceDueCents"`
	IsEmpty          bool  `json:"isEmpty"`
}

// HasSavings reports whether the cart is cheaper than RRP. Savings are
// floored at zero for display, never shown negative.
func (t Totals) HasSavings() bool {
	return t.SavingsCents > 0
}

// DisplaySavingsCents returns the non-negative savings amount.
func (t Totals) DisplaySavingsCents() int64 {
	if t.SavingsCents < 0 {
		return 0
	}
	return t.SavingsCents
}

// CatalogLookup resolves a SKU to its catalog entry, or nil when unknown.
// Lookup failure is "unknown", never an error.
type CatalogLookup func(sku string) *entity.Product

// TotalsCalculator derives Totals from a draft. Pure: same inputs always
// produce cent-for-cent identical output.
type TotalsCalculator struct {
	cfg *config.SaleConfig
}

// NewTotalsCalculator creates a totals calculator with the add-on fee table
// from config.
func NewTotalsCalculator(cfg *config.SaleConfig) *TotalsCalculator {
	return &TotalsCalculator{cfg: cfg}
}

// AddOnFeeCents sums the fixed fees for the enabled delivery add-ons.
func (c *TotalsCalculator) AddOnFeeCents(d *entity.DeliveryDetails) int64 {
	var fee int64
	if d.WhiteGloveService {
		fee += c.cfg.WhiteGloveFeeCents
	}
	if d.OldItemRemoval {
		fee += c.cfg.RemovalFeeCents
	}
	if d.SetupService {
		fee += c.cfg.SetupFeeCents
	}
	return fee
}

// Compute derives the totals. The discount percent on the draft is assumed
// to be clamped to the configured range already; the delivery fee is the
// draft's base fee plus the enabled add-on fees. Unknown SKUs fall back to
// the line's own price for the RRP comparison, contributing zero savings.
func (c *TotalsCalculator) Compute(draft *entity.WizardDraft, lookup CatalogLookup) Totals {
	if len(draft.Lines) == 0 {
		return Totals{IsEmpty: true}
	}

	var subtotal, rrpTotal int64
	for _, line := range draft.Lines {
		qty := int64(line.Qty)
		subtotal += qty * line.PriceCents

		rrp := line.PriceCents
		if lookup != nil {
			if p := lookup(line.SKU); p != nil {
				rrp = p.RRPCents
			}
		}
		rrpTotal += qty * rrp
	}

	deliveryFee := draft.DeliveryFeeCents + c.AddOnFeeCents(&draft.Delivery)
	discount := money.CalculateDiscount(subtotal+deliveryFee, draft.Payment.DiscountPercent)
	total := subtotal + deliveryFee - discount

	return Totals{
		SubtotalCents:    subtotal,
		DeliveryFeeCents: deliveryFee,
		DiscountCents:    discount,
		TotalCents:       total,
		RRPTotalCents:    rrpTotal,
		SavingsCents:     rrpTotal - total,
		DepositCents:     draft.Payment.DepositCents,
		BalanceDueCents:  total - draft.Payment.DepositCents,
	}
}
