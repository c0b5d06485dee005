package service

import (
	"testing"

	"github.com/schedularhq/schedular-api/internal/config"
	"github.com/schedularhq/schedular-api/internal/domain/entity"
)

func testSaleConfig() *config.SaleConfig {
	return &config.SaleConfig{
		MinDeliveryDays:         7,
		MaxDeliveryDays:         30,
		DefaultDeliveryFeeCents: 0,
		MaxDiscountPercent:      50,
		WhiteGloveFeeCents:      15000,
		RemovalFeeCents:         5000,
		SetupFeeCents:           7500,
	}
}

func TestComputeEmptyCart(t *testing.T) {
	calc := NewTotalsCalculator(testSaleConfig())
	totals := calc.Compute(entity.NewWizardDraft(), nil)

	if !totals.IsEmpty {
		t.Error("empty cart should report IsEmpty")
	}
	if totals.SubtotalCents != 0 || totals.TotalCents != 0 || totals.DiscountCents != 0 {
		t.Errorf("empty cart totals must be zero: %+v", totals)
	}
}

func TestComputeTenPercentDiscount(t *testing.T) {
	// Two units at $100.00, no fee, 10% discount.
	calc := NewTotalsCalculator(testSaleConfig())
	draft := entity.NewWizardDraft()
	draft.Lines = []entity.LineItem{{ID: 1, SKU: "A", Qty: 2, PriceCents: 10000}}
	draft.Payment.DiscountPercent = 10

	totals := calc.Compute(draft, nil)
	if totals.SubtotalCents != 20000 {
		t.Errorf("subtotal = %d, want 20000", totals.SubtotalCents)
	}
	if totals.DiscountCents != 2000 {
		t.Errorf("discount = %d, want 2000", totals.DiscountCents)
	}
	if totals.TotalCents != 18000 {
		t.Errorf("total = %d, want 18000", totals.TotalCents)
	}
}

func TestComputeMaxDiscountWithFee(t *testing.T) {
	// Subtotal $40.00, fee $10.00, 50% discount on both.
	calc := NewTotalsCalculator(testSaleConfig())
	draft := entity.NewWizardDraft()
	draft.Lines = []entity.LineItem{{ID: 1, SKU: "A", Qty: 1, PriceCents: 4000}}
	draft.DeliveryFeeCents = 1000
	draft.Payment.DiscountPercent = 50

	totals := calc.Compute(draft, nil)
	if totals.DiscountCents != 2500 {
		t.Errorf("discount = %d, want 2500", totals.DiscountCents)
	}
	if totals.TotalCents != 2500 {
		t.Errorf("total = %d, want 2500", totals.TotalCents)
	}
}

func TestComputeAddOnFees(t *testing.T) {
	calc := NewTotalsCalculator(testSaleConfig())
	draft := entity.NewWizardDraft()
	draft.Lines = []entity.LineItem{{ID: 1, SKU: "A", Qty: 1, PriceCents: 10000}}
	draft.Delivery.WhiteGloveService = true
	draft.Delivery.SetupService = true

	totals := calc.Compute(draft, nil)
	if totals.DeliveryFeeCents != 22500 {
		t.Errorf("delivery fee = %d, want 22500", totals.DeliveryFeeCents)
	}
	if totals.TotalCents != 32500 {
		t.Errorf("total = %d, want 32500", totals.TotalCents)
	}
}

func TestComputeRRPFallbackForUnknownSKU(t *testing.T) {
	calc := NewTotalsCalculator(testSaleConfig())
	draft := entity.NewWizardDraft()
	draft.Lines = []entity.LineItem{
		{ID: 1, SKU: "KNOWN", Qty: 1, PriceCents: 8000},
		{ID: 2, SKU: "UNKNOWN", Qty: 2, PriceCents: 3000},
	}

	lookup := func(sku string) *entity.Product {
		if sku == "KNOWN" {
			return &entity.Product{SKU: "KNOWN", PriceCents: 10000, RRPCents: 10000}
		}
		return nil
	}

	totals := calc.Compute(draft, lookup)
	// Known line compares against catalog RRP; unknown line against itself.
	if totals.RRPTotalCents != 16000 {
		t.Errorf("rrp total = %d, want 16000", totals.RRPTotalCents)
	}
	if totals.SubtotalCents != 14000 {
		t.Errorf("subtotal = %d, want 14000", totals.SubtotalCents)
	}
	if !totals.HasSavings() {
		t.Error("discounted known line should yield savings")
	}
}

func TestSavingsNeverDisplayedNegative(t *testing.T) {
	calc := NewTotalsCalculator(testSaleConfig())
	draft := entity.NewWizardDraft()
	draft.Lines = []entity.LineItem{{ID: 1, SKU: "A", Qty: 1, PriceCents: 10000}}
	draft.DeliveryFeeCents = 5000 // fee pushes the total above RRP

	totals := calc.Compute(draft, nil)
	if totals.SavingsCents >= 0 {
		t.Fatalf("expected raw negative savings, got %d", totals.SavingsCents)
	}
	if totals.HasSavings() {
		t.Error("negative savings must not count as savings")
	}
	if totals.DisplaySavingsCents() != 0 {
		t.Errorf("display savings = %d, want 0", totals.DisplaySavingsCents())
	}
}

func TestComputeIsDeterministic(t *testing.T) {
	calc := NewTotalsCalculator(testSaleConfig())
	draft := entity.NewWizardDraft()
	draft.Lines = []entity.LineItem{
		{ID: 1, SKU: "A", Qty: 3, PriceCents: 3333},
		{ID: 2, SKU: "B", Qty: 7, PriceCents: 919},
	}
	draft.DeliveryFeeCents = 250
	draft.Payment.DiscountPercent = 12.5

	first := calc.Compute(draft, nil)
	for i := 0; i < 1000; i++ {
		if got := calc.Compute(draft, nil); got != first {
			t.Fatalf("iteration %d drifted: %+v != %+v", i, got, first)
		}
	}
}

func TestBalanceDue(t *testing.T) {
	calc := NewTotalsCalculator(testSaleConfig())
	draft := entity.NewWizardDraft()
	draft.Lines = []entity.LineItem{{ID: 1, SKU: "A", Qty: 1, PriceCents: 100000}}
	draft.Payment.DepositCents = 30000

	totals := calc.Compute(draft, nil)
	if totals.BalanceDueCents != 70000 {
		t.Errorf("balance due = %d, want 70000", totals.BalanceDueCents)
	}
}
