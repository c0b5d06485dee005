package draftstore

import (
	"context"
	"testing"

	"github.com/schedularhq/schedular-api/internal/domain/entity"
	"github.com/schedularhq/schedular-api/internal/domain/enum"
)

func sampleDraft() *entity.WizardDraft {
	d := entity.NewWizardDraft()
	d.Customer.FirstName = "Maria"
	d.Customer.LastName = "Santos"
	d.Lines = []entity.LineItem{
		{ID: 1, SKU: "DT-1001", Name: "Oak Dining Table", Qty: 2, PriceCents: 199900},
	}
	d.NextLineID = 2
	d.Delivery.TimeSlot = enum.TimeSlotMorning
	d.CurrentStep = "delivery"
	return d
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryDraftStore("v1")

	if err := store.Save(ctx, "term-1", sampleDraft()); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := store.Load(ctx, "term-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got == nil {
		t.Fatal("expected a draft")
	}
	if got.Customer.FirstName != "Maria" {
		t.Errorf("first name = %q", got.Customer.FirstName)
	}
	if len(got.Lines) != 1 || got.Lines[0].SKU != "DT-1001" || got.Lines[0].Qty != 2 {
		t.Errorf("lines not restored: %+v", got.Lines)
	}
	if got.CurrentStep != "delivery" {
		t.Errorf("current step = %q", got.CurrentStep)
	}
}

func TestLoadEmptySlot(t *testing.T) {
	store := NewMemoryDraftStore("v1")
	got, err := store.Load(context.Background(), "term-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != nil {
		t.Error("empty slot should load as nil, not error")
	}
}

func TestClearRemovesDraft(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryDraftStore("v1")

	if err := store.Save(ctx, "term-1", sampleDraft()); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Clear(ctx, "term-1"); err != nil {
		t.Fatalf("clear: %v", err)
	}

	got, err := store.Load(ctx, "term-1")
	if err != nil || got != nil {
		t.Errorf("cleared slot should be absent, got (%v, %v)", got, err)
	}
}

func TestVersionMismatchReadsAsAbsent(t *testing.T) {
	ctx := context.Background()
	old := NewMemoryDraftStore("v1").(*memoryDraftStore)

	if err := old.Save(ctx, "term-1", sampleDraft()); err != nil {
		t.Fatalf("save: %v", err)
	}

	// A new deployment reads the same slots under a bumped version.
	upgraded := &memoryDraftStore{
		slots:   old.slots,
		markers: old.markers,
		version: "v2",
	}
	got, err := upgraded.Load(ctx, "term-1")
	if err != nil {
		t.Fatalf("version mismatch must not error: %v", err)
	}
	if got != nil {
		t.Error("version mismatch should read as no draft")
	}
}

func TestDraftsAreIsolatedPerTerminal(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryDraftStore("v1")

	if err := store.Save(ctx, "term-1", sampleDraft()); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := store.Load(ctx, "term-2")
	if err != nil || got != nil {
		t.Errorf("other terminal should have no draft, got (%v, %v)", got, err)
	}
}

func TestUnloadMarkerIsOneShot(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryDraftStore("v1")

	present, err := store.ConsumeUnloadMarker(ctx, "term-1")
	if err != nil || present {
		t.Fatalf("no marker written yet, got (%v, %v)", present, err)
	}

	if err := store.MarkUnload(ctx, "term-1"); err != nil {
		t.Fatalf("mark: %v", err)
	}

	present, err = store.ConsumeUnloadMarker(ctx, "term-1")
	if err != nil || !present {
		t.Fatalf("marker should be present once, got (%v, %v)", present, err)
	}

	present, err = store.ConsumeUnloadMarker(ctx, "term-1")
	if err != nil || present {
		t.Error("marker must not trigger twice")
	}
}

func TestSaveIsFullSnapshot(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryDraftStore("v1")

	first := sampleDraft()
	if err := store.Save(ctx, "term-1", first); err != nil {
		t.Fatalf("save: %v", err)
	}

	second := entity.NewWizardDraft()
	second.Customer.FirstName = "Jonas"
	if err := store.Save(ctx, "term-1", second); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := store.Load(ctx, "term-1")
	if err != nil || got == nil {
		t.Fatalf("load: (%v, %v)", got, err)
	}
	if got.Customer.FirstName != "Jonas" {
		t.Errorf("first name = %q, want Jonas", got.Customer.FirstName)
	}
	if len(got.Lines) != 0 {
		t.Errorf("old lines leaked into the new snapshot: %+v", got.Lines)
	}
}
