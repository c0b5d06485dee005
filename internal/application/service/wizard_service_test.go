package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/schedularhq/schedular-api/internal/config"
	"github.com/schedularhq/schedular-api/internal/domain/entity"
	"github.com/schedularhq/schedular-api/internal/domain/enum"
	"github.com/schedularhq/schedular-api/internal/domain/repository"
	"github.com/schedularhq/schedular-api/internal/domain/wizard"
	"github.com/schedularhq/schedular-api/internal/infrastructure/draftstore"
	"github.com/schedularhq/schedular-api/pkg/apperror"
	"github.com/schedularhq/schedular-api/pkg/orderapi"
)

// recordingNotifier captures toast calls.
type recordingNotifier struct {
	mu       sync.Mutex
	success  []string
	errors   []string
	info     []string
}

func (n *recordingNotifier) Success(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.success = append(n.success, msg)
}

func (n *recordingNotifier) Error(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errors = append(n.errors, msg)
}

func (n *recordingNotifier) Info(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.info = append(n.info, msg)
}

func (n *recordingNotifier) infoCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.info)
}

// recordingNavigator captures navigation requests.
type recordingNavigator struct {
	mu    sync.Mutex
	paths []string
}

func (n *recordingNavigator) NavigateTo(terminalID, path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.paths = append(n.paths, path)
}

func (n *recordingNavigator) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.paths)
}

type wizardFixture struct {
	svc      *WizardService
	store    repository.DraftStore
	notifier *recordingNotifier
	nav      *recordingNavigator
	orders   *fakeSubmitter
	cfg      *config.SaleConfig
}

func newWizardFixture() *wizardFixture {
	cfg := testSaleConfig()
	cfg.ToastDuration = 5 * time.Millisecond

	store := draftstore.NewMemoryDraftStore("v1")
	notifier := &recordingNotifier{}
	nav := &recordingNavigator{}
	orders := &fakeSubmitter{respond: orderapi.OrderResponse{OrderID: "ord_1", OrderNumber: 1001, Status: "pending"}}

	products := NewProductService(newFakeProductRepo())
	calc := NewTotalsCalculator(cfg)
	svc := NewWizardService(store, products, NewDeliveryService(cfg), calc, notifier, nav, orders, cfg)
	svc.validator.Now = func() time.Time {
		return time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	}
	return &wizardFixture{svc: svc, store: store, notifier: notifier, nav: nav, orders: orders, cfg: cfg}
}

// fillDraft walks a terminal through every step with valid data.
func (f *wizardFixture) fillDraft(t *testing.T, term string) {
	t.Helper()
	ctx := context.Background()

	if _, err := f.svc.UpdateCustomer(ctx, term, entity.Customer{
		FirstName: "Maria", LastName: "Santos", Phone: "555-0142",
		Email: "maria@example.com", SameAsDelivery: true,
	}); err != nil {
		t.Fatalf("customer: %v", err)
	}
	if _, err := f.svc.Next(ctx, term); err != nil {
		t.Fatalf("next to products: %v", err)
	}
	if _, err := f.svc.AddLine(ctx, term, "DT-1001", 1, "Natural Oak"); err != nil {
		t.Fatalf("add line: %v", err)
	}
	if _, err := f.svc.Next(ctx, term); err != nil {
		t.Fatalf("next to delivery: %v", err)
	}
	if _, err := f.svc.UpdateDelivery(ctx, term, entity.DeliveryDetails{
		PreferredDate: "2026-03-20", TimeSlot: enum.TimeSlotMorning,
	}); err != nil {
		t.Fatalf("delivery: %v", err)
	}
	if _, err := f.svc.Next(ctx, term); err != nil {
		t.Fatalf("next to payment: %v", err)
	}
	if _, err := f.svc.UpdatePayment(ctx, term, entity.PaymentSelection{
		Method: enum.PaymentMethodCard,
	}); err != nil {
		t.Fatalf("payment: %v", err)
	}
}

func TestStartSessionFresh(t *testing.T) {
	f := newWizardFixture()
	state, err := f.svc.StartSession(context.Background(), "term-1")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if state.ActiveStep != wizard.StepCustomer {
		t.Errorf("active = %q, want customer", state.ActiveStep)
	}
	if !state.Totals.IsEmpty {
		t.Error("fresh session should have empty totals")
	}
}

func TestNextBlockedOnEmptyStep(t *testing.T) {
	f := newWizardFixture()
	ctx := context.Background()
	f.svc.StartSession(ctx, "term-1")

	state, err := f.svc.Next(ctx, "term-1")
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if state.ActiveStep != wizard.StepCustomer {
		t.Errorf("invalid step must not advance, active = %q", state.ActiveStep)
	}
	if state.Validation == nil || state.Validation.Valid {
		t.Error("snapshot should carry the validation hints")
	}
}

func TestAddLineIncrementsExistingSKU(t *testing.T) {
	f := newWizardFixture()
	ctx := context.Background()
	f.svc.StartSession(ctx, "term-1")

	f.svc.AddLine(ctx, "term-1", "DT-1001", 1, "")
	state, err := f.svc.AddLine(ctx, "term-1", "DT-1001", 2, "")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if len(state.Draft.Lines) != 1 {
		t.Fatalf("lines = %d, want 1", len(state.Draft.Lines))
	}
	if state.Draft.Lines[0].Qty != 3 {
		t.Errorf("qty = %d, want 3", state.Draft.Lines[0].Qty)
	}
	if state.Totals.SubtotalCents != 3*199900 {
		t.Errorf("subtotal = %d", state.Totals.SubtotalCents)
	}
}

func TestAddUnknownSKURejected(t *testing.T) {
	f := newWizardFixture()
	ctx := context.Background()
	f.svc.StartSession(ctx, "term-1")

	_, err := f.svc.AddLine(ctx, "term-1", "XX-0000", 1, "")
	if !apperror.IsKind(err, apperror.KindAvailability) {
		t.Errorf("got %v, want availability error", err)
	}
}

func TestLinePriceOverrideYieldsSavings(t *testing.T) {
	f := newWizardFixture()
	ctx := context.Background()
	f.svc.StartSession(ctx, "term-1")

	state, _ := f.svc.AddLine(ctx, "term-1", "DT-1001", 1, "")
	lineID := state.Draft.Lines[0].ID

	state, err := f.svc.SetLinePrice(ctx, "term-1", lineID, 179900)
	if err != nil {
		t.Fatalf("set price: %v", err)
	}
	if !state.Totals.HasSavings() {
		t.Error("marked-down line should yield savings")
	}
	if state.Totals.DisplaySavingsCents() != 20000 {
		t.Errorf("savings = %d, want 20000", state.Totals.DisplaySavingsCents())
	}
	if state.SavingsLabel != "$200" {
		t.Errorf("savings label = %q, want $200", state.SavingsLabel)
	}
}

func TestSnapshotIsolatedFromLaterEdits(t *testing.T) {
	f := newWizardFixture()
	ctx := context.Background()
	f.svc.StartSession(ctx, "term-1")

	before, err := f.svc.AddLine(ctx, "term-1", "DT-1001", 1, "")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	lineID := before.Draft.Lines[0].ID

	// Hammer the line while earlier snapshots and queued draft writes are
	// still live; each save must serialize a draft no later edit can tear.
	for qty := 2; qty <= 500; qty++ {
		if _, err := f.svc.UpdateLineQty(ctx, "term-1", lineID, qty); err != nil {
			t.Fatalf("update qty %d: %v", qty, err)
		}
	}

	if before.Draft.Lines[0].Qty != 1 {
		t.Errorf("earlier snapshot mutated: qty = %d, want 1", before.Draft.Lines[0].Qty)
	}

	f.svc.EndSession(ctx, "term-1", true)
	stored, err := f.store.Load(ctx, "term-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if stored == nil || len(stored.Lines) != 1 {
		t.Fatalf("stored draft = %+v, want one line", stored)
	}
}

func TestDraftPersistedAcrossSessions(t *testing.T) {
	f := newWizardFixture()
	ctx := context.Background()
	f.svc.StartSession(ctx, "term-1")
	f.fillDraft(t, "term-1")

	// In-app navigation away and back: draft survives.
	if err := f.svc.EndSession(ctx, "term-1", true); err != nil {
		t.Fatalf("end: %v", err)
	}
	state, err := f.svc.StartSession(ctx, "term-1")
	if err != nil {
		t.Fatalf("restart: %v", err)
	}
	if state.Draft.Customer.FirstName != "Maria" {
		t.Errorf("customer lost: %+v", state.Draft.Customer)
	}
	if len(state.Draft.Lines) != 1 {
		t.Errorf("lines lost: %+v", state.Draft.Lines)
	}
	if state.ActiveStep != wizard.StepPayment {
		t.Errorf("step lost, active = %q", state.ActiveStep)
	}
	if f.notifier.infoCount() != 0 {
		t.Errorf("clean navigation must not toast, got %v", f.notifier.info)
	}
}

func TestReloadClearsDraftAndNotifiesOnce(t *testing.T) {
	f := newWizardFixture()
	ctx := context.Background()
	f.svc.StartSession(ctx, "term-1")
	f.fillDraft(t, "term-1")

	// Page unload, then a fresh start.
	if err := f.svc.EndSession(ctx, "term-1", false); err != nil {
		t.Fatalf("end: %v", err)
	}
	state, err := f.svc.StartSession(ctx, "term-1")
	if err != nil {
		t.Fatalf("restart: %v", err)
	}
	if len(state.Draft.Lines) != 0 || state.Draft.Customer.FirstName != "" {
		t.Errorf("draft should be cleared after reload: %+v", state.Draft)
	}
	if f.notifier.infoCount() != 1 {
		t.Fatalf("info toasts = %d, want exactly 1", f.notifier.infoCount())
	}

	// A second restart must not toast again.
	f.svc.EndSession(ctx, "term-1", true)
	f.svc.StartSession(ctx, "term-1")
	if f.notifier.infoCount() != 1 {
		t.Errorf("marker fired twice: %v", f.notifier.info)
	}
}

func TestCompleteSubmitsAndNavigates(t *testing.T) {
	f := newWizardFixture()
	ctx := context.Background()
	f.svc.StartSession(ctx, "term-1")
	f.fillDraft(t, "term-1")

	state, err := f.svc.Complete(ctx, "term-1")
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if f.orders.calls.Load() != 1 {
		t.Errorf("network calls = %d, want 1", f.orders.calls.Load())
	}
	if len(f.notifier.success) != 1 {
		t.Errorf("success toasts = %v", f.notifier.success)
	}
	// Draft cleared and wizard reset.
	if len(state.Draft.Lines) != 0 || state.ActiveStep != wizard.StepCustomer {
		t.Errorf("wizard not reset: step=%q lines=%d", state.ActiveStep, len(state.Draft.Lines))
	}
	if stored, _ := f.store.Load(ctx, "term-1"); stored != nil && stored.HasMeaningfulData() {
		t.Error("stored draft should be cleared after submit")
	}

	// Navigation fires after the toast delay.
	deadline := time.Now().Add(time.Second)
	for f.nav.count() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if f.nav.count() != 1 {
		t.Error("expected one navigation request")
	}
}

func TestStateShowsSubmittingDuringComplete(t *testing.T) {
	f := newWizardFixture()
	ctx := context.Background()
	f.svc.StartSession(ctx, "term-1")
	f.fillDraft(t, "term-1")
	f.orders.block = make(chan struct{})

	done := make(chan error, 1)
	go func() {
		_, err := f.svc.Complete(ctx, "term-1")
		done <- err
	}()
	for f.orders.calls.Load() == 0 {
		time.Sleep(time.Millisecond)
	}

	state, err := f.svc.State("term-1")
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	if !state.Submitting {
		t.Error("snapshot does not report the in-flight submission")
	}

	close(f.orders.block)
	if err := <-done; err != nil {
		t.Fatalf("complete: %v", err)
	}
	state, _ = f.svc.State("term-1")
	if state.Submitting {
		t.Error("submitting still set after completion")
	}
}

func TestCompleteInvalidAborts(t *testing.T) {
	f := newWizardFixture()
	ctx := context.Background()
	f.svc.StartSession(ctx, "term-1")

	_, err := f.svc.Complete(ctx, "term-1")
	if !apperror.IsKind(err, apperror.KindValidation) {
		t.Errorf("got %v, want validation error", err)
	}
	if f.orders.calls.Load() != 0 {
		t.Error("invalid draft must not reach the network")
	}
	if len(f.notifier.errors) != 1 {
		t.Errorf("error toasts = %v", f.notifier.errors)
	}
}

func TestCompleteFailureKeepsDraft(t *testing.T) {
	f := newWizardFixture()
	ctx := context.Background()
	f.svc.StartSession(ctx, "term-1")
	f.fillDraft(t, "term-1")

	f.orders.err = apperror.NewSubmissionError(502, "could not reach the order system")
	if _, err := f.svc.Complete(ctx, "term-1"); err == nil {
		t.Fatal("expected submission error")
	}

	state, err := f.svc.State("term-1")
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	if len(state.Draft.Lines) != 1 {
		t.Error("draft must stay intact after a failed submit")
	}

	// Retry succeeds.
	f.orders.err = nil
	if _, err := f.svc.Complete(ctx, "term-1"); err != nil {
		t.Fatalf("retry: %v", err)
	}
}

func TestNavigationDroppedAfterTeardown(t *testing.T) {
	f := newWizardFixture()
	f.cfg.ToastDuration = 30 * time.Millisecond
	ctx := context.Background()
	f.svc.StartSession(ctx, "term-1")
	f.fillDraft(t, "term-1")

	if _, err := f.svc.Complete(ctx, "term-1"); err != nil {
		t.Fatalf("complete: %v", err)
	}
	// Teardown before the toast delay elapses.
	f.svc.EndSession(ctx, "term-1", true)

	time.Sleep(100 * time.Millisecond)
	if f.nav.count() != 0 {
		t.Error("late navigation must be dropped after teardown")
	}
}

func TestGoToCannotSkipAhead(t *testing.T) {
	f := newWizardFixture()
	ctx := context.Background()
	f.svc.StartSession(ctx, "term-1")

	state, err := f.svc.GoTo(ctx, "term-1", "payment")
	if err != nil {
		t.Fatalf("goto: %v", err)
	}
	if state.ActiveStep != wizard.StepCustomer {
		t.Errorf("jump past incomplete steps must no-op, active = %q", state.ActiveStep)
	}
}

func TestRestart(t *testing.T) {
	f := newWizardFixture()
	ctx := context.Background()
	f.svc.StartSession(ctx, "term-1")
	f.fillDraft(t, "term-1")

	state, err := f.svc.Restart(ctx, "term-1")
	if err != nil {
		t.Fatalf("restart: %v", err)
	}
	if len(state.Draft.Lines) != 0 || state.ActiveStep != wizard.StepCustomer {
		t.Error("restart should reset the wizard")
	}
	if stored, _ := f.store.Load(ctx, "term-1"); stored != nil {
		t.Error("restart should clear the stored draft")
	}
}
