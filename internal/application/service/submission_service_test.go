package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/schedularhq/schedular-api/internal/domain/entity"
	"github.com/schedularhq/schedular-api/pkg/apperror"
	"github.com/schedularhq/schedular-api/pkg/orderapi"
)

// fakeSubmitter counts calls and optionally blocks until released.
type fakeSubmitter struct {
	calls   atomic.Int32
	block   chan struct{}
	err     error
	respond orderapi.OrderResponse
}

func (f *fakeSubmitter) CreateOrder(ctx context.Context, req *orderapi.OrderRequest) (*orderapi.OrderResponse, error) {
	f.calls.Add(1)
	if f.block != nil {
		<-f.block
	}
	if f.err != nil {
		return nil, f.err
	}
	resp := f.respond
	return &resp, nil
}

func submittableDraft() *entity.WizardDraft {
	d := entity.NewWizardDraft()
	d.Lines = []entity.LineItem{{ID: 1, SKU: "DT-1001", Name: "Oak Dining Table", Qty: 1, PriceCents: 199900}}
	return d
}

func TestSubmitHappyPath(t *testing.T) {
	fake := &fakeSubmitter{respond: orderapi.OrderResponse{OrderID: "ord_1", OrderNumber: 1001, Status: "pending"}}
	svc := NewSubmissionService(fake)

	resp, err := svc.Submit(context.Background(), submittableDraft(), Totals{TotalCents: 199900})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if resp.OrderNumber != 1001 {
		t.Errorf("order number = %d", resp.OrderNumber)
	}
	if fake.calls.Load() != 1 {
		t.Errorf("calls = %d, want 1", fake.calls.Load())
	}
	if svc.InFlight() {
		t.Error("flag must be cleared after success")
	}
}

func TestSubmitReentrancy(t *testing.T) {
	// Two near-simultaneous submits: exactly one network call.
	fake := &fakeSubmitter{block: make(chan struct{})}
	svc := NewSubmissionService(fake)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if _, err := svc.Submit(context.Background(), submittableDraft(), Totals{}); err != nil {
			t.Errorf("first submit: %v", err)
		}
	}()

	// Wait until the first submit is holding the gate.
	for fake.calls.Load() == 0 {
		time.Sleep(time.Millisecond)
	}

	_, err := svc.Submit(context.Background(), submittableDraft(), Totals{})
	if !errors.Is(err, apperror.ErrSubmissionInFlight) {
		t.Errorf("second submit: got %v, want ErrSubmissionInFlight", err)
	}

	close(fake.block)
	wg.Wait()

	if fake.calls.Load() != 1 {
		t.Errorf("network calls = %d, want exactly 1", fake.calls.Load())
	}
}

func TestSubmitFailureClearsFlag(t *testing.T) {
	fake := &fakeSubmitter{err: apperror.NewSubmissionError(502, "could not reach the order system")}
	svc := NewSubmissionService(fake)

	if _, err := svc.Submit(context.Background(), submittableDraft(), Totals{}); err == nil {
		t.Fatal("expected an error")
	}
	if svc.InFlight() {
		t.Error("flag must be cleared after failure")
	}

	// Retry reaches the network again.
	fake.err = nil
	if _, err := svc.Submit(context.Background(), submittableDraft(), Totals{}); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if fake.calls.Load() != 2 {
		t.Errorf("calls = %d, want 2", fake.calls.Load())
	}
}
