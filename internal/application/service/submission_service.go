package service

import (
	"context"
	"sync/atomic"

	"github.com/schedularhq/schedular-api/internal/domain/entity"
	"github.com/schedularhq/schedular-api/pkg/apperror"
	"github.com/schedularhq/schedular-api/pkg/orderapi"
)

// OrderSubmitter is the outbound order API surface the submission service
// depends on.
type OrderSubmitter interface {
	CreateOrder(ctx context.Context, req *orderapi.OrderRequest) (*orderapi.OrderResponse, error)
}

// SubmissionService performs the one network call that turns a draft into
// an order. While a submission is in flight any further call is rejected
// locally without touching the network; the flag is cleared on every exit
// path so a failed submit can be retried. It never retries on its own.
type SubmissionService struct {
	client   OrderSubmitter
	inFlight atomic.Bool
}

// NewSubmissionService creates a new submission service
func NewSubmissionService(client OrderSubmitter) *SubmissionService {
	return &SubmissionService{client: client}
}

// InFlight reports whether a submission is currently running.
func (s *SubmissionService) InFlight() bool {
	return s.inFlight.Load()
}

// Submit sends the assembled order upstream. Exactly one network call per
// accepted invocation; duplicates while in flight get ErrSubmissionInFlight.
func (s *SubmissionService) Submit(ctx context.Context, draft *entity.WizardDraft, totals Totals) (*orderapi.OrderResponse, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		return nil, apperror.ErrSubmissionInFlight
	}
	defer s.inFlight.Store(false)

	req := &orderapi.OrderRequest{
		Customer:    draft.Customer,
		Items:       draft.Lines,
		Delivery:    draft.Delivery,
		Payment:     draft.Payment,
		Subtotal:    totals.SubtotalCents,
		DeliveryFee: totals.DeliveryFeeCents,
		Discount:    totals.DiscountCents,
		Total:       totals.TotalCents,
	}
	return s.client.CreateOrder(ctx, req)
}
