package service

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/schedularhq/schedular-api/internal/config"
	"github.com/schedularhq/schedular-api/internal/domain/entity"
	"github.com/schedularhq/schedular-api/internal/domain/repository"
	"github.com/schedularhq/schedular-api/internal/domain/wizard"
	"github.com/schedularhq/schedular-api/pkg/apperror"
	"github.com/schedularhq/schedular-api/pkg/money"
	"github.com/schedularhq/schedular-api/pkg/notify"
)

// Navigator receives navigation requests for a terminal. The wizard only
// names logical destinations; rendering and routing live elsewhere.
type Navigator interface {
	NavigateTo(terminalID, path string)
}

// LogNavigator records navigation requests in the log. The terminal client
// polls state and follows the recorded destination.
type LogNavigator struct{}

func (LogNavigator) NavigateTo(terminalID, path string) {
	log.Printf("[navigate] terminal=%s path=%s", terminalID, path)
}

// WizardState is the full snapshot returned after every wizard operation.
type WizardState struct {
	TerminalID string                   `json:"terminal_id"`
	Draft      *entity.WizardDraft      `json:"draft"`
	Totals     Totals                   `json:"totals"`
	ActiveStep wizard.Step              `json:"active_step"`
	Progress   []wizard.StepState       `json:"progress"`
	Submitting bool                     `json:"submitting"`
	// SavingsLabel is the price-tag rendering of the cart's savings,
	// present only when the cart beats RRP.
	SavingsLabel string                   `json:"savings_label,omitempty"`
	Validation   *wizard.ValidationResult `json:"validation,omitempty"`
}

// session is one terminal's live wizard. The orchestrator is the sole
// mutator of the draft while the session is active.
type session struct {
	mu         sync.Mutex
	terminalID string
	draft      *entity.WizardDraft
	machine    *wizard.Machine
	totals     Totals
	submitter  *SubmissionService
	persist    sync.WaitGroup
	alive      bool
}

// WizardService orchestrates the create-sale wizard: it routes user actions
// through the step machine, recomputes totals on every change, persists the
// draft fire-and-forget, and hands completed drafts to the submission
// service.
type WizardService struct {
	mu       sync.Mutex
	sessions map[string]*session

	store     repository.DraftStore
	products  *ProductService
	delivery  *DeliveryService
	calc      *TotalsCalculator
	validator *wizard.Validator
	notifier  notify.Notifier
	navigator Navigator
	orders    OrderSubmitter
	cfg       *config.SaleConfig
}

// NewWizardService creates a new wizard service
func NewWizardService(
	store repository.DraftStore,
	products *ProductService,
	delivery *DeliveryService,
	calc *TotalsCalculator,
	notifier notify.Notifier,
	navigator Navigator,
	orders OrderSubmitter,
	cfg *config.SaleConfig,
) *WizardService {
	return &WizardService{
		sessions:  make(map[string]*session),
		store:     store,
		products:  products,
		delivery:  delivery,
		calc:      calc,
		validator: wizard.NewValidator(cfg.MinDeliveryDays),
		notifier:  notifier,
		navigator: navigator,
		orders:    orders,
		cfg:       cfg,
	}
}

// StartSession opens (or resumes) the wizard for a terminal. A pending
// unload marker means the previous session ended in a page reload: the
// stale draft is cleared and the operator is told exactly once. Otherwise a
// stored draft is recovered onto the step it was left on.
func (s *WizardService) StartSession(ctx context.Context, terminalID string) (*WizardState, error) {
	s.mu.Lock()
	if existing, ok := s.sessions[terminalID]; ok && existing.alive {
		s.mu.Unlock()
		existing.mu.Lock()
		defer existing.mu.Unlock()
		return s.snapshot(existing), nil
	}
	s.mu.Unlock()

	reloaded, err := s.store.ConsumeUnloadMarker(ctx, terminalID)
	if err != nil {
		log.Printf("unload marker check failed for %s: %v", terminalID, err)
	}

	var draft *entity.WizardDraft
	if reloaded {
		if err := s.store.Clear(ctx, terminalID); err != nil {
			log.Printf("draft clear failed for %s: %v", terminalID, err)
		}
		s.notifier.Info("Unsaved sale was cleared after the page reloaded")
	} else {
		draft, err = s.store.Load(ctx, terminalID)
		if err != nil {
			log.Printf("draft load failed for %s: %v", terminalID, err)
			draft = nil
		}
	}
	if draft == nil {
		draft = entity.NewWizardDraft()
	}

	sess := &session{
		terminalID: terminalID,
		draft:      draft,
		submitter:  NewSubmissionService(s.orders),
		alive:      true,
	}
	validate := s.validator.Bind(draft, func() int64 { return sess.totals.TotalCents })
	sess.machine = wizard.Restore(wizard.ParseStep(draft.CurrentStep), validate)

	s.mu.Lock()
	s.sessions[terminalID] = sess
	s.mu.Unlock()

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.totals = s.calc.Compute(sess.draft, s.lookup(ctx))
	return s.snapshot(sess), nil
}

// State returns the current snapshot for a terminal.
func (s *WizardService) State(terminalID string) (*WizardState, error) {
	sess, err := s.getSession(terminalID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return s.snapshot(sess), nil
}

// UpdateCustomer replaces the customer document.
func (s *WizardService) UpdateCustomer(ctx context.Context, terminalID string, customer entity.Customer) (*WizardState, error) {
	return s.mutate(ctx, terminalID, func(sess *session) error {
		sess.draft.Customer = customer
		return nil
	})
}

// UpdateDelivery replaces the delivery selections.
func (s *WizardService) UpdateDelivery(ctx context.Context, terminalID string, delivery entity.DeliveryDetails) (*WizardState, error) {
	return s.mutate(ctx, terminalID, func(sess *session) error {
		sess.draft.Delivery = delivery
		return nil
	})
}

// UpdatePayment sets the payment method.
func (s *WizardService) UpdatePayment(ctx context.Context, terminalID string, payment entity.PaymentSelection) (*WizardState, error) {
	return s.mutate(ctx, terminalID, func(sess *session) error {
		payment.DiscountPercent = clampPercent(payment.DiscountPercent, s.cfg.MaxDiscountPercent)
		if payment.DepositCents < 0 {
			payment.DepositCents = 0
		}
		sess.draft.Payment = payment
		return nil
	})
}

// SetDiscount sets the discount percent, clamped to the configured maximum.
func (s *WizardService) SetDiscount(ctx context.Context, terminalID string, percent float64) (*WizardState, error) {
	return s.mutate(ctx, terminalID, func(sess *session) error {
		sess.draft.Payment.DiscountPercent = clampPercent(percent, s.cfg.MaxDiscountPercent)
		return nil
	})
}

// SetDeposit sets the deposit amount in cents, floored at zero.
func (s *WizardService) SetDeposit(ctx context.Context, terminalID string, cents int64) (*WizardState, error) {
	return s.mutate(ctx, terminalID, func(sess *session) error {
		if cents < 0 {
			cents = 0
		}
		sess.draft.Payment.DepositCents = cents
		return nil
	})
}

// AddLine puts a catalog product in the cart. Adding a SKU that is already
// in the cart increments its quantity. Unknown SKUs are rejected with an
// availability error; a known but short-stocked SKU only raises a warning,
// the operator may proceed.
func (s *WizardService) AddLine(ctx context.Context, terminalID, sku string, qty int, color string) (*WizardState, error) {
	return s.mutate(ctx, terminalID, func(sess *session) error {
		if qty < 1 {
			qty = 1
		}
		product := s.products.GetProduct(ctx, sku)
		if product == nil {
			return apperror.NewAvailabilityError(fmt.Sprintf("Product %s is not in the catalog", sku))
		}
		if !product.Available(qty) {
			s.notifier.Info(fmt.Sprintf("%s may not be available in the requested quantity", product.Name))
		}

		if line := sess.draft.FindLineBySKU(sku); line != nil {
			line.Qty += qty
			return nil
		}
		sess.draft.Lines = append(sess.draft.Lines, entity.LineItem{
			ID:         sess.draft.NextLineID,
			SKU:        product.SKU,
			Name:       product.Name,
			Qty:        qty,
			PriceCents: product.PriceCents,
			Color:      color,
		})
		sess.draft.NextLineID++
		return nil
	})
}

// UpdateLineQty changes a line's quantity, floored at one. Removal is an
// explicit operation, never a side effect of a quantity edit.
func (s *WizardService) UpdateLineQty(ctx context.Context, terminalID string, lineID, qty int) (*WizardState, error) {
	return s.mutate(ctx, terminalID, func(sess *session) error {
		line := sess.draft.FindLine(lineID)
		if line == nil {
			return apperror.NewNotFoundError("Line item")
		}
		if qty < 1 {
			qty = 1
		}
		line.Qty = qty
		return nil
	})
}

// SetLinePrice overrides a line's unit price, e.g. a floor-stock markdown.
// Savings against RRP are derived from this.
func (s *WizardService) SetLinePrice(ctx context.Context, terminalID string, lineID int, priceCents int64) (*WizardState, error) {
	return s.mutate(ctx, terminalID, func(sess *session) error {
		line := sess.draft.FindLine(lineID)
		if line == nil {
			return apperror.NewNotFoundError("Line item")
		}
		if priceCents < 0 {
			return apperror.NewBadRequestError("price cannot be negative")
		}
		line.PriceCents = priceCents
		return nil
	})
}

// RemoveLine deletes a line from the cart.
func (s *WizardService) RemoveLine(ctx context.Context, terminalID string, lineID int) (*WizardState, error) {
	return s.mutate(ctx, terminalID, func(sess *session) error {
		if sess.draft.FindLine(lineID) == nil {
			return apperror.NewNotFoundError("Line item")
		}
		sess.draft.RemoveLine(lineID)
		return nil
	})
}

// Next advances the wizard. When the active step is incomplete it is a
// no-op and the snapshot carries the validation hints.
func (s *WizardService) Next(ctx context.Context, terminalID string) (*WizardState, error) {
	sess, err := s.getSession(terminalID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	result := sess.machine.Next()
	s.afterChange(ctx, sess)

	state := s.snapshot(sess)
	if !result.Valid {
		state.Validation = &result
	}
	return state, nil
}

// Prev steps back. Always allowed off the first step.
func (s *WizardService) Prev(ctx context.Context, terminalID string) (*WizardState, error) {
	return s.mutate(ctx, terminalID, func(sess *session) error {
		sess.machine.Prev()
		return nil
	})
}

// GoTo jumps to a named step when it is accessible; inaccessible targets
// are a silent no-op.
func (s *WizardService) GoTo(ctx context.Context, terminalID, step string) (*WizardState, error) {
	return s.mutate(ctx, terminalID, func(sess *session) error {
		sess.machine.GoTo(wizard.ParseStep(step))
		return nil
	})
}

// Complete re-validates every step and submits the order. On success the
// draft is cleared, a success toast is emitted, and navigation to the
// confirmation view is scheduled after the toast delay, and dropped if the
// session was torn down in the meantime. On failure the draft stays intact
// for a retry.
func (s *WizardService) Complete(ctx context.Context, terminalID string) (*WizardState, error) {
	sess, err := s.getSession(terminalID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()

	// Settle any in-flight draft writes so the clear below is final.
	sess.persist.Wait()

	sess.totals = s.calc.Compute(sess.draft, s.lookup(ctx))
	if !sess.machine.AllValid() {
		sess.mu.Unlock()
		s.notifier.Error("Cannot submit: please complete all required steps")
		return nil, apperror.NewValidationError(nil)
	}
	draft := sess.draft.Clone()
	totals := sess.totals
	sess.mu.Unlock()

	// The session lock is released for the network call so State keeps
	// answering (and reports Submitting) while the order is in flight.
	// The submitter's gate rejects a second Complete in the meantime.
	resp, err := sess.submitter.Submit(ctx, draft, totals)
	if err != nil {
		s.notifier.Error(apperror.GetAppError(err).Message)
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	// Edits made while the order was in flight may have queued another
	// draft write; drain those too so the clear below is final.
	sess.persist.Wait()
	if err := s.store.Clear(ctx, terminalID); err != nil {
		log.Printf("draft clear after submit failed for %s: %v", terminalID, err)
	}
	s.notifier.Success(fmt.Sprintf("Order #%d created (%s)", resp.OrderNumber, money.Format(totals.TotalCents)))

	confirmation := fmt.Sprintf("/orders/%s/confirmation", resp.OrderID)
	time.AfterFunc(s.cfg.ToastDuration, func() {
		sess.mu.Lock()
		alive := sess.alive
		sess.mu.Unlock()
		if alive {
			s.navigator.NavigateTo(terminalID, confirmation)
		}
	})

	// Fresh draft for the next sale on this terminal.
	sess.draft = entity.NewWizardDraft()
	validate := s.validator.Bind(sess.draft, func() int64 { return sess.totals.TotalCents })
	sess.machine = wizard.NewMachine(validate)
	sess.totals = s.calc.Compute(sess.draft, nil)

	return s.snapshot(sess), nil
}

// Restart throws the draft away and begins a fresh sale.
func (s *WizardService) Restart(ctx context.Context, terminalID string) (*WizardState, error) {
	sess, err := s.getSession(terminalID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.persist.Wait()
	if err := s.store.Clear(ctx, terminalID); err != nil {
		log.Printf("draft clear failed for %s: %v", terminalID, err)
	}
	sess.draft = entity.NewWizardDraft()
	validate := s.validator.Bind(sess.draft, func() int64 { return sess.totals.TotalCents })
	sess.machine = wizard.NewMachine(validate)
	sess.totals = s.calc.Compute(sess.draft, nil)
	return s.snapshot(sess), nil
}

// EndSession tears the session down. A clean end (in-app navigation away)
// keeps the stored draft so the operator can come back to it; an unclean
// end (page unload) writes the one-shot marker that clears the draft on the
// next start.
func (s *WizardService) EndSession(ctx context.Context, terminalID string, clean bool) error {
	s.mu.Lock()
	sess, ok := s.sessions[terminalID]
	if ok {
		delete(s.sessions, terminalID)
	}
	s.mu.Unlock()

	if sess != nil {
		// Let this terminal's in-flight draft writes land before the
		// session goes away.
		sess.persist.Wait()
		sess.mu.Lock()
		sess.alive = false
		sess.mu.Unlock()
	}

	if !clean {
		if err := s.store.MarkUnload(ctx, terminalID); err != nil {
			log.Printf("unload marker write failed for %s: %v", terminalID, err)
		}
	}
	return nil
}

func (s *WizardService) getSession(terminalID string) (*session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[terminalID]
	if !ok || !sess.alive {
		return nil, apperror.NewBadRequestError("no active wizard session for this terminal")
	}
	return sess, nil
}

// mutate runs a draft mutation under the session lock, then recomputes
// totals and persists.
func (s *WizardService) mutate(ctx context.Context, terminalID string, fn func(*session) error) (*WizardState, error) {
	sess, err := s.getSession(terminalID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if err := fn(sess); err != nil {
		return nil, err
	}
	s.afterChange(ctx, sess)
	return s.snapshot(sess), nil
}

// afterChange re-derives everything that hangs off the draft: the base
// delivery fee quote, the totals, and the stored step position. The draft
// write is fire-and-forget so a slow store never blocks the terminal;
// failures are logged and the session continues in memory.
func (s *WizardService) afterChange(ctx context.Context, sess *session) {
	postcode := ""
	if addr := sess.draft.Customer.DeliveryAddress; addr != nil {
		postcode = addr.Zip
	}
	sess.draft.DeliveryFeeCents = s.delivery.CalculateFee(ctx, postcode, sess.draft.Lines)

	sess.totals = s.calc.Compute(sess.draft, s.lookup(ctx))
	sess.draft.CurrentStep = string(sess.machine.Active())
	sess.draft.SavedAt = time.Now()

	if !sess.draft.HasMeaningfulData() {
		return
	}
	snapshot := sess.draft.Clone()
	terminalID := sess.terminalID
	sess.persist.Add(1)
	go func() {
		defer sess.persist.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.store.Save(ctx, terminalID, snapshot); err != nil {
			log.Printf("draft save failed for %s: %v", terminalID, err)
		}
	}()
}

func (s *WizardService) lookup(ctx context.Context) CatalogLookup {
	return func(sku string) *entity.Product {
		return s.products.GetProduct(ctx, sku)
	}
}

// snapshot builds the response view over a copy of the draft, so callers
// can serialize it after the session lock is released. Caller holds the
// session lock.
func (s *WizardService) snapshot(sess *session) *WizardState {
	state := &WizardState{
		TerminalID: sess.terminalID,
		Draft:      sess.draft.Clone(),
		Totals:     sess.totals,
		ActiveStep: sess.machine.Active(),
		Progress:   sess.machine.Progress(),
		Submitting: sess.submitter.InFlight(),
	}
	if sess.totals.HasSavings() {
		state.SavingsLabel = money.FormatSavings(sess.totals.DisplaySavingsCents())
	}
	return state
}
