package wizard

import (
	"regexp"
	"strings"
	"time"

	"github.com/schedularhq/schedular-api/internal/domain/entity"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Validator evaluates the per-step validity predicates against a draft.
// MinLeadDays is the earliest allowed delivery offset from today; Now is
// injectable for tests and defaults to time.Now.
type Validator struct {
	MinLeadDays int
	Now         func() time.Time
}

// NewValidator returns a validator with the given delivery lead time.
func NewValidator(minLeadDays int) *Validator {
	return &Validator{MinLeadDays: minLeadDays, Now: time.Now}
}

// Bind returns a ValidateFunc closed over the draft and running total, in
// the shape the step machine expects. TotalCents is resolved lazily so the
// payment predicate always sees the latest totals.
func (v *Validator) Bind(draft *entity.WizardDraft, totalCents func() int64) ValidateFunc {
	return func(s Step) ValidationResult {
		return v.ValidateStep(s, draft, totalCents())
	}
}

// ValidateStep runs a single step's predicate.
func (v *Validator) ValidateStep(s Step, draft *entity.WizardDraft, totalCents int64) ValidationResult {
	switch s {
	case StepCustomer:
		return v.validateCustomer(&draft.Customer)
	case StepProducts:
		return v.validateProducts(draft.Lines)
	case StepDelivery:
		return v.validateDelivery(&draft.Delivery)
	case StepPayment:
		return v.validatePayment(&draft.Payment, totalCents)
	}
	return ValidationResult{Valid: false, Errors: []string{"unknown step"}}
}

func (v *Validator) validateCustomer(c *entity.Customer) ValidationResult {
	var errs []string
	if strings.TrimSpace(c.FirstName) == "" {
		errs = append(errs, "first name is required")
	}
	if strings.TrimSpace(c.LastName) == "" {
		errs = append(errs, "last name is required")
	}
	if strings.TrimSpace(c.Phone) == "" {
		errs = append(errs, "phone number is required")
	}
	if strings.TrimSpace(c.Email) == "" {
		errs = append(errs, "email is required")
	} else if !emailPattern.MatchString(c.Email) {
		errs = append(errs, "email is invalid")
	}
	if !c.SameAsDelivery && (c.BillingAddress == nil || !c.BillingAddress.Complete()) {
		errs = append(errs, "billing address is incomplete")
	}
	return result(errs)
}

func (v *Validator) validateProducts(lines []entity.LineItem) ValidationResult {
	var errs []string
	if len(lines) == 0 {
		errs = append(errs, "at least one product is required")
	}
	for _, line := range lines {
		if line.Qty < 1 {
			errs = append(errs, "quantity must be at least 1 for "+line.Name)
		}
	}
	return result(errs)
}

func (v *Validator) validateDelivery(d *entity.DeliveryDetails) ValidationResult {
	var errs []string
	if strings.TrimSpace(d.PreferredDate) == "" {
		errs = append(errs, "delivery date is required")
	} else {
		date, err := time.Parse("2006-01-02", d.PreferredDate)
		if err != nil {
			errs = append(errs, "delivery date is invalid")
		} else if date.Before(v.earliestDate()) {
			errs = append(errs, "delivery date is too soon")
		}
	}
	if !d.TimeSlot.Valid() {
		errs = append(errs, "delivery time slot is required")
	}
	return result(errs)
}

func (v *Validator) validatePayment(p *entity.PaymentSelection, totalCents int64) ValidationResult {
	var errs []string
	if !p.Method.Valid() {
		errs = append(errs, "payment method is required")
	} else if p.Method.RequiresDeposit() {
		if p.DepositCents <= 0 {
			errs = append(errs, "deposit is required for financing")
		} else if p.DepositCents > totalCents {
			errs = append(errs, "deposit cannot exceed the order total")
		}
	}
	return result(errs)
}

// earliestDate is midnight today plus the configured lead time, so the
// comparison is day-granular regardless of wall clock.
func (v *Validator) earliestDate() time.Time {
	now := v.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return today.AddDate(0, 0, v.MinLeadDays)
}

func result(errs []string) ValidationResult {
	return ValidationResult{Valid: len(errs) == 0, Errors: errs}
}
