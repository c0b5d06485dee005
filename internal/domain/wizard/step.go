package wizard

// Step identifies one stage of the create-sale wizard.
type Step string

const (
	StepCustomer Step = "customer"
	StepProducts Step = "products"
	StepDelivery Step = "delivery"
	StepPayment  Step = "payment"
)

// Steps is the ordered sequence the wizard walks through.
var Steps = []Step{StepCustomer, StepProducts, StepDelivery, StepPayment}

// Labels must match the progress bar titles shown on the terminal.
var labels = map[Step]string{
	StepCustomer: "Customer Details",
	StepProducts: "Product Selection",
	StepDelivery: "Delivery Details",
	StepPayment:  "Payment",
}

// ParseStep converts a stored step name back to a Step. Unknown names fall
// back to the first step so a corrupt draft never strands the operator.
func ParseStep(s string) Step {
	for _, step := range Steps {
		if string(step) == s {
			return step
		}
	}
	return StepCustomer
}

// Index returns the step's position in the wizard order, or -1.
func (s Step) Index() int {
	for i, step := range Steps {
		if step == s {
			return i
		}
	}
	return -1
}

// Label returns the display title for the step.
func (s Step) Label() string {
	return labels[s]
}

// ValidationResult is the outcome of a step's validity predicate.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

// ValidateFunc evaluates a step's validity predicate against the current
// draft state. The machine stays pure by never touching the draft itself.
type ValidateFunc func(Step) ValidationResult

// StepState is one entry of the progress indicator.
type StepState struct {
	ID         Step   `json:"id"`
	Label      string `json:"label"`
	Active     bool   `json:"is_active"`
	Completed  bool   `json:"is_completed"`
	Accessible bool   `json:"is_accessible"`
}

// Machine tracks the active step and drives next/prev/jump transitions.
// Exactly one step is active at a time; completion and accessibility are
// derived from the validity predicates so a recovered draft lands in a
// consistent state without extra bookkeeping.
type Machine struct {
	active   int
	validate ValidateFunc
}

// NewMachine returns a machine positioned on the first step.
func NewMachine(validate ValidateFunc) *Machine {
	return &Machine{active: 0, validate: validate}
}

// Restore returns a machine positioned on the given step, used when a draft
// is recovered from the store.
func Restore(current Step, validate ValidateFunc) *Machine {
	idx := current.Index()
	if idx < 0 {
		idx = 0
	}
	return &Machine{active: idx, validate: validate}
}

// Active returns the currently active step.
func (m *Machine) Active() Step {
	return Steps[m.active]
}

// Completed reports whether the step has been passed: it sits before the
// active step and its own predicate still holds.
func (m *Machine) Completed(s Step) bool {
	idx := s.Index()
	if idx < 0 || idx >= m.active {
		return false
	}
	return m.validate(s).Valid
}

// Accessible reports whether the operator may jump directly to the step: it
// is the active step, already completed, or immediately follows a completed
// step. Jumping past an incomplete step is not possible, but going back to
// any completed step always is.
func (m *Machine) Accessible(s Step) bool {
	idx := s.Index()
	if idx < 0 {
		return false
	}
	if idx == m.active || idx == 0 {
		return true
	}
	if m.Completed(s) {
		return true
	}
	return m.Completed(Steps[idx-1])
}

// Next advances to the following step. When the active step's predicate
// fails it is a no-op and the validation hints are returned so the caller
// can surface them inline. On the last step it does nothing.
func (m *Machine) Next() ValidationResult {
	result := m.validate(m.Active())
	if !result.Valid {
		return result
	}
	if m.active < len(Steps)-1 {
		m.active++
	}
	return result
}

// Prev steps back. Always allowed while not on the first step; completion
// of the step left behind is not cleared.
func (m *Machine) Prev() {
	if m.active > 0 {
		m.active--
	}
}

// GoTo jumps to the step when it is accessible; otherwise it is a no-op and
// returns false.
func (m *Machine) GoTo(s Step) bool {
	if !m.Accessible(s) {
		return false
	}
	m.active = s.Index()
	return true
}

// AllValid reports whether every step's predicate passes, the precondition
// for submitting the order.
func (m *Machine) AllValid() bool {
	for _, s := range Steps {
		if !m.validate(s).Valid {
			return false
		}
	}
	return true
}

// Progress returns the per-step snapshot driving the progress indicator.
func (m *Machine) Progress() []StepState {
	states := make([]StepState, 0, len(Steps))
	for _, s := range Steps {
		states = append(states, StepState{
			ID:         s,
			Label:      s.Label(),
			Active:     s == m.Active(),
			Completed:  m.Completed(s),
			Accessible: m.Accessible(s),
		})
	}
	return states
}
