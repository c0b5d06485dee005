package enum

// PaymentMethod represents how the customer settles the sale
type PaymentMethod string

const (
	PaymentMethodCash      PaymentMethod = "cash"
	PaymentMethodCard      PaymentMethod = "card"
	PaymentMethodFinancing PaymentMethod = "financing"
	PaymentMethodTransfer  PaymentMethod = "transfer"
	PaymentMethodLayby     PaymentMethod = "layby"
)

// Valid reports whether the method is one of the accepted payment methods.
// The empty string means "not selected yet" and is not valid.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodFinancing,
		PaymentMethodTransfer, PaymentMethodLayby:
		return true
	}
	return false
}

// RequiresDeposit reports whether the method needs a positive deposit
// before the order can be submitted.
func (m PaymentMethod) RequiresDeposit() bool {
	return m == PaymentMethodFinancing
}

func (m PaymentMethod) String() string {
	return string(m)
}
