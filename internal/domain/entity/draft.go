package entity

import (
	"time"

	"github.com/schedularhq/schedular-api/internal/domain/enum"
)

// Address is a postal address captured on the customer step.
type Address struct {
	Unit    string `json:"unit,omitempty"`
	Street  string `json:"street"`
	Street2 string `json:"street2,omitempty"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
	Notes   string `json:"notes,omitempty"`
}

// Complete reports whether the required address fields are filled in.
func (a Address) Complete() bool {
	return a.Street != "" && a.City != "" && a.State != "" && a.Zip != ""
}

// SecondPerson is an optional additional contact on the sale.
type SecondPerson struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Phone        string `json:"phone,omitempty"`
	Email        string `json:"email,omitempty"`
	Relationship string `json:"relationship,omitempty"`
}

// Customer is the sale's customer document. It is stored as a JSON blob on
// both the wizard draft and the persisted sale, never as a relational row.
type Customer struct {
	FirstName       string        `json:"firstName"`
	LastName        string        `json:"lastName"`
	Phone           string        `json:"phone"`
	Email           string        `json:"email"`
	AdditionalPhone string        `json:"additionalPhone,omitempty"`
	SecondPerson    *SecondPerson `json:"secondPerson,omitempty"`
	BillingAddress  *Address      `json:"billingAddress,omitempty"`
	DeliveryAddress *Address      `json:"deliveryAddress,omitempty"`
	SameAsDelivery  bool          `json:"sameAsDelivery"`
}

// Clone returns a deep copy of the customer document.
func (c Customer) Clone() Customer {
	out := c
	if c.SecondPerson != nil {
		sp := *c.SecondPerson
		out.SecondPerson = &sp
	}
	if c.BillingAddress != nil {
		a := *c.BillingAddress
		out.BillingAddress = &a
	}
	if c.DeliveryAddress != nil {
		a := *c.DeliveryAddress
		out.DeliveryAddress = &a
	}
	return out
}

// FullName joins first and last name for display.
func (c Customer) FullName() string {
	switch {
	case c.FirstName == "":
		return c.LastName
	case c.LastName == "":
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}

// EffectiveBillingAddress resolves the billing address at read time: when
// SameAsDelivery is set the delivery address is the billing address, and no
// duplicate is ever stored.
func (c Customer) EffectiveBillingAddress() *Address {
	if c.SameAsDelivery {
		return c.DeliveryAddress
	}
	return c.BillingAddress
}

// LineItem is one SKU/quantity/price entry in the cart. Prices are unit
// prices in cents.
type LineItem struct {
	ID         int    `json:"id"`
	SKU        string `json:"sku"`
	Name       string `json:"name"`
	Qty        int    `json:"qty"`
	PriceCents int64  `json:"priceCents"`
	Color      string `json:"color,omitempty"`
}

// DeliveryDetails captures the delivery step: preferred date (ISO date),
// time slot, free-text instructions and the three add-on service flags.
type DeliveryDetails struct {
	PreferredDate       string        `json:"preferredDate"`
	TimeSlot            enum.TimeSlot `json:"timeSlot"`
	SpecialInstructions string        `json:"specialInstructions,omitempty"`
	WhiteGloveService   bool          `json:"whiteGloveService"`
	OldItemRemoval      bool          `json:"oldItemRemoval"`
	SetupService        bool          `json:"setupService"`
}

// PaymentSelection captures the payment step.
type PaymentSelection struct {
	Method          enum.PaymentMethod `json:"method"`
	DepositCents    int64              `json:"depositCents"`
	DiscountPercent float64            `json:"discountPercent"`
}

// WizardDraft is the serializable envelope of an in-progress sale. It is
// created on the first meaningful edit, rewritten whole on every subsequent
// edit, and destroyed on successful submission or on a detected reload.
type WizardDraft struct {
	Customer         Customer        `json:"customer"`
	Lines            []LineItem      `json:"lines"`
	NextLineID       int             `json:"nextLineId"`
	Delivery         DeliveryDetails `json:"delivery"`
	DeliveryFeeCents int64           `json:"deliveryFeeCents"`
	Payment          PaymentSelection `json:"payment"`
	CurrentStep      string          `json:"currentStep"`
	SavedAt          time.Time       `json:"savedAt"`
}

// NewWizardDraft returns an empty draft positioned on the first step.
func NewWizardDraft() *WizardDraft {
	return &WizardDraft{
		Customer:    Customer{SameAsDelivery: true},
		Lines:       []LineItem{},
		NextLineID:  1,
		CurrentStep: "customer",
		SavedAt:     time.Now(),
	}
}

// Clone returns a deep copy of the draft. The session mutates lines and
// address documents in place, so any snapshot that outlives the session
// lock must not share backing storage with the live draft.
func (d *WizardDraft) Clone() *WizardDraft {
	out := *d
	out.Customer = d.Customer.Clone()
	out.Lines = make([]LineItem, len(d.Lines))
	copy(out.Lines, d.Lines)
	return &out
}

// HasMeaningfulData reports whether the operator has entered anything worth
// persisting. Empty drafts are not written to the store.
func (d *WizardDraft) HasMeaningfulData() bool {
	return d.Customer.FirstName != "" ||
		d.Customer.LastName != "" ||
		d.Customer.Phone != "" ||
		d.Customer.Email != "" ||
		len(d.Lines) > 0 ||
		d.Delivery.PreferredDate != "" ||
		d.Delivery.TimeSlot != enum.TimeSlotNone ||
		d.Payment.Method != "" ||
		d.Payment.DiscountPercent > 0 ||
		d.Payment.DepositCents > 0 ||
		d.CurrentStep != "customer"
}

// FindLine returns the line with the given id, or nil.
func (d *WizardDraft) FindLine(id int) *LineItem {
	for i := range d.Lines {
		if d.Lines[i].ID == id {
			return &d.Lines[i]
		}
	}
	return nil
}

// FindLineBySKU returns the line holding the given SKU, or nil.
func (d *WizardDraft) FindLineBySKU(sku string) *LineItem {
	for i := range d.Lines {
		if d.Lines[i].SKU == sku {
			return &d.Lines[i]
		}
	}
	return nil
}

// RemoveLine deletes the line with the given id. Lines with qty 0 must be
// removed, never kept.
func (d *WizardDraft) RemoveLine(id int) {
	for i := range d.Lines {
		if d.Lines[i].ID == id {
			d.Lines = append(d.Lines[:i], d.Lines[i+1:]...)
			return
		}
	}
}
