package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// All sale arithmetic happens in integer minor units (cents). Decimal dollar
// values only exist at the JSON boundary and are converted exactly with
// shopspring/decimal, so repeated recomputation over the same inputs is
// always cent-for-cent identical.

// FormatOptions controls currency rendering.
type FormatOptions struct {
	Currency     string // ISO 4217 code, defaults to USD
	ShowDecimals bool
}

// symbols covers the currencies the showrooms trade in. Anything else falls
// back to a plain dollar-sign rendering rather than failing.
var symbols = map[string]string{
	"USD": "$",
	"AUD": "A$",
	"NZD": "NZ$",
	"EUR": "€",
	"GBP": "£",
}

// Format renders cents with the default options ($ and two decimals).
func Format(cents int64) string {
	return FormatCents(cents, FormatOptions{Currency: "USD", ShowDecimals: true})
}

// FormatCents renders cents using the requested currency. Unknown currency
// codes degrade to a fixed "$X.XX" format; this function never fails.
func FormatCents(cents int64, opts FormatOptions) string {
	symbol, ok := symbols[strings.ToUpper(opts.Currency)]
	if !ok {
		symbol = "$"
	}

	negative := cents < 0
	if negative {
		cents = -cents
	}

	whole := cents / 100
	frac := cents % 100

	var amount string
	if opts.ShowDecimals {
		amount = fmt.Sprintf("%s.%02d", groupThousands(whole), frac)
	} else {
		// Round to the nearest whole unit
		if frac >= 50 {
			whole++
		}
		amount = groupThousands(whole)
	}

	if negative {
		return "-" + symbol + amount
	}
	return symbol + amount
}

// FormatSavings renders a savings amount the way price tags do: whole
// dollars once the amount is $10 or more, exact cents below that.
func FormatSavings(cents int64) string {
	if cents < 0 {
		cents = -cents
	}
	if cents >= 1000 {
		return FormatCents(cents, FormatOptions{Currency: "USD", ShowDecimals: false})
	}
	return FormatCents(cents, FormatOptions{Currency: "USD", ShowDecimals: true})
}

func groupThousands(n int64) string {
	digits := fmt.Sprintf("%d", n)
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// CalculateDiscount returns the discount in cents for the given percentage,
// rounded to the nearest cent.
func CalculateDiscount(amount int64, percent float64) int64 {
	return decimal.NewFromInt(amount).
		Mul(decimal.NewFromFloat(percent)).
		Div(decimal.NewFromInt(100)).
		Round(0).
		IntPart()
}

// CalculateTotal applies the discount to subtotal plus delivery fee and
// returns the payable total in cents.
func CalculateTotal(subtotal, deliveryFee int64, discountPercent float64) int64 {
	discount := CalculateDiscount(subtotal+deliveryFee, discountPercent)
	return subtotal + deliveryFee - discount
}

// CentsFromDecimal converts a decimal dollar amount to cents, rounding to
// the nearest cent.
func CentsFromDecimal(d decimal.Decimal) int64 {
	return d.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// DecimalFromCents converts cents to an exact decimal dollar amount.
func DecimalFromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}
