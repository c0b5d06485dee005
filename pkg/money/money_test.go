package money

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormatCents(t *testing.T) {
	tests := []struct {
		name  string
		cents int64
		opts  FormatOptions
		want  string
	}{
		{"basic", 19999, FormatOptions{Currency: "USD", ShowDecimals: true}, "$199.99"},
		{"zero", 0, FormatOptions{Currency: "USD", ShowDecimals: true}, "$0.00"},
		{"thousands grouping", 123456789, FormatOptions{Currency: "USD", ShowDecimals: true}, "$1,234,567.89"},
		{"no decimals rounds", 19950, FormatOptions{Currency: "USD", ShowDecimals: false}, "$200"},
		{"no decimals rounds down", 19949, FormatOptions{Currency: "USD", ShowDecimals: false}, "$199"},
		{"aud symbol", 5000, FormatOptions{Currency: "AUD", ShowDecimals: true}, "A$50.00"},
		{"unknown currency falls back", 5000, FormatOptions{Currency: "XXX", ShowDecimals: true}, "$50.00"},
		{"empty currency falls back", 5000, FormatOptions{ShowDecimals: true}, "$50.00"},
		{"negative", -1250, FormatOptions{Currency: "USD", ShowDecimals: true}, "-$12.50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatCents(tt.cents, tt.opts); got != tt.want {
				t.Errorf("FormatCents(%d) = %q, want %q", tt.cents, got, tt.want)
			}
		})
	}
}

func TestFormatSavings(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{25000, "$250"},
		{1000, "$10"},
		{999, "$9.99"},
		{-999, "$9.99"},
	}
	for _, tt := range tests {
		if got := FormatSavings(tt.cents); got != tt.want {
			t.Errorf("FormatSavings(%d) = %q, want %q", tt.cents, got, tt.want)
		}
	}
}

func TestCalculateDiscount(t *testing.T) {
	tests := []struct {
		name    string
		amount  int64
		percent float64
		want    int64
	}{
		{"ten percent", 20000, 10, 2000},
		{"fifty percent of subtotal plus fee", 5000, 50, 2500},
		{"zero percent", 20000, 0, 0},
		{"rounds to nearest cent", 333, 10, 33},
		{"rounds half up", 335, 10, 34},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalculateDiscount(tt.amount, tt.percent); got != tt.want {
				t.Errorf("CalculateDiscount(%d, %v) = %d, want %d", tt.amount, tt.percent, got, tt.want)
			}
		})
	}
}

func TestCalculateTotal(t *testing.T) {
	// subtotal 200.00, fee 0, 10% -> 180.00
	if got := CalculateTotal(20000, 0, 10); got != 18000 {
		t.Errorf("CalculateTotal(20000, 0, 10) = %d, want 18000", got)
	}
	// subtotal 40.00, fee 10.00, 50% -> discount 25.00, total 25.00
	if got := CalculateTotal(4000, 1000, 50); got != 2500 {
		t.Errorf("CalculateTotal(4000, 1000, 50) = %d, want 2500", got)
	}
}

func TestCalculateTotalIdempotent(t *testing.T) {
	first := CalculateTotal(123457, 9999, 12.5)
	for i := 0; i < 1000; i++ {
		if got := CalculateTotal(123457, 9999, 12.5); got != first {
			t.Fatalf("recomputation drifted: got %d, want %d", got, first)
		}
	}
}

func TestDecimalRoundTrip(t *testing.T) {
	prices := []string{"199.99", "0.01", "1299.00", "0.00", "649.50"}
	for _, p := range prices {
		d, err := decimal.NewFromString(p)
		if err != nil {
			t.Fatal(err)
		}
		cents := CentsFromDecimal(d)
		if back := DecimalFromCents(cents); !back.Equal(d) {
			t.Errorf("round trip %s -> %d -> %s", p, cents, back)
		}
	}
}
