package decimal

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Symbol is the currency prefix used by Format.
const Symbol = "£"

// Money represents a sterling amount with proper financial precision
type Money struct {
	decimal.Decimal
}

// NewMoneyFromDecimal creates a new Money instance from a decimal.Decimal
func NewMoneyFromDecimal(d decimal.Decimal) Money {
	return Money{d}
}

// Round rounds the amount to pence (half away from zero)
func (m Money) Round() Money {
	return Money{m.Decimal.Round(2)}
}

// String returns the amount rounded to pence, without a symbol
func (m Money) String() string {
	return m.Round().Decimal.StringFixed(2)
}

// Format renders the amount with the pound sign and thousands separators,
// e.g. -£1,234.50.
func (m Money) Format() string {
	r := m.Round()
	s := r.Decimal.Abs().StringFixed(2)
	whole, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole, frac = s[:i], s[i:]
	}
	var b strings.Builder
	if r.Decimal.IsNegative() {
		b.WriteByte('-')
	}
	b.WriteString(Symbol)
	for i, c := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	b.WriteString(frac)
	return b.String()
}
