package decimal

import (
	"testing"

	stddec "github.com/shopspring/decimal"
)

func money(s string) Money {
	return NewMoneyFromDecimal(stddec.RequireFromString(s))
}

func TestConstructors(t *testing.T) {
	d := stddec.NewFromFloat(10.125)
	m := NewMoneyFromDecimal(d)
	if !m.Decimal.Equal(d) {
		t.Fatalf("NewMoneyFromDecimal mismatch: got %s want %s", m.Decimal, d)
	}
	if m.String() != "10.13" { // rounded for display
		t.Fatalf("display mismatch: got %s", m.String())
	}
}

func TestRounding(t *testing.T) {
	cases := []struct {
		in  string
		out string
	}{
		{"2.344", "2.34"},
		{"2.345", "2.35"},
		{"2.355", "2.36"},
		{"2.365", "2.37"},
		{"-2.345", "-2.35"},
		{"-0.004", "0.00"},
	}
	for _, c := range cases {
		got := money(c.in).Round().String()
		if got != c.out {
			t.Fatalf("round(%s) got %s want %s", c.in, got, c.out)
		}
	}
	if !money("1.005").Round().Decimal.Equal(stddec.RequireFromString("1.01")) {
		t.Fatalf("Round should keep two places")
	}
}

func TestFormat(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0", "£0.00"},
		{"12.5", "£12.50"},
		{"999.999", "£1,000.00"},
		{"1234.5", "£1,234.50"},
		{"260000", "£260,000.00"},
		{"1385287", "£1,385,287.00"},
		{"-97.15", "-£97.15"},
		{"-8086.76", "-£8,086.76"},
		{"-0.001", "£0.00"},
	}
	for _, c := range cases {
		if got := money(c.in).Format(); got != c.want {
			t.Fatalf("Format(%s) got %s want %s", c.in, got, c.want)
		}
	}
	if got := money("1234.5").String(); got != "1234.50" {
		t.Fatalf("String got %s", got)
	}
}
