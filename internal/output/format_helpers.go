package output

import (
	"strconv"

	money "github.com/rpgo/glidepath/pkg/decimal"
	"github.com/shopspring/decimal"
)

// FormatCurrency formats a decimal as sterling with thousands separators and 2 decimals.
// Kept here so it can be reused by multiple formatters and unit tested in isolation.
func FormatCurrency(amount decimal.Decimal) string {
	return money.NewMoneyFromDecimal(amount).Format()
}

// FormatSignedCurrency is FormatCurrency with an explicit plus sign on positive amounts.
func FormatSignedCurrency(amount decimal.Decimal) string {
	if money.NewMoneyFromDecimal(amount).Round().IsPositive() {
		return "+" + FormatCurrency(amount)
	}
	return FormatCurrency(amount)
}

// pence renders an amount rounded to two places without a symbol, for CSV cells.
func pence(amount decimal.Decimal) string {
	return money.NewMoneyFromDecimal(amount).String()
}

// FormatPercentage formats a decimal as a percentage with 2 decimals.
func FormatPercentage(amount decimal.Decimal) string { return amount.StringFixed(2) + "%" }

// FormatRate formats a fractional rate (0.05) as a percentage (5.00%).
func FormatRate(rate decimal.Decimal) string { return FormatPercentage(rate.Mul(decimalHundred)) }

// FormatAge renders a debt-free age, using a dash when the mortgage is never cleared.
func FormatAge(age int) string {
	if age <= 0 {
		return "-"
	}
	return strconv.Itoa(age)
}

var decimalHundred = decimal.NewFromInt(100)
