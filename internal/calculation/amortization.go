package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// internalPrecision bounds the number of decimal places carried through the
// monthly loop. Without it decimal multiplication grows digits every step.
const internalPrecision = 10

var (
	monthsPerYear = decimal.NewFromInt(12)
	one           = decimal.NewFromInt(1)
)

// MonthlyRate converts an annual nominal rate into the per-month rate.
func MonthlyRate(annualRate decimal.Decimal) decimal.Decimal {
	return annualRate.Div(monthsPerYear)
}

// compound returns (1+rate)^n for n >= 0, rounding each squaring step so the
// result keeps a fixed number of digits.
func compound(rate decimal.Decimal, n int) decimal.Decimal {
	result := one
	base := one.Add(rate)
	for n > 0 {
		if n&1 == 1 {
			result = result.Mul(base).Round(2 * internalPrecision)
		}
		base = base.Mul(base).Round(2 * internalPrecision)
		n >>= 1
	}
	return result
}

// ComputeMonthlyPayment returns the fixed annuity payment that clears principal
// over totalMonths at monthlyRate. A zero rate degenerates to principal/months.
// The result is always a magnitude.
func ComputeMonthlyPayment(principal, monthlyRate decimal.Decimal, totalMonths int) (decimal.Decimal, error) {
	if totalMonths <= 0 {
		return decimal.Zero, fmt.Errorf("%w: total months must be positive, got %d", ErrInvalidInput, totalMonths)
	}
	if monthlyRate.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: monthly rate cannot be negative, got %s", ErrInvalidInput, monthlyRate)
	}
	if principal.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, nil
	}
	if monthlyRate.IsZero() {
		return principal.Div(decimal.NewFromInt(int64(totalMonths))), nil
	}

	// P*r / (1 - (1+r)^-n) == P*r*f / (f-1) with f = (1+r)^n
	f := compound(monthlyRate, totalMonths)
	return principal.Mul(monthlyRate).Mul(f).Div(f.Sub(one)).Abs(), nil
}

// ProjectBalanceAfterMonths returns the outstanding balance after paying
// payment for months months, using the closed-form future value of an annuity.
// The result may be negative when the payment over-amortizes the loan.
func ProjectBalanceAfterMonths(principal, monthlyRate, payment decimal.Decimal, months int) (decimal.Decimal, error) {
	if months < 0 {
		return decimal.Zero, fmt.Errorf("%w: cannot project %d months", ErrNumericOverflow, months)
	}
	if monthlyRate.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: monthly rate cannot be negative, got %s", ErrInvalidInput, monthlyRate)
	}
	if monthlyRate.IsZero() {
		return principal.Sub(payment.Mul(decimal.NewFromInt(int64(months)))), nil
	}

	f := compound(monthlyRate, months)
	return principal.Mul(f).Sub(payment.Mul(f.Sub(one)).Div(monthlyRate)), nil
}

// AccrualResult is the outcome of running the explicit monthly loop.
type AccrualResult struct {
	Balance      decimal.Decimal
	InterestPaid decimal.Decimal
	MonthsPaid   int
}

// AccrueMonths runs the month-by-month amortization loop. Once the balance
// reaches zero no further interest accrues and no payment is taken, so the
// balance can overshoot below zero by at most one month's principal portion.
func AccrueMonths(balance, monthlyRate, payment decimal.Decimal, months int) AccrualResult {
	res := AccrualResult{Balance: balance, InterestPaid: decimal.Zero}
	for m := 0; m < months; m++ {
		if res.Balance.LessThanOrEqual(decimal.Zero) {
			break
		}
		interest := res.Balance.Mul(monthlyRate).Round(internalPrecision)
		res.Balance = res.Balance.Sub(payment.Sub(interest))
		res.InterestPaid = res.InterestPaid.Add(interest)
		res.MonthsPaid++
	}
	return res
}

// RecalculatePayment re-amortizes balance over remainingMonths. It is the
// guarded form used after an overpayment: an exhausted term or a cleared
// balance yields a zero payment instead of an error.
func RecalculatePayment(balance, monthlyRate decimal.Decimal, remainingMonths int) decimal.Decimal {
	if remainingMonths <= 0 || balance.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	payment, err := ComputeMonthlyPayment(balance, monthlyRate, remainingMonths)
	if err != nil {
		return decimal.Zero
	}
	return payment
}

// ApplyOverpayment pays down balance from vault, capped at capFraction of the
// current balance. It returns the new balance, the new vault and the amount paid.
func ApplyOverpayment(balance, vault, capFraction decimal.Decimal) (decimal.Decimal, decimal.Decimal, decimal.Decimal) {
	if balance.LessThanOrEqual(decimal.Zero) || vault.LessThanOrEqual(decimal.Zero) {
		return balance, vault, decimal.Zero
	}
	amount := decimal.Min(balance.Mul(capFraction), vault)
	if amount.IsNegative() {
		amount = decimal.Zero
	}
	return balance.Sub(amount), vault.Sub(amount), amount
}
