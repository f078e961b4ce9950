package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// NET INCOME ASSUMPTIONS:
//
// 1. One simplified UK band structure (2024/25), held constant for every year
//    - Personal allowance: £12,570 (no taper above £100k)
//    - Higher rate threshold: £50,270; no additional-rate band
//
// 2. Income tax 20% basic / 40% higher; employee NI 8% main / 2% upper
//
// 3. Salary sacrifice reduces both the income tax and NI base

// ApproxTakeHomeMultiplier is the flat take-home shortcut some projections use
// instead of the banded calculation.
var ApproxTakeHomeMultiplier = decimal.NewFromFloat(0.58)

// TaxBands holds the thresholds and rates applied to taxable pay.
type TaxBands struct {
	PersonalAllowance   decimal.Decimal
	HigherRateThreshold decimal.Decimal
	BasicRate           decimal.Decimal
	HigherRate          decimal.Decimal
	NIMainRate          decimal.Decimal
	NIUpperRate         decimal.Decimal
}

// DefaultTaxBands returns the 2024/25 thresholds.
func DefaultTaxBands() TaxBands {
	return TaxBands{
		PersonalAllowance:   decimal.NewFromInt(12570),
		HigherRateThreshold: decimal.NewFromInt(50270),
		BasicRate:           decimal.NewFromFloat(0.20),
		HigherRate:          decimal.NewFromFloat(0.40),
		NIMainRate:          decimal.NewFromFloat(0.08),
		NIUpperRate:         decimal.NewFromFloat(0.02),
	}
}

// IncomeBreakdown is the annual picture behind a monthly net figure.
type IncomeBreakdown struct {
	GrossAnnual       decimal.Decimal `json:"gross_annual"`
	Sacrificed        decimal.Decimal `json:"sacrificed"`
	Taxable           decimal.Decimal `json:"taxable"`
	IncomeTax         decimal.Decimal `json:"income_tax"`
	NationalInsurance decimal.Decimal `json:"national_insurance"`
	NetAnnual         decimal.Decimal `json:"net_annual"`
	NetMonthly        decimal.Decimal `json:"net_monthly"`
}

// NetIncomeCalculator converts gross salary and a sacrifice rate into take-home pay.
type NetIncomeCalculator struct {
	Bands  TaxBands
	Logger Logger
}

// NewNetIncomeCalculator creates a calculator with the default bands.
func NewNetIncomeCalculator(logger Logger) *NetIncomeCalculator {
	if logger == nil {
		logger = NopLogger{}
	}
	return &NetIncomeCalculator{
		Bands:  DefaultTaxBands(),
		Logger: logger,
	}
}

// NewNetIncomeCalculatorWithThresholds overrides the allowance and higher rate
// threshold; zero values keep the defaults.
func NewNetIncomeCalculatorWithThresholds(personalAllowance, higherRateThreshold decimal.Decimal, logger Logger) *NetIncomeCalculator {
	nic := NewNetIncomeCalculator(logger)
	if personalAllowance.IsPositive() {
		nic.Bands.PersonalAllowance = personalAllowance
	}
	if higherRateThreshold.IsPositive() {
		nic.Bands.HigherRateThreshold = higherRateThreshold
	}
	return nic
}

// Breakdown applies the bands to grossAnnual after sacrifice.
func (nic *NetIncomeCalculator) Breakdown(grossAnnual, sacrificeRate decimal.Decimal) (IncomeBreakdown, error) {
	if grossAnnual.IsNegative() {
		return IncomeBreakdown{}, fmt.Errorf("%w: gross salary cannot be negative, got %s", ErrInvalidInput, grossAnnual)
	}
	if sacrificeRate.IsNegative() || sacrificeRate.GreaterThan(one) {
		return IncomeBreakdown{}, fmt.Errorf("%w: sacrifice rate must be between 0 and 1, got %s", ErrInvalidInput, sacrificeRate)
	}

	b := nic.Bands
	taxable := grossAnnual.Mul(one.Sub(sacrificeRate))

	basicBand := b.HigherRateThreshold.Sub(b.PersonalAllowance)
	inBasic := decimal.Min(decimal.Max(taxable.Sub(b.PersonalAllowance), decimal.Zero), basicBand)
	inHigher := decimal.Max(taxable.Sub(b.HigherRateThreshold), decimal.Zero)

	incomeTax := inBasic.Mul(b.BasicRate).Add(inHigher.Mul(b.HigherRate))
	ni := inBasic.Mul(b.NIMainRate).Add(inHigher.Mul(b.NIUpperRate))
	netAnnual := taxable.Sub(incomeTax).Sub(ni)

	return IncomeBreakdown{
		GrossAnnual:       grossAnnual,
		Sacrificed:        grossAnnual.Sub(taxable),
		Taxable:           taxable,
		IncomeTax:         incomeTax,
		NationalInsurance: ni,
		NetAnnual:         netAnnual,
		NetMonthly:        netAnnual.Div(monthsPerYear),
	}, nil
}

// MonthlyNetIncome returns monthly take-home pay under the tiered bands.
func (nic *NetIncomeCalculator) MonthlyNetIncome(grossAnnual, sacrificeRate decimal.Decimal) (decimal.Decimal, error) {
	bd, err := nic.Breakdown(grossAnnual, sacrificeRate)
	if err != nil {
		return decimal.Zero, err
	}
	return bd.NetMonthly, nil
}

// TakeHomeDelta is the monthly difference in take-home pay between sacrificeRate
// and baselineRate at the same gross salary. Negative means less take-home.
func (nic *NetIncomeCalculator) TakeHomeDelta(grossAnnual, sacrificeRate, baselineRate decimal.Decimal) (decimal.Decimal, error) {
	net, err := nic.MonthlyNetIncome(grossAnnual, sacrificeRate)
	if err != nil {
		return decimal.Zero, err
	}
	base, err := nic.MonthlyNetIncome(grossAnnual, baselineRate)
	if err != nil {
		return decimal.Zero, err
	}
	return net.Sub(base), nil
}

// ApproximateMonthlyNetIncome is the flat-multiplier estimate of take-home pay.
// It ignores bands entirely and is only reported alongside the tiered figure.
func ApproximateMonthlyNetIncome(grossAnnual, sacrificeRate decimal.Decimal) decimal.Decimal {
	return grossAnnual.Mul(one.Sub(sacrificeRate)).Mul(ApproxTakeHomeMultiplier).Div(monthsPerYear)
}
