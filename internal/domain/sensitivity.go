package domain

import (
	"github.com/shopspring/decimal"
)

// SensitivityParameter represents a parameter to sweep in sensitivity analysis
type SensitivityParameter struct {
	Name        string          `yaml:"name" json:"name"`
	MinValue    decimal.Decimal `yaml:"min_value" json:"minValue"`
	MaxValue    decimal.Decimal `yaml:"max_value" json:"maxValue"`
	Steps       int             `yaml:"steps" json:"steps"`
	Unit        string          `yaml:"unit" json:"unit"` // "percent" or "pounds"
	Description string          `yaml:"description" json:"description"`
}

// Values returns Steps evenly spaced values from MinValue to MaxValue inclusive.
func (p SensitivityParameter) Values() []decimal.Decimal {
	if p.Steps <= 1 {
		return []decimal.Decimal{p.MinValue}
	}
	step := p.MaxValue.Sub(p.MinValue).Div(decimal.NewFromInt(int64(p.Steps - 1)))
	values := make([]decimal.Decimal, p.Steps)
	for i := range values {
		values[i] = p.MinValue.Add(step.Mul(decimal.NewFromInt(int64(i))))
	}
	values[p.Steps-1] = p.MaxValue
	return values
}

// Apply returns a copy of cfg with this parameter set to value. It reports
// false for an unknown parameter name.
func (p SensitivityParameter) Apply(cfg StrategyConfig, value decimal.Decimal) (StrategyConfig, bool) {
	switch p.Name {
	case AnnualInterestRateParam.Name:
		cfg.AnnualInterestRate = value
	case PensionGrowthRateParam.Name:
		cfg.PensionGrowthRate = value
	case SalaryGrowthRateParam.Name:
		cfg.SalaryGrowthRate = value
	case SacrificeRateParam.Name:
		cfg.SacrificeRate = value
	default:
		return cfg, false
	}
	return cfg, true
}

// SensitivityPoint is one simulated value of the swept parameter.
type SensitivityPoint struct {
	Value             decimal.Decimal `json:"value"`
	MonthlyPayment    decimal.Decimal `json:"monthlyPayment"`
	TotalInterestPaid decimal.Decimal `json:"totalInterestPaid"`
	FinalNetWealth    decimal.Decimal `json:"finalNetWealth"`
	DebtFreeAge       int             `json:"debtFreeAge"`
}

// SensitivitySummary describes the spread of final net wealth across the sweep
type SensitivitySummary struct {
	Min               decimal.Decimal `json:"min"`
	Max               decimal.Decimal `json:"max"`
	Median            decimal.Decimal `json:"median"`
	P10               decimal.Decimal `json:"p10"`
	P90               decimal.Decimal `json:"p90"`
	StandardDeviation decimal.Decimal `json:"standardDeviation"`
	Range             decimal.Decimal `json:"range"`
}

// SensitivityAnalysis is a single-parameter sweep over one strategy
type SensitivityAnalysis struct {
	StrategyName string               `json:"strategyName"`
	Parameter    SensitivityParameter `json:"parameter"`
	Points       []SensitivityPoint   `json:"points"`
	Summary      SensitivitySummary   `json:"summary"`
}

// Common sensitivity parameters, spanning the ranges an interactive user could pick
var (
	AnnualInterestRateParam = SensitivityParameter{
		Name:        "interest_rate",
		MinValue:    decimal.NewFromFloat(0.01),
		MaxValue:    decimal.NewFromFloat(0.10),
		Steps:       10,
		Unit:        "percent",
		Description: "Mortgage annual interest rate",
	}

	PensionGrowthRateParam = SensitivityParameter{
		Name:        "pension_growth",
		MinValue:    decimal.NewFromFloat(0.01),
		MaxValue:    decimal.NewFromFloat(0.12),
		Steps:       12,
		Unit:        "percent",
		Description: "Annual pension fund growth",
	}

	SalaryGrowthRateParam = SensitivityParameter{
		Name:        "salary_growth",
		MinValue:    decimal.Zero,
		MaxValue:    decimal.NewFromFloat(0.05),
		Steps:       6,
		Unit:        "percent",
		Description: "Annual salary growth",
	}

	SacrificeRateParam = SensitivityParameter{
		Name:        "sacrifice_rate",
		MinValue:    decimal.Zero,
		MaxValue:    decimal.NewFromFloat(0.30),
		Steps:       7,
		Unit:        "percent",
		Description: "Employee salary sacrifice into the pension",
	}
)

// SensitivityParameters lists the parameters that can be swept.
func SensitivityParameters() []SensitivityParameter {
	return []SensitivityParameter{AnnualInterestRateParam, PensionGrowthRateParam, SalaryGrowthRateParam, SacrificeRateParam}
}

// SensitivityParameterByName returns the named built-in parameter.
func SensitivityParameterByName(name string) (SensitivityParameter, bool) {
	for _, p := range SensitivityParameters() {
		if p.Name == name {
			return p, true
		}
	}
	return SensitivityParameter{}, false
}
