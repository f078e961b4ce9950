package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Default strategy fractions applied when a configuration omits them.
var (
	DefaultOverpaymentCapFraction = decimal.NewFromFloat(0.10)
	DefaultLumpSumFraction        = decimal.NewFromFloat(0.25)
	DefaultExitFeeFraction        = decimal.NewFromFloat(0.02)
)

// StrategyConfig is the immutable input for one simulation run. It is built once
// per strategy (e.g. "baseline" vs an alternative) and passed by value.
type StrategyConfig struct {
	Name string `yaml:"name" json:"name"`

	// Mortgage
	Principal          decimal.Decimal `yaml:"principal" json:"principal"`
	AnnualInterestRate decimal.Decimal `yaml:"annual_interest_rate" json:"annual_interest_rate"`
	TermYears          int             `yaml:"term_years" json:"term_years"`

	// Earnings and pension
	StartingSalary     decimal.Decimal `yaml:"starting_salary" json:"starting_salary"`
	SalaryGrowthRate   decimal.Decimal `yaml:"salary_growth_rate" json:"salary_growth_rate"`
	StartingPensionPot decimal.Decimal `yaml:"starting_pension_pot" json:"starting_pension_pot"`
	PensionGrowthRate  decimal.Decimal `yaml:"pension_growth_rate" json:"pension_growth_rate"`
	EmployerMatchRate  decimal.Decimal `yaml:"employer_match_rate" json:"employer_match_rate"`
	SacrificeRate      decimal.Decimal `yaml:"sacrifice_rate" json:"sacrifice_rate"`

	// Ages (CurrentAge <= PensionAccessAge <= FinalPayoffAge)
	CurrentAge       int `yaml:"current_age" json:"current_age"`
	PensionAccessAge int `yaml:"pension_access_age" json:"pension_access_age"`
	FinalPayoffAge   int `yaml:"final_payoff_age" json:"final_payoff_age"`

	// Fractions are used as given; zero is a valid setting for each.
	OverpaymentCapFraction decimal.Decimal `yaml:"overpayment_cap_fraction" json:"overpayment_cap_fraction"`
	LumpSumFraction        decimal.Decimal `yaml:"lump_sum_fraction" json:"lump_sum_fraction"`
	ExitFeeFraction        decimal.Decimal `yaml:"exit_fee_fraction" json:"exit_fee_fraction"`

	// BaselineSacrificeRate is only used for take-home delta comparisons.
	BaselineSacrificeRate decimal.Decimal `yaml:"baseline_sacrifice_rate" json:"baseline_sacrifice_rate"`

	// RecalculateAfterOverpayment re-amortizes the remaining balance over the
	// remaining term after every overpayment, lowering the next year's payment.
	RecalculateAfterOverpayment bool `yaml:"recalculate_after_overpayment" json:"recalculate_after_overpayment"`
}

// TermMonths returns the original mortgage term in months.
func (sc StrategyConfig) TermMonths() int {
	return sc.TermYears * 12
}

// Years returns the number of simulated years, both endpoints included.
func (sc StrategyConfig) Years() int {
	return sc.FinalPayoffAge - sc.CurrentAge + 1
}

// SalaryAt returns the gross salary for the given number of elapsed years.
func (sc StrategyConfig) SalaryAt(yearsElapsed int) decimal.Decimal {
	growth := decimal.NewFromInt(1).Add(sc.SalaryGrowthRate).Pow(decimal.NewFromInt(int64(yearsElapsed)))
	return sc.StartingSalary.Mul(growth)
}

// ContributionRate is the combined employee sacrifice and employer match.
func (sc StrategyConfig) ContributionRate() decimal.Decimal {
	return sc.SacrificeRate.Add(sc.EmployerMatchRate)
}

// Label returns a short description used when Name is blank.
func (sc StrategyConfig) Label() string {
	if sc.Name != "" {
		return sc.Name
	}
	return fmt.Sprintf("%d-Year + %s%% sacrifice", sc.TermYears, sc.SacrificeRate.Mul(decimal.NewFromInt(100)).StringFixed(0))
}

// Household holds the inputs shared by every strategy in a comparison.
type Household struct {
	Principal          decimal.Decimal `yaml:"principal" json:"principal"`
	AnnualInterestRate decimal.Decimal `yaml:"annual_interest_rate" json:"annual_interest_rate"`
	StartingSalary     decimal.Decimal `yaml:"starting_salary" json:"starting_salary"`
	SalaryGrowthRate   decimal.Decimal `yaml:"salary_growth_rate" json:"salary_growth_rate"`
	StartingPensionPot decimal.Decimal `yaml:"starting_pension_pot" json:"starting_pension_pot"`
	PensionGrowthRate  decimal.Decimal `yaml:"pension_growth_rate" json:"pension_growth_rate"`
	EmployerMatchRate  decimal.Decimal `yaml:"employer_match_rate" json:"employer_match_rate"`
	CurrentAge         int             `yaml:"current_age" json:"current_age"`
	PensionAccessAge   int             `yaml:"pension_access_age" json:"pension_access_age"`
	FinalPayoffAge     int             `yaml:"final_payoff_age" json:"final_payoff_age"`
}

// Assumptions contains the global fractions and tax thresholds. A nil fraction
// was omitted from the configuration and takes its default; an explicit zero is kept.
type Assumptions struct {
	OverpaymentCapFraction *decimal.Decimal `yaml:"overpayment_cap_fraction,omitempty" json:"overpayment_cap_fraction,omitempty"` // Default: 0.10
	LumpSumFraction        *decimal.Decimal `yaml:"lump_sum_fraction,omitempty" json:"lump_sum_fraction,omitempty"`               // Default: 0.25
	ExitFeeFraction        *decimal.Decimal `yaml:"exit_fee_fraction,omitempty" json:"exit_fee_fraction,omitempty"`               // Default: 0.02

	// UK thresholds; zero means the 2024/25 defaults.
	PersonalAllowance   decimal.Decimal `yaml:"personal_allowance,omitempty" json:"personal_allowance,omitempty"`
	HigherRateThreshold decimal.Decimal `yaml:"higher_rate_threshold,omitempty" json:"higher_rate_threshold,omitempty"`
}

// OverpaymentCap returns the configured overpayment cap or its default.
func (a Assumptions) OverpaymentCap() decimal.Decimal {
	return orDefault(a.OverpaymentCapFraction, DefaultOverpaymentCapFraction)
}

// LumpSum returns the configured lump sum fraction or its default.
func (a Assumptions) LumpSum() decimal.Decimal {
	return orDefault(a.LumpSumFraction, DefaultLumpSumFraction)
}

// ExitFee returns the configured exit fee fraction or its default.
func (a Assumptions) ExitFee() decimal.Decimal {
	return orDefault(a.ExitFeeFraction, DefaultExitFeeFraction)
}

func orDefault(v *decimal.Decimal, def decimal.Decimal) decimal.Decimal {
	if v == nil {
		return def
	}
	return *v
}

// Fraction returns a pointer to v for populating optional Assumptions fields.
func Fraction(v decimal.Decimal) *decimal.Decimal {
	return &v
}

// StrategySpec describes one mortgage term / pension sacrifice pair to compare.
type StrategySpec struct {
	Name                        string          `yaml:"name" json:"name"`
	TermYears                   int             `yaml:"term_years" json:"term_years"`
	SacrificeRate               decimal.Decimal `yaml:"sacrifice_rate" json:"sacrifice_rate"`
	RecalculateAfterOverpayment bool            `yaml:"recalculate_after_overpayment" json:"recalculate_after_overpayment"`
	Baseline                    bool            `yaml:"baseline,omitempty" json:"baseline,omitempty"`
}

// Configuration represents the complete input configuration
type Configuration struct {
	Household   Household      `yaml:"household" json:"household"`
	Assumptions Assumptions    `yaml:"assumptions" json:"assumptions"`
	Strategies  []StrategySpec `yaml:"strategies" json:"strategies"`
}

// BaselineIndex returns the index of the strategy flagged as baseline, or 0.
func (c *Configuration) BaselineIndex() int {
	for i, s := range c.Strategies {
		if s.Baseline {
			return i
		}
	}
	return 0
}

// StrategyConfigs expands every StrategySpec into a full StrategyConfig.
func (c *Configuration) StrategyConfigs() []StrategyConfig {
	if len(c.Strategies) == 0 {
		return nil
	}
	baselineSacrifice := c.Strategies[c.BaselineIndex()].SacrificeRate
	configs := make([]StrategyConfig, len(c.Strategies))
	for i, s := range c.Strategies {
		configs[i] = c.StrategyConfig(s, baselineSacrifice)
	}
	return configs
}

// StrategyConfig combines the household, assumptions and one StrategySpec.
func (c *Configuration) StrategyConfig(s StrategySpec, baselineSacrifice decimal.Decimal) StrategyConfig {
	h := c.Household
	return StrategyConfig{
		Name:                        s.Name,
		Principal:                   h.Principal,
		AnnualInterestRate:          h.AnnualInterestRate,
		TermYears:                   s.TermYears,
		StartingSalary:              h.StartingSalary,
		SalaryGrowthRate:            h.SalaryGrowthRate,
		StartingPensionPot:          h.StartingPensionPot,
		PensionGrowthRate:           h.PensionGrowthRate,
		EmployerMatchRate:           h.EmployerMatchRate,
		SacrificeRate:               s.SacrificeRate,
		CurrentAge:                  h.CurrentAge,
		PensionAccessAge:            h.PensionAccessAge,
		FinalPayoffAge:              h.FinalPayoffAge,
		OverpaymentCapFraction:      c.Assumptions.OverpaymentCap(),
		LumpSumFraction:             c.Assumptions.LumpSum(),
		ExitFeeFraction:             c.Assumptions.ExitFee(),
		BaselineSacrificeRate:       baselineSacrifice,
		RecalculateAfterOverpayment: s.RecalculateAfterOverpayment,
	}
}

// GenerateAssumptions creates dynamic assumptions list from actual config values
func (c *Configuration) GenerateAssumptions() []string {
	a := c.Assumptions
	capFraction, lump, fee := a.OverpaymentCap(), a.LumpSum(), a.ExitFee()
	return []string{
		fmt.Sprintf("Mortgage interest: %.2f%% APR, compounded monthly", pct(c.Household.AnnualInterestRate)),
		fmt.Sprintf("Pension growth: %.1f%% annually; salary growth: %.1f%% annually", pct(c.Household.PensionGrowthRate), pct(c.Household.SalaryGrowthRate)),
		fmt.Sprintf("Employer pension match: %.1f%% of salary", pct(c.Household.EmployerMatchRate)),
		fmt.Sprintf("Tax-free lump sum: %.0f%% of pot taken at age %d", pct(lump), c.Household.PensionAccessAge),
		fmt.Sprintf("Overpayments capped at %.0f%% of outstanding balance per year", pct(capFraction)),
		fmt.Sprintf("Balance remaining at age %d settled with a %.1f%% exit fee", c.Household.FinalPayoffAge, pct(fee)),
		"Income tax 20%/40% and NI 8%/2% on 2024/25 thresholds, held constant",
	}
}

func pct(d decimal.Decimal) float64 {
	return d.Mul(decimal.NewFromInt(100)).InexactFloat64()
}
