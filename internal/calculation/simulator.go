package calculation

import (
	"fmt"

	"github.com/rpgo/glidepath/internal/domain"
	"github.com/shopspring/decimal"
)

// maxHorizonYears bounds the simulated age range.
const maxHorizonYears = 100

// dust is the residual balance below which a mortgage counts as cleared.
var dust = decimal.NewFromFloat(0.005)

// StrategySimulator runs the year-by-year mortgage and pension loop for one
// strategy. It holds no state between calls.
type StrategySimulator struct {
	Income *NetIncomeCalculator
	Logger Logger
	Debug  bool
}

// NewStrategySimulator creates a simulator. A nil income calculator gets the
// default bands.
func NewStrategySimulator(income *NetIncomeCalculator, logger Logger) *StrategySimulator {
	if logger == nil {
		logger = NopLogger{}
	}
	if income == nil {
		income = NewNetIncomeCalculator(logger)
	}
	return &StrategySimulator{Income: income, Logger: logger}
}

// ValidateStrategy checks a configuration before any simulation work is done.
func ValidateStrategy(cfg domain.StrategyConfig) error {
	name := cfg.Label()
	if !cfg.Principal.IsPositive() {
		return fmt.Errorf("%w: %s: principal must be positive, got %s", ErrInvalidInput, name, cfg.Principal)
	}
	if cfg.TermYears <= 0 {
		return fmt.Errorf("%w: %s: term must be positive, got %d years", ErrInvalidInput, name, cfg.TermYears)
	}
	if !cfg.StartingSalary.IsPositive() {
		return fmt.Errorf("%w: %s: starting salary must be positive, got %s", ErrInvalidInput, name, cfg.StartingSalary)
	}
	if cfg.StartingPensionPot.IsNegative() {
		return fmt.Errorf("%w: %s: starting pension pot cannot be negative, got %s", ErrInvalidInput, name, cfg.StartingPensionPot)
	}

	rates := []struct {
		field string
		value decimal.Decimal
	}{
		{"annual interest rate", cfg.AnnualInterestRate},
		{"salary growth rate", cfg.SalaryGrowthRate},
		{"pension growth rate", cfg.PensionGrowthRate},
		{"employer match rate", cfg.EmployerMatchRate},
		{"sacrifice rate", cfg.SacrificeRate},
		{"baseline sacrifice rate", cfg.BaselineSacrificeRate},
	}
	for _, r := range rates {
		if r.value.IsNegative() {
			return fmt.Errorf("%w: %s: %s cannot be negative, got %s", ErrInvalidInput, name, r.field, r.value)
		}
	}

	fractions := []struct {
		field string
		value decimal.Decimal
	}{
		{"sacrifice rate", cfg.SacrificeRate},
		{"baseline sacrifice rate", cfg.BaselineSacrificeRate},
		{"overpayment cap fraction", cfg.OverpaymentCapFraction},
		{"lump sum fraction", cfg.LumpSumFraction},
		{"exit fee fraction", cfg.ExitFeeFraction},
	}
	for _, f := range fractions {
		if f.value.IsNegative() || f.value.GreaterThan(one) {
			return fmt.Errorf("%w: %s: %s must be between 0 and 1, got %s", ErrInvalidInput, name, f.field, f.value)
		}
	}

	if cfg.CurrentAge < 0 {
		return fmt.Errorf("%w: %s: current age cannot be negative, got %d", ErrOutOfRangeConfig, name, cfg.CurrentAge)
	}
	if cfg.FinalPayoffAge < cfg.CurrentAge {
		return fmt.Errorf("%w: %s: final payoff age %d is before current age %d", ErrOutOfRangeConfig, name, cfg.FinalPayoffAge, cfg.CurrentAge)
	}
	if cfg.PensionAccessAge < cfg.CurrentAge || cfg.PensionAccessAge > cfg.FinalPayoffAge {
		return fmt.Errorf("%w: %s: pension access age %d must be between current age %d and final payoff age %d",
			ErrOutOfRangeConfig, name, cfg.PensionAccessAge, cfg.CurrentAge, cfg.FinalPayoffAge)
	}
	if cfg.Years() > maxHorizonYears {
		return fmt.Errorf("%w: %s: horizon of %d years exceeds %d", ErrOutOfRangeConfig, name, cfg.Years(), maxHorizonYears)
	}
	return nil
}

// Simulate projects one strategy from the current age to the final payoff age
// inclusive and settles any remaining balance at the end. The cap, lump sum and
// exit fee fractions are used exactly as configured.
func (s *StrategySimulator) Simulate(cfg domain.StrategyConfig) (*domain.SimulationResult, error) {
	if err := ValidateStrategy(cfg); err != nil {
		return nil, err
	}

	monthlyRate := MonthlyRate(cfg.AnnualInterestRate)
	payment, err := ComputeMonthlyPayment(cfg.Principal, monthlyRate, cfg.TermMonths())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cfg.Label(), err)
	}

	result := &domain.SimulationResult{
		Name:           cfg.Label(),
		Config:         cfg,
		InitialPayment: payment,
		Snapshots:      make([]domain.YearSnapshot, 0, cfg.Years()),
	}

	balance := cfg.Principal
	pot := cfg.StartingPensionPot
	vault := decimal.Zero
	totalInterest := decimal.Zero
	lumpSumTaken := false
	growth := one.Add(cfg.PensionGrowthRate)

	for yearsElapsed, age := 0, cfg.CurrentAge; age <= cfg.FinalPayoffAge; yearsElapsed, age = yearsElapsed+1, age+1 {
		snap := domain.YearSnapshot{
			Age:             age,
			MortgageBalance: clampZero(balance),
		}

		// Mortgage: twelve monthly steps at the payment in force.
		if balance.LessThanOrEqual(decimal.Zero) {
			payment = decimal.Zero
		}
		snap.MonthlyPayment = payment
		accrued := AccrueMonths(balance, monthlyRate, payment, 12)
		balance = accrued.Balance
		if balance.Abs().LessThan(dust) {
			balance = decimal.Zero
		}
		totalInterest = totalInterest.Add(accrued.InterestPaid)
		snap.InterestPaid = accrued.InterestPaid
		snap.CumulativeInterest = totalInterest

		// Pension: contributions then growth.
		salary := cfg.SalaryAt(yearsElapsed).Round(internalPrecision)
		contribution := salary.Mul(cfg.ContributionRate())
		pot = pot.Add(contribution).Mul(growth).Round(internalPrecision)
		snap.Salary = salary
		snap.PensionContribution = contribution

		// Lump sum: one shot, on the access age only.
		if age == cfg.PensionAccessAge && !lumpSumTaken {
			lump := pot.Mul(cfg.LumpSumFraction).Round(internalPrecision)
			pot = pot.Sub(lump)
			vault = vault.Add(lump)
			lumpSumTaken = true
			result.LumpSum = lump
			snap.LumpSumTaken = lump
			s.Logger.Debugf("%s: lump sum of %s taken at age %d", result.Name, lump.StringFixed(2), age)
		}

		// Overpayment from the vault, capped against the current balance.
		snap.PreOverpaymentBalance = clampZero(balance)
		if age >= cfg.PensionAccessAge && age < cfg.FinalPayoffAge && vault.IsPositive() && balance.IsPositive() {
			var amount decimal.Decimal
			balance, vault, amount = ApplyOverpayment(balance, vault, cfg.OverpaymentCapFraction)
			snap.Overpayment = amount

			if cfg.RecalculateAfterOverpayment {
				remaining := cfg.TermMonths() - (yearsElapsed+1)*12
				if remaining <= 0 {
					s.Logger.Warnf("%s: term exhausted at age %d with %s outstanding, payment set to zero",
						result.Name, age, balance.StringFixed(2))
				}
				payment = RecalculatePayment(balance, monthlyRate, remaining)
			}
		}

		// Income for the year, reported against the payment that was in force.
		bd, err := s.Income.Breakdown(salary, cfg.SacrificeRate)
		if err != nil {
			return nil, fmt.Errorf("%s: age %d: %w", result.Name, age, err)
		}
		delta, err := s.Income.TakeHomeDelta(salary, cfg.SacrificeRate, cfg.BaselineSacrificeRate)
		if err != nil {
			return nil, fmt.Errorf("%s: age %d: %w", result.Name, age, err)
		}
		snap.NetMonthlyIncome = bd.NetMonthly
		snap.TakeHomeDelta = delta
		snap.DisposableMonthlyIncome = bd.NetMonthly.Sub(snap.MonthlyPayment)

		snap.EndOfYearBalance = clampZero(balance)
		snap.PensionPot = pot
		snap.VaultBalance = vault
		result.Snapshots = append(result.Snapshots, snap)

		if s.Debug {
			s.Logger.Debugf("%s age %d: start %s end %s payment %s interest %s pot %s vault %s overpay %s",
				result.Name, age,
				snap.MortgageBalance.StringFixed(2), snap.EndOfYearBalance.StringFixed(2),
				snap.MonthlyPayment.StringFixed(2), snap.InterestPaid.StringFixed(2),
				pot.StringFixed(2), vault.StringFixed(2), snap.Overpayment.StringFixed(2))
		}
	}

	result.TotalInterestPaid = totalInterest
	result.Settlement = Settle(balance, pot, vault, cfg.ExitFeeFraction)
	result.FinalNetWealth = result.Settlement.FinalNetWealth
	return result, nil
}

func clampZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
