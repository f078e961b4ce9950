package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/rpgo/glidepath/internal/calculation"
	"github.com/rpgo/glidepath/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of input configuration files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads configuration from a YAML or JSON file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	config, err := ip.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return config, nil
}

// Parse decodes and validates a configuration document
func (ip *InputParser) Parse(data []byte) (*domain.Configuration, error) {
	var config domain.Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	// Validate the configuration
	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// ValidateConfiguration validates the loaded configuration
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if err := ip.validateAssumptions(&config.Assumptions); err != nil {
		return fmt.Errorf("assumptions validation failed: %w", err)
	}

	// Validate strategies
	if len(config.Strategies) == 0 {
		return fmt.Errorf("%w: no strategies provided", calculation.ErrInvalidInput)
	}

	baselines := 0
	names := make(map[string]int, len(config.Strategies))
	for i, s := range config.Strategies {
		if s.Baseline {
			baselines++
		}
		name := strings.TrimSpace(s.Name)
		if name == "" {
			return fmt.Errorf("%w: strategy %d: name is required", calculation.ErrInvalidInput, i+1)
		}
		if prev, dup := names[name]; dup {
			return fmt.Errorf("%w: strategy %d: name %q already used by strategy %d", calculation.ErrInvalidInput, i+1, name, prev)
		}
		names[name] = i + 1
	}
	if baselines > 1 {
		return fmt.Errorf("%w: %d strategies are flagged as baseline, at most one is allowed", calculation.ErrInvalidInput, baselines)
	}

	for i, cfg := range config.StrategyConfigs() {
		if err := calculation.ValidateStrategy(cfg); err != nil {
			return fmt.Errorf("strategy %d validation failed: %w", i+1, err)
		}
	}

	return nil
}

// validateAssumptions checks the optional tax thresholds; fractions are
// checked per strategy once omitted ones take their defaults
func (ip *InputParser) validateAssumptions(a *domain.Assumptions) error {
	if a.PersonalAllowance.IsNegative() {
		return fmt.Errorf("%w: personal allowance cannot be negative", calculation.ErrInvalidInput)
	}
	if a.HigherRateThreshold.IsNegative() {
		return fmt.Errorf("%w: higher rate threshold cannot be negative", calculation.ErrInvalidInput)
	}
	pa := a.PersonalAllowance
	if pa.IsZero() {
		pa = calculation.DefaultTaxBands().PersonalAllowance
	}
	hrt := a.HigherRateThreshold
	if hrt.IsZero() {
		hrt = calculation.DefaultTaxBands().HigherRateThreshold
	}
	if hrt.LessThan(pa) {
		return fmt.Errorf("%w: higher rate threshold %s is below the personal allowance %s", calculation.ErrInvalidInput, hrt, pa)
	}
	return nil
}

// CreateExampleConfiguration creates an example configuration for documentation:
// a 17-year baseline against 25 and 30 year terms with a larger sacrifice.
// The 25 and 30 year terms re-amortize after each overpayment; the last
// strategy keeps the 30-year payment fixed, so overpayments shorten the term.
func (ip *InputParser) CreateExampleConfiguration() *domain.Configuration {
	return &domain.Configuration{
		Household: domain.Household{
			Principal:          decimal.NewFromInt(260000),
			AnnualInterestRate: decimal.NewFromFloat(0.05),
			StartingSalary:     decimal.NewFromInt(67000),
			SalaryGrowthRate:   decimal.NewFromFloat(0.01),
			StartingPensionPot: decimal.NewFromInt(175000),
			PensionGrowthRate:  decimal.NewFromFloat(0.05),
			EmployerMatchRate:  decimal.NewFromFloat(0.10),
			CurrentAge:         43,
			PensionAccessAge:   57,
			FinalPayoffAge:     70,
		},
		Assumptions: domain.Assumptions{
			OverpaymentCapFraction: domain.Fraction(domain.DefaultOverpaymentCapFraction),
			LumpSumFraction:        domain.Fraction(domain.DefaultLumpSumFraction),
			ExitFeeFraction:        domain.Fraction(domain.DefaultExitFeeFraction),
		},
		Strategies: []domain.StrategySpec{
			{
				Name:          "17-Year Term, 7% Sacrifice",
				TermYears:     17,
				SacrificeRate: decimal.NewFromFloat(0.07),
				Baseline:      true,
			},
			{
				Name:                        "25-Year Term, 10% Sacrifice",
				TermYears:                   25,
				SacrificeRate:               decimal.NewFromFloat(0.10),
				RecalculateAfterOverpayment: true,
			},
			{
				Name:                        "30-Year Term, 10% Sacrifice",
				TermYears:                   30,
				SacrificeRate:               decimal.NewFromFloat(0.10),
				RecalculateAfterOverpayment: true,
			},
			{
				Name:          "30-Year Fixed, 10% Sacrifice",
				TermYears:     30,
				SacrificeRate: decimal.NewFromFloat(0.10),
			},
		},
	}
}
