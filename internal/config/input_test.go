package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rpgo/glidepath/internal/calculation"
	"github.com/rpgo/glidepath/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const validConfig = `
household:
  principal: 260000
  annual_interest_rate: 0.05
  starting_salary: 67000
  salary_growth_rate: 0.01
  starting_pension_pot: 175000
  pension_growth_rate: 0.05
  employer_match_rate: 0.10
  current_age: 43
  pension_access_age: 57
  final_payoff_age: 70

assumptions:
  overpayment_cap_fraction: 0.10

strategies:
  - name: "17-Year"
    term_years: 17
    sacrifice_rate: 0.07
    baseline: true
  - name: "30-Year"
    term_years: 30
    sacrifice_rate: 0.10
    recalculate_after_overpayment: true
`

func writeTemp(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestNewInputParser(t *testing.T) {
	parser := NewInputParser()
	assert.NotNil(t, parser)
}

func TestLoadFromFile_Success(t *testing.T) {
	parser := NewInputParser()
	config, err := parser.LoadFromFile(writeTemp(t, validConfig))
	require.NoError(t, err)

	assert.True(t, config.Household.Principal.Equal(decimal.NewFromInt(260000)))
	assert.True(t, config.Household.AnnualInterestRate.Equal(decimal.NewFromFloat(0.05)))
	assert.Equal(t, 57, config.Household.PensionAccessAge)
	require.Len(t, config.Strategies, 2)
	assert.True(t, config.Strategies[0].Baseline)
	assert.True(t, config.Strategies[1].RecalculateAfterOverpayment)

	// Unset fractions pick up defaults when strategies are expanded
	cfgs := config.StrategyConfigs()
	assert.True(t, cfgs[1].LumpSumFraction.Equal(domain.DefaultLumpSumFraction))
	assert.True(t, cfgs[1].ExitFeeFraction.Equal(domain.DefaultExitFeeFraction))
	assert.True(t, cfgs[1].BaselineSacrificeRate.Equal(decimal.NewFromFloat(0.07)))
}

func TestLoadFromFile_ExplicitZeroFractionsKept(t *testing.T) {
	contents := strings.Replace(validConfig, "  overpayment_cap_fraction: 0.10\n",
		"  overpayment_cap_fraction: 0.10\n  lump_sum_fraction: 0\n  exit_fee_fraction: 0\n", 1)

	parser := NewInputParser()
	config, err := parser.LoadFromFile(writeTemp(t, contents))
	require.NoError(t, err)
	require.NoError(t, parser.ValidateConfiguration(config))

	require.NotNil(t, config.Assumptions.ExitFeeFraction)
	assert.True(t, config.Assumptions.ExitFeeFraction.IsZero())
	for _, cfg := range config.StrategyConfigs() {
		assert.True(t, cfg.ExitFeeFraction.IsZero(), cfg.Name)
		assert.True(t, cfg.LumpSumFraction.IsZero(), cfg.Name)
		assert.True(t, cfg.OverpaymentCapFraction.Equal(decimal.NewFromFloat(0.10)), cfg.Name)
	}
}

func TestStrategyConfigs_OmittedFractionsTakeDefaults(t *testing.T) {
	config := NewInputParser().CreateExampleConfiguration()
	config.Assumptions = domain.Assumptions{}

	for _, cfg := range config.StrategyConfigs() {
		assert.True(t, cfg.OverpaymentCapFraction.Equal(domain.DefaultOverpaymentCapFraction), cfg.Name)
		assert.True(t, cfg.LumpSumFraction.Equal(domain.DefaultLumpSumFraction), cfg.Name)
		assert.True(t, cfg.ExitFeeFraction.Equal(domain.DefaultExitFeeFraction), cfg.Name)
	}
}

func TestLoadFromFile_FileNotFound(t *testing.T) {
	parser := NewInputParser()
	config, err := parser.LoadFromFile("nonexistent_file.yaml")

	assert.Error(t, err)
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestLoadFromFile_InvalidYAML(t *testing.T) {
	testConfig := `
household:
	principal: "not-a-number"
`
	parser := NewInputParser()
	config, err := parser.LoadFromFile(writeTemp(t, testConfig))

	assert.Error(t, err)
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoadFromFile_NonNumericDecimal(t *testing.T) {
	testConfig := "household:\n  principal: lots\n"
	_, err := NewInputParser().LoadFromFile(writeTemp(t, testConfig))
	assert.Error(t, err)
}

func TestParse_JSON(t *testing.T) {
	doc := `{"household": {"principal": 100000, "annual_interest_rate": 0.04, "starting_salary": 40000, ` +
		`"current_age": 40, "pension_access_age": 57, "final_payoff_age": 65}, ` +
		`"strategies": [{"name": "25y", "term_years": 25}]}`
	config, err := NewInputParser().Parse([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, 65, config.Household.FinalPayoffAge)
}

func TestValidateConfiguration_Success(t *testing.T) {
	parser := NewInputParser()
	err := parser.ValidateConfiguration(parser.CreateExampleConfiguration())
	assert.NoError(t, err)
}

func TestValidateConfiguration_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*domain.Configuration)
		wantErr error
		message string
	}{
		{
			name:    "no strategies",
			mutate:  func(c *domain.Configuration) { c.Strategies = nil },
			wantErr: calculation.ErrInvalidInput,
			message: "no strategies",
		},
		{
			name:    "missing name",
			mutate:  func(c *domain.Configuration) { c.Strategies[1].Name = " " },
			wantErr: calculation.ErrInvalidInput,
			message: "name is required",
		},
		{
			name:    "duplicate name",
			mutate:  func(c *domain.Configuration) { c.Strategies[2].Name = c.Strategies[0].Name },
			wantErr: calculation.ErrInvalidInput,
			message: "already used",
		},
		{
			name:    "two baselines",
			mutate:  func(c *domain.Configuration) { c.Strategies[1].Baseline = true },
			wantErr: calculation.ErrInvalidInput,
			message: "baseline",
		},
		{
			name:    "zero principal",
			mutate:  func(c *domain.Configuration) { c.Household.Principal = decimal.Zero },
			wantErr: calculation.ErrInvalidInput,
			message: "strategy 1",
		},
		{
			name:    "zero term",
			mutate:  func(c *domain.Configuration) { c.Strategies[2].TermYears = 0 },
			wantErr: calculation.ErrInvalidInput,
			message: "strategy 3",
		},
		{
			name:    "access age after final",
			mutate:  func(c *domain.Configuration) { c.Household.PensionAccessAge = 71 },
			wantErr: calculation.ErrOutOfRangeConfig,
			message: "pension access age",
		},
		{
			name:    "thresholds inverted",
			mutate:  func(c *domain.Configuration) { c.Assumptions.HigherRateThreshold = decimal.NewFromInt(10000) },
			wantErr: calculation.ErrInvalidInput,
			message: "higher rate threshold",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parser := NewInputParser()
			config := parser.CreateExampleConfiguration()
			tt.mutate(config)

			err := parser.ValidateConfiguration(config)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestCreateExampleConfiguration(t *testing.T) {
	parser := NewInputParser()
	config := parser.CreateExampleConfiguration()

	assert.NotNil(t, config)
	assert.Len(t, config.Strategies, 4)
	assert.Equal(t, 0, config.BaselineIndex())
	assert.Equal(t, 17, config.Strategies[0].TermYears)
	assert.Equal(t, 43, config.Household.CurrentAge)
	assert.NotEmpty(t, config.GenerateAssumptions())
}

func TestExampleConfiguration_YAMLRoundTrip(t *testing.T) {
	parser := NewInputParser()
	original := parser.CreateExampleConfiguration()

	data, err := yaml.Marshal(original)
	require.NoError(t, err)

	loaded, err := parser.Parse(data)
	require.NoError(t, err)
	assert.Equal(t, len(original.Strategies), len(loaded.Strategies))
	assert.True(t, loaded.Household.StartingPensionPot.Equal(original.Household.StartingPensionPot))
	assert.True(t, loaded.Strategies[1].SacrificeRate.Equal(original.Strategies[1].SacrificeRate))
}
