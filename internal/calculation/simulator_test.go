package calculation

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rpgo/glidepath/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var decimalComparer = cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })

// exampleStrategy mirrors the household used throughout the reports:
// 260k at 5%, salary 67k, pot 175k, ages 43/57/70.
func exampleStrategy(termYears int, sacrifice float64, recalc bool) domain.StrategyConfig {
	return domain.StrategyConfig{
		Name:                        fmt.Sprintf("%d-Year", termYears),
		Principal:                   d(260000),
		AnnualInterestRate:          d(0.05),
		TermYears:                   termYears,
		StartingSalary:              d(67000),
		SalaryGrowthRate:            d(0.01),
		StartingPensionPot:          d(175000),
		PensionGrowthRate:           d(0.05),
		EmployerMatchRate:           d(0.10),
		SacrificeRate:               d(sacrifice),
		CurrentAge:                  43,
		PensionAccessAge:            57,
		FinalPayoffAge:              70,
		OverpaymentCapFraction:      domain.DefaultOverpaymentCapFraction,
		LumpSumFraction:             domain.DefaultLumpSumFraction,
		ExitFeeFraction:             domain.DefaultExitFeeFraction,
		BaselineSacrificeRate:       d(0.07),
		RecalculateAfterOverpayment: recalc,
	}
}

func simulate(t *testing.T, cfg domain.StrategyConfig) *domain.SimulationResult {
	t.Helper()
	res, err := NewStrategySimulator(nil, nil).Simulate(cfg)
	require.NoError(t, err)
	return res
}

func TestSimulate_Determinism(t *testing.T) {
	cfg := exampleStrategy(30, 0.10, true)
	first := simulate(t, cfg)
	second := simulate(t, cfg)
	require.Equal(t, "", cmp.Diff(first, second, decimalComparer))
}

func TestSimulate_OneSnapshotPerAge(t *testing.T) {
	res := simulate(t, exampleStrategy(25, 0.10, true))
	require.Len(t, res.Snapshots, 70-43+1)
	for i, s := range res.Snapshots {
		assert.Equal(t, 43+i, s.Age)
	}
	// The glide path starts from the untouched principal
	assert.True(t, res.Snapshots[0].MortgageBalance.Equal(d(260000)))
	assert.True(t, res.GlidePath()[0].Equal(d(260000)))
}

func TestSimulate_Invariants(t *testing.T) {
	configured := exampleStrategy(30, 0.10, true)
	configured.Name = "30-Year configured"
	configured.OverpaymentCapFraction = d(0.05)
	configured.LumpSumFraction = d(0.10)
	configured.ExitFeeFraction = decimal.Zero

	configs := []domain.StrategyConfig{
		exampleStrategy(17, 0.07, false),
		exampleStrategy(25, 0.10, true),
		exampleStrategy(30, 0.10, true),
		exampleStrategy(30, 0.10, false),
		configured,
	}

	for _, cfg := range configs {
		t.Run(fmt.Sprintf("%s recalc=%v", cfg.Name, cfg.RecalculateAfterOverpayment), func(t *testing.T) {
			res := simulate(t, cfg)
			capFraction := cfg.OverpaymentCapFraction

			prevInterest := decimal.Zero
			prevPot := cfg.StartingPensionPot
			prevVault := decimal.Zero
			vaultSet := 0
			for _, s := range res.Snapshots {
				assert.False(t, s.MortgageBalance.IsNegative(), "age %d balance", s.Age)
				assert.False(t, s.EndOfYearBalance.IsNegative(), "age %d end balance", s.Age)
				assert.False(t, s.MonthlyPayment.IsNegative(), "age %d payment", s.Age)
				assert.False(t, s.PensionPot.IsNegative(), "age %d pot", s.Age)
				assert.False(t, s.VaultBalance.IsNegative(), "age %d vault", s.Age)

				assert.True(t, s.CumulativeInterest.GreaterThanOrEqual(prevInterest), "age %d interest decreased", s.Age)
				if s.MortgageBalance.IsZero() {
					assert.True(t, s.InterestPaid.IsZero(), "age %d accrued interest on a cleared loan", s.Age)
				}
				prevInterest = s.CumulativeInterest

				if s.Age < cfg.PensionAccessAge {
					assert.True(t, s.VaultBalance.IsZero(), "age %d vault before access", s.Age)
				}
				if prevVault.IsZero() && s.VaultBalance.IsPositive() {
					vaultSet++
					assert.Equal(t, cfg.PensionAccessAge, s.Age)
				}
				if !prevVault.IsZero() {
					assert.True(t, s.VaultBalance.LessThanOrEqual(prevVault), "age %d vault grew", s.Age)
				}
				prevVault = s.VaultBalance

				if s.Age == cfg.PensionAccessAge {
					assert.True(t, s.LumpSumTaken.IsPositive())
					potBeforeLump := s.PensionPot.Add(s.LumpSumTaken)
					assert.InDelta(t, potBeforeLump.Mul(cfg.LumpSumFraction).InexactFloat64(), s.LumpSumTaken.InexactFloat64(), 1e-6)
					assert.True(t, s.PensionPot.LessThan(prevPot.Add(s.PensionContribution).Mul(d(1.05))))
				} else {
					assert.True(t, s.LumpSumTaken.IsZero())
					assert.True(t, s.PensionPot.GreaterThanOrEqual(prevPot), "age %d pot fell", s.Age)
				}
				prevPot = s.PensionPot

				maxOverpay := s.PreOverpaymentBalance.Mul(capFraction)
				assert.True(t, s.Overpayment.LessThanOrEqual(maxOverpay.Add(d(1e-9))),
					"age %d overpaid %s against cap %s", s.Age, s.Overpayment, maxOverpay)
				if s.Age >= cfg.FinalPayoffAge || s.Age < cfg.PensionAccessAge {
					assert.True(t, s.Overpayment.IsZero(), "age %d overpaid outside phase", s.Age)
				}
			}
			assert.Equal(t, 1, vaultSet, "vault must be funded exactly once")
			assert.True(t, res.TotalInterestPaid.Equal(prevInterest))

			st := res.Settlement
			assert.True(t, st.ExitFee.Equal(st.OutstandingBalance.Mul(cfg.ExitFeeFraction)))
			if cfg.ExitFeeFraction.IsZero() {
				assert.True(t, st.ExitFee.IsZero())
			}
		})
	}
}

func TestSimulate_ConfiguredFractionsAreUsed(t *testing.T) {
	cfg := exampleStrategy(30, 0.10, true)
	cfg.OverpaymentCapFraction = d(0.05)
	cfg.LumpSumFraction = d(0.10)
	cfg.ExitFeeFraction = decimal.Zero

	res := simulate(t, cfg)
	defaults := simulate(t, exampleStrategy(30, 0.10, true))

	assert.True(t, res.LumpSum.LessThan(defaults.LumpSum))
	atAccess, ok := res.SnapshotAt(57)
	require.True(t, ok)
	assert.True(t, atAccess.Overpayment.LessThanOrEqual(atAccess.PreOverpaymentBalance.Mul(d(0.05))))

	// still owed at 70, but no exit fee is charged
	assert.True(t, res.Settlement.OutstandingBalance.IsPositive())
	assert.True(t, res.Settlement.ExitFee.IsZero())
	assert.True(t, res.FinalNetWealth.Equal(res.Settlement.FinalNetWealth))
}

func TestSimulate_ZeroFractionsKept(t *testing.T) {
	cfg := exampleStrategy(30, 0.10, false)
	cfg.ExitFeeFraction = decimal.Zero
	cfg.LumpSumFraction = decimal.Zero
	cfg.PensionAccessAge = 70

	res := simulate(t, cfg)
	assert.True(t, res.LumpSum.IsZero(), "lump sum %s", res.LumpSum)
	assert.True(t, res.Settlement.ExitFee.IsZero(), "exit fee %s", res.Settlement.ExitFee)
	assert.True(t, res.Settlement.OutstandingBalance.IsPositive())
	for _, s := range res.Snapshots {
		assert.True(t, s.VaultBalance.IsZero(), "age %d vault", s.Age)
		assert.True(t, s.Overpayment.IsZero(), "age %d overpayment", s.Age)
	}

	// a zero cap stops overpayments even with a funded vault
	noCap := exampleStrategy(30, 0.10, false)
	noCap.OverpaymentCapFraction = decimal.Zero
	res = simulate(t, noCap)
	assert.True(t, res.LumpSum.IsPositive())
	final, ok := res.SnapshotAt(70)
	require.True(t, ok)
	assert.True(t, final.VaultBalance.Equal(res.LumpSum))
}

func TestSimulate_SeventeenYearScenario(t *testing.T) {
	cfg := exampleStrategy(17, 0, false)
	cfg.StartingPensionPot = decimal.Zero
	cfg.EmployerMatchRate = decimal.Zero
	cfg.BaselineSacrificeRate = decimal.Zero

	res := simulate(t, cfg)
	assert.InDelta(t, 1894.50, res.InitialPayment.InexactFloat64(), 0.01)

	last, ok := res.SnapshotAt(59)
	require.True(t, ok)
	assert.True(t, last.MortgageBalance.IsPositive())
	assert.InDelta(t, 0, last.EndOfYearBalance.InexactFloat64(), 0.01)

	cleared, ok := res.SnapshotAt(60)
	require.True(t, ok)
	assert.True(t, cleared.MortgageBalance.IsZero())
	assert.True(t, cleared.MonthlyPayment.IsZero())
	assert.Equal(t, 60, res.DebtFreeAge())

	assert.True(t, res.Settlement.OutstandingBalance.IsZero())
	assert.True(t, res.Settlement.ExitFee.IsZero())
	assert.True(t, res.FinalNetWealth.IsZero())
}

func TestSimulate_ThirtyYearOverpayAndRecompute(t *testing.T) {
	res := simulate(t, exampleStrategy(30, 0.10, true))
	assert.InDelta(t, 1395.74, res.InitialPayment.InexactFloat64(), 0.01)

	// Payment is constant until the first overpayment, then falls every year
	for _, s := range res.Snapshots {
		if s.Age <= 57 {
			assert.True(t, s.MonthlyPayment.Equal(res.InitialPayment), "age %d", s.Age)
		}
	}
	for age := 58; age <= 70; age++ {
		prev, _ := res.SnapshotAt(age - 1)
		curr, _ := res.SnapshotAt(age)
		assert.True(t, curr.MonthlyPayment.LessThan(prev.MonthlyPayment), "age %d payment did not drop", age)
	}
	at58, _ := res.SnapshotAt(58)
	assert.InDelta(t, 1256.16, at58.MonthlyPayment.InexactFloat64(), 0.05)

	// Still owing at 70, so the exit fee applies
	assert.Equal(t, 0, res.DebtFreeAge())
	assert.InDelta(t, 8086.76, res.Settlement.OutstandingBalance.InexactFloat64(), 1)
	assert.True(t, res.Settlement.ExitFee.Equal(res.Settlement.OutstandingBalance.Mul(d(0.02))))
	assert.InDelta(t, 1340943.61, res.FinalNetWealth.InexactFloat64(), 1)
}

func TestSimulate_WithoutRecomputeKeepsPayment(t *testing.T) {
	res := simulate(t, exampleStrategy(30, 0.10, false))
	for _, s := range res.Snapshots {
		if s.MortgageBalance.IsPositive() {
			assert.True(t, s.MonthlyPayment.Equal(res.InitialPayment), "age %d", s.Age)
		}
	}
	// Overpayments at a fixed payment clear the loan sooner than re-amortizing
	assert.Equal(t, 66, res.DebtFreeAge())
}

func TestSimulate_ExampleOutcomes(t *testing.T) {
	tests := []struct {
		cfg         domain.StrategyConfig
		wealth      float64
		interest    float64
		debtFreeAge int
	}{
		{exampleStrategy(17, 0.07, false), 1315644.34, 125970.63, 60},
		{exampleStrategy(25, 0.10, true), 1385287.00, 183336.55, 68},
		{exampleStrategy(30, 0.10, true), 1340943.61, 210669.82, 0},
	}

	for _, tt := range tests {
		t.Run(tt.cfg.Name, func(t *testing.T) {
			res := simulate(t, tt.cfg)
			assert.InDelta(t, tt.wealth, res.FinalNetWealth.InexactFloat64(), 1)
			assert.InDelta(t, tt.interest, res.TotalInterestPaid.InexactFloat64(), 1)
			assert.Equal(t, tt.debtFreeAge, res.DebtFreeAge())
		})
	}
}

func TestSimulate_ZeroInterestRate(t *testing.T) {
	cfg := exampleStrategy(20, 0.07, false)
	cfg.AnnualInterestRate = decimal.Zero

	res := simulate(t, cfg)
	assert.True(t, res.InitialPayment.Equal(d(260000).Div(decimal.NewFromInt(240))))
	assert.True(t, res.TotalInterestPaid.IsZero())
}

func TestSimulate_TakeHomeFigures(t *testing.T) {
	res := simulate(t, exampleStrategy(25, 0.10, true))
	first := res.Snapshots[0]

	assert.True(t, first.TakeHomeDelta.IsNegative())
	assert.InDelta(t, -97.15, first.TakeHomeDelta.InexactFloat64(), 0.01)
	assert.True(t, first.DisposableMonthlyIncome.Equal(first.NetMonthlyIncome.Sub(first.MonthlyPayment)))

	baseline := simulate(t, exampleStrategy(17, 0.07, false))
	for _, s := range baseline.Snapshots {
		assert.True(t, s.TakeHomeDelta.IsZero())
	}
}

func TestSimulate_AccessAgeEdges(t *testing.T) {
	t.Run("access at current age", func(t *testing.T) {
		cfg := exampleStrategy(25, 0.10, true)
		cfg.PensionAccessAge = cfg.CurrentAge
		res := simulate(t, cfg)
		assert.True(t, res.Snapshots[0].LumpSumTaken.IsPositive())
		assert.True(t, res.Snapshots[0].Overpayment.IsPositive())
	})

	t.Run("access at final age", func(t *testing.T) {
		cfg := exampleStrategy(30, 0.10, true)
		cfg.PensionAccessAge = cfg.FinalPayoffAge
		res := simulate(t, cfg)
		last := res.Snapshots[len(res.Snapshots)-1]
		assert.True(t, last.LumpSumTaken.IsPositive())
		assert.True(t, last.Overpayment.IsZero())
		assert.True(t, res.Settlement.VaultBalance.Equal(last.LumpSumTaken))
	})
}

func TestSimulate_VaultExhaustedSilently(t *testing.T) {
	cfg := exampleStrategy(30, 0, false)
	cfg.StartingPensionPot = d(1000)
	cfg.EmployerMatchRate = decimal.Zero
	cfg.BaselineSacrificeRate = decimal.Zero

	res := simulate(t, cfg)
	at57, _ := res.SnapshotAt(57)
	assert.True(t, at57.LumpSumTaken.IsPositive())
	assert.True(t, at57.Overpayment.Equal(at57.LumpSumTaken))
	assert.True(t, at57.VaultBalance.IsZero())

	for age := 58; age <= 70; age++ {
		s, _ := res.SnapshotAt(age)
		assert.True(t, s.Overpayment.IsZero(), "age %d", age)
		assert.True(t, s.MonthlyPayment.Equal(res.InitialPayment), "age %d", age)
	}
}

func TestValidateStrategy(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*domain.StrategyConfig)
		wantErr error
	}{
		{"valid", func(c *domain.StrategyConfig) {}, nil},
		{"zero principal", func(c *domain.StrategyConfig) { c.Principal = decimal.Zero }, ErrInvalidInput},
		{"negative principal", func(c *domain.StrategyConfig) { c.Principal = d(-1) }, ErrInvalidInput},
		{"zero term", func(c *domain.StrategyConfig) { c.TermYears = 0 }, ErrInvalidInput},
		{"zero salary", func(c *domain.StrategyConfig) { c.StartingSalary = decimal.Zero }, ErrInvalidInput},
		{"negative interest rate", func(c *domain.StrategyConfig) { c.AnnualInterestRate = d(-0.01) }, ErrInvalidInput},
		{"negative pension growth", func(c *domain.StrategyConfig) { c.PensionGrowthRate = d(-0.01) }, ErrInvalidInput},
		{"negative pot", func(c *domain.StrategyConfig) { c.StartingPensionPot = d(-1) }, ErrInvalidInput},
		{"sacrifice above one", func(c *domain.StrategyConfig) { c.SacrificeRate = d(1.2) }, ErrInvalidInput},
		{"cap above one", func(c *domain.StrategyConfig) { c.OverpaymentCapFraction = d(1.5) }, ErrInvalidInput},
		{"access before current", func(c *domain.StrategyConfig) { c.PensionAccessAge = 40 }, ErrOutOfRangeConfig},
		{"access after final", func(c *domain.StrategyConfig) { c.PensionAccessAge = 71 }, ErrOutOfRangeConfig},
		{"final before current", func(c *domain.StrategyConfig) { c.FinalPayoffAge = 42; c.PensionAccessAge = 42 }, ErrOutOfRangeConfig},
		{"horizon too long", func(c *domain.StrategyConfig) { c.FinalPayoffAge = 200 }, ErrOutOfRangeConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := exampleStrategy(25, 0.10, true)
			tt.mutate(&cfg)
			err := ValidateStrategy(cfg)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)

			_, simErr := NewStrategySimulator(nil, nil).Simulate(cfg)
			assert.ErrorIs(t, simErr, tt.wantErr)
		})
	}
}
