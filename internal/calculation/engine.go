package calculation

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/rpgo/glidepath/internal/domain"
	"github.com/shopspring/decimal"
)

// CalculationEngine orchestrates strategy simulations and comparisons
type CalculationEngine struct {
	NetIncomeCalc *NetIncomeCalculator
	Simulator     *StrategySimulator
	Debug         bool // Enable debug output for per-year breakdowns
	Logger        Logger

	// MaxConcurrency limits parallel strategy runs; zero uses GOMAXPROCS.
	MaxConcurrency int
}

// NewCalculationEngine creates a new calculation engine with the default tax bands
func NewCalculationEngine() *CalculationEngine {
	logger := NopLogger{}
	income := NewNetIncomeCalculator(logger)
	return &CalculationEngine{
		NetIncomeCalc: income,
		Simulator:     NewStrategySimulator(income, logger),
		Logger:        logger,
	}
}

// NewCalculationEngineWithAssumptions creates an engine whose tax thresholds
// follow the configured assumptions.
func NewCalculationEngineWithAssumptions(assumptions domain.Assumptions) *CalculationEngine {
	ce := NewCalculationEngine()
	ce.NetIncomeCalc = NewNetIncomeCalculatorWithThresholds(assumptions.PersonalAllowance, assumptions.HigherRateThreshold, ce.Logger)
	ce.Simulator.Income = ce.NetIncomeCalc
	return ce
}

// SetLogger sets the logger for the calculation engine. If nil is provided, a no-op logger is used.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		l = NopLogger{}
	}
	ce.Logger = l
	ce.NetIncomeCalc.Logger = l
	ce.Simulator.Logger = l
}

// RunStrategy simulates a single strategy.
func (ce *CalculationEngine) RunStrategy(ctx context.Context, cfg domain.StrategyConfig) (*domain.SimulationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ce.Simulator.Debug = ce.Debug
	result, err := ce.Simulator.Simulate(cfg)
	if err != nil {
		return nil, err
	}
	ce.Logger.Infof("%s: payment %s, interest %s, final net wealth %s",
		result.Name, result.InitialPayment.StringFixed(2), result.TotalInterestPaid.StringFixed(2), result.FinalNetWealth.StringFixed(2))
	return result, nil
}

// RunStrategies simulates every strategy in parallel. Results keep the input order.
func (ce *CalculationEngine) RunStrategies(ctx context.Context, configs []domain.StrategyConfig) ([]*domain.SimulationResult, error) {
	// Validate everything first so a bad strategy fails before any work is done
	for _, cfg := range configs {
		if err := ValidateStrategy(cfg); err != nil {
			return nil, err
		}
	}

	ce.Simulator.Debug = ce.Debug
	limit := ce.MaxConcurrency
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	results := make([]*domain.SimulationResult, len(configs))
	errs := make([]error, len(configs))
	var wg sync.WaitGroup
	semaphore := make(chan struct{}, limit) // Limit concurrent simulations

	for i := range configs {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			select {
			case semaphore <- struct{}{}: // Acquire semaphore
			case <-ctx.Done():
				errs[idx] = ctx.Err()
				return
			}
			defer func() { <-semaphore }() // Release semaphore

			results[idx], errs[idx] = ce.Simulator.Simulate(configs[idx])
		}(i)
	}

	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("strategy %d (%s): %w", i+1, configs[i].Label(), err)
		}
	}
	return results, nil
}

// RunComparison runs every configured strategy and compares each against the baseline
func (ce *CalculationEngine) RunComparison(ctx context.Context, config *domain.Configuration) (*domain.StrategyComparison, error) {
	if config == nil || len(config.Strategies) == 0 {
		return nil, fmt.Errorf("%w: no strategies configured", ErrInvalidInput)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	configs := config.StrategyConfigs()
	results, err := ce.RunStrategies(ctx, configs)
	if err != nil {
		return nil, fmt.Errorf("RunComparison failed: %w", err)
	}

	baselineIdx := config.BaselineIndex()
	summaries := make([]domain.StrategySummary, len(results))
	for i, res := range results {
		summaries[i] = ce.summarize(res, i == baselineIdx)
	}
	baseline := summaries[baselineIdx]
	for i := range summaries {
		summaries[i].WealthVsBaseline = summaries[i].FinalNetWealth.Sub(baseline.FinalNetWealth)
	}

	comparison := &domain.StrategyComparison{
		BaselineName: baseline.Name,
		Strategies:   summaries,
		Assumptions:  config.GenerateAssumptions(),
		GeneratedAt:  nowFunc().UTC(),
	}

	for i, res := range results {
		if i == baselineIdx {
			continue
		}
		be, err := CalculateWealthBreakEven(results[baselineIdx], res)
		if err != nil {
			return nil, fmt.Errorf("break-even for %s: %w", res.Name, err)
		}
		comparison.BreakEvens = append(comparison.BreakEvens, *be)
	}

	comparison.Recommendation = ce.generateRecommendation(summaries, comparison.BreakEvens)
	return comparison, nil
}

// summarize reduces a simulation result to the headline figures used in reports
func (ce *CalculationEngine) summarize(res *domain.SimulationResult, baseline bool) domain.StrategySummary {
	cfg := res.Config
	firstNet := decimal.Zero
	firstDelta := decimal.Zero
	if len(res.Snapshots) > 0 {
		firstNet = res.Snapshots[0].NetMonthlyIncome
		firstDelta = res.Snapshots[0].TakeHomeDelta
	}
	return domain.StrategySummary{
		Name:                   res.Name,
		Baseline:               baseline,
		TermYears:              cfg.TermYears,
		SacrificeRate:          cfg.SacrificeRate,
		InitialMonthlyPayment:  res.InitialPayment,
		TotalInterestPaid:      res.TotalInterestPaid,
		LumpSum:                res.LumpSum,
		FinalPensionPot:        res.Settlement.PensionPot,
		ExitFee:                res.Settlement.ExitFee,
		FinalNetWealth:         res.FinalNetWealth,
		DebtFreeAge:            res.DebtFreeAge(),
		FirstYearNetMonthly:    firstNet,
		FirstYearTakeHomeDelta: firstDelta,
		ApproxNetMonthly:       ApproximateMonthlyNetIncome(cfg.StartingSalary, cfg.SacrificeRate),
		Result:                 *res,
	}
}
