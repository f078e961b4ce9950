package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// YearSnapshot captures one simulated age. The ordered sequence is the glide path.
type YearSnapshot struct {
	Age int `json:"age"`

	// Mortgage (balances clamped at zero for display)
	MortgageBalance    decimal.Decimal `json:"mortgage_balance"` // start of year, before amortization
	EndOfYearBalance   decimal.Decimal `json:"end_of_year_balance"`
	MonthlyPayment     decimal.Decimal `json:"monthly_payment"`
	InterestPaid       decimal.Decimal `json:"interest_paid"`
	CumulativeInterest decimal.Decimal `json:"cumulative_interest"`

	// Overpayment phase
	PreOverpaymentBalance decimal.Decimal `json:"pre_overpayment_balance"`
	Overpayment           decimal.Decimal `json:"overpayment"`

	// Income
	Salary                  decimal.Decimal `json:"salary"`
	NetMonthlyIncome        decimal.Decimal `json:"net_monthly_income"`
	TakeHomeDelta           decimal.Decimal `json:"take_home_delta"`           // monthly, vs baseline sacrifice
	DisposableMonthlyIncome decimal.Decimal `json:"disposable_monthly_income"` // net income less mortgage payment

	// Pension (end of year)
	PensionContribution decimal.Decimal `json:"pension_contribution"`
	PensionPot          decimal.Decimal `json:"pension_pot"`
	LumpSumTaken        decimal.Decimal `json:"lump_sum_taken"`
	VaultBalance        decimal.Decimal `json:"vault_balance"`
}

// NetPosition returns pension pot plus vault less the outstanding end-of-year balance.
func (ys *YearSnapshot) NetPosition() decimal.Decimal {
	return ys.PensionPot.Add(ys.VaultBalance).Sub(ys.EndOfYearBalance)
}

// IsDebtFree reports whether the mortgage was cleared before this year began.
func (ys *YearSnapshot) IsDebtFree() bool {
	return ys.MortgageBalance.LessThanOrEqual(decimal.Zero)
}

// Settlement is the terminal settlement at the final payoff age.
type Settlement struct {
	OutstandingBalance decimal.Decimal `json:"outstanding_balance"`
	ExitFee            decimal.Decimal `json:"exit_fee"`
	PensionPot         decimal.Decimal `json:"pension_pot"`
	VaultBalance       decimal.Decimal `json:"vault_balance"`
	FinalNetWealth     decimal.Decimal `json:"final_net_wealth"`
}

// SimulationResult is the output of a single strategy simulation.
type SimulationResult struct {
	Name              string          `json:"name"`
	Config            StrategyConfig  `json:"config"`
	InitialPayment    decimal.Decimal `json:"initial_monthly_payment"`
	Snapshots         []YearSnapshot  `json:"snapshots"`
	TotalInterestPaid decimal.Decimal `json:"total_interest_paid"`
	LumpSum           decimal.Decimal `json:"lump_sum"`
	Settlement        Settlement      `json:"settlement"`
	FinalNetWealth    decimal.Decimal `json:"final_net_wealth"`
}

// DebtFreeAge returns the first age whose opening balance is zero, or 0 if the
// mortgage is still outstanding at the final age.
func (sr *SimulationResult) DebtFreeAge() int {
	for i := range sr.Snapshots {
		if sr.Snapshots[i].IsDebtFree() {
			return sr.Snapshots[i].Age
		}
	}
	return 0
}

// SnapshotAt returns the snapshot for the given age.
func (sr *SimulationResult) SnapshotAt(age int) (YearSnapshot, bool) {
	for _, s := range sr.Snapshots {
		if s.Age == age {
			return s, true
		}
	}
	return YearSnapshot{}, false
}

// GlidePath returns the start-of-year balances keyed by position, for charting.
func (sr *SimulationResult) GlidePath() []decimal.Decimal {
	path := make([]decimal.Decimal, len(sr.Snapshots))
	for i, s := range sr.Snapshots {
		path[i] = s.MortgageBalance
	}
	return path
}

// StrategySummary provides a summary of key metrics for a strategy
type StrategySummary struct {
	Name                   string           `json:"name"`
	Baseline               bool             `json:"baseline"`
	TermYears              int              `json:"term_years"`
	SacrificeRate          decimal.Decimal  `json:"sacrifice_rate"`
	InitialMonthlyPayment  decimal.Decimal  `json:"initial_monthly_payment"`
	TotalInterestPaid      decimal.Decimal  `json:"total_interest_paid"`
	LumpSum                decimal.Decimal  `json:"lump_sum"`
	FinalPensionPot        decimal.Decimal  `json:"final_pension_pot"`
	ExitFee                decimal.Decimal  `json:"exit_fee"`
	FinalNetWealth         decimal.Decimal  `json:"final_net_wealth"`
	DebtFreeAge            int              `json:"debt_free_age"`
	FirstYearNetMonthly    decimal.Decimal  `json:"first_year_net_monthly"`
	FirstYearTakeHomeDelta decimal.Decimal  `json:"first_year_take_home_delta"`
	ApproxNetMonthly       decimal.Decimal  `json:"approx_net_monthly"` // flat multiplier estimate
	WealthVsBaseline       decimal.Decimal  `json:"wealth_vs_baseline"`
	Result                 SimulationResult `json:"result"`
}

// StrategyComparison provides a comparison of all strategies
type StrategyComparison struct {
	BaselineName   string            `json:"baseline_name"`
	Strategies     []StrategySummary `json:"strategies"`
	Recommendation Recommendation    `json:"recommendation"`
	BreakEvens     []WealthBreakEven `json:"break_evens,omitempty"`
	Assumptions    []string          `json:"assumptions"`
	GeneratedAt    time.Time         `json:"generated_at"`
}

// Recommendation names the strategy with the highest final net wealth.
type Recommendation struct {
	StrategyName         string          `json:"strategy_name"`
	FinalNetWealth       decimal.Decimal `json:"final_net_wealth"`
	WealthVsBaseline     decimal.Decimal `json:"wealth_vs_baseline"`
	MonthlyTakeHomeDelta decimal.Decimal `json:"monthly_take_home_delta"`
	KeyConsiderations    []string        `json:"key_considerations"`
}

// WealthBreakEven describes where an alternative's net position overtakes the baseline.
type WealthBreakEven struct {
	StrategyName string `json:"strategy_name"`
	Found        bool   `json:"found"`

	// Age at the start of the crossover year and the fractional age of the crossover
	Age           int             `json:"age"`
	FractionalAge float64         `json:"fractional_age"`
	Fraction      decimal.Decimal `json:"fraction_of_year"`
	Month         int             `json:"month"`
	NetPosition   decimal.Decimal `json:"net_position"`
	PrevAge       int             `json:"prev_age"`
	NextAge       int             `json:"next_age"`
}
