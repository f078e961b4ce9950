// Package cli wires the glidepath commands onto cobra.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/rpgo/glidepath/internal/calculation"
	"github.com/rpgo/glidepath/internal/domain"
	"github.com/rpgo/glidepath/internal/logger"
)

type rootOptions struct {
	debug bool
}

// NewRootCommand builds the glidepath command tree.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "glidepath",
		Short: "Compare mortgage term and pension sacrifice strategies",
		Long: `glidepath simulates a repayment mortgage alongside a workplace pension,
year by year, for several term / salary-sacrifice strategies and reports
which one leaves the household with the most wealth at the final payoff age.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log := logger.New(opts.debug)
			cmd.SetContext(logger.WithContext(cmd.Context(), log))
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.FromContext(cmd.Context()).Sync()
		},
	}
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging and per-year simulation traces")

	cmd.AddCommand(
		newRunCommand(opts),
		newValidateCommand(),
		newExampleCommand(),
		newSensitivityCommand(opts),
		newFormatsCommand(),
	)
	return cmd
}

// newEngine returns an engine for the configured tax thresholds, logging
// through the command's zap logger.
func newEngine(cmd *cobra.Command, opts *rootOptions, assumptions domain.Assumptions) *calculation.CalculationEngine {
	engine := calculation.NewCalculationEngineWithAssumptions(assumptions)
	engine.Debug = opts.debug
	engine.SetLogger(logger.FromContext(cmd.Context()))
	return engine
}
