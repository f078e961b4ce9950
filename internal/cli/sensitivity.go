package cli

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rpgo/glidepath/internal/config"
	"github.com/rpgo/glidepath/internal/domain"
	"github.com/rpgo/glidepath/internal/output"
)

type sensitivityOptions struct {
	parameter string
	min       string
	max       string
	steps     int
	strategy  string
	format    string
}

func newSensitivityCommand(root *rootOptions) *cobra.Command {
	opts := &sensitivityOptions{}
	cmd := &cobra.Command{
		Use:   "sensitivity <config.yaml>",
		Short: "Sweep one input across a range for a single strategy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewInputParser().LoadFromFile(args[0])
			if err != nil {
				return err
			}
			param, err := opts.resolveParameter()
			if err != nil {
				return err
			}
			base, err := selectStrategy(cfg, opts.strategy)
			if err != nil {
				return err
			}

			engine := newEngine(cmd, root, cfg.Assumptions)
			analysis, err := engine.RunSensitivity(cmd.Context(), base, param)
			if err != nil {
				return err
			}
			data, err := output.FormatSensitivity(analysis, opts.format)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	names := make([]string, 0, len(domain.SensitivityParameters()))
	for _, p := range domain.SensitivityParameters() {
		names = append(names, p.Name)
	}
	cmd.Flags().StringVarP(&opts.parameter, "parameter", "p", domain.AnnualInterestRateParam.Name, "parameter to sweep: "+strings.Join(names, ", "))
	cmd.Flags().StringVar(&opts.min, "min", "", "override the lower bound (fraction, e.g. 0.02)")
	cmd.Flags().StringVar(&opts.max, "max", "", "override the upper bound (fraction, e.g. 0.08)")
	cmd.Flags().IntVar(&opts.steps, "steps", 0, "override the number of points")
	cmd.Flags().StringVarP(&opts.strategy, "strategy", "s", "", "strategy name to sweep (default: the baseline)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "console", "output format: "+strings.Join(output.SensitivityFormats, ", "))
	return cmd
}

// resolveParameter looks up the built-in parameter and applies any range overrides.
func (o *sensitivityOptions) resolveParameter() (domain.SensitivityParameter, error) {
	param, ok := domain.SensitivityParameterByName(o.parameter)
	if !ok {
		return param, fmt.Errorf("unknown sensitivity parameter %q", o.parameter)
	}
	if o.min != "" {
		v, err := decimal.NewFromString(o.min)
		if err != nil {
			return param, fmt.Errorf("invalid --min %q: %w", o.min, err)
		}
		param.MinValue = v
	}
	if o.max != "" {
		v, err := decimal.NewFromString(o.max)
		if err != nil {
			return param, fmt.Errorf("invalid --max %q: %w", o.max, err)
		}
		param.MaxValue = v
	}
	if o.steps != 0 {
		param.Steps = o.steps
	}
	return param, nil
}

// selectStrategy returns the named strategy's full config, or the baseline when name is empty.
func selectStrategy(cfg *domain.Configuration, name string) (domain.StrategyConfig, error) {
	configs := cfg.StrategyConfigs()
	if name == "" {
		return configs[cfg.BaselineIndex()], nil
	}
	for _, c := range configs {
		if strings.EqualFold(c.Name, name) {
			return c, nil
		}
	}
	return domain.StrategyConfig{}, fmt.Errorf("no strategy named %q", name)
}
