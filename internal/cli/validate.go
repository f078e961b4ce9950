package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rpgo/glidepath/internal/config"
)

func newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config.yaml>",
		Short: "Check a configuration file without running the simulation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewInputParser().LoadFromFile(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is valid: %d strategies, baseline %q\n",
				args[0], len(cfg.Strategies), cfg.Strategies[cfg.BaselineIndex()].Name)
			return nil
		},
	}
}
