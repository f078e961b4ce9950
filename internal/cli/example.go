package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rpgo/glidepath/internal/config"
	"github.com/rpgo/glidepath/internal/output"
)

func newExampleCommand() *cobra.Command {
	var outFile string
	cmd := &cobra.Command{
		Use:   "example",
		Short: "Print (or save) an example configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.NewInputParser().CreateExampleConfiguration()
			if outFile != "" {
				if err := output.SaveConfiguration(cfg, outFile); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "example configuration written to %s\n", outFile)
				return nil
			}
			b, err := yaml.Marshal(cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(b)
			return err
		},
	}
	cmd.Flags().StringVarP(&outFile, "out", "o", "", "write the example to this file")
	return cmd
}
