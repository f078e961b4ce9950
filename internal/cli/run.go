package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rpgo/glidepath/internal/config"
	"github.com/rpgo/glidepath/internal/logger"
	"github.com/rpgo/glidepath/internal/output"
)

func newRunCommand(root *rootOptions) *cobra.Command {
	var (
		format string
		outDir string
	)
	cmd := &cobra.Command{
		Use:   "run <config.yaml>",
		Short: "Simulate every configured strategy and report the comparison",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewInputParser().LoadFromFile(args[0])
			if err != nil {
				return err
			}
			engine := newEngine(cmd, root, cfg.Assumptions)
			results, err := engine.RunComparison(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			if outDir == "" && output.NormalizeFormatName(format) != "all" {
				f := output.GetFormatterByName(format)
				if f == nil {
					return output.UnsupportedFormat(format)
				}
				data, err := f.Format(results)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}

			files, err := output.GenerateReportTo(results, format, outDir)
			if err != nil {
				return err
			}
			log := logger.FromContext(cmd.Context())
			for _, f := range files {
				log.Infow("report written", "file", f)
				fmt.Fprintln(cmd.OutOrStdout(), f)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "console", "output format (see 'glidepath formats'), or 'all'")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "write report files to this directory instead of stdout")
	return cmd
}
