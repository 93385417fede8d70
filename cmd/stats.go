package cmd

import (
	"fmt"

	statusadapter "github.com/bnema/pabx-entitlements/internal/adapters/render/status"
	"github.com/spf13/cobra"
)

func newStatsCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize accounts, plan usage and expirations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			stats, err := app.service.Stats(cmd.Context())
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd, stats)
			}

			rendered, err := app.statsRenderer(stats, statusadapter.RenderOptions{})
			if err != nil {
				return fmt.Errorf("render stats: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON output")

	return cmd
}
