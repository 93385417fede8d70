package cmd

import (
	"fmt"

	"github.com/bnema/pabx-entitlements/internal/application"
	"github.com/bnema/pabx-entitlements/internal/domain"
	"github.com/spf13/cobra"
)

func newPlanCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Manage the plan catalog",
	}

	cmd.AddCommand(
		newPlanListCmd(app),
		newPlanSetCmd(app),
		newPlanRemoveCmd(app),
	)

	return cmd
}

func newPlanListCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog plans (built-in tiers when none are stored)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog, err := app.service.ListPlans(cmd.Context())
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd, catalog)
			}

			for _, plan := range catalog {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%d days\t%d extensions\t%s\n",
					plan.ID,
					sanitizeForTerminal(plan.Name),
					plan.ValidityDays,
					plan.ExtensionLimit,
					formatPrice(plan.PriceCents),
				)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON output")

	return cmd
}

func newPlanSetCmd(app *app) *cobra.Command {
	var command application.SavePlanCommand

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Create or update a catalog plan",
		RunE: func(cmd *cobra.Command, _ []string) error {
			plan, err := app.service.SavePlan(cmd.Context(), command)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Saved plan %s (%s, %d days)\n", plan.ID, sanitizeForTerminal(plan.Name), plan.ValidityDays)
			return nil
		},
	}

	cmd.Flags().StringVar(&command.ID, "id", "", "Plan ID")
	cmd.Flags().StringVar(&command.Name, "name", "", "Plan name")
	cmd.Flags().IntVar(&command.ValidityDays, "validity", 0, "Validity in days, creation day included")
	cmd.Flags().IntVar(&command.ExtensionLimit, "extensions", 0, "Maximum number of extensions")
	cmd.Flags().Int64Var(&command.PriceCents, "price", 0, "Price in cents")
	cmd.Flags().StringVar(&command.Description, "description", "", "Free-form description")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("validity")

	return cmd
}

func newPlanRemoveCmd(app *app) *cobra.Command {
	var planID string

	cmd := &cobra.Command{
		Use:   "remove",
		Short: "Remove a catalog plan",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.service.RemovePlan(cmd.Context(), domain.PlanID(planID)); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Removed plan %s\n", planID)
			return nil
		},
	}

	cmd.Flags().StringVar(&planID, "id", "", "Plan ID")
	_ = cmd.MarkFlagRequired("id")

	return cmd
}

func formatPrice(cents int64) string {
	if cents <= 0 {
		return "-"
	}

	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}
