package cmd

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/bnema/pabx-entitlements/internal/application"
	"github.com/bnema/pabx-entitlements/internal/domain"
	"github.com/spf13/cobra"
)

func newAccountCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage accounts",
	}

	cmd.AddCommand(
		newAccountListCmd(app),
		newAccountSetCmd(app),
		newAccountRenewCmd(app),
		newAccountRemoveCmd(app),
	)

	return cmd
}

func newAccountListCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List configured accounts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			statuses, err := app.service.GetEntitlementAll(cmd.Context())
			if err != nil {
				return err
			}

			for _, status := range statuses {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\n",
					status.Account.ID,
					sanitizeForTerminal(status.Account.Name),
					sanitizeForTerminal(accountPlanLabel(status)),
					status.Expiration.StatusText,
				)
			}

			return nil
		},
	}
}

func newAccountSetCmd(app *app) *cobra.Command {
	var command application.SaveAccountCommand

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Create or update an account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			account, err := app.service.SaveAccount(cmd.Context(), command)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Saved account %s (%s)\n", account.ID, sanitizeForTerminal(account.Name))
			return nil
		},
	}

	cmd.Flags().StringVar(&command.ID, "account", "", "Account ID (empty or 0 assigns the next number after the highest in use)")
	cmd.Flags().StringVar(&command.Name, "name", "", "Display name")
	cmd.Flags().StringVar(&command.Email, "email", "", "Contact email")
	cmd.Flags().StringVar(&command.PlanID, "plan-id", "", "Catalog plan ID")
	cmd.Flags().StringVar(&command.PlanName, "plan", "", "Plan name, matched case-insensitively against the catalog")
	cmd.Flags().StringVar(&command.CreatedAt, "created-at", "", "Entitlement start (YYYY-MM-DD or RFC3339, default: now for new accounts)")
	cmd.Flags().StringVar(&command.Status, "status", "", "Account status: ativo, inativo, active, inactive")
	_ = cmd.MarkFlagRequired("name")
	cmd.MarkFlagsMutuallyExclusive("plan-id", "plan")

	return cmd
}

func newAccountRenewCmd(app *app) *cobra.Command {
	var command application.RenewAccountCommand

	cmd := &cobra.Command{
		Use:   "renew",
		Short: "Restart an account's entitlement today on the given plan",
		RunE: func(cmd *cobra.Command, _ []string) error {
			status, err := app.service.RenewAccount(cmd.Context(), command)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Renewed account %s on %s until %s\n",
				status.Account.ID,
				sanitizeForTerminal(accountPlanLabel(status)),
				status.Expiration.FormattedDate,
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&command.ID, "account", "", "Account ID")
	cmd.Flags().StringVar(&command.PlanID, "plan-id", "", "Catalog plan ID")
	_ = cmd.MarkFlagRequired("account")
	_ = cmd.MarkFlagRequired("plan-id")

	return cmd
}

func newAccountRemoveCmd(app *app) *cobra.Command {
	var accountID string

	cmd := &cobra.Command{
		Use:   "remove",
		Short: "Remove an account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.service.RemoveAccount(cmd.Context(), domain.AccountID(accountID)); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Removed account %s\n", accountID)
			return nil
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "Account ID")
	_ = cmd.MarkFlagRequired("account")

	return cmd
}

func accountPlanLabel(status application.Status) string {
	if status.Plan != nil {
		return status.Plan.Name
	}
	if name := strings.TrimSpace(status.Account.PlanName); name != "" {
		return name
	}
	if id := strings.TrimSpace(string(status.Account.PlanID)); id != "" {
		return id
	}

	return "none"
}

func sanitizeForTerminal(value string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, value)
}
