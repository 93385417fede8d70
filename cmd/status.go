package cmd

import (
	"encoding/json"
	"fmt"

	statusadapter "github.com/bnema/pabx-entitlements/internal/adapters/render/status"
	"github.com/bnema/pabx-entitlements/internal/application"
	"github.com/bnema/pabx-entitlements/internal/domain"
	"github.com/spf13/cobra"
)

func newStatusCmd(app *app) *cobra.Command {
	var (
		accountID   string
		expiredOnly bool
		asJSON      bool
	)

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show plan expiration status per account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			statuses, err := loadStatuses(cmd, app.service, accountID, expiredOnly)
			if err != nil {
				return err
			}

			title := ""
			if expiredOnly {
				title = "Expired accounts"
			}

			return writeStatusesOutput(cmd, app, statuses, title, asJSON)
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "Account ID")
	cmd.Flags().BoolVar(&expiredOnly, "expired", false, "Only show accounts whose plan has expired")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON output")
	cmd.MarkFlagsMutuallyExclusive("account", "expired")

	return cmd
}

func writeJSON(cmd *cobra.Command, value any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}

func writeStatusesOutput(cmd *cobra.Command, app *app, statuses []application.Status, title string, asJSON bool) error {
	if asJSON {
		return writeJSON(cmd, statuses)
	}

	rendered, err := app.statusRenderer(statuses, statusadapter.RenderOptions{Title: title})
	if err != nil {
		return fmt.Errorf("render status: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}

func loadStatuses(cmd *cobra.Command, svc *application.Service, accountID string, expiredOnly bool) ([]application.Status, error) {
	if expiredOnly {
		return svc.ListExpired(cmd.Context())
	}

	if accountID == "" {
		return svc.GetEntitlementAll(cmd.Context())
	}

	status, err := svc.GetEntitlement(cmd.Context(), domain.AccountID(accountID))
	if err != nil {
		return nil, err
	}

	return []application.Status{status}, nil
}
