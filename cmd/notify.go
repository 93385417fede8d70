package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bnema/pabx-entitlements/internal/adapters/metrics"
	"github.com/bnema/pabx-entitlements/internal/application"
	"github.com/bnema/pabx-entitlements/internal/domain"
	"github.com/spf13/cobra"
)

func newNotifyCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notify",
		Short: "Record and review plan expiration notices",
	}

	cmd.AddCommand(
		newNotifyCheckCmd(app),
		newNotifyListCmd(app),
		newNotifyReadCmd(app),
	)

	return cmd
}

func newNotifyCheckCmd(app *app) *cobra.Command {
	var (
		asJSON      bool
		metricsFile string
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Store a notice for every account whose plan expires soon or has expired",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var report application.NotifyReport
			startedAt := time.Now()
			check := func(ctx context.Context) error {
				var err error
				report, err = app.service.CheckExpirations(ctx)
				return err
			}

			if !asJSON && app.isTerminal(cmd.ErrOrStderr()) {
				if err := runCheckSpinner(cmd.Context(), cmd.ErrOrStderr(), check); err != nil {
					return err
				}
			} else if err := check(cmd.Context()); err != nil {
				return err
			}

			if path := firstNonEmpty(metricsFile, app.metricsTextfile); path != "" {
				if err := writeCheckMetrics(path, report, startedAt); err != nil {
					return err
				}
			}

			if asJSON {
				return writeJSON(cmd, report)
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(),
				"evaluated: %d\ncreated: %d\nduplicates: %d\nskipped: %d\nfailed: %d\n",
				report.Evaluated, report.Created, report.Duplicates, report.Skipped, report.Failed,
			)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON output")
	cmd.Flags().StringVar(&metricsFile, "metrics-file", "", "Write a Prometheus textfile with the check results")

	return cmd
}

func writeCheckMetrics(path string, report application.NotifyReport, startedAt time.Time) error {
	observer, err := metrics.NewCheckObserver("")
	if err != nil {
		return err
	}

	finishedAt := time.Now()
	observer.RecordCheck(report, finishedAt.Sub(startedAt), finishedAt)
	return observer.WriteTextfile(path)
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}

	return ""
}

func newNotifyListCmd(app *app) *cobra.Command {
	var (
		accountID  string
		unreadOnly bool
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored notices",
		RunE: func(cmd *cobra.Command, _ []string) error {
			notifications, err := app.service.ListNotifications(cmd.Context(), domain.AccountID(accountID), unreadOnly)
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd, notifications)
			}

			if len(notifications) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no notifications")
				return nil
			}

			for _, notification := range notifications {
				marker := "*"
				if notification.Read {
					marker = " "
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\t%s\t%s\t%s: %s\n",
					marker,
					notification.ID,
					notification.Timestamp.Format("2006-01-02 15:04"),
					notification.AccountID,
					sanitizeForTerminal(notification.Title),
					sanitizeForTerminal(notification.Message),
				)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "Only notices for this account")
	cmd.Flags().BoolVar(&unreadOnly, "unread", false, "Only unread notices")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON output")

	return cmd
}

func newNotifyReadCmd(app *app) *cobra.Command {
	var notificationID string

	cmd := &cobra.Command{
		Use:   "read",
		Short: "Mark a notice as read",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.service.MarkNotificationRead(cmd.Context(), domain.NotificationID(notificationID)); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Marked %s as read\n", notificationID)
			return nil
		},
	}

	cmd.Flags().StringVar(&notificationID, "id", "", "Notification ID")
	_ = cmd.MarkFlagRequired("id")

	return cmd
}
