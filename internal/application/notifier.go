package application

import (
	"context"
	"time"

	"github.com/bnema/pabx-entitlements/internal/domain"
	"github.com/google/uuid"
)

// CheckExpirations stores at most one reminder per account and title per local day for every
// account whose plan is close to expiring or already expired.
func (s *Service) CheckExpirations(ctx context.Context) (NotifyReport, error) {
	accounts, catalog, err := s.loadInputs(ctx)
	if err != nil {
		return NotifyReport{}, err
	}

	opts := s.evaluateOptions()
	y, m, d := opts.Now.In(s.settings.Location).Date()
	dayStart := time.Date(y, m, d, 0, 0, 0, 0, s.settings.Location)
	logger := s.settings.Logger.With("job", "check-expirations")

	var report NotifyReport
	for _, account := range accounts {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		if account.CreatedAt.IsZero() || !account.HasPlan() {
			report.Skipped++
			continue
		}

		report.Evaluated++
		info := domain.EvaluateAccount(account, catalog, opts)
		notice, ok := domain.ExpirationNotice(info, s.settings.Locale)
		if !ok {
			continue
		}

		exists, err := s.notifications.ExistsSince(ctx, account.ID, notice.Title, dayStart)
		if err != nil {
			report.Failed++
			logger.Warn("lookup existing notification failed", "account_id", account.ID, "error", err)
			continue
		}
		if exists {
			report.Duplicates++
			continue
		}

		notification := domain.Notification{
			ID:        domain.NotificationID(uuid.NewString()),
			AccountID: account.ID,
			Title:     notice.Title,
			Message:   notice.Message,
			Kind:      notice.Kind,
			Timestamp: opts.Now,
		}
		if err := s.notifications.Save(ctx, notification); err != nil {
			report.Failed++
			logger.Error("store notification failed", "account_id", account.ID, "error", err)
			continue
		}

		report.Created++
		logger.Debug("notification stored",
			"account_id", account.ID,
			"status", info.Status,
			"days_until_expiration", info.DaysUntilExpiration,
		)
	}

	logger.Info("expiration check finished",
		"evaluated", report.Evaluated,
		"skipped", report.Skipped,
		"created", report.Created,
		"duplicates", report.Duplicates,
		"failed", report.Failed,
	)

	return report, nil
}
