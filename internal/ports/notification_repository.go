package ports

import (
	"context"
	"time"

	"github.com/bnema/pabx-entitlements/internal/domain"
)

type NotificationRepository interface {
	List(ctx context.Context) ([]domain.Notification, error)
	ListByAccount(ctx context.Context, accountID domain.AccountID) ([]domain.Notification, error)
	// ExistsSince reports whether a notification with title was stored for the account at or after since.
	ExistsSince(ctx context.Context, accountID domain.AccountID, title string, since time.Time) (bool, error)
	Save(ctx context.Context, notification domain.Notification) error
	MarkRead(ctx context.Context, id domain.NotificationID) error
}
