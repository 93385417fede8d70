package toml

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bnema/pabx-entitlements/internal/domain"
	"github.com/bnema/pabx-entitlements/internal/ports"
	"github.com/spf13/viper"
)

const (
	notificationsPathKey  = "notifications.path"
	notificationsFileName = "notifications.toml"
	notificationsKind     = "notifications"
)

type NotificationRepository struct {
	path string
	mu   *sync.RWMutex
}

var _ ports.NotificationRepository = (*NotificationRepository)(nil)

func NewNotificationRepository(cfg *viper.Viper) (*NotificationRepository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	path, err := resolvePath(cfg, notificationsPathKey, notificationsFileName)
	if err != nil {
		return nil, err
	}

	return &NotificationRepository{path: path, mu: lockForPath(path)}, nil
}

func (r *NotificationRepository) List(ctx context.Context) ([]domain.Notification, error) {
	return r.filter(ctx, func(notificationSchema) bool { return true })
}

func (r *NotificationRepository) ListByAccount(ctx context.Context, accountID domain.AccountID) ([]domain.Notification, error) {
	return r.filter(ctx, func(entry notificationSchema) bool {
		return entry.AccountID == string(accountID)
	})
}

func (r *NotificationRepository) ExistsSince(ctx context.Context, accountID domain.AccountID, title string, since time.Time) (bool, error) {
	matches, err := r.filter(ctx, func(entry notificationSchema) bool {
		return entry.AccountID == string(accountID) && entry.Title == title
	})
	if err != nil {
		return false, err
	}

	for _, notification := range matches {
		if !notification.Timestamp.Before(since) {
			return true, nil
		}
	}

	return false, nil
}

func (r *NotificationRepository) Save(ctx context.Context, notification domain.Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	encoded := toNotificationSchema(notification)
	updated := false
	for i := range file.Notifications {
		if file.Notifications[i].ID == encoded.ID {
			file.Notifications[i] = encoded
			updated = true
			break
		}
	}
	if !updated {
		file.Notifications = append(file.Notifications, encoded)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	if err := writeTOMLFile(r.path, file); err != nil {
		return fmt.Errorf("write notifications file: %w", err)
	}

	return nil
}

func (r *NotificationRepository) MarkRead(ctx context.Context, id domain.NotificationID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	found := false
	for i := range file.Notifications {
		if file.Notifications[i].ID == string(id) {
			file.Notifications[i].Read = true
			found = true
			break
		}
	}
	if !found {
		return domain.ErrNotificationNotFound
	}

	if err := writeTOMLFile(r.path, file); err != nil {
		return fmt.Errorf("write notifications file: %w", err)
	}

	return nil
}

func (r *NotificationRepository) filter(ctx context.Context, keep func(notificationSchema) bool) ([]domain.Notification, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return nil, err
	}

	notifications := make([]domain.Notification, 0, len(file.Notifications))
	for _, entry := range file.Notifications {
		if keep(entry) {
			notifications = append(notifications, fromNotificationSchema(entry))
		}
	}

	return notifications, nil
}

func (r *NotificationRepository) readSchema() (notificationsFileSchema, error) {
	var file notificationsFileSchema
	if err := readTOMLFile(r.path, notificationsKind, &file); err != nil {
		return notificationsFileSchema{}, err
	}
	if err := validateVersion(notificationsKind, file.Version); err != nil {
		return notificationsFileSchema{}, err
	}
	defaultVersion(&file.Version)

	return file, nil
}

func toNotificationSchema(notification domain.Notification) notificationSchema {
	return notificationSchema{
		ID:        string(notification.ID),
		AccountID: string(notification.AccountID),
		Title:     notification.Title,
		Message:   notification.Message,
		Kind:      string(notification.Kind),
		Read:      notification.Read,
		Timestamp: formatTime(notification.Timestamp),
	}
}

func fromNotificationSchema(notification notificationSchema) domain.Notification {
	return domain.Notification{
		ID:        domain.NotificationID(notification.ID),
		AccountID: domain.AccountID(notification.AccountID),
		Title:     notification.Title,
		Message:   notification.Message,
		Kind:      domain.NoticeKind(notification.Kind),
		Read:      notification.Read,
		Timestamp: parseTime(notification.Timestamp),
	}
}
