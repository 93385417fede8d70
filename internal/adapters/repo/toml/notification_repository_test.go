package toml

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/bnema/pabx-entitlements/internal/domain"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestNotificationRepository(t *testing.T) *NotificationRepository {
	t.Helper()

	cfg := viper.New()
	cfg.Set("notifications.path", filepath.Join(t.TempDir(), "notifications.toml"))

	repo, err := NewNotificationRepository(cfg)
	require.NoError(t, err)
	return repo
}

func TestNotificationRepositoryRoundTrip(t *testing.T) {
	t.Parallel()

	repo := newTestNotificationRepository(t)

	first := domain.Notification{
		ID:        "n-1",
		AccountID: "acc-1",
		Title:     "Plan expired",
		Message:   "Your plan expired.",
		Kind:      domain.NoticeError,
		Timestamp: time.Date(2024, 1, 21, 7, 0, 0, 0, time.UTC),
	}
	second := domain.Notification{
		ID:        "n-2",
		AccountID: "acc-2",
		Title:     "Your plan expires tomorrow",
		Kind:      domain.NoticeWarning,
		Timestamp: time.Date(2024, 1, 21, 7, 0, 1, 0, time.UTC),
	}

	require.NoError(t, repo.Save(context.Background(), first))
	require.NoError(t, repo.Save(context.Background(), second))

	all, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.Notification{first, second}, all)

	byAccount, err := repo.ListByAccount(context.Background(), "acc-2")
	require.NoError(t, err)
	assert.Equal(t, []domain.Notification{second}, byAccount)
}

func TestNotificationRepositoryExistsSince(t *testing.T) {
	t.Parallel()

	repo := newTestNotificationRepository(t)
	stored := time.Date(2024, 1, 21, 9, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Save(context.Background(), domain.Notification{
		ID:        "n-1",
		AccountID: "acc-1",
		Title:     "Plan expired",
		Timestamp: stored,
	}))

	tests := []struct {
		name      string
		accountID domain.AccountID
		title     string
		since     time.Time
		want      bool
	}{
		{name: "same day", accountID: "acc-1", title: "Plan expired", since: time.Date(2024, 1, 21, 0, 0, 0, 0, time.UTC), want: true},
		{name: "exact timestamp", accountID: "acc-1", title: "Plan expired", since: stored, want: true},
		{name: "next day", accountID: "acc-1", title: "Plan expired", since: time.Date(2024, 1, 22, 0, 0, 0, 0, time.UTC), want: false},
		{name: "other title", accountID: "acc-1", title: "Your plan expires tomorrow", since: time.Date(2024, 1, 21, 0, 0, 0, 0, time.UTC), want: false},
		{name: "other account", accountID: "acc-2", title: "Plan expired", since: time.Date(2024, 1, 21, 0, 0, 0, 0, time.UTC), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.ExistsSince(context.Background(), tt.accountID, tt.title, tt.since)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNotificationRepositoryMarkRead(t *testing.T) {
	t.Parallel()

	repo := newTestNotificationRepository(t)

	require.NoError(t, repo.Save(context.Background(), domain.Notification{ID: "n-1", AccountID: "acc-1", Title: "Plan expired"}))
	require.NoError(t, repo.MarkRead(context.Background(), "n-1"))

	all, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.True(t, all[0].Read)

	require.ErrorIs(t, repo.MarkRead(context.Background(), "missing"), domain.ErrNotificationNotFound)
}

func TestNotificationRepositoryCanceledContext(t *testing.T) {
	t.Parallel()

	repo := newTestNotificationRepository(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.ExistsSince(ctx, "acc-1", "Plan expired", time.Time{})
	require.ErrorIs(t, err, context.Canceled)
}
