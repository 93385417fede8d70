package mocks

import (
	"context"
	"time"

	"github.com/bnema/pabx-entitlements/internal/domain"
	"github.com/bnema/pabx-entitlements/internal/ports"
	"github.com/stretchr/testify/mock"
)

type MockNotificationRepository struct {
	mock.Mock
}

var _ ports.NotificationRepository = (*MockNotificationRepository)(nil)

func NewMockNotificationRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockNotificationRepository {
	m := &MockNotificationRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockNotificationRepository) List(ctx context.Context) ([]domain.Notification, error) {
	args := m.Called(ctx)
	notifications, _ := args.Get(0).([]domain.Notification)
	return notifications, args.Error(1)
}

func (m *MockNotificationRepository) ListByAccount(ctx context.Context, accountID domain.AccountID) ([]domain.Notification, error) {
	args := m.Called(ctx, accountID)
	notifications, _ := args.Get(0).([]domain.Notification)
	return notifications, args.Error(1)
}

func (m *MockNotificationRepository) ExistsSince(ctx context.Context, accountID domain.AccountID, title string, since time.Time) (bool, error) {
	args := m.Called(ctx, accountID, title, since)
	return args.Bool(0), args.Error(1)
}

func (m *MockNotificationRepository) Save(ctx context.Context, notification domain.Notification) error {
	return m.Called(ctx, notification).Error(0)
}

func (m *MockNotificationRepository) MarkRead(ctx context.Context, id domain.NotificationID) error {
	return m.Called(ctx, id).Error(0)
}
