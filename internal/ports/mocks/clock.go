package mocks

import (
	"time"

	"github.com/bnema/pabx-entitlements/internal/ports"
	"github.com/stretchr/testify/mock"
)

type MockClock struct {
	mock.Mock
}

var _ ports.Clock = (*MockClock)(nil)

func NewMockClock(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockClock {
	m := &MockClock{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockClock) Now() time.Time {
	return m.Called().Get(0).(time.Time)
}
