package mocks

import (
	"context"

	"github.com/bnema/pabx-entitlements/internal/domain"
	"github.com/bnema/pabx-entitlements/internal/ports"
	"github.com/stretchr/testify/mock"
)

type MockPlanRepository struct {
	mock.Mock
}

var _ ports.PlanRepository = (*MockPlanRepository)(nil)

func NewMockPlanRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockPlanRepository {
	m := &MockPlanRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockPlanRepository) GetByID(ctx context.Context, id domain.PlanID) (domain.PlanDefinition, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.PlanDefinition), args.Error(1)
}

func (m *MockPlanRepository) List(ctx context.Context) (domain.PlanCatalog, error) {
	args := m.Called(ctx)
	catalog, _ := args.Get(0).(domain.PlanCatalog)
	return catalog, args.Error(1)
}

func (m *MockPlanRepository) Save(ctx context.Context, plan domain.PlanDefinition) error {
	return m.Called(ctx, plan).Error(0)
}

func (m *MockPlanRepository) Delete(ctx context.Context, id domain.PlanID) error {
	return m.Called(ctx, id).Error(0)
}
