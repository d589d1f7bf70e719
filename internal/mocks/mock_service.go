package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/segyhp/debt-planner/internal/domain"
)

type MockPlannerService struct {
	mock.Mock
}

func (m *MockPlannerService) Schedule(ctx context.Context, input *domain.DebtInput) (*domain.ScheduleResponse, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ScheduleResponse), args.Error(1)
}

func (m *MockPlannerService) Overdue(ctx context.Context, req *domain.PortfolioRequest) (*domain.PaymentsResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentsResponse), args.Error(1)
}

func (m *MockPlannerService) Upcoming(ctx context.Context, req *domain.PortfolioRequest) (*domain.PaymentsResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentsResponse), args.Error(1)
}

func (m *MockPlannerService) PlannedRepayment(ctx context.Context, req *domain.PortfolioRequest) (*domain.RepaymentResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RepaymentResponse), args.Error(1)
}

func (m *MockPlannerService) DebtFreeDate(ctx context.Context, req *domain.PortfolioRequest) (*domain.DebtFreeDateResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DebtFreeDateResponse), args.Error(1)
}

func (m *MockPlannerService) Projection(ctx context.Context, req *domain.PortfolioRequest) (*domain.ProjectionResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProjectionResponse), args.Error(1)
}

// NewMockPlannerService creates a new mock planner service instance
func NewMockPlannerService() *MockPlannerService {
	return &MockPlannerService{}
}
