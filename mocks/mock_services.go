package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"tabsplit/internal/domain"
	"tabsplit/internal/service"
)

// MockReceiptService is a mock implementation of service.ReceiptService.
type MockReceiptService struct {
	mock.Mock
}

func (m *MockReceiptService) Parse(ctx context.Context, input *service.ParseReceiptInput) (*service.ParseReceiptResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ParseReceiptResult), args.Error(1)
}

// MockSplitService is a mock implementation of service.SplitService.
type MockSplitService struct {
	mock.Mock
}

func (m *MockSplitService) ComputeSplit(ctx context.Context, input *service.ComputeSplitInput) (*service.ComputeSplitResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ComputeSplitResult), args.Error(1)
}

// MockTurnService is a mock implementation of service.TurnService.
type MockTurnService struct {
	mock.Mock
}

func (m *MockTurnService) List(ctx context.Context, kind *domain.TurnKind, offset, limit int) ([]domain.SplitTurn, int, error) {
	args := m.Called(ctx, kind, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.SplitTurn), args.Int(1), args.Error(2)
}

func (m *MockTurnService) GetByID(ctx context.Context, id uuid.UUID) (*domain.SplitTurn, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SplitTurn), args.Error(1)
}

func (m *MockTurnService) Export(ctx context.Context, kind *domain.TurnKind) ([]domain.SplitTurn, error) {
	args := m.Called(ctx, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SplitTurn), args.Error(1)
}
