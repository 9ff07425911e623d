package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"tabsplit/internal/domain"
)

// MockSplitTurnRepo is a mock implementation of port.SplitTurnRepository.
type MockSplitTurnRepo struct {
	mock.Mock
}

func (m *MockSplitTurnRepo) Create(ctx context.Context, turn *domain.SplitTurn) error {
	args := m.Called(ctx, turn)
	return args.Error(0)
}

func (m *MockSplitTurnRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.SplitTurn, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SplitTurn), args.Error(1)
}

func (m *MockSplitTurnRepo) List(ctx context.Context, kind *domain.TurnKind, offset, limit int) ([]domain.SplitTurn, int, error) {
	args := m.Called(ctx, kind, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.SplitTurn), args.Int(1), args.Error(2)
}
