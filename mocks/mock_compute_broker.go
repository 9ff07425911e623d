package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"tabsplit/internal/port"
)

// MockComputeBroker is a mock implementation of port.ComputeBroker.
type MockComputeBroker struct {
	mock.Mock
}

func (m *MockComputeBroker) RequestHeaders(ctx context.Context, provider, query string) (map[string]string, error) {
	args := m.Called(ctx, provider, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

func (m *MockComputeBroker) Settle(ctx context.Context, provider, content, responseID string) (bool, error) {
	args := m.Called(ctx, provider, content, responseID)
	return args.Bool(0), args.Error(1)
}

func (m *MockComputeBroker) Balance(ctx context.Context) (*port.BalanceInfo, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.BalanceInfo), args.Error(1)
}

func (m *MockComputeBroker) Services(ctx context.Context) ([]port.ServiceInfo, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]port.ServiceInfo), args.Error(1)
}

func (m *MockComputeBroker) Acknowledge(ctx context.Context, provider string) error {
	args := m.Called(ctx, provider)
	return args.Error(0)
}
