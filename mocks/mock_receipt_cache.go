package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"tabsplit/internal/domain"
)

// MockReceiptCache is a mock implementation of port.ReceiptCache.
type MockReceiptCache struct {
	mock.Mock
}

func (m *MockReceiptCache) Get(ctx context.Context, key string) (*domain.Receipt, bool) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).(*domain.Receipt), args.Bool(1)
}

func (m *MockReceiptCache) Set(ctx context.Context, key string, receipt *domain.Receipt) {
	m.Called(ctx, key, receipt)
}
