package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"tabsplit/internal/port"
)

// MockSplitReasoner is a mock implementation of port.SplitReasoner.
type MockSplitReasoner struct {
	mock.Mock
}

func (m *MockSplitReasoner) ComputeSplit(ctx context.Context, input port.ReasonInput) (*port.ReasonOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.ReasonOutput), args.Error(1)
}
