package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"docusight/internal/domain"
)

// MockProcessor is a mock implementation of handler.Processor.
type MockProcessor struct {
	mock.Mock
}

func (m *MockProcessor) Process(ctx context.Context, imageRef string) *domain.OrchestrationResult {
	args := m.Called(ctx, imageRef)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*domain.OrchestrationResult)
}
