package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"docusight/internal/port"
)

// MockDocumentClassifier is a mock implementation of port.DocumentClassifier.
type MockDocumentClassifier struct {
	mock.Mock
}

func (m *MockDocumentClassifier) Classify(ctx context.Context, imageRef string) (*port.Classification, error) {
	args := m.Called(ctx, imageRef)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.Classification), args.Error(1)
}
