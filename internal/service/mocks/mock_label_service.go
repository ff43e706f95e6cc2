package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"arkiv/internal/service"
)

type MockLabelService struct {
	mock.Mock
}

func (m *MockLabelService) Generate(ctx context.Context, req service.LabelRequest) (*service.LabelSheet, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.LabelSheet), args.Error(1)
}

func (m *MockLabelService) Archive(ctx context.Context, req service.LabelRequest) (*service.StoredObject, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.StoredObject), args.Error(1)
}
