package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"arkiv/internal/model"
	"arkiv/internal/service"
)

type MockRegistryService struct {
	mock.Mock
}

func (m *MockRegistryService) Add(ctx context.Context, in service.RegistryInput) (*model.RegistryEntry, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RegistryEntry), args.Error(1)
}

func (m *MockRegistryService) Get(ctx context.Context, id string) (*model.RegistryEntry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RegistryEntry), args.Error(1)
}

func (m *MockRegistryService) List(ctx context.Context) ([]model.RegistryEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.RegistryEntry), args.Error(1)
}

func (m *MockRegistryService) Update(ctx context.Context, id string, in service.RegistryInput) (*model.RegistryEntry, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RegistryEntry), args.Error(1)
}

func (m *MockRegistryService) Remove(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRegistryService) Place(ctx context.Context, ids []string, parentID string) ([]model.Element, error) {
	args := m.Called(ctx, ids, parentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Element), args.Error(1)
}
