package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"arkiv/internal/model"
)

type MockRegistryRepository struct {
	mock.Mock
}

func (m *MockRegistryRepository) Create(ctx context.Context, entry *model.RegistryEntry) (*model.RegistryEntry, error) {
	args := m.Called(ctx, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RegistryEntry), args.Error(1)
}

func (m *MockRegistryRepository) FindByID(ctx context.Context, id string) (*model.RegistryEntry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RegistryEntry), args.Error(1)
}

func (m *MockRegistryRepository) List(ctx context.Context) ([]model.RegistryEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.RegistryEntry), args.Error(1)
}

func (m *MockRegistryRepository) Update(ctx context.Context, entry *model.RegistryEntry) (*model.RegistryEntry, error) {
	args := m.Called(ctx, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RegistryEntry), args.Error(1)
}

func (m *MockRegistryRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
