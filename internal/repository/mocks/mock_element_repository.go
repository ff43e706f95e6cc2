package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"arkiv/internal/model"
	"arkiv/internal/repository"
)

type MockElementRepository struct {
	mock.Mock
}

func (m *MockElementRepository) Create(ctx context.Context, el *model.Element) (*model.Element, error) {
	args := m.Called(ctx, el)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Element), args.Error(1)
}

func (m *MockElementRepository) FindByID(ctx context.Context, id string) (*model.Element, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Element), args.Error(1)
}

func (m *MockElementRepository) List(ctx context.Context, f repository.ElementFilter) ([]model.Element, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Element), args.Error(1)
}

func (m *MockElementRepository) ListChildren(ctx context.Context, parentID string) ([]model.Element, error) {
	args := m.Called(ctx, parentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Element), args.Error(1)
}

func (m *MockElementRepository) Update(ctx context.Context, el *model.Element) (*model.Element, error) {
	args := m.Called(ctx, el)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Element), args.Error(1)
}

func (m *MockElementRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
