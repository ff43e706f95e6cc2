package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"arkiv/internal/model"
	"arkiv/internal/repository"
	"arkiv/internal/service"
)

type MockArchiveService struct {
	mock.Mock
}

func (m *MockArchiveService) Create(ctx context.Context, in service.ElementInput) (*model.Element, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Element), args.Error(1)
}

func (m *MockArchiveService) Get(ctx context.Context, id string) (*model.Element, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Element), args.Error(1)
}

func (m *MockArchiveService) List(ctx context.Context, f repository.ElementFilter) ([]model.Element, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Element), args.Error(1)
}

func (m *MockArchiveService) Update(ctx context.Context, id string, in service.ElementInput) (*model.Element, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Element), args.Error(1)
}

func (m *MockArchiveService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockArchiveService) Subtree(ctx context.Context, id string) (*service.TreeNode, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.TreeNode), args.Error(1)
}

func (m *MockArchiveService) BoxInfo(ctx context.Context, id string) (*service.BoxInfo, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.BoxInfo), args.Error(1)
}

func (m *MockArchiveService) Locate(ctx context.Context, id string) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}
