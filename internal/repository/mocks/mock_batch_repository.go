package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"arkiv/internal/model"
)

type MockBatchRepository struct {
	mock.Mock
}

func (m *MockBatchRepository) ReplaceAll(ctx context.Context, elements []model.Element, entries []model.RegistryEntry) error {
	args := m.Called(ctx, elements, entries)
	return args.Error(0)
}

func (m *MockBatchRepository) PlaceEntries(ctx context.Context, elements []model.Element, entryIDs []string) error {
	args := m.Called(ctx, elements, entryIDs)
	return args.Error(0)
}
