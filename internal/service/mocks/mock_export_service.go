package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"arkiv/internal/repository"
	"arkiv/internal/service"
)

type MockExportService struct {
	mock.Mock
}

func (m *MockExportService) Export(ctx context.Context, format service.ExportFormat, f repository.ElementFilter) (*service.ExportFile, error) {
	args := m.Called(ctx, format, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ExportFile), args.Error(1)
}
