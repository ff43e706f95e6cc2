package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"arkiv/internal/model"
	"arkiv/internal/repository"
	repoMocks "arkiv/internal/repository/mocks"
	"arkiv/internal/storage"
	storeMocks "arkiv/internal/storage/mocks"
)

func TestSyncService_Export(t *testing.T) {
	ctx := context.Background()

	elements := new(repoMocks.MockElementRepository)
	registry := new(repoMocks.MockRegistryRepository)
	elements.On("List", ctx, repository.ElementFilter{}).Return([]model.Element{
		{ID: "box-1", Name: "Archive 12", Type: model.TypeBox},
	}, nil)
	registry.On("List", ctx).Return([]model.RegistryEntry{
		{ID: "entry-1", Name: "Act 17"},
	}, nil)

	svc := NewSyncService(elements, registry, nil, nil, nil)

	snap, err := svc.Export(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.SnapshotVersion, snap.Version)
	assert.WithinDuration(t, time.Now().UTC(), snap.ExportedAt, time.Minute)
	require.Len(t, snap.Elements, 1)
	require.Len(t, snap.Registry, 1)
}

func TestSyncService_ExportEmptyInventory(t *testing.T) {
	ctx := context.Background()

	elements := new(repoMocks.MockElementRepository)
	registry := new(repoMocks.MockRegistryRepository)
	elements.On("List", ctx, repository.ElementFilter{}).Return([]model.Element(nil), nil)
	registry.On("List", ctx).Return([]model.RegistryEntry(nil), nil)

	svc := NewSyncService(elements, registry, nil, nil, nil)

	snap, err := svc.Export(ctx)
	require.NoError(t, err)
	assert.NotNil(t, snap.Elements)
	assert.NotNil(t, snap.Registry)
	assert.Empty(t, snap.Elements)
	assert.Empty(t, snap.Registry)
}

func TestSyncService_Import(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		snap       *model.Snapshot
		setupMocks func(batch *repoMocks.MockBatchRepository)
		wantErr    error
		wantEvent  bool
	}{
		{
			name:    "nil snapshot",
			snap:    nil,
			wantErr: ErrBadSnapshot,
		},
		{
			name:    "unknown version",
			snap:    &model.Snapshot{Version: "2.0", Elements: []model.Element{}},
			wantErr: ErrBadSnapshot,
		},
		{
			name:    "no data at all",
			snap:    &model.Snapshot{Version: model.SnapshotVersion},
			wantErr: ErrBadSnapshot,
		},
		{
			name: "unknown element type",
			snap: &model.Snapshot{
				Version:  model.SnapshotVersion,
				Elements: []model.Element{{ID: "x", Name: "X", Type: "crate"}},
			},
			wantErr: ErrBadSnapshot,
		},
		{
			name: "happy path replaces everything",
			snap: &model.Snapshot{
				Version: model.SnapshotVersion,
				Elements: []model.Element{
					{ID: "box-1", Name: "Archive 12", Type: model.TypeBox},
					{ID: "doc-1", Name: "Act 17", Type: model.TypeDocument, ParentID: "box-1"},
				},
				Registry: []model.RegistryEntry{{ID: "entry-1", Name: "Act 18"}},
			},
			setupMocks: func(batch *repoMocks.MockBatchRepository) {
				batch.On("ReplaceAll", ctx, mock.MatchedBy(func(els []model.Element) bool {
					return len(els) == 2 && els[1].ParentID == "box-1"
				}), mock.MatchedBy(func(entries []model.RegistryEntry) bool {
					return len(entries) == 1 &&
						entries[0].Type == model.TypeDocument &&
						entries[0].Status == model.StatusAwaitingPlacement
				})).Return(nil)
			},
			wantEvent: true,
		},
		{
			name: "dangling parent becomes root",
			snap: &model.Snapshot{
				Version: model.SnapshotVersion,
				Elements: []model.Element{
					{ID: "doc-1", Name: "Act 17", Type: model.TypeDocument, ParentID: "gone"},
				},
			},
			setupMocks: func(batch *repoMocks.MockBatchRepository) {
				batch.On("ReplaceAll", ctx, mock.MatchedBy(func(els []model.Element) bool {
					return len(els) == 1 && els[0].ParentID == ""
				}), mock.Anything).Return(nil)
			},
			wantEvent: true,
		},
		{
			name: "duplicate id keeps the last occurrence",
			snap: &model.Snapshot{
				Version: model.SnapshotVersion,
				Elements: []model.Element{
					{ID: "box-1", Name: "First", Type: model.TypeBox},
					{ID: "box-1", Name: "Second", Type: model.TypeBox},
				},
			},
			setupMocks: func(batch *repoMocks.MockBatchRepository) {
				batch.On("ReplaceAll", ctx, mock.MatchedBy(func(els []model.Element) bool {
					return len(els) == 1 && els[0].Name == "Second"
				}), mock.Anything).Return(nil)
			},
			wantEvent: true,
		},
		{
			name: "missing ids are generated",
			snap: &model.Snapshot{
				Version:  model.SnapshotVersion,
				Elements: []model.Element{{Name: "Unnumbered", Type: model.TypeBox}},
			},
			setupMocks: func(batch *repoMocks.MockBatchRepository) {
				batch.On("ReplaceAll", ctx, mock.MatchedBy(func(els []model.Element) bool {
					return len(els) == 1 && els[0].ID != ""
				}), mock.Anything).Return(nil)
			},
			wantEvent: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			batch := new(repoMocks.MockBatchRepository)
			if tt.setupMocks != nil {
				tt.setupMocks(batch)
			}
			events := &captureEvents{}
			svc := NewSyncService(nil, nil, batch, nil, events)

			err := svc.Import(ctx, tt.snap)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, events.events)
				return
			}
			require.NoError(t, err)
			if tt.wantEvent {
				require.Len(t, events.events, 1)
				assert.Equal(t, EventSnapshotLoaded, events.events[0].Type)
			}
			batch.AssertExpectations(t)
		})
	}
}

func TestSyncService_Archive(t *testing.T) {
	ctx := context.Background()

	t.Run("no storage configured", func(t *testing.T) {
		svc := NewSyncService(nil, nil, nil, nil, nil)
		_, err := svc.Archive(ctx)
		assert.ErrorIs(t, err, ErrNoStorage)
	})

	t.Run("snapshot stored and presigned", func(t *testing.T) {
		elements := new(repoMocks.MockElementRepository)
		registry := new(repoMocks.MockRegistryRepository)
		store := new(storeMocks.MockStorage)

		elements.On("List", ctx, repository.ElementFilter{}).
			Return([]model.Element{{ID: "box-1", Name: "Archive 12", Type: model.TypeBox}}, nil)
		registry.On("List", ctx).Return([]model.RegistryEntry{}, nil)

		store.On("Put", ctx, mock.MatchedBy(func(key string) bool {
			return strings.HasPrefix(key, "snapshots/arkiv-") && strings.HasSuffix(key, ".json")
		}), mock.Anything, mock.MatchedBy(func(opt storage.PutObjectOptions) bool {
			return opt.ContentType == "application/json" && opt.Size > 0
		})).Return(storage.ObjectInfo{Key: "snapshots/arkiv-x.json"}, nil)
		store.On("PresignGet", ctx, "snapshots/arkiv-x.json", 24*time.Hour).
			Return("https://minio.local/snapshots/arkiv-x.json", nil)

		svc := NewSyncService(elements, registry, nil, store, nil)

		obj, err := svc.Archive(ctx)
		require.NoError(t, err)
		assert.Equal(t, "snapshots/arkiv-x.json", obj.Key)
		assert.Contains(t, obj.URL, "minio.local")
		store.AssertExpectations(t)
	})

	t.Run("storage failure surfaces", func(t *testing.T) {
		elements := new(repoMocks.MockElementRepository)
		registry := new(repoMocks.MockRegistryRepository)
		store := new(storeMocks.MockStorage)

		elements.On("List", ctx, repository.ElementFilter{}).Return([]model.Element{}, nil)
		registry.On("List", ctx).Return([]model.RegistryEntry{}, nil)
		store.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).
			Return(storage.ObjectInfo{}, errors.New("bucket gone"))

		svc := NewSyncService(elements, registry, nil, store, nil)

		_, err := svc.Archive(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "store snapshot")
	})
}
