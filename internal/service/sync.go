package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"arkiv/internal/model"
	"arkiv/internal/repository"
	"arkiv/internal/storage"
)

// StoredObject points at an artifact saved to object storage.
type StoredObject struct {
	Key string `json:"key"`
	URL string `json:"url,omitempty"`
}

// SyncService moves whole-inventory snapshots in and out of the system.
type SyncService interface {
	// Export collects every element and registry entry into a snapshot.
	Export(ctx context.Context) (*model.Snapshot, error)

	// Import replaces the entire inventory with the snapshot contents in one
	// transaction. Rows are normalized the way exports produce them: missing
	// IDs are generated, duplicate IDs keep the last occurrence, and parent
	// references that point outside the snapshot become roots.
	Import(ctx context.Context, snap *model.Snapshot) error

	// Archive exports a snapshot and stores it as a JSON object, returning
	// the storage key and a presigned download URL.
	Archive(ctx context.Context) (*StoredObject, error)
}

type syncService struct {
	elements repository.ElementRepository
	registry repository.RegistryRepository
	batch    repository.BatchRepository
	store    storage.Storage
	events   EventPublisher
}

// NewSyncService wires a SyncService. store may be nil when no storage
// backend is configured; Archive then fails with ErrNoStorage. events may be
// nil.
func NewSyncService(elements repository.ElementRepository, registry repository.RegistryRepository, batch repository.BatchRepository, store storage.Storage, events EventPublisher) SyncService {
	return &syncService{elements: elements, registry: registry, batch: batch, store: store, events: events}
}

func (s *syncService) Export(ctx context.Context) (*model.Snapshot, error) {
	elements, err := s.elements.List(ctx, repository.ElementFilter{})
	if err != nil {
		return nil, fmt.Errorf("list elements: %w", err)
	}
	entries, err := s.registry.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list registry: %w", err)
	}
	if elements == nil {
		elements = []model.Element{}
	}
	if entries == nil {
		entries = []model.RegistryEntry{}
	}
	return &model.Snapshot{
		Version:    model.SnapshotVersion,
		ExportedAt: time.Now().UTC(),
		Elements:   elements,
		Registry:   entries,
	}, nil
}

func (s *syncService) Import(ctx context.Context, snap *model.Snapshot) error {
	if snap == nil {
		return ErrBadSnapshot
	}
	if snap.Version != model.SnapshotVersion {
		return fmt.Errorf("%w: unsupported version %q", ErrBadSnapshot, snap.Version)
	}
	if snap.Elements == nil && snap.Registry == nil {
		return fmt.Errorf("%w: no data", ErrBadSnapshot)
	}

	elements, err := normalizeElements(snap.Elements)
	if err != nil {
		return err
	}
	entries, err := normalizeEntries(snap.Registry)
	if err != nil {
		return err
	}

	if err := s.batch.ReplaceAll(ctx, elements, entries); err != nil {
		return fmt.Errorf("replace inventory: %w", err)
	}
	publish(s.events, EventSnapshotLoaded, "", "")
	return nil
}

func (s *syncService) Archive(ctx context.Context) (*StoredObject, error) {
	if s.store == nil {
		return nil, ErrNoStorage
	}

	snap, err := s.Export(ctx)
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}

	key := fmt.Sprintf("snapshots/arkiv-%s.json", snap.ExportedAt.Format("20060102-150405"))
	info, err := s.store.Put(ctx, key, bytes.NewReader(data), storage.PutObjectOptions{
		Size:        int64(len(data)),
		ContentType: "application/json",
	})
	if err != nil {
		return nil, fmt.Errorf("store snapshot: %w", err)
	}
	url, err := s.store.PresignGet(ctx, info.Key, 24*time.Hour)
	if err != nil {
		return nil, fmt.Errorf("presign snapshot: %w", err)
	}
	return &StoredObject{Key: info.Key, URL: url}, nil
}

// normalizeElements prepares snapshot rows for insertion. Duplicate IDs keep
// the last occurrence at the first occurrence's position, matching how
// repeated keys behave in exported files.
func normalizeElements(in []model.Element) ([]model.Element, error) {
	out := make([]model.Element, 0, len(in))
	index := make(map[string]int, len(in))
	for _, el := range in {
		if el.ID == "" {
			el.ID = uuid.New().String()
		}
		if el.Type == "" {
			el.Type = model.TypeBox
		}
		if !model.ValidType(el.Type) {
			return nil, fmt.Errorf("%w: element %s has unknown type %q", ErrBadSnapshot, el.ID, el.Type)
		}
		if i, ok := index[el.ID]; ok {
			out[i] = el
			continue
		}
		index[el.ID] = len(out)
		out = append(out, el)
	}
	// Parent references that point outside the snapshot become roots.
	for i := range out {
		if out[i].ParentID != "" {
			if _, ok := index[out[i].ParentID]; !ok {
				out[i].ParentID = ""
			}
		}
	}
	return out, nil
}

func normalizeEntries(in []model.RegistryEntry) ([]model.RegistryEntry, error) {
	out := make([]model.RegistryEntry, 0, len(in))
	index := make(map[string]int, len(in))
	for _, entry := range in {
		if entry.ID == "" {
			entry.ID = uuid.New().String()
		}
		if entry.Type == "" {
			entry.Type = model.TypeDocument
		}
		if !model.ValidType(entry.Type) {
			return nil, fmt.Errorf("%w: registry entry %s has unknown type %q", ErrBadSnapshot, entry.ID, entry.Type)
		}
		if entry.Status == "" {
			entry.Status = model.StatusAwaitingPlacement
		}
		if i, ok := index[entry.ID]; ok {
			out[i] = entry
			continue
		}
		index[entry.ID] = len(out)
		out = append(out, entry)
	}
	return out, nil
}
