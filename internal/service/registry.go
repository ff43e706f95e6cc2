package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"arkiv/internal/model"
	"arkiv/internal/repository"
)

// RegistryInput carries the mutable fields of an intake entry.
type RegistryInput struct {
	Name      string `json:"name"`
	Type      string `json:"type"`
	DocNumber string `json:"doc_number"`
	SignDate  string `json:"sign_date"`
	Status    string `json:"status"`
	Category  string `json:"category"`
}

// RegistryService defines the use cases for the intake ledger.
type RegistryService interface {
	// Add registers a new entry awaiting placement.
	Add(ctx context.Context, in RegistryInput) (*model.RegistryEntry, error)

	// Get returns a single entry by its ID.
	Get(ctx context.Context, id string) (*model.RegistryEntry, error)

	// List returns every entry.
	List(ctx context.Context) ([]model.RegistryEntry, error)

	// Update rewrites an entry.
	Update(ctx context.Context, id string, in RegistryInput) (*model.RegistryEntry, error)

	// Remove deletes an entry without placing it.
	Remove(ctx context.Context, id string) error

	// Place moves the given entries into the archive as documents, rooted
	// under parentID when set, and removes them from the registry. The
	// whole batch commits atomically.
	Place(ctx context.Context, ids []string, parentID string) ([]model.Element, error)
}

type registryService struct {
	repo     repository.RegistryRepository
	elements repository.ElementRepository
	batch    repository.BatchRepository
	events   EventPublisher
}

// NewRegistryService constructs a RegistryService. events may be nil.
func NewRegistryService(repo repository.RegistryRepository, elements repository.ElementRepository, batch repository.BatchRepository, events EventPublisher) RegistryService {
	return &registryService{repo: repo, elements: elements, batch: batch, events: events}
}

func (s *registryService) Add(ctx context.Context, in RegistryInput) (*model.RegistryEntry, error) {
	if err := validateEntry(&in); err != nil {
		return nil, err
	}

	entry := &model.RegistryEntry{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Type:      in.Type,
		DocNumber: in.DocNumber,
		SignDate:  in.SignDate,
		Status:    in.Status,
		Category:  in.Category,
	}
	stored, err := s.repo.Create(ctx, entry)
	if err != nil {
		return nil, fmt.Errorf("create registry entry: %w", err)
	}

	publish(s.events, EventRegistryAdded, stored.ID, stored.Name)
	return stored, nil
}

func (s *registryService) Get(ctx context.Context, id string) (*model.RegistryEntry, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	entry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}
	return entry, nil
}

func (s *registryService) List(ctx context.Context) ([]model.RegistryEntry, error) {
	return s.repo.List(ctx)
}

func (s *registryService) Update(ctx context.Context, id string, in RegistryInput) (*model.RegistryEntry, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validateEntry(&in); err != nil {
		return nil, err
	}

	entry := &model.RegistryEntry{
		ID:        existing.ID,
		Name:      in.Name,
		Type:      in.Type,
		DocNumber: in.DocNumber,
		SignDate:  in.SignDate,
		Status:    in.Status,
		Category:  in.Category,
	}
	stored, err := s.repo.Update(ctx, entry)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEntryNotFound
		}
		return nil, fmt.Errorf("update registry entry: %w", err)
	}

	publish(s.events, EventRegistryUpdated, stored.ID, stored.Name)
	return stored, nil
}

func (s *registryService) Remove(ctx context.Context, id string) error {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, existing.ID); err != nil {
		return fmt.Errorf("delete registry entry: %w", err)
	}

	publish(s.events, EventRegistryRemoved, existing.ID, existing.Name)
	return nil
}

func (s *registryService) Place(ctx context.Context, ids []string, parentID string) ([]model.Element, error) {
	if len(ids) == 0 {
		return nil, ErrNoEntries
	}

	if parentID != "" {
		parent, err := s.elements.FindByID(ctx, parentID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, ErrParentNotFound
			}
			return nil, err
		}
		if !parent.IsContainer() {
			return nil, fmt.Errorf("%w: document cannot go into %s", ErrInvalidParent, parent.Type)
		}
	}

	placed := make([]model.Element, 0, len(ids))
	for _, id := range ids {
		entry, err := s.repo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, fmt.Errorf("%w: %s", ErrEntryNotFound, id)
			}
			return nil, err
		}
		placed = append(placed, model.Element{
			ID:        uuid.New().String(),
			Name:      entry.Name,
			Type:      model.TypeDocument,
			ParentID:  parentID,
			DocNumber: entry.DocNumber,
			SignDate:  entry.SignDate,
			Category:  entry.Category,
		})
	}

	if err := s.batch.PlaceEntries(ctx, placed, ids); err != nil {
		return nil, fmt.Errorf("place entries: %w", err)
	}

	for _, el := range placed {
		publish(s.events, EventRegistryPlaced, el.ID, el.Name)
	}
	return placed, nil
}

func validateEntry(in *RegistryInput) error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return ErrNameRequired
	}
	if in.Type == "" {
		in.Type = model.TypeDocument
	}
	if !model.ValidType(in.Type) {
		return fmt.Errorf("%w: %q", ErrInvalidType, in.Type)
	}
	if in.Status == "" {
		in.Status = model.StatusAwaitingPlacement
	}
	for _, code := range model.SplitCategories(in.Category) {
		if _, ok := model.CategoryDescription(code); !ok {
			return fmt.Errorf("%w: %s", ErrUnknownCategory, code)
		}
	}
	return nil
}
