package repository

import (
	"context"

	"arkiv/internal/model"
)

// RegistryRepository defines data access for the intake registry.
type RegistryRepository interface {
	// Create inserts a new registry entry. The caller provides the ID.
	Create(ctx context.Context, entry *model.RegistryEntry) (*model.RegistryEntry, error)

	// FindByID returns an entry by its ID, sql.ErrNoRows when missing.
	FindByID(ctx context.Context, id string) (*model.RegistryEntry, error)

	// List returns every registry entry ordered by name.
	List(ctx context.Context) ([]model.RegistryEntry, error)

	// Update rewrites every mutable column of the row with the entry's ID.
	Update(ctx context.Context, entry *model.RegistryEntry) (*model.RegistryEntry, error)

	// Delete removes an entry by ID. Returns nil if the row was deleted or
	// did not exist.
	Delete(ctx context.Context, id string) error
}
