package repository

import (
	"context"

	"arkiv/internal/model"
)

// ElementFilter narrows List results. Name and DocNumber match as
// case-insensitive substrings, Category matches a code anywhere in the stored
// comma list, the rest match exactly. Zero values mean "any".
type ElementFilter struct {
	Name      string
	Type      string
	Shelf     string
	Rack      string
	DocNumber string
	Category  string
}

// ElementRepository defines data access for archive elements using SQL
// queries only. No business logic here, strictly persistence operations.
type ElementRepository interface {
	// Create inserts a new element row. The caller provides the ID.
	// Returns the stored element.
	Create(ctx context.Context, el *model.Element) (*model.Element, error)

	// FindByID returns an element by its ID. Missing rows surface as
	// sql.ErrNoRows for the service layer to translate.
	FindByID(ctx context.Context, id string) (*model.Element, error)

	// List returns the elements matching the filter, ordered by name.
	List(ctx context.Context, f ElementFilter) ([]model.Element, error)

	// ListChildren returns the direct children of the given element.
	ListChildren(ctx context.Context, parentID string) ([]model.Element, error)

	// Update rewrites every mutable column of the row with the element's ID.
	Update(ctx context.Context, el *model.Element) (*model.Element, error)

	// Delete removes an element by ID. The schema orphans its children to
	// the root. Returns nil if the row was deleted or did not exist.
	Delete(ctx context.Context, id string) error
}
