package repository

import (
	"context"

	"arkiv/internal/model"
)

// BatchRepository groups the multi-table writes that must commit atomically:
// snapshot import and registry placement both touch elements and registry in
// one transaction.
type BatchRepository interface {
	// ReplaceAll wipes both tables and inserts the given rows.
	ReplaceAll(ctx context.Context, elements []model.Element, entries []model.RegistryEntry) error

	// PlaceEntries inserts the given elements and removes the registry rows
	// they were built from.
	PlaceEntries(ctx context.Context, elements []model.Element, entryIDs []string) error
}
