package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"arkiv/internal/model"
	"arkiv/internal/repository"
)

// BatchSQL is the SQL implementation of repository.BatchRepository. Each
// method runs in a single transaction; the deferred parent_id constraint lets
// snapshot rows insert in any order.
type BatchSQL struct {
	db *sql.DB
}

// NewBatchSQL creates a new BatchSQL repository.
func NewBatchSQL(db *sql.DB) *BatchSQL {
	return &BatchSQL{db: db}
}

var _ repository.BatchRepository = (*BatchSQL)(nil)

const insertElementSQL = `
	INSERT INTO elements (id, name, type, parent_id, shelf, rack, doc_number, sign_date, category)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

func insertElement(ctx context.Context, tx *sql.Tx, el model.Element) error {
	_, err := tx.ExecContext(ctx, insertElementSQL,
		el.ID,
		el.Name,
		el.Type,
		nullable(el.ParentID),
		el.Shelf,
		el.Rack,
		el.DocNumber,
		el.SignDate,
		el.Category,
	)
	return err
}

// ReplaceAll wipes both tables and inserts the given rows atomically.
func (r *BatchSQL) ReplaceAll(ctx context.Context, elements []model.Element, entries []model.RegistryEntry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM elements`); err != nil {
		return fmt.Errorf("clear elements: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM registry`); err != nil {
		return fmt.Errorf("clear registry: %w", err)
	}

	for _, el := range elements {
		if err := insertElement(ctx, tx, el); err != nil {
			return fmt.Errorf("insert element %s: %w", el.ID, err)
		}
	}
	for _, entry := range entries {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO registry (id, name, type, doc_number, sign_date, status, category)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			entry.ID,
			entry.Name,
			entry.Type,
			entry.DocNumber,
			entry.SignDate,
			entry.Status,
			entry.Category,
		); err != nil {
			return fmt.Errorf("insert registry entry %s: %w", entry.ID, err)
		}
	}

	return tx.Commit()
}

// PlaceEntries inserts the given elements and removes the registry rows they
// were built from, all in one transaction.
func (r *BatchSQL) PlaceEntries(ctx context.Context, elements []model.Element, entryIDs []string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin place: %w", err)
	}
	defer tx.Rollback()

	for _, el := range elements {
		if err := insertElement(ctx, tx, el); err != nil {
			return fmt.Errorf("insert element %s: %w", el.ID, err)
		}
	}
	for _, id := range entryIDs {
		if _, err := tx.ExecContext(ctx, `DELETE FROM registry WHERE id = $1`, id); err != nil {
			return fmt.Errorf("delete registry entry %s: %w", id, err)
		}
	}

	return tx.Commit()
}
