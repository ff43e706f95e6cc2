package sqlstore

import (
	"context"
	"database/sql"

	"arkiv/internal/model"
	"arkiv/internal/repository"
)

const registryColumns = "id, name, type, doc_number, sign_date, status, category"

// RegistrySQL is the SQL implementation of repository.RegistryRepository.
type RegistrySQL struct {
	db *sql.DB
}

// NewRegistrySQL creates a new RegistrySQL repository.
func NewRegistrySQL(db *sql.DB) *RegistrySQL {
	return &RegistrySQL{db: db}
}

var _ repository.RegistryRepository = (*RegistrySQL)(nil)

func scanEntry(row rowScanner) (*model.RegistryEntry, error) {
	var e model.RegistryEntry
	if err := row.Scan(
		&e.ID,
		&e.Name,
		&e.Type,
		&e.DocNumber,
		&e.SignDate,
		&e.Status,
		&e.Category,
	); err != nil {
		return nil, err
	}
	return &e, nil
}

// Create inserts a new registry entry and returns the stored record.
func (r *RegistrySQL) Create(ctx context.Context, entry *model.RegistryEntry) (*model.RegistryEntry, error) {
	const q = `
		INSERT INTO registry (id, name, type, doc_number, sign_date, status, category)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + registryColumns
	row := r.db.QueryRowContext(ctx, q,
		entry.ID,
		entry.Name,
		entry.Type,
		entry.DocNumber,
		entry.SignDate,
		entry.Status,
		entry.Category,
	)
	return scanEntry(row)
}

// FindByID fetches a single entry by its ID.
func (r *RegistrySQL) FindByID(ctx context.Context, id string) (*model.RegistryEntry, error) {
	const q = `SELECT ` + registryColumns + ` FROM registry WHERE id = $1`
	return scanEntry(r.db.QueryRowContext(ctx, q, id))
}

// List returns every registry entry ordered by name.
func (r *RegistrySQL) List(ctx context.Context) ([]model.RegistryEntry, error) {
	const q = `SELECT ` + registryColumns + ` FROM registry ORDER BY name, id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.RegistryEntry, 0)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Update rewrites every mutable column and returns the stored record.
// A missing row surfaces as sql.ErrNoRows.
func (r *RegistrySQL) Update(ctx context.Context, entry *model.RegistryEntry) (*model.RegistryEntry, error) {
	const q = `
		UPDATE registry
		SET name = $1, type = $2, doc_number = $3, sign_date = $4, status = $5, category = $6
		WHERE id = $7
		RETURNING ` + registryColumns
	row := r.db.QueryRowContext(ctx, q,
		entry.Name,
		entry.Type,
		entry.DocNumber,
		entry.SignDate,
		entry.Status,
		entry.Category,
		entry.ID,
	)
	return scanEntry(row)
}

// Delete removes an entry by ID. It does not return an error if the row does
// not exist.
func (r *RegistrySQL) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM registry WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	_, _ = res.RowsAffected()
	return nil
}
