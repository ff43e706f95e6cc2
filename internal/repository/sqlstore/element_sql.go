// Package sqlstore implements the repository interfaces on database/sql.
// Queries stick to the common subset of SQLite and PostgreSQL; placeholders
// use the $N form, which both engines accept.
package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"arkiv/internal/model"
	"arkiv/internal/repository"
)

const elementColumns = "id, name, type, parent_id, shelf, rack, doc_number, sign_date, category"

// ElementSQL is the SQL implementation of repository.ElementRepository.
// It contains no business logic.
type ElementSQL struct {
	db *sql.DB
}

// NewElementSQL creates a new ElementSQL repository.
func NewElementSQL(db *sql.DB) *ElementSQL {
	return &ElementSQL{db: db}
}

var _ repository.ElementRepository = (*ElementSQL)(nil)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanElement(row rowScanner) (*model.Element, error) {
	var e model.Element
	var parent sql.NullString
	if err := row.Scan(
		&e.ID,
		&e.Name,
		&e.Type,
		&parent,
		&e.Shelf,
		&e.Rack,
		&e.DocNumber,
		&e.SignDate,
		&e.Category,
	); err != nil {
		return nil, err
	}
	e.ParentID = parent.String
	return &e, nil
}

// nullable maps the model's empty-string parent to SQL NULL so root elements
// don't reference a nonexistent row.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// Create inserts a new element row and returns the stored record.
func (r *ElementSQL) Create(ctx context.Context, el *model.Element) (*model.Element, error) {
	const q = `
		INSERT INTO elements (id, name, type, parent_id, shelf, rack, doc_number, sign_date, category)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + elementColumns
	row := r.db.QueryRowContext(ctx, q,
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
	return scanElement(row)
}

// FindByID fetches a single element by its ID.
func (r *ElementSQL) FindByID(ctx context.Context, id string) (*model.Element, error) {
	const q = `SELECT ` + elementColumns + ` FROM elements WHERE id = $1`
	return scanElement(r.db.QueryRowContext(ctx, q, id))
}

// List returns the elements matching the filter, ordered by name.
func (r *ElementSQL) List(ctx context.Context, f repository.ElementFilter) ([]model.Element, error) {
	q := `SELECT ` + elementColumns + ` FROM elements`

	var conds []string
	var args []any
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if f.Name != "" {
		add(`LOWER(name) LIKE '%%' || LOWER($%d) || '%%'`, f.Name)
	}
	if f.Type != "" {
		add(`type = $%d`, f.Type)
	}
	if f.Shelf != "" {
		add(`shelf = $%d`, f.Shelf)
	}
	if f.Rack != "" {
		add(`rack = $%d`, f.Rack)
	}
	if f.DocNumber != "" {
		add(`LOWER(doc_number) LIKE '%%' || LOWER($%d) || '%%'`, f.DocNumber)
	}
	if f.Category != "" {
		add(`category LIKE '%%' || $%d || '%%'`, f.Category)
	}

	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY name, id"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectElements(rows)
}

// ListChildren returns the direct children of the given element.
func (r *ElementSQL) ListChildren(ctx context.Context, parentID string) ([]model.Element, error) {
	const q = `SELECT ` + elementColumns + ` FROM elements WHERE parent_id = $1 ORDER BY name, id`
	rows, err := r.db.QueryContext(ctx, q, parentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectElements(rows)
}

func collectElements(rows *sql.Rows) ([]model.Element, error) {
	items := make([]model.Element, 0)
	for rows.Next() {
		e, err := scanElement(rows)
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
func (r *ElementSQL) Update(ctx context.Context, el *model.Element) (*model.Element, error) {
	const q = `
		UPDATE elements
		SET name = $1, type = $2, parent_id = $3, shelf = $4, rack = $5, doc_number = $6, sign_date = $7, category = $8
		WHERE id = $9
		RETURNING ` + elementColumns
	row := r.db.QueryRowContext(ctx, q,
		el.Name,
		el.Type,
		nullable(el.ParentID),
		el.Shelf,
		el.Rack,
		el.DocNumber,
		el.SignDate,
		el.Category,
		el.ID,
	)
	return scanElement(row)
}

// Delete removes an element by ID. The ON DELETE SET NULL constraint orphans
// its children. It does not return an error if the row does not exist.
func (r *ElementSQL) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM elements WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	_, _ = res.RowsAffected()
	return nil
}
