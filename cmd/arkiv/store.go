package main

import (
	"database/sql"

	"arkiv/internal/database"
	"arkiv/internal/database/migration"
	"arkiv/internal/repository/sqlstore"
)

// store bundles the opened database with its repositories for the commands
// that work on the inventory directly, without going through the server.
type store struct {
	db       *sql.DB
	elements *sqlstore.ElementSQL
	registry *sqlstore.RegistrySQL
	batch    *sqlstore.BatchSQL
}

func openStore() (*store, error) {
	db, err := database.New(cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := migration.EnsureMigrated(db, cfg.Database.Driver, log); err != nil {
		db.Close()
		return nil, err
	}
	return &store{
		db:       db,
		elements: sqlstore.NewElementSQL(db),
		registry: sqlstore.NewRegistrySQL(db),
		batch:    sqlstore.NewBatchSQL(db),
	}, nil
}

func (s *store) Close() error { return s.db.Close() }
