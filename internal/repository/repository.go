// Package repository contains data access layer abstractions.
// Implementations live in subpackages; sqlstore works against both supported
// engines (SQLite and PostgreSQL) with a single set of queries.
package repository
