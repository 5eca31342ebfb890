// Package db provides PostgreSQL access for the occupation catalog.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schemaDDL creates the catalog tables when they do not exist
const schemaDDL = `
CREATE TABLE IF NOT EXISTS catalog_meta (
	id         INTEGER PRIMARY KEY DEFAULT 1 CHECK (id = 1),
	version    TEXT NOT NULL DEFAULT '',
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS catalog_skills (
	position INTEGER PRIMARY KEY,
	name     TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS catalog_occupations (
	position        INTEGER NOT NULL,
	career_id       TEXT PRIMARY KEY,
	name            TEXT NOT NULL,
	soc_code        TEXT NOT NULL DEFAULT '',
	skill_vector    FLOAT8[] NOT NULL,
	interest_vector FLOAT8[] NOT NULL,
	value_vector    FLOAT8[] NOT NULL,
	education_level TEXT NOT NULL DEFAULT '',
	median_wage     FLOAT8 NOT NULL DEFAULT 0,
	growth_rate     FLOAT8 NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_catalog_occupations_position ON catalog_occupations (position);
`

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// EnsureSchema creates the catalog tables if they are missing
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, schemaDDL); err != nil {
		return fmt.Errorf("failed to create catalog schema: %w", err)
	}
	return nil
}
