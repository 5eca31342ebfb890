package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/jonathan/fairpath/internal/types"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS catalog_meta (
	id      INTEGER PRIMARY KEY CHECK (id = 1),
	version TEXT NOT NULL DEFAULT ''
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
	skill_vector    TEXT NOT NULL,
	interest_vector TEXT NOT NULL,
	value_vector    TEXT NOT NULL,
	education_level TEXT NOT NULL DEFAULT '',
	median_wage     REAL NOT NULL DEFAULT 0,
	growth_rate     REAL NOT NULL DEFAULT 0
);
`

// SQLiteStore keeps a catalog in a local SQLite file with JSON-encoded vectors
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the database at dsn and ensures the catalog tables exist.
// Pass ":memory:" for an in-memory database.
func OpenSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	// A single connection keeps ":memory:" databases shared across calls.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating catalog tables: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Load reads the catalog snapshot.
func (s *SQLiteStore) Load(ctx context.Context) (*Catalog, error) {
	var version string
	err := s.db.QueryRowContext(ctx, `SELECT version FROM catalog_meta WHERE id = 1`).Scan(&version)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("reading catalog version: %w", err)
	}

	skills, err := s.skillNames(ctx)
	if err != nil {
		return nil, err
	}
	occupations, err := s.occupations(ctx)
	if err != nil {
		return nil, err
	}

	c, err := New(version, skills, occupations)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog in sqlite: %w", err)
	}
	return c, nil
}

func (s *SQLiteStore) skillNames(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM catalog_skills ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("querying skills: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning skill: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (s *SQLiteStore) occupations(ctx context.Context) ([]types.Occupation, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT career_id, name, soc_code, skill_vector, interest_vector, value_vector,
		        education_level, median_wage, growth_rate
		 FROM catalog_occupations ORDER BY position, career_id`)
	if err != nil {
		return nil, fmt.Errorf("querying occupations: %w", err)
	}
	defer rows.Close()

	var out []types.Occupation
	for rows.Next() {
		var (
			o                        types.Occupation
			skillsJSON, interestJSON string
			valueJSON                string
		)
		if err := rows.Scan(&o.CareerID, &o.Name, &o.SOCCode, &skillsJSON, &interestJSON, &valueJSON,
			&o.EducationLevel, &o.Outlook.MedianWage, &o.Outlook.GrowthRate); err != nil {
			return nil, fmt.Errorf("scanning occupation: %w", err)
		}
		if err := decodeVectors(&o, skillsJSON, interestJSON, valueJSON); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func decodeVectors(o *types.Occupation, skills, interests, values string) error {
	if err := json.Unmarshal([]byte(skills), &o.SkillVector); err != nil {
		return fmt.Errorf("occupation %s: decoding skill_vector: %w", o.CareerID, err)
	}
	if err := json.Unmarshal([]byte(interests), &o.InterestVector); err != nil {
		return fmt.Errorf("occupation %s: decoding interest_vector: %w", o.CareerID, err)
	}
	if err := json.Unmarshal([]byte(values), &o.ValueVector); err != nil {
		return fmt.Errorf("occupation %s: decoding value_vector: %w", o.CareerID, err)
	}
	return nil
}

// Save replaces the stored catalog with c in a single transaction.
func (s *SQLiteStore) Save(ctx context.Context, c *Catalog) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, stmt := range []string{
		`DELETE FROM catalog_occupations`,
		`DELETE FROM catalog_skills`,
	} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("clearing catalog: %w", err)
		}
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO catalog_meta (id, version) VALUES (1, ?)
		 ON CONFLICT (id) DO UPDATE SET version = excluded.version`, c.Version); err != nil {
		return fmt.Errorf("writing catalog version: %w", err)
	}

	for i, name := range c.SkillNames {
		if _, err := tx.ExecContext(ctx, `INSERT INTO catalog_skills (position, name) VALUES (?, ?)`, i, name); err != nil {
			return fmt.Errorf("inserting skill %s: %w", name, err)
		}
	}

	for i, o := range c.Occupations {
		skills, err := json.Marshal(o.SkillVector)
		if err != nil {
			return fmt.Errorf("encoding skill vector of %s: %w", o.CareerID, err)
		}
		interests, err := json.Marshal(o.InterestVector)
		if err != nil {
			return fmt.Errorf("encoding interest vector of %s: %w", o.CareerID, err)
		}
		values, err := json.Marshal(o.ValueVector)
		if err != nil {
			return fmt.Errorf("encoding value vector of %s: %w", o.CareerID, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO catalog_occupations
			 (position, career_id, name, soc_code, skill_vector, interest_vector, value_vector,
			  education_level, median_wage, growth_rate)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			i, o.CareerID, o.Name, o.SOCCode, string(skills), string(interests), string(values),
			o.EducationLevel, o.Outlook.MedianWage, o.Outlook.GrowthRate,
		); err != nil {
			return fmt.Errorf("inserting occupation %s: %w", o.CareerID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing catalog: %w", err)
	}
	return nil
}
