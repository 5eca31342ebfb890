package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jonathan/fairpath/internal/types"
)

// -----------------------------------------------------------------------------
// Catalog Methods
// -----------------------------------------------------------------------------

// GetCatalogVersion returns the stored dataset version, or "" when none is recorded
func (db *DB) GetCatalogVersion(ctx context.Context) (string, error) {
	var version string
	err := db.pool.QueryRow(ctx, `SELECT version FROM catalog_meta WHERE id = 1`).Scan(&version)
	if err != nil {
		if err == pgx.ErrNoRows {
			return "", nil
		}
		return "", fmt.Errorf("failed to get catalog version: %w", err)
	}
	return version, nil
}

// ListSkillNames returns the canonical skill list in vector order
func (db *DB) ListSkillNames(ctx context.Context) ([]string, error) {
	rows, err := db.pool.Query(ctx, `SELECT name FROM catalog_skills ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to list skills: %w", err)
	}
	names, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to scan skills: %w", err)
	}
	return names, nil
}

// ListOccupations returns every occupation in catalog order
func (db *DB) ListOccupations(ctx context.Context) ([]types.Occupation, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT career_id, name, soc_code, skill_vector, interest_vector, value_vector,
		        education_level, median_wage, growth_rate
		 FROM catalog_occupations ORDER BY position, career_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list occupations: %w", err)
	}
	defer rows.Close()

	var occupations []types.Occupation
	for rows.Next() {
		var o types.Occupation
		if err := rows.Scan(
			&o.CareerID, &o.Name, &o.SOCCode,
			&o.SkillVector, &o.InterestVector, &o.ValueVector,
			&o.EducationLevel, &o.Outlook.MedianWage, &o.Outlook.GrowthRate,
		); err != nil {
			return nil, fmt.Errorf("failed to scan occupation: %w", err)
		}
		occupations = append(occupations, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating occupations: %w", err)
	}
	return occupations, nil
}

// ReplaceCatalog atomically replaces the stored skills and occupations
func (db *DB) ReplaceCatalog(ctx context.Context, version string, skillNames []string, occupations []types.Occupation) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM catalog_occupations`); err != nil {
		return fmt.Errorf("failed to clear occupations: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM catalog_skills`); err != nil {
		return fmt.Errorf("failed to clear skills: %w", err)
	}

	batch := &pgx.Batch{}
	for i, name := range skillNames {
		batch.Queue(`INSERT INTO catalog_skills (position, name) VALUES ($1, $2)`, i, name)
	}
	for i, o := range occupations {
		batch.Queue(
			`INSERT INTO catalog_occupations
			 (position, career_id, name, soc_code, skill_vector, interest_vector, value_vector,
			  education_level, median_wage, growth_rate)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			i, o.CareerID, o.Name, o.SOCCode, o.SkillVector, o.InterestVector, o.ValueVector,
			o.EducationLevel, o.Outlook.MedianWage, o.Outlook.GrowthRate,
		)
	}
	batch.Queue(
		`INSERT INTO catalog_meta (id, version, updated_at) VALUES (1, $1, NOW())
		 ON CONFLICT (id) DO UPDATE SET version = $1, updated_at = NOW()`,
		version,
	)

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to write catalog: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit catalog: %w", err)
	}
	return nil
}
