package catalog

import (
	"context"
	"fmt"

	"github.com/jonathan/fairpath/internal/types"
)

// RowSource is the read side of a relational catalog store such as db.DB
type RowSource interface {
	GetCatalogVersion(ctx context.Context) (string, error)
	ListSkillNames(ctx context.Context) ([]string, error)
	ListOccupations(ctx context.Context) ([]types.Occupation, error)
}

// PostgresProvider loads the catalog from PostgreSQL tables
type PostgresProvider struct {
	rows RowSource
}

// NewPostgresProvider wraps a row source, typically *db.DB.
func NewPostgresProvider(rows RowSource) *PostgresProvider {
	return &PostgresProvider{rows: rows}
}

// Load reads skills and occupations and validates them as one snapshot.
func (p *PostgresProvider) Load(ctx context.Context) (*Catalog, error) {
	version, err := p.rows.GetCatalogVersion(ctx)
	if err != nil {
		return nil, err
	}
	skills, err := p.rows.ListSkillNames(ctx)
	if err != nil {
		return nil, err
	}
	occupations, err := p.rows.ListOccupations(ctx)
	if err != nil {
		return nil, err
	}

	c, err := New(version, skills, occupations)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog in database: %w", err)
	}
	return c, nil
}
