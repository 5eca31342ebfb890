package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/fairpath/internal/schemas"
	"github.com/jonathan/fairpath/internal/types"
	embedded "github.com/jonathan/fairpath/schemas"
)

// Provider loads a complete catalog snapshot from some backing store
type Provider interface {
	Load(ctx context.Context) (*Catalog, error)
}

// Document is the JSON form of a catalog file
type Document struct {
	Version     string             `json:"version,omitempty"`
	SkillNames  []string           `json:"skill_names"`
	Occupations []types.Occupation `json:"occupations"`
}

// FileProvider reads a catalog from a JSON file validated against the catalog schema
type FileProvider struct {
	Path string
}

// NewFileProvider returns a provider for the JSON catalog at path.
func NewFileProvider(path string) *FileProvider {
	return &FileProvider{Path: path}
}

// Load reads, validates and decodes the catalog file.
func (p *FileProvider) Load(_ context.Context) (*Catalog, error) {
	data, err := os.ReadFile(p.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", p.Path, err)
	}
	return Decode(data)
}

// Decode validates raw JSON against the catalog schema and builds a Catalog.
func Decode(data []byte) (*Catalog, error) {
	if err := schemas.ValidateBytes(embedded.Catalog, data); err != nil {
		return nil, fmt.Errorf("catalog failed schema validation: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse catalog JSON: %w", err)
	}
	return New(doc.Version, doc.SkillNames, doc.Occupations)
}

// Encode returns the JSON document form of c.
func Encode(c *Catalog) ([]byte, error) {
	doc := Document{Version: c.Version, SkillNames: c.SkillNames, Occupations: c.Occupations}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal catalog: %w", err)
	}
	return data, nil
}
