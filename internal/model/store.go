package model

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/fairpath/internal/schemas"
	embedded "github.com/jonathan/fairpath/schemas"
)

// ErrArtifactNotFound means no trained model is available. This is a valid state.
var ErrArtifactNotFound = errors.New("model artifact not found")

// Store supplies a model artifact
type Store interface {
	Load(ctx context.Context) (*Artifact, error)
}

// FileStore keeps an artifact as a JSON file
type FileStore struct {
	Path string
}

// NewFileStore returns a store for the artifact at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

// Load reads and validates the artifact. A missing file or empty path yields ErrArtifactNotFound.
func (s *FileStore) Load(_ context.Context) (*Artifact, error) {
	if s.Path == "" {
		return nil, ErrArtifactNotFound
	}

	data, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrArtifactNotFound, s.Path)
		}
		return nil, fmt.Errorf("failed to read model file %s: %w", s.Path, err)
	}

	if err := schemas.ValidateBytes(embedded.Model, data); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptArtifact, err)
	}

	var a Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptArtifact, err)
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return &a, nil
}

// Save writes the artifact, replacing any existing file atomically.
func (s *FileStore) Save(_ context.Context, a *Artifact) error {
	if err := a.Validate(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal model: %w", err)
	}

	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create model directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".model-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write model: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close model file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.Path); err != nil {
		return fmt.Errorf("failed to move model into place: %w", err)
	}
	return nil
}
