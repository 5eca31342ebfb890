// Package schemas embeds the JSON Schema documents for catalog, model and request files.
package schemas

import "embed"

const (
	// Catalog validates occupation catalog files
	Catalog = "catalog.schema.json"
	// Model validates trained model artifacts
	Model = "model.schema.json"
	// RecommendRequest validates user profile request files
	RecommendRequest = "recommend_request.schema.json"
)

//go:embed *.schema.json
var files embed.FS

// Read returns the raw content of an embedded schema.
func Read(name string) ([]byte, error) {
	return files.ReadFile(name)
}
