// Package catalog loads, validates and caches the occupation catalog.
package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jonathan/fairpath/internal/types"
	"github.com/jonathan/fairpath/internal/vector"
)

// ErrEmptyCatalog is returned when a catalog has no canonical skills
var ErrEmptyCatalog = errors.New("catalog has no skills")

// Catalog is an immutable snapshot of the canonical skill list and occupations.
// Occupations keep their source order, which ranking uses to break ties.
type Catalog struct {
	Version     string
	SkillNames  []string
	Occupations []types.Occupation

	index map[string]int
}

// DimensionError describes an occupation whose vectors do not fit the catalog
type DimensionError struct {
	CareerID string
	Field    string
	Got      int
	Want     int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("occupation %s: %s has %d dimensions, want %d", e.CareerID, e.Field, e.Got, e.Want)
}

// New validates the inputs and builds a Catalog.
func New(version string, skillNames []string, occupations []types.Occupation) (*Catalog, error) {
	c := &Catalog{
		Version:     version,
		SkillNames:  skillNames,
		Occupations: occupations,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	c.index = make(map[string]int, len(occupations))
	for i, o := range occupations {
		c.index[o.CareerID] = i
	}
	return c, nil
}

// Validate checks skill names and every occupation's dimensions and values.
func (c *Catalog) Validate() error {
	if len(c.SkillNames) == 0 {
		return ErrEmptyCatalog
	}

	seenSkills := make(map[string]bool, len(c.SkillNames))
	for i, name := range c.SkillNames {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			return fmt.Errorf("skill %d has an empty name", i)
		}
		if seenSkills[key] {
			return fmt.Errorf("duplicate skill name: %s", name)
		}
		seenSkills[key] = true
	}

	seenIDs := make(map[string]bool, len(c.Occupations))
	for _, o := range c.Occupations {
		if strings.TrimSpace(o.CareerID) == "" {
			return fmt.Errorf("occupation %q has an empty career_id", o.Name)
		}
		if seenIDs[o.CareerID] {
			return fmt.Errorf("duplicate career_id: %s", o.CareerID)
		}
		seenIDs[o.CareerID] = true

		if err := checkVector(o.CareerID, "skill_vector", o.SkillVector, len(c.SkillNames)); err != nil {
			return err
		}
		if err := checkVector(o.CareerID, "interest_vector", o.InterestVector, types.NumInterests); err != nil {
			return err
		}
		if err := checkVector(o.CareerID, "value_vector", o.ValueVector, types.NumValues); err != nil {
			return err
		}
	}
	return nil
}

func checkVector(careerID, field string, v []float64, want int) error {
	if len(v) != want {
		return &DimensionError{CareerID: careerID, Field: field, Got: len(v), Want: want}
	}
	if !vector.AllFinite(v) {
		return fmt.Errorf("occupation %s: %s contains non-finite values", careerID, field)
	}
	for _, x := range v {
		if x < 0 || x > 1 {
			return fmt.Errorf("occupation %s: %s value %v outside [0,1]", careerID, field, x)
		}
	}
	return nil
}

// Lookup returns the occupation with the given career id.
func (c *Catalog) Lookup(careerID string) (types.Occupation, bool) {
	i, ok := c.index[careerID]
	if !ok {
		return types.Occupation{}, false
	}
	return c.Occupations[i], true
}

// Len returns the number of occupations.
func (c *Catalog) Len() int {
	return len(c.Occupations)
}

// Summary is a short description of a catalog used by the CLI and health checks
type Summary struct {
	Version        string `json:"version"`
	NumSkills      int    `json:"num_skills"`
	NumOccupations int    `json:"num_occupations"`
}

// Summary returns counts for the catalog.
func (c *Catalog) Summary() Summary {
	return Summary{
		Version:        c.Version,
		NumSkills:      len(c.SkillNames),
		NumOccupations: len(c.Occupations),
	}
}
