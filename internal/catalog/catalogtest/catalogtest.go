// Package catalogtest provides a small fixed occupation catalog for tests.
package catalogtest

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/jonathan/fairpath/internal/catalog"
	"github.com/jonathan/fairpath/internal/types"
)

// SkillNames is the canonical skill list of the sample catalog
var SkillNames = []string{
	"Writing", "Speaking", "Critical Thinking", "Active Learning",
	"Mathematics", "Science", "Complex Problem Solving", "Judgment and Decision Making",
	"Time Management", "Social Perceptiveness",
}

// Career ids in the sample catalog, in catalog order
const (
	Engineer  = "test_engineer_001"
	Writer    = "test_writer_001"
	Manager   = "test_manager_001"
	Nurse     = "test_nurse_001"
	Physician = "test_physician_001"
	Cashier   = "test_cashier_001"
)

// Occupations returns a fresh copy of the sample occupations.
func Occupations() []types.Occupation {
	return []types.Occupation{
		{
			CareerID: Engineer, Name: "Software Engineer", SOCCode: "15-1252.00",
			SkillVector:    []float64{0.8, 0.6, 0.9, 0.7, 0.8, 0.5, 0.9, 0.7, 0.6, 0.4},
			InterestVector: []float64{0.3, 0.9, 0.2, 0.1, 0.3, 0.6},
			ValueVector:    []float64{0.8, 0.7, 0.5, 0.4, 0.5, 0.9},
			EducationLevel: "bachelors",
			Outlook:        types.Outlook{MedianWage: 120000, GrowthRate: 15.5},
		},
		{
			CareerID: Writer, Name: "Technical Writer", SOCCode: "27-3042.00",
			SkillVector:    []float64{0.9, 0.9, 0.8, 0.6, 0.3, 0.2, 0.5, 0.6, 0.7, 0.6},
			InterestVector: []float64{0.1, 0.4, 0.9, 0.3, 0.2, 0.6},
			ValueVector:    []float64{0.6, 0.6, 0.5, 0.5, 0.4, 0.8},
			EducationLevel: "bachelors",
			Outlook:        types.Outlook{MedianWage: 75000, GrowthRate: 8.5},
		},
		{
			CareerID: Manager, Name: "Project Manager", SOCCode: "11-9199.00",
			SkillVector:    []float64{0.7, 0.9, 0.8, 0.6, 0.4, 0.3, 0.7, 0.9, 0.9, 0.8},
			InterestVector: []float64{0.2, 0.3, 0.1, 0.6, 0.9, 0.7},
			ValueVector:    []float64{0.8, 0.6, 0.7, 0.8, 0.6, 0.6},
			EducationLevel: "bachelors",
			Outlook:        types.Outlook{MedianWage: 95000, GrowthRate: 10},
		},
		{
			CareerID: Nurse, Name: "Registered Nurse", SOCCode: "29-1141.00",
			SkillVector:    []float64{0.5, 0.8, 0.8, 0.6, 0.3, 0.7, 0.6, 0.8, 0.7, 0.9},
			InterestVector: []float64{0.4, 0.6, 0.1, 0.9, 0.2, 0.4},
			ValueVector:    []float64{0.7, 0.6, 0.5, 0.9, 0.7, 0.5},
			EducationLevel: "associates",
			Outlook:        types.Outlook{MedianWage: 86000, GrowthRate: 6},
		},
		{
			CareerID: Physician, Name: "Physician", SOCCode: "29-1216.00",
			SkillVector:    []float64{0.6, 0.8, 0.9, 0.8, 0.5, 0.9, 0.9, 0.9, 0.7, 0.8},
			InterestVector: []float64{0.4, 0.9, 0.1, 0.8, 0.3, 0.4},
			ValueVector:    []float64{0.9, 0.6, 0.8, 0.8, 0.5, 0.7},
			EducationLevel: "doctoral",
			Outlook:        types.Outlook{MedianWage: 230000, GrowthRate: 3},
		},
		{
			CareerID: Cashier, Name: "Cashier", SOCCode: "41-2011.00",
			SkillVector:    []float64{0.2, 0.5, 0.2, 0.1, 0.4, 0.0, 0.1, 0.2, 0.3, 0.4},
			InterestVector: []float64{0.4, 0.0, 0.0, 0.4, 0.3, 0.8},
			ValueVector:    []float64{0.3, 0.4, 0.2, 0.6, 0.5, 0.2},
			EducationLevel: "high_school",
			Outlook:        types.Outlook{MedianWage: 29000, GrowthRate: -10},
		},
	}
}

// Sample returns the sample catalog.
func Sample() *catalog.Catalog {
	c, err := catalog.New("test-1.0.0", append([]string(nil), SkillNames...), Occupations())
	if err != nil {
		panic(err)
	}
	return c
}

// WriteFile writes the sample catalog as JSON into dir and returns its path.
func WriteFile(t *testing.T, dir string) string {
	t.Helper()

	data, err := catalog.Encode(Sample())
	if err != nil {
		t.Fatalf("encoding sample catalog: %v", err)
	}
	path := filepath.Join(dir, "catalog.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("writing sample catalog: %v", err)
	}
	return path
}

// StaticProvider serves a fixed catalog and counts loads
type StaticProvider struct {
	Catalog *catalog.Catalog
	Err     error

	calls atomic.Int32
}

// Load returns the configured catalog or error.
func (p *StaticProvider) Load(_ context.Context) (*catalog.Catalog, error) {
	p.calls.Add(1)
	if p.Err != nil {
		return nil, p.Err
	}
	return p.Catalog, nil
}

// Calls returns how many times Load ran.
func (p *StaticProvider) Calls() int {
	return int(p.calls.Load())
}
