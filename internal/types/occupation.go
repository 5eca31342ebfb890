// Package types provides type definitions for structured data used throughout the fairpath system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"strings"

	"github.com/jonathan/fairpath/internal/vector"
)

// InterestNames lists the RIASEC interest categories in vector order.
var InterestNames = []string{
	"Realistic",
	"Investigative",
	"Artistic",
	"Social",
	"Enterprising",
	"Conventional",
}

// ValueNames lists the work value categories in vector order.
var ValueNames = []string{
	"Achievement",
	"Working Conditions",
	"Recognition",
	"Relationships",
	"Support",
	"Independence",
}

const (
	// NumInterests is the length of every interest vector
	NumInterests = 6
	// NumValues is the length of every work value vector
	NumValues = 6
)

// Outlook holds labor-market attributes of an occupation
type Outlook struct {
	MedianWage float64 `json:"median_wage"` // annual, 0 when unknown
	GrowthRate float64 `json:"growth_rate"` // projected percent change
}

// Occupation is a catalog entry with its fixed-dimension feature vectors.
// SkillVector is indexed by the catalog's canonical skill list.
type Occupation struct {
	CareerID       string    `json:"career_id"`
	Name           string    `json:"name"`
	SOCCode        string    `json:"soc_code,omitempty"`
	SkillVector    []float64 `json:"skill_vector"`
	InterestVector []float64 `json:"interest_vector"`
	ValueVector    []float64 `json:"value_vector"`
	EducationLevel string    `json:"education_level,omitempty"`
	Outlook        Outlook   `json:"outlook"`
}

// Combined returns skills ++ interests ++ values as a new slice.
func (o Occupation) Combined() []float64 {
	return vector.Concat(o.SkillVector, o.InterestVector, o.ValueVector)
}

// educationOrdinals maps education level identifiers to comparable ranks
var educationOrdinals = map[string]float64{
	"high_school":  0,
	"some_college": 1,
	"associates":   2,
	"bachelors":    3,
	"masters":      4,
	"professional": 4.5,
	"doctoral":     5,
}

// UnknownEducationOrdinal is used for levels missing from the ordinal table
const UnknownEducationOrdinal = 2.5

// EducationOrdinal returns the rank of an education level identifier.
// Unknown or empty levels rank as UnknownEducationOrdinal.
func EducationOrdinal(level string) float64 {
	if v, ok := educationOrdinals[strings.ToLower(strings.TrimSpace(level))]; ok {
		return v
	}
	return UnknownEducationOrdinal
}

// KnownEducationLevel reports whether level is one of the recognized identifiers.
func KnownEducationLevel(level string) bool {
	_, ok := educationOrdinals[strings.ToLower(strings.TrimSpace(level))]
	return ok
}
