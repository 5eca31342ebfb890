// Package guardrails screens recommendation input for demographic attributes and
// attaches uncertainty ranges to scores.
package guardrails

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/jonathan/fairpath/internal/types"
	"github.com/jonathan/fairpath/internal/vector"
)

// MinRecommendations is the fewest results returned when the catalog allows it
const MinRecommendations = 3

// DemographicKeywords are rejected wherever they appear as a word in user input
var DemographicKeywords = []string{
	"age", "gender", "sex", "race", "ethnicity", "religion", "nationality",
	"birth", "born", "country", "origin", "disability", "veteran", "marital",
}

var demographicSet = func() map[string]bool {
	m := make(map[string]bool, len(DemographicKeywords))
	for _, k := range DemographicKeywords {
		m[k] = true
	}
	return m
}()

// Finding reports demographic content found in a request
type Finding struct {
	HasDemographicData bool     `json:"has_demographic_data"`
	Issues             []string `json:"issues"`
	Message            string   `json:"message,omitempty"`
}

// CheckDemographics scans skill names and the keys of the category and
// constraint maps for demographic keywords, matched as whole words.
func CheckDemographics(skills []string, interests, values map[string]float64, constraints map[string]any) Finding {
	var issues []string
	for _, s := range skills {
		if kw := demographicWord(s); kw != "" {
			issues = append(issues, fmt.Sprintf("skill %q contains demographic term %q", s, kw))
		}
	}
	issues = append(issues, scanKeys("interest", keysOf(interests))...)
	issues = append(issues, scanKeys("work value", keysOf(values))...)
	issues = append(issues, scanKeys("constraint", keysOf(constraints))...)

	if len(issues) == 0 {
		return Finding{Issues: []string{}}
	}
	return Finding{
		HasDemographicData: true,
		Issues:             issues,
		Message:            "Demographic information is not used for recommendations. Remove the flagged inputs and try again.",
	}
}

// Err converts a positive finding into a *types.DemographicInputError.
func (f Finding) Err() error {
	if !f.HasDemographicData {
		return nil
	}
	return &types.DemographicInputError{Issues: f.Issues}
}

func scanKeys(kind string, keys []string) []string {
	var issues []string
	for _, k := range keys {
		if kw := demographicWord(k); kw != "" {
			issues = append(issues, fmt.Sprintf("%s %q contains demographic term %q", kind, k, kw))
		}
	}
	return issues
}

// keysOf returns map keys in sorted order so issues are reported deterministically.
func keysOf[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func demographicWord(s string) string {
	words := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	for _, w := range words {
		if demographicSet[w] {
			return w
		}
	}
	return ""
}

// Quality grades how much a user told us
type Quality string

const (
	QualityEmpty      Quality = "empty"
	QualityThin       Quality = "thin"
	QualitySufficient Quality = "sufficient"
)

// AssessInputQuality counts the supplied input groups: none is empty, one is
// thin, more is sufficient.
func AssessInputQuality(skills []string, interests, values map[string]float64, constraints map[string]any) Quality {
	groups := 0
	for _, s := range skills {
		if strings.TrimSpace(s) != "" {
			groups++
			break
		}
	}
	if len(interests) > 0 {
		groups++
	}
	if len(values) > 0 {
		groups++
	}
	if len(constraints) > 0 {
		groups++
	}

	switch groups {
	case 0:
		return QualityEmpty
	case 1:
		return QualityThin
	default:
		return QualitySufficient
	}
}

// Half-widths of the score range per confidence band
const (
	HighConfidenceSpread   = 0.05
	MediumConfidenceSpread = 0.10
	LowConfidenceSpread    = 0.15
	ThinInputMultiplier    = 1.5
)

// AddUncertainty sets ScoreRange and Uncertainty on each recommendation in place.
func AddUncertainty(recs []types.Recommendation, quality Quality) {
	for i := range recs {
		r := &recs[i]
		spread := spreadFor(r.Confidence)
		if quality != QualitySufficient {
			spread *= ThinInputMultiplier
		}
		r.ScoreRange = &types.ScoreRange{
			Min:           vector.Clamp01(r.Score - spread),
			Max:           vector.Clamp01(r.Score + spread),
			PointEstimate: r.Score,
		}
		r.Uncertainty = fmt.Sprintf("Score likely between %.2f and %.2f", r.ScoreRange.Min, r.ScoreRange.Max)
	}
}

func spreadFor(c types.Confidence) float64 {
	switch c {
	case types.ConfidenceHigh:
		return HighConfidenceSpread
	case types.ConfidenceMedium:
		return MediumConfidenceSpread
	default:
		return LowConfidenceSpread
	}
}
