package ranking

import (
	"github.com/jonathan/fairpath/internal/model"
	"github.com/jonathan/fairpath/internal/types"
	"github.com/jonathan/fairpath/internal/vector"
)

// Default confidence cutoffs
const (
	DefaultHighConfidence   = 0.75
	DefaultMediumConfidence = 0.5
)

// Thresholds are the lower bounds of the High and Medium confidence bands
type Thresholds struct {
	High   float64 `mapstructure:"high_confidence"`
	Medium float64 `mapstructure:"medium_confidence"`
}

// DefaultThresholds returns the standard confidence cutoffs.
func DefaultThresholds() Thresholds {
	return Thresholds{High: DefaultHighConfidence, Medium: DefaultMediumConfidence}
}

// Band maps a score to its confidence band.
func (t Thresholds) Band(score float64) types.Confidence {
	switch {
	case score >= t.High:
		return types.ConfidenceHigh
	case score >= t.Medium:
		return types.ConfidenceMedium
	default:
		return types.ConfidenceLow
	}
}

// ScoringFeatures builds the classifier input for a user/occupation pair.
func ScoringFeatures(user types.UserVector, occ types.Occupation) []float64 {
	return model.Features(user.Combined(), occ.Combined())
}

// ScoringDim is the classifier input length for combined vectors of length n.
func ScoringDim(n int) int {
	return model.FeatureDim(n)
}

type scorer func(user, occ []float64) (float64, error)

func baselineScore(user, occ []float64) (float64, error) {
	return vector.Cosine(user, occ), nil
}

func modelScorer(a *model.Artifact) scorer {
	return func(user, occ []float64) (float64, error) {
		if len(user) != len(occ) {
			return 0, model.ErrCorruptArtifact
		}
		return a.Predict(model.Features(user, occ))
	}
}
