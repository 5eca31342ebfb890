package types

import "github.com/jonathan/fairpath/internal/vector"

// UserVector is the numeric profile of a user, dimensionally compatible with Occupation
type UserVector struct {
	Skills    []float64 `json:"skills"`
	Interests []float64 `json:"interests"`
	Values    []float64 `json:"values"`
}

// Combined returns skills ++ interests ++ values as a new slice.
func (u UserVector) Combined() []float64 {
	return vector.Concat(u.Skills, u.Interests, u.Values)
}

// Method identifies which scorer produced a ranking
type Method string

const (
	// MethodBaseline is cosine similarity over combined vectors
	MethodBaseline Method = "baseline"
	// MethodModel is the learned logistic classifier
	MethodModel Method = "model"
)

// Confidence is a coarse band over a score in [0,1]
type Confidence string

const (
	ConfidenceHigh   Confidence = "High"
	ConfidenceMedium Confidence = "Medium"
	ConfidenceLow    Confidence = "Low"
)

// ScoreRange is an uncertainty interval around a point score
type ScoreRange struct {
	Min           float64 `json:"min"`
	Max           float64 `json:"max"`
	PointEstimate float64 `json:"point_estimate"`
}

// Recommendation is one ranked occupation with its explanation
type Recommendation struct {
	CareerID    string      `json:"career_id"`
	Name        string      `json:"name"`
	SOCCode     string      `json:"soc_code,omitempty"`
	Score       float64     `json:"score"`
	Confidence  Confidence  `json:"confidence"`
	Method      Method      `json:"method"`
	ScoreRange  *ScoreRange `json:"score_range,omitempty"`
	Uncertainty string      `json:"uncertainty,omitempty"`
	Outlook     Outlook     `json:"outlook"`
	Explanation Explanation `json:"explanation"`
}

// Constraints narrow the candidate occupations before ranking
type Constraints struct {
	MinWage           float64 `json:"min_wage,omitempty" mapstructure:"min_wage"`
	MaxEducationLevel *int    `json:"max_education_level,omitempty" mapstructure:"max_education_level"`
}
