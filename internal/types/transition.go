package types

// TransferItem is one skill's position in a career switch transfer map.
// Gap is set only for skills that need learning.
type TransferItem struct {
	Skill       string   `json:"skill"`
	SourceLevel float64  `json:"source_level"`
	TargetLevel float64  `json:"target_level"`
	Gap         *float64 `json:"gap,omitempty"`
}

// SkillOverlap is the result of comparing two occupations' skill vectors.
// The Num* counts are the uncapped totals; the lists are truncated.
type SkillOverlap struct {
	OverlapPercentage float64        `json:"overlap_percentage"`
	TransfersDirectly []TransferItem `json:"transfers_directly"`
	NeedsLearning     []TransferItem `json:"needs_learning"`
	OptionalSkills    []TransferItem `json:"optional_skills"`
	NumTransferable   int            `json:"num_transferable"`
	NumToLearn        int            `json:"num_to_learn"`
	NumOptional       int            `json:"num_optional"`
}

// Difficulty classifies how hard a career switch is
type Difficulty string

const (
	DifficultyLow    Difficulty = "Low"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHigh   Difficulty = "High"
)

// TimeEstimate is a month range for completing a transition
type TimeEstimate struct {
	MinMonths int    `json:"min_months"`
	MaxMonths int    `json:"max_months"`
	Range     string `json:"range"`
	Note      string `json:"note"`
}

// Impact tags a factor as helping or hurting a transition
type Impact string

const (
	ImpactPositive Impact = "positive"
	ImpactNegative Impact = "negative"
)

// Factor is a single success or risk observation
type Factor struct {
	Factor      string `json:"factor"`
	Description string `json:"description"`
	Impact      Impact `json:"impact"`
}

// SuccessAssessment groups success and risk factors with an overall verdict
type SuccessAssessment struct {
	SuccessFactors    []Factor `json:"success_factors"`
	RiskFactors       []Factor `json:"risk_factors"`
	OverallAssessment string   `json:"overall_assessment"`
	NumSuccessFactors int      `json:"num_success_factors"`
	NumRiskFactors    int      `json:"num_risk_factors"`
}

// CareerRef identifies an occupation in a report
type CareerRef struct {
	CareerID string `json:"career_id"`
	Name     string `json:"name"`
}

// OverlapSummary reports the overlap percentage and uncapped counts
type OverlapSummary struct {
	Percentage              float64 `json:"percentage"`
	TransferableSkillsCount int     `json:"transferable_skills_count"`
	SkillsToLearnCount      int     `json:"skills_to_learn_count"`
	OptionalSkillsCount     int     `json:"optional_skills_count"`
}

// TransferMap holds the capped per-skill classification lists
type TransferMap struct {
	TransfersDirectly []TransferItem `json:"transfers_directly"`
	NeedsLearning     []TransferItem `json:"needs_learning"`
	OptionalSkills    []TransferItem `json:"optional_skills"`
}

// TransitionReport is the full analysis of switching between two occupations
type TransitionReport struct {
	SourceCareer          CareerRef         `json:"source_career"`
	TargetCareer          CareerRef         `json:"target_career"`
	SkillOverlap          OverlapSummary    `json:"skill_overlap"`
	TransferMap           TransferMap       `json:"transfer_map"`
	Difficulty            Difficulty        `json:"difficulty"`
	TransitionTime        TimeEstimate      `json:"transition_time"`
	SuccessRiskAssessment SuccessAssessment `json:"success_risk_assessment"`
}

// TransitionPair names a source and target occupation
type TransitionPair struct {
	SourceCareerID string `json:"source_career_id" validate:"required"`
	TargetCareerID string `json:"target_career_id" validate:"required"`
}

// TransitionResult is either a report or an error for one pair.
// Exactly one of Report and Err is set.
type TransitionResult struct {
	Pair   TransitionPair    `json:"pair"`
	Report *TransitionReport `json:"report,omitempty"`
	Err    error             `json:"-"`
}

// OK reports whether the analysis produced a report.
func (r TransitionResult) OK() bool {
	return r.Err == nil && r.Report != nil
}
