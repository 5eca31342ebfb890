package types

// SkillContribution is one skill's share of a user/occupation match
type SkillContribution struct {
	Skill        string  `json:"skill"`
	Contribution float64 `json:"contribution"`
	UserLevel    float64 `json:"user_level"`
	CareerLevel  float64 `json:"career_level"`
}

// SimilarityBreakdown reports per-group cosine similarity in [0,1]
type SimilarityBreakdown struct {
	SkillSimilarity    float64 `json:"skill_similarity"`
	InterestSimilarity float64 `json:"interest_similarity"`
	ValueSimilarity    float64 `json:"value_similarity"`
}

// Explanation decomposes why an occupation matched a user
type Explanation struct {
	TopContributingSkills []SkillContribution `json:"top_contributing_skills"`
	WhyPoints             []string            `json:"why_points"`
	SimilarityBreakdown   SimilarityBreakdown `json:"similarity_breakdown"`
}
