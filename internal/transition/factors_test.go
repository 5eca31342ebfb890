package transition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/fairpath/internal/types"
)

func factorNames(fs []types.Factor) []string {
	out := make([]string, len(fs))
	for i, f := range fs {
		out[i] = f.Factor
	}
	return out
}

func TestAssessSuccessFactors_Favorable(t *testing.T) {
	source := types.Occupation{EducationLevel: "bachelors", Outlook: types.Outlook{MedianWage: 75000}}
	target := types.Occupation{EducationLevel: "bachelors", Outlook: types.Outlook{MedianWage: 120000, GrowthRate: 15.5}}
	overlap := types.SkillOverlap{OverlapPercentage: 82.5, NumToLearn: 2}

	a := AssessSuccessFactors(source, target, overlap)

	assert.Equal(t, []string{
		"High skill overlap",
		"Manageable learning curve",
		"Education requirements met",
		"Strong market growth",
		"Potential wage increase",
	}, factorNames(a.SuccessFactors))
	assert.Empty(t, a.RiskFactors)
	assert.Equal(t, 5, a.NumSuccessFactors)
	assert.Equal(t, 0, a.NumRiskFactors)
	assert.Equal(t, VerdictFavorable, a.OverallAssessment)

	assert.Equal(t, "About 82.5% of your current skills transfer directly. This gives you a solid foundation.", a.SuccessFactors[0].Description)
	assert.Equal(t, "Target career has median wage $120,000 vs your current $75,000. This represents a 60.0% increase.", a.SuccessFactors[4].Description)
	for _, f := range a.SuccessFactors {
		assert.Equal(t, types.ImpactPositive, f.Impact)
	}
}

func TestAssessSuccessFactors_Challenging(t *testing.T) {
	source := types.Occupation{EducationLevel: "high_school", Outlook: types.Outlook{MedianWage: 50000}}
	target := types.Occupation{EducationLevel: "doctoral", Outlook: types.Outlook{MedianWage: 40000, GrowthRate: -10}}
	overlap := types.SkillOverlap{OverlapPercentage: 19.8, NumToLearn: 30}

	a := AssessSuccessFactors(source, target, overlap)

	assert.Empty(t, a.SuccessFactors)
	assert.Equal(t, []string{
		"Low skill overlap",
		"Steep learning curve",
		"Education gap",
		"Declining market",
		"Potential wage decrease",
	}, factorNames(a.RiskFactors))
	assert.Equal(t, VerdictChallenging, a.OverallAssessment)

	assert.Equal(t, "Target career is declining at 10.0% annually. This could mean fewer opportunities and increased competition.", a.RiskFactors[3].Description)
	assert.Contains(t, a.RiskFactors[4].Description, "20.0% decrease")
	assert.Contains(t, a.RiskFactors[2].Description, "requires doctoral education, while your current role requires high_school")
}

func TestAssessSuccessFactors_Balanced(t *testing.T) {
	overlap := types.SkillOverlap{OverlapPercentage: 45, NumToLearn: 10}

	a := AssessSuccessFactors(types.Occupation{}, types.Occupation{}, overlap)

	assert.Empty(t, a.SuccessFactors)
	assert.Empty(t, a.RiskFactors)
	assert.NotNil(t, a.SuccessFactors)
	assert.NotNil(t, a.RiskFactors)
	assert.Equal(t, VerdictBalanced, a.OverallAssessment)
}

func TestAssessSuccessFactors_EducationOneLevelUpIsNeutral(t *testing.T) {
	source := types.Occupation{EducationLevel: "associates"}
	target := types.Occupation{EducationLevel: "bachelors"}

	a := AssessSuccessFactors(source, target, types.SkillOverlap{OverlapPercentage: 45, NumToLearn: 10})
	require.Empty(t, a.SuccessFactors)
	require.Empty(t, a.RiskFactors)
}

func TestVerdict(t *testing.T) {
	assert.Equal(t, VerdictFavorable, verdict(2, 1))
	assert.Equal(t, VerdictBalanced, verdict(3, 2))
	assert.Equal(t, VerdictChallenging, verdict(1, 2))
	assert.Equal(t, VerdictBalanced, verdict(0, 0))
}
