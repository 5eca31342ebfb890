package transition

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"

	"github.com/jonathan/fairpath/internal/types"
)

// Overall verdicts
const (
	VerdictFavorable   = "Favorable transition with more positive factors than risks"
	VerdictChallenging = "Challenging transition with significant risks to consider"
	VerdictBalanced    = "Moderate transition with balanced factors"
)

// AssessSuccessFactors lists what helps and what hurts a transition: skill
// overlap, learning load, education requirements, market growth and wages.
func AssessSuccessFactors(source, target types.Occupation, overlap types.SkillOverlap) types.SuccessAssessment {
	success := []types.Factor{}
	risks := []types.Factor{}
	add := func(positive bool, factor, description string) {
		if positive {
			success = append(success, types.Factor{Factor: factor, Description: description, Impact: types.ImpactPositive})
			return
		}
		risks = append(risks, types.Factor{Factor: factor, Description: description, Impact: types.ImpactNegative})
	}

	pct := overlap.OverlapPercentage
	switch {
	case pct >= StrongOverlap:
		add(true, "High skill overlap",
			fmt.Sprintf("About %.1f%% of your current skills transfer directly. This gives you a solid foundation.", pct))
	case pct < WeakOverlap:
		add(false, "Low skill overlap",
			fmt.Sprintf("Only %.1f%% skill overlap means you'll need to learn many new skills. This increases transition time and risk.", pct))
	}

	switch n := overlap.NumToLearn; {
	case n <= FewSkillsToLearn:
		add(true, "Manageable learning curve",
			fmt.Sprintf("Only %d critical skills need to be learned. This is a reasonable amount to tackle.", n))
	case n > ManySkillsToLearn:
		add(false, "Steep learning curve",
			fmt.Sprintf("You'll need to learn %d new skills. This requires significant time and effort investment.", n))
	}

	if source.EducationLevel != "" && target.EducationLevel != "" {
		src := types.EducationOrdinal(source.EducationLevel)
		tgt := types.EducationOrdinal(target.EducationLevel)
		switch {
		case tgt > src+EducationGapLevels:
			add(false, "Education gap",
				fmt.Sprintf("Target career typically requires %s education, while your current role requires %s. You may need additional education or certifications.",
					target.EducationLevel, source.EducationLevel))
		case tgt <= src:
			add(true, "Education requirements met",
				fmt.Sprintf("Your current education level (%s) meets or exceeds the target requirement (%s).",
					source.EducationLevel, target.EducationLevel))
		}
	}

	switch g := target.Outlook.GrowthRate; {
	case g > StrongGrowthRate:
		add(true, "Strong market growth",
			fmt.Sprintf("Target career is growing at %.1f%% annually. This means more job opportunities and potentially better job security.", g))
	case g < DecliningGrowthRate:
		add(false, "Declining market",
			fmt.Sprintf("Target career is declining at %.1f%% annually. This could mean fewer opportunities and increased competition.", math.Abs(g)))
	}

	if sw, tw := source.Outlook.MedianWage, target.Outlook.MedianWage; sw > 0 && tw > 0 {
		change := (tw - sw) / sw * 100
		switch {
		case change > WageIncreasePct:
			add(true, "Potential wage increase",
				fmt.Sprintf("Target career has median wage $%s vs your current $%s. This represents a %.1f%% increase.",
					formatWage(tw), formatWage(sw), change))
		case change < WageDecreasePct:
			add(false, "Potential wage decrease",
				fmt.Sprintf("Target career has median wage $%s vs your current $%s. This represents a %.1f%% decrease.",
					formatWage(tw), formatWage(sw), math.Abs(change)))
		}
	}

	return types.SuccessAssessment{
		SuccessFactors:    success,
		RiskFactors:       risks,
		OverallAssessment: verdict(len(success), len(risks)),
		NumSuccessFactors: len(success),
		NumRiskFactors:    len(risks),
	}
}

func verdict(success, risks int) string {
	switch {
	case float64(success) > float64(risks)*VerdictRatio:
		return VerdictFavorable
	case float64(risks) > float64(success)*VerdictRatio:
		return VerdictChallenging
	default:
		return VerdictBalanced
	}
}

func formatWage(w float64) string {
	return humanize.Comma(int64(math.Round(w)))
}
