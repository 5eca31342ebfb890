// Package explain decomposes a user/occupation match into per-skill contributions.
package explain

import (
	"fmt"
	"sort"

	"github.com/jonathan/fairpath/internal/types"
	"github.com/jonathan/fairpath/internal/vector"
)

const (
	// MinContribution is the exclusive lower bound for a skill to be reported
	MinContribution = 0.1
	// MaxTopSkills caps the reported contributing skills
	MaxTopSkills = 5
	// MaxWhyPoints caps the generated statements
	MaxWhyPoints = 3
)

var whyTemplates = [MaxWhyPoints]string{
	"Your %s skills are a strong match for this career",
	"%s is also important in this role",
	"Your background in %s adds to the fit",
}

// Explain reports which skills drive the match between user and occ.
//
// A skill's contribution is the smaller of the user and occupation levels, so
// it is high only where both are high. skillNames supplies labels by index;
// indices beyond it are labelled by position.
func Explain(user types.UserVector, occ types.Occupation, skillNames []string) types.Explanation {
	top := topContributions(user.Skills, occ.SkillVector, skillNames)

	return types.Explanation{
		TopContributingSkills: top,
		WhyPoints:             whyPoints(top),
		SimilarityBreakdown: types.SimilarityBreakdown{
			SkillSimilarity:    similarity(user.Skills, occ.SkillVector),
			InterestSimilarity: similarity(user.Interests, occ.InterestVector),
			ValueSimilarity:    similarity(user.Values, occ.ValueVector),
		},
	}
}

func topContributions(user, occ []float64, skillNames []string) []types.SkillContribution {
	n := min(len(user), len(occ))
	out := make([]types.SkillContribution, 0, n)
	for i := 0; i < n; i++ {
		c := min(user[i], occ[i])
		if c <= MinContribution {
			continue
		}
		out = append(out, types.SkillContribution{
			Skill:        skillLabel(skillNames, i),
			Contribution: c,
			UserLevel:    user[i],
			CareerLevel:  occ[i],
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Contribution > out[j].Contribution
	})
	if len(out) > MaxTopSkills {
		out = out[:MaxTopSkills]
	}
	return out
}

func whyPoints(top []types.SkillContribution) []string {
	points := make([]string, 0, MaxWhyPoints)
	for i, sc := range top {
		if i == MaxWhyPoints {
			break
		}
		points = append(points, fmt.Sprintf(whyTemplates[i], sc.Skill))
	}
	return points
}

func similarity(a, b []float64) float64 {
	return vector.Clamp01(vector.Cosine(a, b))
}

func skillLabel(skillNames []string, i int) string {
	if i < len(skillNames) {
		return skillNames[i]
	}
	return fmt.Sprintf("skill_%d", i)
}
