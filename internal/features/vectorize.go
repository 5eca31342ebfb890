// Package features builds user feature vectors that are dimensionally compatible with catalog occupations.
package features

import (
	"math"
	"strings"

	"github.com/jonathan/fairpath/internal/types"
	"github.com/jonathan/fairpath/internal/vector"
)

const (
	// MatchedSkillWeight is the importance assigned to every skill the user names
	MatchedSkillWeight = 0.6
	// ScoreScale is the top of the 0-7 interest and value rating scale
	ScoreScale = 7.0
	// MissingInterestDefault is the normalized score for an interest the user did not rate
	MissingInterestDefault = 0.0
	// MissingValueDefault is the normalized score for a work value the user did not rate.
	// It sits at the scale midpoint, unlike interests.
	MissingValueDefault = 3.5 / ScoreScale
)

// BuildUserVector converts raw user input into a UserVector over the canonical skill list.
//
// Each skill name is matched case-insensitively against skillNames, accepting a
// substring match in either direction; the first canonical skill that matches
// receives MatchedSkillWeight. Interest and value scores are read from the 0-7
// scale by category name (case-insensitive) and normalized to [0,1].
func BuildUserVector(skillNames []string, skills []string, interests, values map[string]float64) types.UserVector {
	return types.UserVector{
		Skills:    skillVector(skillNames, skills),
		Interests: categoryVector(types.InterestNames, interests, MissingInterestDefault),
		Values:    categoryVector(types.ValueNames, values, MissingValueDefault),
	}
}

// MatchSkill returns the index of the first canonical skill matching name, or -1.
func MatchSkill(skillNames []string, name string) int {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return -1
	}
	for i, canonical := range skillNames {
		c := strings.ToLower(canonical)
		if c == "" {
			continue
		}
		if strings.Contains(c, needle) || strings.Contains(needle, c) {
			return i
		}
	}
	return -1
}

func skillVector(skillNames []string, skills []string) []float64 {
	vec := make([]float64, len(skillNames))
	for _, name := range skills {
		if idx := MatchSkill(skillNames, name); idx >= 0 {
			vec[idx] = MatchedSkillWeight
		}
	}
	return vec
}

func categoryVector(categories []string, scores map[string]float64, missing float64) []float64 {
	lookup := make(map[string]float64, len(scores))
	for k, v := range scores {
		lookup[strings.ToLower(strings.TrimSpace(k))] = v
	}

	vec := make([]float64, len(categories))
	for i, category := range categories {
		raw, ok := lookup[strings.ToLower(category)]
		if !ok || math.IsNaN(raw) || math.IsInf(raw, 0) {
			vec[i] = missing
			continue
		}
		vec[i] = vector.Clamp01(raw / ScoreScale)
	}
	return vec
}

// MatchedSkills returns the canonical names matched by the given skill inputs, in input order without duplicates.
func MatchedSkills(skillNames []string, skills []string) []string {
	seen := make(map[int]bool)
	var out []string
	for _, name := range skills {
		idx := MatchSkill(skillNames, name)
		if idx < 0 || seen[idx] {
			continue
		}
		seen[idx] = true
		out = append(out, skillNames[idx])
	}
	return out
}
