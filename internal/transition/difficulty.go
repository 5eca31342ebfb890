package transition

import (
	"fmt"

	"github.com/jonathan/fairpath/internal/types"
)

// ClassifyDifficulty grades a transition from its overlap percentage and the
// number of skills to learn. numTransferable is accepted for reporting
// symmetry and does not change the grade.
func ClassifyDifficulty(overlapPct float64, numToLearn, numTransferable int) types.Difficulty {
	switch {
	case overlapPct >= LowDifficultyOverlap && numToLearn <= LowDifficultyMaxLearn:
		return types.DifficultyLow
	case overlapPct < HighDifficultyOverlap || numToLearn > HighDifficultyMinLearn:
		return types.DifficultyHigh
	case overlapPct >= MediumDifficultyOverlap && numToLearn <= MediumDifficultyMaxLearn:
		return types.DifficultyMedium
	default:
		return types.DifficultyMedium
	}
}

// EstimateTransitionTime returns a month range for the transition. More skills
// to learn and lower overlap widen the range; the maximum grows faster than
// the minimum. MinMonths never exceeds MaxMonths.
func EstimateTransitionTime(difficulty types.Difficulty, numToLearn int, overlapPct float64) types.TimeEstimate {
	base, ok := baseMonths[difficulty]
	if !ok {
		base = baseMonths[types.DifficultyMedium]
	}

	skillAdj := float64(numToLearn) * MonthsPerSkill
	overlapAdj := (100 - overlapPct) / OverlapDivisor

	minMonths := min(int(base.min+skillAdj+overlapAdj), MinMonthsCap)
	maxMonths := min(int(base.max+MaxSpreadMultiplier*skillAdj+MaxSpreadMultiplier*overlapAdj), MaxMonthsCap)
	maxMonths = max(maxMonths, minMonths)

	return types.TimeEstimate{
		MinMonths: minMonths,
		MaxMonths: maxMonths,
		Range:     fmt.Sprintf("%d-%d months", minMonths, maxMonths),
		Note:      TimeEstimateNote,
	}
}
