package transition

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/fairpath/internal/types"
)

func TestClassifyDifficulty(t *testing.T) {
	tests := []struct {
		name    string
		overlap float64
		learn   int
		want    types.Difficulty
	}{
		{"high overlap few skills", 75, 5, types.DifficultyLow},
		{"boundary low", 70, 5, types.DifficultyLow},
		{"high overlap six skills", 75, 6, types.DifficultyMedium},
		{"low overlap", 39.9, 0, types.DifficultyHigh},
		{"too many skills", 80, 16, types.DifficultyHigh},
		{"fifteen skills is not high", 80, 15, types.DifficultyMedium},
		{"medium band", 55, 10, types.DifficultyMedium},
		{"between bands", 45, 3, types.DifficultyMedium},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyDifficulty(tt.overlap, tt.learn, 0))
		})
	}
}

func TestEstimateTransitionTime(t *testing.T) {
	tests := []struct {
		name       string
		difficulty types.Difficulty
		learn      int
		overlap    float64
		wantMin    int
		wantMax    int
	}{
		{"identical occupations", types.DifficultyLow, 0, 100, 3, 6},
		{"medium", types.DifficultyMedium, 4, 60, 10, 18},
		{"both caps", types.DifficultyHigh, 40, 0, 36, 48},
		{"mostly disjoint", types.DifficultyHigh, 30, 19.78, 31, 48},
		{"unknown difficulty uses medium", types.Difficulty("?"), 0, 100, 6, 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			est := EstimateTransitionTime(tt.difficulty, tt.learn, tt.overlap)

			assert.Equal(t, tt.wantMin, est.MinMonths)
			assert.Equal(t, tt.wantMax, est.MaxMonths)
			assert.LessOrEqual(t, est.MinMonths, est.MaxMonths)
			assert.LessOrEqual(t, est.MaxMonths, MaxMonthsCap)
			assert.Equal(t, TimeEstimateNote, est.Note)
		})
	}

	assert.Equal(t, "10-18 months", EstimateTransitionTime(types.DifficultyMedium, 4, 60).Range)
}

func TestEstimateTransitionTime_MonotoneInSkillsToLearn(t *testing.T) {
	prev := EstimateTransitionTime(types.DifficultyMedium, 0, 55)
	for n := 1; n <= 60; n++ {
		cur := EstimateTransitionTime(types.DifficultyMedium, n, 55)
		assert.GreaterOrEqual(t, cur.MinMonths, prev.MinMonths)
		assert.GreaterOrEqual(t, cur.MaxMonths, prev.MaxMonths)
		prev = cur
	}
}

func TestEstimateTransitionTime_HighExceedsLow(t *testing.T) {
	for _, overlap := range []float64{40, 55, 70, 85, 100} {
		for n := 0; n <= 10; n++ {
			low := EstimateTransitionTime(types.DifficultyLow, n, overlap)
			high := EstimateTransitionTime(types.DifficultyHigh, n, overlap)

			assert.Greater(t, high.MinMonths, low.MinMonths, "overlap=%v learn=%d", overlap, n)
			assert.Greater(t, high.MaxMonths, low.MaxMonths, "overlap=%v learn=%d", overlap, n)
		}
	}
}

func TestEstimateTransitionTime_Bounds(t *testing.T) {
	difficulties := []types.Difficulty{types.DifficultyLow, types.DifficultyMedium, types.DifficultyHigh}
	for _, d := range difficulties {
		for n := 0; n <= 100; n += 5 {
			for overlap := 0.0; overlap <= 100; overlap += 10 {
				est := EstimateTransitionTime(d, n, overlap)

				assert.LessOrEqual(t, est.MinMonths, est.MaxMonths, "%s learn=%d overlap=%v", d, n, overlap)
				assert.LessOrEqual(t, est.MinMonths, MinMonthsCap, "%s learn=%d overlap=%v", d, n, overlap)
				assert.LessOrEqual(t, est.MaxMonths, MaxMonthsCap, "%s learn=%d overlap=%v", d, n, overlap)
				assert.Positive(t, est.MinMonths)
			}
		}
	}
}
