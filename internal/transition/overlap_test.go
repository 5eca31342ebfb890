package transition

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/fairpath/internal/types"
)

func repeat(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func joined(parts ...[]float64) []float64 {
	var out []float64
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func names(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("skill-%02d", i)
	}
	return out
}

func occ(id string, skills []float64) types.Occupation {
	return types.Occupation{CareerID: id, Name: id, SkillVector: skills}
}

// Source strong where the target is weak, and the reverse, sharing a middle band.
func mostlyDisjoint() (types.Occupation, types.Occupation) {
	src := occ("src", joined(repeat(0, 30), repeat(0.5, 10), repeat(0.9, 6)))
	tgt := occ("tgt", joined(repeat(0.8, 30), repeat(0.5, 10), repeat(0, 6)))
	return src, tgt
}

func TestComputeSkillOverlap_MostlyDisjoint(t *testing.T) {
	src, tgt := mostlyDisjoint()

	overlap := ComputeSkillOverlap(src, tgt, names(46))

	assert.InDelta(t, 19.78, overlap.OverlapPercentage, 0.01)
	assert.Equal(t, 10, overlap.NumTransferable)
	assert.Equal(t, 30, overlap.NumToLearn)
	assert.Equal(t, 0, overlap.NumOptional)
	assert.Len(t, overlap.TransfersDirectly, 10)
	assert.Len(t, overlap.NeedsLearning, MaxToLearn)
	assert.Empty(t, overlap.OptionalSkills)

	for _, item := range overlap.NeedsLearning {
		require.NotNil(t, item.Gap)
		assert.InDelta(t, 0.8, *item.Gap, 1e-12)
	}
	for _, item := range overlap.TransfersDirectly {
		assert.Nil(t, item.Gap)
	}
	// equal gaps keep skill order
	assert.Equal(t, "skill-00", overlap.NeedsLearning[0].Skill)
	assert.Equal(t, "skill-19", overlap.NeedsLearning[19].Skill)
}

func TestComputeSkillOverlap_Classification(t *testing.T) {
	src := occ("src", []float64{0.9, 0.3, 0.1, 0.25, 0.5, 0.0, 0.0, 0.9})
	tgt := occ("tgt", []float64{0.35, 0.9, 0.5, 0.6, 0.05, 0.2, 0.39, 0.09})
	skillNames := []string{"A", "B", "C", "D", "E", "F", "G", "H"}

	overlap := ComputeSkillOverlap(src, tgt, skillNames)

	// A (0.35) and B (0.9) transfer, sorted by target level
	require.Len(t, overlap.TransfersDirectly, 2)
	assert.Equal(t, "B", overlap.TransfersDirectly[0].Skill)
	assert.Equal(t, "A", overlap.TransfersDirectly[1].Skill)

	// C needs learning; D has source 0.25 so it is neither missing nor optional
	require.Len(t, overlap.NeedsLearning, 1)
	assert.Equal(t, "C", overlap.NeedsLearning[0].Skill)
	assert.InDelta(t, 0.4, *overlap.NeedsLearning[0].Gap, 1e-12)

	// G (0.39) before F (0.2); E and H fall below the relevance cutoff
	require.Len(t, overlap.OptionalSkills, 2)
	assert.Equal(t, "G", overlap.OptionalSkills[0].Skill)
	assert.Equal(t, "F", overlap.OptionalSkills[1].Skill)
}

func TestComputeSkillOverlap_CapsListsNotCounts(t *testing.T) {
	src := occ("src", joined(repeat(0.5, 25), repeat(0, 18)))
	tgt := occ("tgt", joined(repeat(0.5, 25), repeat(0.3, 18)))

	overlap := ComputeSkillOverlap(src, tgt, names(43))

	assert.Equal(t, 25, overlap.NumTransferable)
	assert.Len(t, overlap.TransfersDirectly, MaxTransfers)
	assert.Equal(t, 18, overlap.NumOptional)
	assert.Len(t, overlap.OptionalSkills, MaxOptional)
}

func TestComputeSkillOverlap_ZeroVectors(t *testing.T) {
	overlap := ComputeSkillOverlap(occ("a", repeat(0, 5)), occ("b", repeat(0, 5)), names(5))

	assert.Equal(t, 0.0, overlap.OverlapPercentage)
	assert.NotNil(t, overlap.TransfersDirectly)
	assert.NotNil(t, overlap.NeedsLearning)
	assert.NotNil(t, overlap.OptionalSkills)
}

func TestComputeSkillOverlap_Identical(t *testing.T) {
	v := []float64{0.8, 0.6, 0.9, 0.7}
	overlap := ComputeSkillOverlap(occ("a", v), occ("b", v), names(4))

	assert.InDelta(t, 100.0, overlap.OverlapPercentage, 1e-9)
	assert.LessOrEqual(t, overlap.OverlapPercentage, 100.0)
	assert.Equal(t, 4, overlap.NumTransferable)
	assert.Zero(t, overlap.NumToLearn)
}
