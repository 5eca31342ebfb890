package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEducationOrdinal(t *testing.T) {
	tests := []struct {
		level string
		want  float64
	}{
		{"high_school", 0},
		{"some_college", 1},
		{"associates", 2},
		{"bachelors", 3},
		{"masters", 4},
		{"professional", 4.5},
		{"doctoral", 5},
		{"Bachelors ", 3},
		{"apprenticeship", UnknownEducationOrdinal},
		{"", UnknownEducationOrdinal},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.want, EducationOrdinal(tt.level))
		})
	}

	assert.True(t, KnownEducationLevel("masters"))
	assert.False(t, KnownEducationLevel("apprenticeship"))
}

func TestOccupation_Combined(t *testing.T) {
	occ := Occupation{
		SkillVector:    []float64{0.1, 0.2},
		InterestVector: []float64{0.3},
		ValueVector:    []float64{0.4, 0.5},
	}

	combined := occ.Combined()
	assert.Equal(t, []float64{0.1, 0.2, 0.3, 0.4, 0.5}, combined)

	combined[0] = 9
	assert.Equal(t, 0.1, occ.SkillVector[0], "Combined must not alias the skill vector")
}

func TestUserVector_Combined(t *testing.T) {
	u := UserVector{Skills: []float64{1}, Interests: []float64{0, 0}, Values: nil}
	assert.Equal(t, []float64{1, 0, 0}, u.Combined())
}

func TestUnresolvedEntityError(t *testing.T) {
	err := &UnresolvedEntityError{CareerIDs: []string{"a", "b"}}
	assert.Equal(t, "occupation not found: a, b", err.Error())
}

func TestTransferItem_GapOmittedWhenNil(t *testing.T) {
	data, err := json.Marshal(TransferItem{Skill: "Writing", SourceLevel: 0.5, TargetLevel: 0.6})
	require.NoError(t, err)
	assert.NotContains(t, string(data), "gap")

	gap := 0.4
	data, err = json.Marshal(TransferItem{Skill: "Writing", TargetLevel: 0.4, Gap: &gap})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"gap":0.4`)
}

func TestTransitionResult_OK(t *testing.T) {
	assert.True(t, TransitionResult{Report: &TransitionReport{}}.OK())
	assert.False(t, TransitionResult{Err: &UnresolvedEntityError{}}.OK())
	assert.False(t, TransitionResult{}.OK())
}
