package catalog_test

import (
	"errors"
	"testing"

	"github.com/jonathan/fairpath/internal/catalog"
	"github.com/jonathan/fairpath/internal/catalog/catalogtest"
	"github.com/jonathan/fairpath/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Sample(t *testing.T) {
	c := catalogtest.Sample()

	assert.Equal(t, 6, c.Len())
	assert.Equal(t, catalog.Summary{Version: "test-1.0.0", NumSkills: 10, NumOccupations: 6}, c.Summary())

	occ, ok := c.Lookup(catalogtest.Nurse)
	require.True(t, ok)
	assert.Equal(t, "Registered Nurse", occ.Name)

	_, ok = c.Lookup("missing")
	assert.False(t, ok)
}

func TestNew_ValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		skills []string
		mutate func([]types.Occupation) []types.Occupation
		check  func(t *testing.T, err error)
	}{
		{
			name:   "no skills",
			skills: []string{},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, catalog.ErrEmptyCatalog)
			},
		},
		{
			name:   "duplicate skill",
			skills: []string{"Writing", "writing"},
			mutate: func([]types.Occupation) []types.Occupation { return nil },
			check: func(t *testing.T, err error) {
				assert.Contains(t, err.Error(), "duplicate skill name")
			},
		},
		{
			name: "short skill vector",
			mutate: func(o []types.Occupation) []types.Occupation {
				o[1].SkillVector = o[1].SkillVector[:9]
				return o
			},
			check: func(t *testing.T, err error) {
				var dimErr *catalog.DimensionError
				require.True(t, errors.As(err, &dimErr))
				assert.Equal(t, catalogtest.Writer, dimErr.CareerID)
				assert.Equal(t, "skill_vector", dimErr.Field)
				assert.Equal(t, 9, dimErr.Got)
				assert.Equal(t, 10, dimErr.Want)
			},
		},
		{
			name: "long interest vector",
			mutate: func(o []types.Occupation) []types.Occupation {
				o[0].InterestVector = append(o[0].InterestVector, 0.5)
				return o
			},
			check: func(t *testing.T, err error) {
				var dimErr *catalog.DimensionError
				require.True(t, errors.As(err, &dimErr))
				assert.Equal(t, "interest_vector", dimErr.Field)
			},
		},
		{
			name: "value out of range",
			mutate: func(o []types.Occupation) []types.Occupation {
				o[2].ValueVector[0] = 1.2
				return o
			},
			check: func(t *testing.T, err error) {
				assert.Contains(t, err.Error(), "outside [0,1]")
			},
		},
		{
			name: "duplicate career id",
			mutate: func(o []types.Occupation) []types.Occupation {
				o[3].CareerID = o[0].CareerID
				return o
			},
			check: func(t *testing.T, err error) {
				assert.Contains(t, err.Error(), "duplicate career_id")
			},
		},
		{
			name: "empty career id",
			mutate: func(o []types.Occupation) []types.Occupation {
				o[0].CareerID = " "
				return o
			},
			check: func(t *testing.T, err error) {
				assert.Contains(t, err.Error(), "empty career_id")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			skills := catalogtest.SkillNames
			if tt.skills != nil {
				skills = tt.skills
			}
			occs := catalogtest.Occupations()
			if tt.mutate != nil {
				occs = tt.mutate(occs)
			}

			c, err := catalog.New("v", skills, occs)
			require.Error(t, err)
			assert.Nil(t, c)
			tt.check(t, err)
		})
	}
}
