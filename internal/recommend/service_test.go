package recommend

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/fairpath/internal/catalog"
	"github.com/jonathan/fairpath/internal/catalog/catalogtest"
	"github.com/jonathan/fairpath/internal/guardrails"
	"github.com/jonathan/fairpath/internal/model"
	"github.com/jonathan/fairpath/internal/types"
)

type storeFunc func(ctx context.Context) (*model.Artifact, error)

func (f storeFunc) Load(ctx context.Context) (*model.Artifact, error) { return f(ctx) }

func missingModel() model.Store {
	return storeFunc(func(context.Context) (*model.Artifact, error) { return nil, model.ErrArtifactNotFound })
}

func flatModel(dim int) model.Store {
	return storeFunc(func(context.Context) (*model.Artifact, error) {
		return &model.Artifact{
			Version:    "flat-1",
			Weights:    make([]float64, dim),
			ScalerMean: make([]float64, dim),
			ScalerStd:  make([]float64, dim),
		}, nil
	})
}

func newService(store model.Store) *Service {
	cache := catalog.NewCache(&catalogtest.StaticProvider{Catalog: catalogtest.Sample()}, nil)
	return New(cache, store, Options{})
}

func engineerRequest() Request {
	return Request{
		Skills:    []string{"writing", "critical thinking", "Mathematics", "complex problem", "Basket Weaving"},
		Interests: map[string]float64{"Investigative": 6.5, "Conventional": 4},
		Values:    map[string]float64{"Independence": 6, "Achievement": 5.5},
	}
}

func TestRecommend_Baseline(t *testing.T) {
	svc := newService(missingModel())

	resp, err := svc.Recommend(context.Background(), engineerRequest())
	require.NoError(t, err)

	assert.Equal(t, types.MethodBaseline, resp.Method)
	assert.Empty(t, resp.ModelVersion)
	assert.Equal(t, "test-1.0.0", resp.DatasetVersion)
	assert.Equal(t, guardrails.QualitySufficient, resp.InputQuality)
	assert.Equal(t, []string{"Writing", "Critical Thinking", "Mathematics", "Complex Problem Solving"}, resp.MatchedSkills)
	assert.Nil(t, resp.Constraints)

	require.Len(t, resp.Recommendations, 6)
	for i, r := range resp.Recommendations {
		if i > 0 {
			assert.GreaterOrEqual(t, resp.Recommendations[i-1].Score, r.Score)
		}
		assert.NotEmpty(t, r.Name)
		assert.Equal(t, types.MethodBaseline, r.Method)
		require.NotNil(t, r.ScoreRange)
		assert.LessOrEqual(t, r.ScoreRange.Min, r.Score)
		assert.GreaterOrEqual(t, r.ScoreRange.Max, r.Score)
		assert.NotNil(t, r.Explanation.WhyPoints)
	}
}

func TestRecommend_NonFiniteRatingTreatedAsMissing(t *testing.T) {
	svc := newService(missingModel())

	want, err := svc.Recommend(context.Background(), engineerRequest())
	require.NoError(t, err)

	req := engineerRequest()
	req.Interests["Realistic"] = math.NaN()
	got, err := svc.Recommend(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, got.Recommendations, len(want.Recommendations))
	for i, r := range got.Recommendations {
		assert.Greater(t, r.Score, 0.0)
		assert.Equal(t, want.Recommendations[i].CareerID, r.CareerID)
		assert.InDelta(t, want.Recommendations[i].Score, r.Score, 1e-12)
	}
}

func TestRecommend_NeverFewerThanMinimum(t *testing.T) {
	svc := newService(missingModel())
	req := engineerRequest()
	req.TopN = 1

	resp, err := svc.Recommend(context.Background(), req)
	require.NoError(t, err)
	assert.Len(t, resp.Recommendations, guardrails.MinRecommendations)
}

func TestRecommend_UsesCompatibleModel(t *testing.T) {
	svc := newService(flatModel(66))
	req := engineerRequest()
	req.UseModel = true

	resp, err := svc.Recommend(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, types.MethodModel, resp.Method)
	assert.Equal(t, "flat-1", resp.ModelVersion)
	for i, r := range resp.Recommendations {
		assert.InDelta(t, 0.5, r.Score, 1e-12)
		assert.Equal(t, types.ConfidenceMedium, r.Confidence)
		assert.Equal(t, catalogtest.Occupations()[i].CareerID, r.CareerID)
	}
	assert.Equal(t, model.StateLoaded, svc.Models().State())
}

func TestRecommend_IncompatibleModelIsRejected(t *testing.T) {
	svc := newService(flatModel(30))
	req := engineerRequest()
	req.UseModel = true

	resp, err := svc.Recommend(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, types.MethodBaseline, resp.Method)
	assert.Equal(t, model.StateLoadFailed, svc.Models().State())
	assert.Contains(t, svc.Models().LastError(), "expects 30 features")
}

func TestRecommend_ModelSurvivesCatalogOutageAtLoad(t *testing.T) {
	provider := &catalogtest.StaticProvider{Catalog: catalogtest.Sample(), Err: assert.AnError}
	svc := New(catalog.NewCache(provider, nil), flatModel(66), Options{})

	_, err := svc.Models().Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.StateLoaded, svc.Models().State())

	provider.Err = nil
	req := engineerRequest()
	req.UseModel = true
	resp, err := svc.Recommend(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, types.MethodModel, resp.Method)
	assert.Equal(t, "flat-1", resp.ModelVersion)
}

func TestRecommend_UncheckedIncompatibleModelFallsBack(t *testing.T) {
	provider := &catalogtest.StaticProvider{Catalog: catalogtest.Sample(), Err: assert.AnError}
	svc := New(catalog.NewCache(provider, nil), flatModel(30), Options{})

	_, err := svc.Models().Get(context.Background())
	require.NoError(t, err)

	provider.Err = nil
	req := engineerRequest()
	req.UseModel = true
	resp, err := svc.Recommend(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, types.MethodBaseline, resp.Method)
	assert.NotEmpty(t, resp.Recommendations)
}

func TestRecommend_RejectsDemographics(t *testing.T) {
	svc := newService(missingModel())
	req := engineerRequest()
	req.Constraints = map[string]any{"age": 30}

	resp, err := svc.Recommend(context.Background(), req)
	assert.Nil(t, resp)
	var demo *types.DemographicInputError
	require.ErrorAs(t, err, &demo)
	assert.Len(t, demo.Issues, 1)
}

func TestRecommend_Constraints(t *testing.T) {
	svc := newService(missingModel())

	req := engineerRequest()
	req.Constraints = map[string]any{"min_wage": 90000.0, "max_education_level": 3.0}
	resp, err := svc.Recommend(context.Background(), req)
	require.NoError(t, err)

	var ids []string
	for _, r := range resp.Recommendations {
		ids = append(ids, r.CareerID)
	}
	assert.ElementsMatch(t, []string{catalogtest.Engineer, catalogtest.Manager}, ids)
	require.NotNil(t, resp.Constraints)
	assert.Equal(t, 90000.0, resp.Constraints.MinWage)
	require.NotNil(t, resp.Constraints.MaxEducationLevel)
	assert.Equal(t, 3, *resp.Constraints.MaxEducationLevel)
}

func TestRecommend_InvalidConstraints(t *testing.T) {
	svc := newService(missingModel())

	for _, raw := range []map[string]any{
		{"min_wage": "lots"},
		{"min_wage": -1},
	} {
		req := engineerRequest()
		req.Constraints = raw
		_, err := svc.Recommend(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidRequest)
	}
}

func TestRecommend_CatalogFailure(t *testing.T) {
	cache := catalog.NewCache(&catalogtest.StaticProvider{Err: assert.AnError}, nil)
	svc := New(cache, missingModel(), Options{})

	_, err := svc.Recommend(context.Background(), engineerRequest())
	assert.ErrorIs(t, err, catalog.ErrUnavailable)
	assert.ErrorIs(t, svc.Warm(context.Background()), assert.AnError)
}

func TestWarm_LoadsCatalogAndModel(t *testing.T) {
	svc := newService(flatModel(66))

	require.NoError(t, svc.Warm(context.Background()))
	assert.True(t, svc.Catalogs().Loaded())
	assert.Equal(t, model.StateLoaded, svc.Models().State())
}

func TestWarm_MissingModelIsNotFatal(t *testing.T) {
	svc := newService(missingModel())

	require.NoError(t, svc.Warm(context.Background()))
	assert.True(t, svc.Catalogs().Loaded())
	assert.Equal(t, model.StateLoadFailed, svc.Models().State())
}

func TestAnalyzeTransition(t *testing.T) {
	svc := newService(missingModel())

	report, err := svc.AnalyzeTransition(context.Background(), catalogtest.Writer, catalogtest.Engineer)
	require.NoError(t, err)
	assert.Equal(t, catalogtest.Engineer, report.TargetCareer.CareerID)

	_, err = svc.AnalyzeTransition(context.Background(), "x", catalogtest.Engineer)
	var unresolved *types.UnresolvedEntityError
	assert.ErrorAs(t, err, &unresolved)

	results, err := svc.AnalyzeTransitions(context.Background(), []types.TransitionPair{
		{SourceCareerID: catalogtest.Nurse, TargetCareerID: catalogtest.Physician},
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.True(t, results[0].OK())
}

func TestFilterOccupations(t *testing.T) {
	occs := catalogtest.Occupations()
	assert.Len(t, FilterOccupations(occs, types.Constraints{}), len(occs))

	hs := 0
	only := FilterOccupations(occs, types.Constraints{MaxEducationLevel: &hs})
	require.Len(t, only, 1)
	assert.Equal(t, catalogtest.Cashier, only[0].CareerID)

	assert.Empty(t, FilterOccupations(occs, types.Constraints{MinWage: 1e9}))
}
