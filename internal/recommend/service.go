// Package recommend is the entry point for recommendations and transition
// analysis. It ties the catalog, the model loader and the scoring packages together.
package recommend

import (
	"context"
	"errors"
	"fmt"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/fairpath/internal/catalog"
	"github.com/jonathan/fairpath/internal/explain"
	"github.com/jonathan/fairpath/internal/features"
	"github.com/jonathan/fairpath/internal/guardrails"
	"github.com/jonathan/fairpath/internal/logger"
	"github.com/jonathan/fairpath/internal/model"
	"github.com/jonathan/fairpath/internal/ranking"
	"github.com/jonathan/fairpath/internal/transition"
	"github.com/jonathan/fairpath/internal/types"
)

// DefaultTopN is used when a request does not set TopN
const DefaultTopN = 10

// ErrInvalidRequest marks request content that cannot be interpreted
var ErrInvalidRequest = errors.New("invalid request")

// Request is a recommendation query. Interest and value scores use the 0-7 scale.
type Request struct {
	Skills      []string           `json:"skills"`
	Interests   map[string]float64 `json:"interests"`
	Values      map[string]float64 `json:"work_values"`
	Constraints map[string]any     `json:"constraints"`
	TopN        int                `json:"top_n"`
	UseModel    bool               `json:"use_model"`
}

// Response carries ranked recommendations and how they were produced
type Response struct {
	Recommendations []types.Recommendation `json:"recommendations"`
	Method          types.Method           `json:"method"`
	ModelVersion    string                 `json:"model_version,omitempty"`
	DatasetVersion  string                 `json:"dataset_version"`
	InputQuality    guardrails.Quality     `json:"input_quality"`
	MatchedSkills   []string               `json:"matched_skills"`
	Constraints     *types.Constraints     `json:"constraints_applied,omitempty"`
}

// Options configures a Service
type Options struct {
	Thresholds ranking.Thresholds
	Logger     *zap.Logger
}

// Service answers recommendation and transition queries.
type Service struct {
	catalogs *catalog.Cache
	models   *model.Loader
	engine   *ranking.Engine
	analyzer *transition.Analyzer
	logger   *zap.Logger
}

// New builds a Service. The model loader rejects artifacts whose dimension does
// not match the catalog, so an incompatible model is treated as corrupt.
func New(catalogs *catalog.Cache, store model.Store, opts Options) *Service {
	log := logger.OrNop(opts.Logger)
	th := opts.Thresholds
	if th == (ranking.Thresholds{}) {
		th = ranking.DefaultThresholds()
	}

	s := &Service{catalogs: catalogs, logger: log}
	s.models = model.NewLoader(store,
		model.WithValidator(s.checkModel),
		model.WithLogger(log.Named("model")),
	)
	s.engine = ranking.NewEngine(s.models, th, log.Named("ranking"))
	s.analyzer = transition.NewAnalyzer(catalogs, log.Named("transition"))
	return s
}

// Catalogs returns the catalog cache.
func (s *Service) Catalogs() *catalog.Cache { return s.catalogs }

// Models returns the model loader.
func (s *Service) Models() *model.Loader { return s.models }

// checkModel rejects artifacts sized for another catalog. With no catalog to
// compare against the artifact is accepted; ranking re-checks the dimension.
func (s *Service) checkModel(ctx context.Context, a *model.Artifact) error {
	c, err := s.catalogs.Get(ctx)
	if err != nil {
		s.logger.Warn("catalog unavailable, skipping model dimension check", zap.Error(err))
		return nil
	}
	n := len(c.SkillNames) + types.NumInterests + types.NumValues
	return a.CheckDim(ranking.ScoringDim(n))
}

// Warm loads the catalog and the model concurrently. Only a catalog failure is
// returned; a missing or rejected model leaves ranking on the baseline.
func (s *Service) Warm(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := s.catalogs.Get(ctx)
		return err
	})
	g.Go(func() error {
		if _, err := s.models.Get(ctx); err != nil {
			s.logger.Info("continuing without learned model", zap.Error(err))
		}
		return nil
	})
	return g.Wait()
}

// Recommend ranks catalog occupations for the request.
func (s *Service) Recommend(ctx context.Context, req Request) (*Response, error) {
	if err := guardrails.CheckDemographics(req.Skills, req.Interests, req.Values, req.Constraints).Err(); err != nil {
		s.logger.Info("rejected request with demographic input", zap.Error(err))
		return nil, err
	}

	constraints, err := DecodeConstraints(req.Constraints)
	if err != nil {
		return nil, err
	}

	c, err := s.catalogs.Get(ctx)
	if err != nil {
		return nil, err
	}

	candidates := FilterOccupations(c.Occupations, constraints)
	user := features.BuildUserVector(c.SkillNames, req.Skills, req.Interests, req.Values)

	topN := req.TopN
	if topN <= 0 {
		topN = DefaultTopN
	}
	topN = max(topN, guardrails.MinRecommendations)

	result := s.engine.Rank(ctx, user, candidates, topN, req.UseModel)

	recs := make([]types.Recommendation, 0, len(result.Items))
	for _, item := range result.Items {
		occ := candidates[item.Index]
		recs = append(recs, types.Recommendation{
			CareerID:    occ.CareerID,
			Name:        occ.Name,
			SOCCode:     occ.SOCCode,
			Score:       item.Score,
			Confidence:  item.Confidence,
			Method:      item.Method,
			Outlook:     occ.Outlook,
			Explanation: explain.Explain(user, occ, c.SkillNames),
		})
	}

	quality := guardrails.AssessInputQuality(req.Skills, req.Interests, req.Values, req.Constraints)
	guardrails.AddUncertainty(recs, quality)

	s.logger.Debug("recommendations ranked",
		zap.String("method", string(result.Method)),
		zap.Int("candidates", len(candidates)),
		zap.Int("returned", len(recs)),
	)

	resp := &Response{
		Recommendations: recs,
		Method:          result.Method,
		ModelVersion:    result.ModelVersion,
		DatasetVersion:  c.Version,
		InputQuality:    quality,
		MatchedSkills:   features.MatchedSkills(c.SkillNames, req.Skills),
	}
	if len(req.Constraints) > 0 {
		resp.Constraints = &constraints
	}
	return resp, nil
}

// AnalyzeTransition reports on switching from sourceID to targetID.
func (s *Service) AnalyzeTransition(ctx context.Context, sourceID, targetID string) (*types.TransitionReport, error) {
	return s.analyzer.Analyze(ctx, sourceID, targetID)
}

// AnalyzeTransitions analyzes a batch of pairs, one tagged result per pair.
func (s *Service) AnalyzeTransitions(ctx context.Context, pairs []types.TransitionPair) ([]types.TransitionResult, error) {
	return s.analyzer.AnalyzeBatch(ctx, pairs)
}

// DecodeConstraints converts loosely typed constraint input into Constraints.
func DecodeConstraints(raw map[string]any) (types.Constraints, error) {
	var out types.Constraints
	if len(raw) == 0 {
		return out, nil
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &out,
	})
	if err != nil {
		return out, err
	}
	if err := dec.Decode(raw); err != nil {
		return out, fmt.Errorf("%w: constraints: %v", ErrInvalidRequest, err)
	}
	if out.MinWage < 0 {
		return out, fmt.Errorf("%w: min_wage must be non-negative", ErrInvalidRequest)
	}
	return out, nil
}

// FilterOccupations keeps occupations that satisfy the constraints, in catalog order.
func FilterOccupations(occs []types.Occupation, c types.Constraints) []types.Occupation {
	if c.MinWage == 0 && c.MaxEducationLevel == nil {
		return occs
	}
	out := make([]types.Occupation, 0, len(occs))
	for _, o := range occs {
		if c.MinWage > 0 && o.Outlook.MedianWage < c.MinWage {
			continue
		}
		if c.MaxEducationLevel != nil && types.EducationOrdinal(o.EducationLevel) > float64(*c.MaxEducationLevel) {
			continue
		}
		out = append(out, o)
	}
	return out
}
