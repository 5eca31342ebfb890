// Package ranking orders occupations against a user profile with a baseline
// cosine scorer or a learned classifier.
package ranking

import (
	"context"
	"errors"
	"sort"

	"go.uber.org/zap"

	"github.com/jonathan/fairpath/internal/logger"
	"github.com/jonathan/fairpath/internal/model"
	"github.com/jonathan/fairpath/internal/types"
)

// ModelSource supplies the learned model, typically a *model.Loader
type ModelSource interface {
	Get(ctx context.Context) (*model.Artifact, error)
}

// Scored is one ranked occupation
type Scored struct {
	CareerID   string           `json:"career_id"`
	Score      float64          `json:"score"`
	Confidence types.Confidence `json:"confidence"`
	Method     types.Method     `json:"method"`
	// Index is the occupation's position in the input slice
	Index int `json:"-"`
}

// Result is the output of a ranking pass
type Result struct {
	Method       types.Method `json:"method"`
	ModelVersion string       `json:"model_version,omitempty"`
	Items        []Scored     `json:"items"`
}

// Engine ranks occupations.
type Engine struct {
	models     ModelSource
	thresholds Thresholds
	logger     *zap.Logger
}

// NewEngine returns an engine. models may be nil, in which case every ranking is baseline.
func NewEngine(models ModelSource, thresholds Thresholds, log *zap.Logger) *Engine {
	return &Engine{
		models:     models,
		thresholds: thresholds,
		logger:     logger.OrNop(log),
	}
}

// Thresholds returns the confidence bands in use.
func (e *Engine) Thresholds() Thresholds {
	return e.thresholds
}

// Rank scores every occupation and returns them best first, truncated to topN
// when topN > 0. Ties keep input order.
//
// With useModel set, the learned model is used when available and compatible
// with the vectors; otherwise the engine falls back to baseline scoring and the
// result is tagged accordingly. Rank never fails on model problems.
func (e *Engine) Rank(ctx context.Context, user types.UserVector, occupations []types.Occupation, topN int, useModel bool) Result {
	userVec := user.Combined()

	if useModel {
		if a := e.artifact(ctx, len(userVec)); a != nil {
			if items, ok := e.scoreAll(userVec, occupations, types.MethodModel, modelScorer(a)); ok {
				return Result{Method: types.MethodModel, ModelVersion: a.Version, Items: truncate(items, topN)}
			}
			e.logger.Warn("model scoring failed, falling back to baseline",
				zap.String(logger.FieldModelVersion, a.Version))
		}
	}

	items, _ := e.scoreAll(userVec, occupations, types.MethodBaseline, baselineScore)
	return Result{Method: types.MethodBaseline, Items: truncate(items, topN)}
}

// artifact returns a model compatible with combined vectors of length n, or nil.
func (e *Engine) artifact(ctx context.Context, n int) *model.Artifact {
	if e.models == nil {
		return nil
	}
	a, err := e.models.Get(ctx)
	if err != nil {
		if !errors.Is(err, model.ErrModelUnavailable) {
			e.logger.Debug("model not available", zap.Error(err))
		}
		return nil
	}
	if err := a.CheckDim(ScoringDim(n)); err != nil {
		e.logger.Warn("model incompatible with catalog, using baseline",
			zap.String(logger.FieldModelVersion, a.Version), zap.Error(err))
		return nil
	}
	return a
}

func (e *Engine) scoreAll(userVec []float64, occupations []types.Occupation, method types.Method, score scorer) ([]Scored, bool) {
	items := make([]Scored, 0, len(occupations))
	for i, occ := range occupations {
		s, err := score(userVec, occ.Combined())
		if err != nil {
			return nil, false
		}
		items = append(items, Scored{
			CareerID:   occ.CareerID,
			Score:      s,
			Confidence: e.thresholds.Band(s),
			Method:     method,
			Index:      i,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Score > items[j].Score
	})
	return items, true
}

func truncate(items []Scored, topN int) []Scored {
	if topN > 0 && len(items) > topN {
		return items[:topN]
	}
	return items
}
