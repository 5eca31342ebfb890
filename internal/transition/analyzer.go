package transition

import (
	"context"

	"go.uber.org/zap"

	"github.com/jonathan/fairpath/internal/catalog"
	"github.com/jonathan/fairpath/internal/logger"
	"github.com/jonathan/fairpath/internal/types"
)

// CatalogSource supplies the loaded catalog, typically a *catalog.Cache
type CatalogSource interface {
	Get(ctx context.Context) (*catalog.Catalog, error)
}

// Analyzer produces transition reports for career ids in the catalog.
type Analyzer struct {
	catalogs CatalogSource
	logger   *zap.Logger
}

// NewAnalyzer returns an analyzer over the given catalog source.
func NewAnalyzer(catalogs CatalogSource, log *zap.Logger) *Analyzer {
	return &Analyzer{catalogs: catalogs, logger: logger.OrNop(log)}
}

// Analyze builds the full report for switching from sourceID to targetID.
// Unknown ids yield a *types.UnresolvedEntityError naming every missing id.
func (a *Analyzer) Analyze(ctx context.Context, sourceID, targetID string) (*types.TransitionReport, error) {
	c, err := a.catalogs.Get(ctx)
	if err != nil {
		return nil, err
	}
	return a.analyze(c, sourceID, targetID)
}

// AnalyzeBatch analyzes each pair independently. Unresolved ids are recorded
// on the pair's result and do not stop the batch; a catalog failure does.
func (a *Analyzer) AnalyzeBatch(ctx context.Context, pairs []types.TransitionPair) ([]types.TransitionResult, error) {
	c, err := a.catalogs.Get(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]types.TransitionResult, len(pairs))
	for i, p := range pairs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		report, err := a.analyze(c, p.SourceCareerID, p.TargetCareerID)
		results[i] = types.TransitionResult{Pair: p, Report: report, Err: err}
	}
	return results, nil
}

func (a *Analyzer) analyze(c *catalog.Catalog, sourceID, targetID string) (*types.TransitionReport, error) {
	source, srcOK := c.Lookup(sourceID)
	target, tgtOK := c.Lookup(targetID)
	if !srcOK || !tgtOK {
		var missing []string
		if !srcOK {
			missing = append(missing, sourceID)
		}
		if !tgtOK {
			missing = append(missing, targetID)
		}
		a.logger.Debug("transition with unknown occupation",
			logger.TransitionFields(sourceID, targetID)...)
		return nil, &types.UnresolvedEntityError{CareerIDs: missing}
	}

	overlap := ComputeSkillOverlap(source, target, c.SkillNames)
	difficulty := ClassifyDifficulty(overlap.OverlapPercentage, overlap.NumToLearn, overlap.NumTransferable)

	return &types.TransitionReport{
		SourceCareer: types.CareerRef{CareerID: source.CareerID, Name: source.Name},
		TargetCareer: types.CareerRef{CareerID: target.CareerID, Name: target.Name},
		SkillOverlap: types.OverlapSummary{
			Percentage:              overlap.OverlapPercentage,
			TransferableSkillsCount: overlap.NumTransferable,
			SkillsToLearnCount:      overlap.NumToLearn,
			OptionalSkillsCount:     overlap.NumOptional,
		},
		TransferMap: types.TransferMap{
			TransfersDirectly: overlap.TransfersDirectly,
			NeedsLearning:     overlap.NeedsLearning,
			OptionalSkills:    overlap.OptionalSkills,
		},
		Difficulty:            difficulty,
		TransitionTime:        EstimateTransitionTime(difficulty, overlap.NumToLearn, overlap.OverlapPercentage),
		SuccessRiskAssessment: AssessSuccessFactors(source, target, overlap),
	}, nil
}
