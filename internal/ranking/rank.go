package ranking

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jonathan/talent-matcher/internal/scoring"
	"github.com/jonathan/talent-matcher/internal/types"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds concurrent scoring and query work
const DefaultConcurrency = 8

// WeightedEngine ranks structured profiles by a weighted sum of attribute scores.
type WeightedEngine struct {
	Scorer         *scoring.Scorer
	Weights        Weights
	RequiredSkills []string
	// Now supplies the reference year for simulated experience. Defaults to time.Now.
	Now func() time.Time
	// Filter, when set, excludes candidates before they are ranked.
	Filter      *Filter
	Concurrency int
	Logger      *zap.Logger
}

// NewWeightedEngine creates an engine with default scorer and weights.
func NewWeightedEngine(requiredSkills []string) *WeightedEngine {
	return &WeightedEngine{
		Scorer:         scoring.New(nil),
		Weights:        DefaultWeights(),
		RequiredSkills: requiredSkills,
	}
}

// Rank scores every profile, orders the full set by descending final score with ties
// kept in input order, and returns the first topN. topN <= 0 returns all results.
func (e *WeightedEngine) Rank(ctx context.Context, profiles []types.StructuredProfile, topN int) ([]types.MatchResult, error) {
	scorer := e.Scorer
	if scorer == nil {
		scorer = scoring.New(nil)
	}
	weights := e.Weights
	if weights == nil {
		weights = DefaultWeights()
	}
	now := e.Now
	if now == nil {
		now = time.Now
	}
	logger := e.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	refYear := now().Year()

	results := make([]*types.MatchResult, len(profiles))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency(e.Concurrency))
	for i := range profiles {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			p := &profiles[i]
			sim := scorer.Simulate(p, refYear)

			ok, err := e.Filter.Allow(p, &sim)
			if err != nil {
				return fmt.Errorf("candidate %d (%s): %w", i, p.Name(), err)
			}
			if !ok {
				return nil
			}

			results[i] = e.score(scorer, weights, i, p, &sim)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ranked := make([]types.MatchResult, 0, len(profiles))
	for _, r := range results {
		if r != nil {
			ranked = append(ranked, *r)
		}
	}

	logger.Debug("candidates scored",
		zap.Int("total", len(profiles)),
		zap.Int("eligible", len(ranked)))

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if topN > 0 && topN < len(ranked) {
		ranked = ranked[:topN]
	}
	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked, nil
}

func (e *WeightedEngine) score(scorer *scoring.Scorer, weights Weights, pos int, p *types.StructuredProfile, sim *types.SimulatedProfile) *types.MatchResult {
	b := scorer.Score(scoring.Input{
		Profile:        p,
		Simulated:      sim,
		RequiredSkills: e.RequiredSkills,
	})
	b.Final = Aggregate(b, weights)

	reasons := JustifyWeighted(p, sim, b)
	return &types.MatchResult{
		Position:      pos,
		Profile:       p,
		Simulated:     sim,
		Breakdown:     b,
		Score:         b.Final,
		Reasons:       reasons,
		Justification: JoinReasons(reasons),
	}
}

func concurrency(n int) int {
	if n <= 0 {
		return DefaultConcurrency
	}
	return n
}
