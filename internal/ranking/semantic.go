package ranking

import (
	"context"
	"strings"

	"github.com/jonathan/talent-matcher/internal/index"
	"github.com/jonathan/talent-matcher/internal/parsing"
	"github.com/jonathan/talent-matcher/internal/types"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultSemanticTopN is the number of opportunities reported per resume
const DefaultSemanticTopN = 2

// SemanticEngine matches free-text resumes against an opportunity index.
type SemanticEngine struct {
	Index       *index.Index
	TopN        int
	Concurrency int
	Logger      *zap.Logger
}

// NewSemanticEngine creates an engine over idx with the default TopN.
func NewSemanticEngine(idx *index.Index) *SemanticEngine {
	return &SemanticEngine{Index: idx, TopN: DefaultSemanticTopN}
}

// Match returns the top opportunities for one resume, each with tech matches, the
// parsed experience requirement and a justification.
func (e *SemanticEngine) Match(ctx context.Context, resume types.ResumeText) ([]types.MatchResult, error) {
	topN := e.TopN
	if topN == 0 {
		topN = DefaultSemanticTopN
	}

	hits, err := e.Index.Query(ctx, resume.Text, topN)
	if err != nil {
		return nil, err
	}

	results := make([]types.MatchResult, len(hits))
	for i, h := range hits {
		tech := TechMatches(resume.Text, h.Opportunity)
		exp := experienceRequirement(h.Opportunity)
		reasons := JustifySemantic(h.Opportunity, tech, exp)

		results[i] = types.MatchResult{
			Rank:        i + 1,
			QueryName:   resume.Name,
			Position:    h.Position,
			Opportunity: h.Opportunity,
			Breakdown: types.ScoreBreakdown{
				Factors: []types.FactorScore{{Factor: types.FactorSimilarity, Score: h.Similarity}},
				Final:   h.Score,
			},
			Score:                 h.Score,
			TechMatches:           tech,
			ExperienceRequirement: exp,
			Reasons:               reasons,
			Justification:         JoinReasons(reasons),
		}
	}
	return results, nil
}

// MatchAll matches every resume concurrently. Results are in input order; a failed
// query is recorded on its own entry and does not stop the others.
func (e *SemanticEngine) MatchAll(ctx context.Context, resumes []types.ResumeText) []types.ResumeMatches {
	logger := e.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	out := make([]types.ResumeMatches, len(resumes))

	var g errgroup.Group
	g.SetLimit(concurrency(e.Concurrency))
	for i, r := range resumes {
		g.Go(func() error {
			matches, err := e.Match(ctx, r)
			out[i] = types.ResumeMatches{ResumeName: r.Name, Matches: matches}
			if err != nil {
				logger.Warn("resume match failed", zap.String("resume", r.Name), zap.Error(err))
				out[i].Error = err.Error()
				out[i].Matches = []types.MatchResult{}
			}
			return nil
		})
	}
	_ = g.Wait()

	return out
}

// TechMatches returns the opportunity's tech-stack terms that appear in text,
// compared case-insensitively, in tech-stack order.
func TechMatches(text string, opp *types.Opportunity) []string {
	lower := strings.ToLower(text)
	var matches []string
	for _, term := range opp.TechStackTerms() {
		if strings.Contains(lower, strings.ToLower(term)) {
			matches = append(matches, term)
		}
	}
	return matches
}

func experienceRequirement(opp *types.Opportunity) *types.ExperienceRequirement {
	if strings.TrimSpace(opp.YOE) == "" {
		return nil
	}
	req := parsing.ParseExperience(opp.YOE)
	return &req
}
