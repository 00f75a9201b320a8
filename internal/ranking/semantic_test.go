package ranking

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jonathan/talent-matcher/internal/embedding"
	"github.com/jonathan/talent-matcher/internal/index"
	"github.com/jonathan/talent-matcher/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubProvider maps trimmed text to fixed vectors and fails for texts in fail.
type stubProvider struct {
	vectors map[string][]float64
	fail    map[string]bool
}

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) Embed(_ context.Context, texts []string) ([][]float64, error) {
	out := make([][]float64, len(texts))
	for i, t := range texts {
		t = strings.TrimSpace(t)
		if s.fail[t] {
			return nil, errors.New("stub failure")
		}
		v, ok := s.vectors[t]
		if !ok {
			v = []float64{0, 1}
		}
		out[i] = v
	}
	return out, nil
}

func buildIndex(t *testing.T, corpus []types.Opportunity, p embedding.Provider) *index.Index {
	t.Helper()
	idx, err := index.Build(context.Background(), corpus, p)
	require.NoError(t, err)
	return idx
}

func TestSemanticEngine_EndToEnd(t *testing.T) {
	corpus := []types.Opportunity{
		{ID: "1", Company: "Acme", Role: "python backend engineer", TechStack: "Python, PostgreSQL", YOE: "3+ years", Industry: "Fintech", Source: types.SourceParaform},
		{ID: "2", Company: "Pixel", Role: "frontend react developer", TechStack: "React, TypeScript", Source: types.SourceSRN},
		{ID: "3", Company: "Infra", Role: "devops kubernetes engineer", TechStack: "Kubernetes, Terraform"},
	}
	e := NewSemanticEngine(buildIndex(t, corpus, embedding.NewHashingProvider(0)))

	results, err := e.Match(context.Background(), types.ResumeText{Name: "alice.txt", Text: "experienced python backend developer"})
	require.NoError(t, err)
	require.Len(t, results, 2)

	top := results[0]
	assert.Equal(t, "Acme", top.Opportunity.Company)
	assert.Equal(t, 1, top.Rank)
	assert.Equal(t, "alice.txt", top.QueryName)
	assert.Equal(t, []string{"Python"}, top.TechMatches)
	require.NotNil(t, top.ExperienceRequirement)
	assert.Equal(t, types.ExperienceAtLeast, top.ExperienceRequirement.Kind)
	assert.Equal(t,
		"Technical match: Python | Requires 3+ years of experience | Industry: Fintech | Source: Paraform",
		top.Justification)
	assert.Equal(t, top.Breakdown.Final, top.Score)
	assert.GreaterOrEqual(t, top.Score, results[1].Score)
}

func TestSemanticEngine_EqualSimilarityEarlierFirst(t *testing.T) {
	p := &stubProvider{vectors: map[string][]float64{
		"first":  {1, 0},
		"second": {1, 0},
		"resume": {1, 0},
	}}
	corpus := []types.Opportunity{{Role: "other"}, {Role: "first"}, {Role: "second"}}
	e := &SemanticEngine{Index: buildIndex(t, corpus, p), TopN: 3}

	results, err := e.Match(context.Background(), types.ResumeText{Name: "r", Text: "resume"})
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "first", results[0].Opportunity.Role)
	assert.Equal(t, "second", results[1].Opportunity.Role)
	assert.Equal(t, results[0].Score, results[1].Score)
	assert.Equal(t, []string{"Source: Unknown"}, results[0].Reasons)
}

func TestSemanticEngine_MatchAllInputOrderAndErrors(t *testing.T) {
	p := &stubProvider{
		vectors: map[string][]float64{"job": {1, 0}},
		fail:    map[string]bool{"broken resume": true},
	}
	e := &SemanticEngine{Index: buildIndex(t, []types.Opportunity{{Role: "job"}}, p), TopN: 1, Concurrency: 2}

	resumes := []types.ResumeText{
		{Name: "a", Text: "job"},
		{Name: "b", Text: "broken resume"},
		{Name: "c", Text: "something"},
	}
	out := e.MatchAll(context.Background(), resumes)
	require.Len(t, out, 3)

	assert.Equal(t, "a", out[0].ResumeName)
	assert.Len(t, out[0].Matches, 1)
	assert.Empty(t, out[0].Error)

	assert.Equal(t, "b", out[1].ResumeName)
	assert.NotEmpty(t, out[1].Error)
	assert.Empty(t, out[1].Matches)

	assert.Equal(t, "c", out[2].ResumeName)
	assert.Len(t, out[2].Matches, 1)
}

func TestSemanticEngine_EmptyCorpus(t *testing.T) {
	e := NewSemanticEngine(buildIndex(t, nil, &stubProvider{}))
	results, err := e.Match(context.Background(), types.ResumeText{Text: ""})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestTechMatches(t *testing.T) {
	opp := &types.Opportunity{TechStack: "Python, AWS,  React ,Go"}
	assert.Equal(t, []string{"Python", "AWS", "Go"}, TechMatches("Go and python on aws", opp))
	assert.Empty(t, TechMatches("anything", &types.Opportunity{}))
}

func TestExperienceRequirement_BlankOmitted(t *testing.T) {
	assert.Nil(t, experienceRequirement(&types.Opportunity{YOE: "  "}))

	req := experienceRequirement(&types.Opportunity{YOE: "senior level"})
	require.NotNil(t, req)
	assert.Equal(t, "Experience requirement: senior level", req.String())
}
