package main

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/jonathan/talent-matcher/internal/config"
	"github.com/jonathan/talent-matcher/internal/types"
)

const testCandidatesCSV = `First name,Last name,Current Title,Current Org Name,Location,Education,GitHub,LinkedIn
Dana,Reyes,Sales Associate,Corner Retail,"Austin, TX",,,
Sam,Okafor,Senior Software Engineer,Stripe,"San Francisco, CA","Stanford University, 2015",https://github.com/samokafor,https://linkedin.com/in/samokafor
`

func TestRankCandidatesCommand_FlagsValidation(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		errorString string
	}{
		{
			name:        "Missing --candidates flag",
			args:        []string{"rank-candidates"},
			errorString: "required",
		},
		{
			name:        "Missing candidates file",
			args:        []string{"rank-candidates", "--candidates", "does-not-exist.csv"},
			errorString: "failed to load candidates",
		},
		{
			name:        "Invalid filter",
			args:        []string{"rank-candidates", "--candidates", "x.csv", "--filter", "simulated.years_experience >>"},
			errorString: "filter",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorString)
		})
	}
}

func TestRankCandidatesCommand_JSON(t *testing.T) {
	csvPath := writeTestFile(t, t.TempDir(), "candidates.csv", testCandidatesCSV)

	stdout, err := runCLI(t, "rank-candidates",
		"--candidates", csvPath,
		"--reference-year", "2025",
		"--format", "json",
	)
	require.NoError(t, err)

	var report types.CandidateReport
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	assert.Equal(t, types.ModeWeighted, report.Mode)
	assert.Equal(t, 2, report.Considered)
	assert.NotEmpty(t, report.RequiredSkills)

	require.Len(t, report.Candidates, 2)
	top := report.Candidates[0]
	require.NotNil(t, top.Profile)
	assert.Equal(t, "Sam", top.Profile.FirstName)
	assert.Equal(t, 1, top.Rank)
	require.NotNil(t, top.Simulated)
	assert.Equal(t, 10, top.Simulated.YearsExperience)
	assert.Greater(t, top.Score, report.Candidates[1].Score)
	assert.NotEmpty(t, top.Reasons)
}

func TestRankCandidatesCommand_Filter(t *testing.T) {
	csvPath := writeTestFile(t, t.TempDir(), "candidates.csv", testCandidatesCSV)

	stdout, err := runCLI(t, "rank-candidates",
		"--candidates", csvPath,
		"--filter", `profile.organization != "Stripe"`,
		"--format", "json",
	)
	require.NoError(t, err)

	var report types.CandidateReport
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	require.Len(t, report.Candidates, 1)
	assert.Equal(t, "Dana", report.Candidates[0].Profile.FirstName)
}

func TestRankCandidatesCommand_Text(t *testing.T) {
	dir := t.TempDir()
	csvPath := writeTestFile(t, dir, "candidates.csv", testCandidatesCSV)
	outPath := filepath.Join(dir, "ranked.json")

	stdout, err := runCLI(t, "rank-candidates",
		"-c", csvPath,
		"--skills", "Python,Go",
		"--out", outPath,
	)
	require.NoError(t, err)
	assert.Contains(t, stdout, "ROLE: Founding Engineer @ Probook AI")
	assert.Contains(t, stdout, "Required skills: Python, Go")
	assert.Contains(t, stdout, "TOP CANDIDATES")
	assert.Contains(t, stdout, "#1  Sam Okafor")
	assert.Contains(t, stdout, "SUGGESTED OUTREACH")
	assert.FileExists(t, outPath)
}

func TestNewWeightedEngine_UnbalancedWeightsWarn(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	cfg := config.Default()
	cfg.Ranking.Weights = map[string]float64{"location": 0.5, "title": 0.5, "skills": 0.2}

	engine, err := newWeightedEngine(&cfg, zap.New(core))
	require.NoError(t, err)
	require.NotNil(t, engine)
	assert.InDelta(t, 1.2, engine.Weights.Sum(), 1e-9)

	entries := logs.FilterMessage("ranking weights do not sum to 1").All()
	require.Len(t, entries, 1)
	assert.InDelta(t, 1.2, entries[0].ContextMap()["sum"], 1e-9)
}

func TestNewWeightedEngine_InvalidWeights(t *testing.T) {
	cfg := config.Default()
	cfg.Ranking.Weights = map[string]float64{"location": 1.2, "title": -0.2}

	_, err := newWeightedEngine(&cfg, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "negative")
}

func TestNewWeightedEngine_DefaultSkills(t *testing.T) {
	cfg := config.Default()
	engine, err := newWeightedEngine(&cfg, zap.NewNop())
	require.NoError(t, err)

	ranked, err := engine.Rank(context.Background(), []types.StructuredProfile{
		{FirstName: "Lee", Title: "Software Engineer", Organization: "Acme Robotics"},
	}, 0)
	require.NoError(t, err)
	require.Len(t, ranked, 1)
	assert.InDelta(t, 0.75, ranked[0].Breakdown.Get(types.FactorSkills), 1e-9)
	assert.Contains(t, ranked[0].Reasons, "Good technical alignment")
}

func TestRankCandidatesCommand_UnbalancedWeights(t *testing.T) {
	dir := t.TempDir()
	csvPath := writeTestFile(t, dir, "candidates.csv", testCandidatesCSV)
	cfgPath := writeTestFile(t, dir, "matcher.yaml", `
ranking:
  weights:
    location: 0.5
    title: 0.5
    skills: 0.2
`)

	stdout, err := runCLI(t, "--config", cfgPath, "rank-candidates",
		"--candidates", csvPath,
		"--format", "json",
	)
	require.NoError(t, err)

	var report types.CandidateReport
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	require.Len(t, report.Candidates, 2)
	assert.InDelta(t, 1.2, report.Weights["location"]+report.Weights["title"]+report.Weights["skills"], 1e-9)
	assert.Equal(t, "Sam", report.Candidates[0].Profile.FirstName)
}
