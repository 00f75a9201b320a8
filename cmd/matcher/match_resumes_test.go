package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/talent-matcher/internal/schemas"
	"github.com/jonathan/talent-matcher/internal/types"
)

const testOpportunitiesCSV = `Company,Role,Locations,Salary,Tech Stack,YOE,Requirements
Snakebyte,Python Backend Engineer,Remote,$150k - $190k,"Python, Django, PostgreSQL",3+ years,Build Python backend services with Django and PostgreSQL
Pixelworks,Frontend Designer,"New York, NY",$120k - $150k,"React, CSS, Figma",2-4 years,Design React interfaces and CSS component libraries
Closers Inc,Account Executive,"Austin, TX",,Salesforce,,Close enterprise sales deals and manage quotas
`

func setupMatchInputs(t *testing.T) (csvPath, resumesDir string) {
	t.Helper()
	dir := t.TempDir()
	csvPath = writeTestFile(t, dir, "jobs.csv", testOpportunitiesCSV)

	resumesDir = filepath.Join(dir, "resumes")
	require.NoError(t, os.MkdirAll(resumesDir, 0o755))
	writeTestFile(t, resumesDir, "alice.txt", "Experienced Python backend developer building Django services on PostgreSQL")
	return csvPath, resumesDir
}

func TestMatchResumesCommand_FlagsValidation(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		errorString string
	}{
		{
			name:        "Missing --resumes flag",
			args:        []string{"match-resumes", "--opportunities", "jobs.csv"},
			errorString: "required",
		},
		{
			name:        "Unknown format",
			args:        []string{"match-resumes", "--resumes", ".", "--opportunities", "jobs.csv", "--format", "xml"},
			errorString: "unknown output format",
		},
		{
			name:        "No sources",
			args:        []string{"match-resumes", "--resumes", ".", "--provider", "hashing"},
			errorString: "no opportunity sources",
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

func TestMatchResumesCommand_JSON(t *testing.T) {
	csvPath, resumesDir := setupMatchInputs(t)
	outPath := filepath.Join(t.TempDir(), "out", "matches.json")

	stdout, err := runCLI(t, "match-resumes",
		"--opportunities", csvPath,
		"--resumes", resumesDir,
		"--provider", "hashing",
		"--format", "json",
		"--out", outPath,
	)
	require.NoError(t, err)

	var report types.MatchReport
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	assert.Equal(t, types.ModeSemantic, report.Mode)
	assert.Equal(t, "hashing/384", report.Provider)
	assert.Equal(t, 3, report.CorpusSize)

	require.Len(t, report.Results, 1)
	rm := report.Results[0]
	assert.Equal(t, "alice", rm.ResumeName)
	require.Len(t, rm.Matches, 2)
	assert.Equal(t, 1, rm.Matches[0].Rank)
	require.NotNil(t, rm.Matches[0].Opportunity)
	assert.Equal(t, "Python Backend Engineer", rm.Matches[0].Opportunity.Role)
	assert.Contains(t, rm.Matches[0].TechMatches, "Python")
	assert.NotEmpty(t, rm.Matches[0].Justification)
	assert.GreaterOrEqual(t, rm.Matches[0].Score, rm.Matches[1].Score)

	// The file copy is the same report and passes its schema
	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.NoError(t, schemas.ValidateBytes(schemas.MatchReportSchema, data))
}

func TestMatchResumesCommand_Text(t *testing.T) {
	csvPath, resumesDir := setupMatchInputs(t)

	stdout, err := runCLI(t, "match-resumes",
		"-o", csvPath,
		"-r", resumesDir,
		"--provider", "hashing",
		"--top", "1",
	)
	require.NoError(t, err)
	assert.Contains(t, stdout, "MATCHES: alice")
	assert.Contains(t, stdout, "Snakebyte - Python Backend Engineer")
	assert.NotContains(t, stdout, "Closers Inc")
}

func TestMatchResumesCommand_SkipsBrokenSource(t *testing.T) {
	csvPath, resumesDir := setupMatchInputs(t)

	stdout, err := runCLI(t, "match-resumes",
		"--opportunities", csvPath,
		"--opportunities", filepath.Join(t.TempDir(), "missing.json"),
		"--resumes", resumesDir,
		"--provider", "hashing",
		"--format", "json",
	)
	require.NoError(t, err)

	var report types.MatchReport
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	assert.Equal(t, 3, report.CorpusSize)
}
