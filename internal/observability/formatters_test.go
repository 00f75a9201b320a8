package observability

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/talent-matcher/internal/types"
)

func sampleMatchReport() *types.MatchReport {
	return &types.MatchReport{
		Mode:       types.ModeSemantic,
		Provider:   "hashing/384",
		CorpusSize: 3,
		Results: []types.ResumeMatches{
			{
				ResumeName: "ada",
				Matches: []types.MatchResult{
					{
						Rank:  1,
						Score: 8.2,
						Opportunity: &types.Opportunity{
							Company: "Acme AI",
							Role:    "Backend Engineer",
							Salary:  &types.SalaryRange{Min: 120000, Max: 150000},
							Source:  types.SourceParaform,
						},
						Justification: "Technical match: Python | Requires 3+ years of experience | Source: Paraform",
					},
					{
						Rank:          2,
						Score:         6.1,
						Opportunity:   &types.Opportunity{Company: "Beta", Role: "Data Engineer"},
						Justification: "General skill set and experience match",
					},
				},
			},
			{ResumeName: "grace", Error: "embedding provider hashing/384: boom"},
			{ResumeName: "empty"},
		},
	}
}

func TestPrintMatchReport(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintMatchReport(sampleMatchReport())
	output := buf.String()

	assert.Contains(t, output, "MATCHES: ada")
	assert.Contains(t, output, "#1  Acme AI - Backend Engineer")
	assert.Contains(t, output, "Score: 8.2/10")
	assert.Contains(t, output, "Source: Paraform")
	assert.Contains(t, output, "$120,000 - $150,000")
	assert.Contains(t, output, "Source: Unknown")
	assert.Contains(t, output, "Salary not specified")
	assert.Contains(t, output, "Technical match: Python")
	assert.Contains(t, output, "⚠ embedding provider hashing/384: boom")
	assert.Contains(t, output, "No matching opportunities.")
}

func TestPrintMatchReport_Empty(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintMatchReport(nil)
	assert.Empty(t, buf.String())

	p.PrintMatchReport(&types.MatchReport{})
	assert.Contains(t, buf.String(), "No results to display.")
}

func TestPrintMatchReport_BoxLinesAligned(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintMatchReport(sampleMatchReport())

	for _, line := range strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n") {
		assert.Equal(t, boxWidth, utf8.RuneCountInString(line), line)
	}
}

func sampleCandidateReport(n int) *types.CandidateReport {
	report := &types.CandidateReport{Mode: types.ModeWeighted, Considered: n}
	for i := 0; i < n; i++ {
		report.Candidates = append(report.Candidates, types.MatchResult{
			Rank:  i + 1,
			Score: 9.0 - float64(i)*0.5,
			Profile: &types.StructuredProfile{
				FirstName:    "Candidate",
				LastName:     string(rune('A' + i)),
				Title:        "Senior Engineer",
				Organization: "Stripe",
				LinkedIn:     "https://linkedin.com/in/example",
			},
			Simulated: &types.SimulatedProfile{
				YearsExperience: 8,
				Skills:          []string{"AWS", "Python"},
			},
			Justification: "Strong location match | Senior-level experience",
		})
	}
	return report
}

func TestPrintCandidateReport(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintCandidateReport(sampleCandidateReport(2))
	output := buf.String()

	assert.Contains(t, output, "TOP CANDIDATES")
	assert.Contains(t, output, "Considered 2 candidates")
	assert.Contains(t, output, "#1  Candidate A")
	assert.Contains(t, output, "Score: 9.0/10")
	assert.Contains(t, output, "Current: Senior Engineer @ Stripe")
	assert.Contains(t, output, "Experience: 8+ years")
	assert.Contains(t, output, "Key Skills: AWS, Python")
	assert.Contains(t, output, "Why: Strong location match")
	assert.NotContains(t, output, "more candidates")
}

func TestPrintCandidateReport_Limit(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).WithMaxItems(2).PrintCandidateReport(sampleCandidateReport(4))
	output := buf.String()

	assert.Contains(t, output, "#2  Candidate B")
	assert.NotContains(t, output, "#3  Candidate C")
	assert.Contains(t, output, "... and 2 more candidates")
}

func TestPrintCandidateReport_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintCandidateReport(&types.CandidateReport{})
	assert.Contains(t, buf.String(), "No candidates to display.")
}

func TestPrintOutreach(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintOutreach("   ")
	assert.Empty(t, buf.String())

	msg := "Hi Ada, I'm reaching out about a Founding Engineer role at Probook AI. Given your 6+ years of experience at Scale AI, I'd love to chat."
	p.PrintOutreach(msg)
	output := buf.String()
	assert.Contains(t, output, "SUGGESTED OUTREACH")
	assert.Contains(t, output, "Hi Ada,")
	assert.NotContains(t, output, "...")
}

func TestPrintRoleRequirements(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintRoleRequirements("ROLE", nil)
	assert.Empty(t, buf.String())

	p.PrintRoleRequirements("ROLE REQUIREMENTS", []string{"Tech Stack: AWS, Python", "Location: New York"})
	assert.Contains(t, buf.String(), "• Tech Stack: AWS, Python")
}

func TestWrap(t *testing.T) {
	assert.Nil(t, wrap("  ", 10))
	assert.Equal(t, []string{"one two", "three"}, wrap("one two three", 8))
	assert.Equal(t, []string{"supercalifragilistic"}, wrap("supercalifragilistic", 5))
}

func TestClipAndPad(t *testing.T) {
	assert.Equal(t, "abc", clip("abc", 5))
	assert.Equal(t, "ab...", clip("abcdefgh", 5))
	assert.Equal(t, "ab   ", pad("ab", 5))
	assert.Equal(t, "abcdef", pad("abcdef", 5))
}
