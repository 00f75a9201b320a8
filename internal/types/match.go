package types

import (
	"math"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Factor names used in score breakdowns
const (
	FactorLocation   = "location"
	FactorTitle      = "title"
	FactorExperience = "experience"
	FactorSkills     = "skills"
	FactorGitHub     = "github"
	FactorEducation  = "education"
	FactorStartup    = "startup"
	FactorTechStack  = "tech_stack"
	FactorSimilarity = "similarity"
)

// Mode identifies which ranking path produced a report
type Mode string

const (
	// ModeSemantic ranks opportunities against free text by embedding similarity
	ModeSemantic Mode = "semantic"
	// ModeWeighted ranks structured profiles with the weighted heuristic scorer
	ModeWeighted Mode = "weighted"
)

// FactorScore is one entry of a ScoreBreakdown
type FactorScore struct {
	Factor string  `json:"factor"`
	Score  float64 `json:"score"`
}

// ScoreBreakdown is the ordered per-factor scores behind one final score.
type ScoreBreakdown struct {
	Factors []FactorScore `json:"factors"`
	Final   float64       `json:"final"` // 0-10, one decimal
}

// Get returns the score for a factor; missing factors read as 0.
func (b *ScoreBreakdown) Get(factor string) float64 {
	s, _ := b.Lookup(factor)
	return s
}

// Lookup returns the score for a factor and whether it was present.
func (b *ScoreBreakdown) Lookup(factor string) (float64, bool) {
	if b == nil {
		return 0, false
	}
	for _, f := range b.Factors {
		if f.Factor == factor {
			return f.Score, true
		}
	}
	return 0, false
}

// MatchResult is a ranked pairing of a query with an opportunity or profile.
type MatchResult struct {
	Rank                  int                    `json:"rank"`
	QueryName             string                 `json:"query_name,omitempty"`
	Position              int                    `json:"position"` // index in the input corpus
	Opportunity           *Opportunity           `json:"opportunity,omitempty"`
	Profile               *StructuredProfile     `json:"profile,omitempty"`
	Simulated             *SimulatedProfile      `json:"simulated,omitempty"`
	Breakdown             ScoreBreakdown         `json:"breakdown"`
	Score                 float64                `json:"score"`
	TechMatches           []string               `json:"tech_matches,omitempty"`
	ExperienceRequirement *ExperienceRequirement `json:"experience_requirement,omitempty"`
	Reasons               []string               `json:"reasons"`
	Justification         string                 `json:"justification"`
}

// ResumeMatches groups the top matches for one resume.
type ResumeMatches struct {
	ResumeName string        `json:"resume_name"`
	Matches    []MatchResult `json:"matches"`
	Error      string        `json:"error,omitempty"`
}

// MatchReport is the semantic-mode output envelope.
type MatchReport struct {
	SessionID   uuid.UUID       `json:"session_id"`
	GeneratedAt time.Time       `json:"generated_at"`
	Mode        Mode            `json:"mode"`
	Provider    string          `json:"provider"`
	CorpusSize  int             `json:"corpus_size"`
	Results     []ResumeMatches `json:"results"`
}

// CandidateReport is the weighted-mode output envelope.
type CandidateReport struct {
	SessionID      uuid.UUID          `json:"session_id"`
	GeneratedAt    time.Time          `json:"generated_at"`
	Mode           Mode               `json:"mode"`
	RequiredSkills []string           `json:"required_skills"`
	Weights        map[string]float64 `json:"weights"`
	Considered     int                `json:"considered"`
	Candidates     []MatchResult      `json:"candidates"`
}

// RoundTo rounds v to the given number of decimal digits using the exact binary
// value of v, so 6.3499999... stays 6.3. Exact ties round to even.
func RoundTo(v float64, digits int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', digits, 64), 64)
	if err != nil {
		return v
	}
	return r
}

// MatchScore rescales a similarity or weighted sum to the 0-10 match score scale
// with one decimal digit. Values outside [0, 1] are not clamped.
func MatchScore(v float64) float64 {
	return RoundTo(v*10, 1)
}
