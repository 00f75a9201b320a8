// Package types provides type definitions for structured data used throughout the talent-matcher system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"
	"strings"
)

// Source constants record which feed an opportunity was loaded from.
// Provenance is displayed, never scored.
const (
	SourceParaform = "Paraform"
	SourceSRN      = "SRN"
	SourceHTML     = "HTML"
	SourceDatabase = "Database"
	SourceUnknown  = "Unknown"
)

// Opportunity represents a job posting that resumes are matched against.
// Opportunities are immutable once a corpus has been loaded.
type Opportunity struct {
	ID           string       `json:"id"`
	Company      string       `json:"company"`
	Role         string       `json:"role"`
	TechStack    string       `json:"tech_stack,omitempty"`
	OneLiner     string       `json:"one_liner,omitempty"`
	Requirements string       `json:"requirements,omitempty"`
	Industry     string       `json:"industry,omitempty"`
	Workplace    string       `json:"workplace,omitempty"`
	Locations    string       `json:"locations,omitempty"`
	YOE          string       `json:"yoe,omitempty"` // free-text years-of-experience requirement
	Salary       *SalaryRange `json:"salary,omitempty"`
	Equity       string       `json:"equity,omitempty"`
	Visa         string       `json:"visa,omitempty"`
	TeamSize     string       `json:"team_size,omitempty"`
	Funding      string       `json:"funding,omitempty"`
	Source       string       `json:"source"`
}

// CombinedText returns the text used to embed the opportunity: role, tech stack,
// one-liner, requirements, industry, workplace and YOE joined by single spaces.
// Absent fields contribute empty strings, so separators are always present.
func (o *Opportunity) CombinedText() string {
	return strings.Join([]string{
		o.Role,
		o.TechStack,
		o.OneLiner,
		o.Requirements,
		o.Industry,
		o.Workplace,
		o.YOE,
	}, " ")
}

// TechStackTerms splits the comma-separated tech stack into trimmed terms.
func (o *Opportunity) TechStackTerms() []string {
	if strings.TrimSpace(o.TechStack) == "" {
		return nil
	}
	parts := strings.Split(o.TechStack, ",")
	terms := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			terms = append(terms, t)
		}
	}
	return terms
}

// DisplaySource returns the provenance label, defaulting to Unknown.
func (o *Opportunity) DisplaySource() string {
	if o.Source == "" {
		return SourceUnknown
	}
	return o.Source
}

// SalaryRange is a normalized salary. Min and Max are kept in the order they were
// written; a reversed range is not corrected.
type SalaryRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// String formats the range as "$120,000 - $150,000".
func (s *SalaryRange) String() string {
	if s == nil {
		return "Salary not specified"
	}
	return fmt.Sprintf("$%s - $%s", groupThousands(int64(s.Min)), groupThousands(int64(s.Max)))
}

// groupThousands renders n with comma separators.
func groupThousands(n int64) string {
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	digits := fmt.Sprintf("%d", n)
	var sb strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(r)
	}
	return sign + sb.String()
}
