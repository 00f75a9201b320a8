package db

import (
	"github.com/jonathan/talent-matcher/internal/types"
)

// DefaultListLimit bounds list queries when the caller passes no limit
const DefaultListLimit = 50

// opportunityRow mirrors the opportunities table; optional columns are nullable.
type opportunityRow struct {
	ID           string
	Company      string
	Role         string
	TechStack    *string
	OneLiner     *string
	Requirements *string
	Industry     *string
	Workplace    *string
	Locations    *string
	YOE          *string
	SalaryMin    *float64
	SalaryMax    *float64
	Equity       *string
	Visa         *string
	TeamSize     *string
	Funding      *string
	Source       *string
}

// toOpportunity converts a row. A salary needs both bounds; otherwise it is
// left unspecified. Rows without a source are labelled as database records.
func (r *opportunityRow) toOpportunity() types.Opportunity {
	o := types.Opportunity{
		ID:           r.ID,
		Company:      r.Company,
		Role:         r.Role,
		TechStack:    deref(r.TechStack),
		OneLiner:     deref(r.OneLiner),
		Requirements: deref(r.Requirements),
		Industry:     deref(r.Industry),
		Workplace:    deref(r.Workplace),
		Locations:    deref(r.Locations),
		YOE:          deref(r.YOE),
		Equity:       deref(r.Equity),
		Visa:         deref(r.Visa),
		TeamSize:     deref(r.TeamSize),
		Funding:      deref(r.Funding),
		Source:       deref(r.Source),
	}
	if r.SalaryMin != nil && r.SalaryMax != nil {
		o.Salary = &types.SalaryRange{Min: *r.SalaryMin, Max: *r.SalaryMax}
	}
	if o.Source == "" {
		o.Source = types.SourceDatabase
	}
	return o
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
