package types

import "strings"

// CompanySize values for a simulated profile
const (
	CompanySizeLarge   = "large"
	CompanySizeStartup = "startup"
)

// StructuredProfile is a candidate record for the weighted-scoring path.
type StructuredProfile struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Title        string `json:"current_title"`
	Organization string `json:"current_org"`
	Location     string `json:"location"`
	Education    string `json:"education"`
	GitHub       string `json:"github,omitempty"`
	LinkedIn     string `json:"linkedin,omitempty"`
}

// Name returns "First Last", trimmed.
func (p *StructuredProfile) Name() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// CurrentRole returns "Title @ Organization".
func (p *StructuredProfile) CurrentRole() string {
	return p.Title + " @ " + p.Organization
}

// SimulatedProfile holds attributes inferred from a sparse StructuredProfile.
// These are heuristic guesses treated as observed data; the derivation is
// deterministic for a given profile and reference year.
type SimulatedProfile struct {
	YearsExperience int      `json:"years_experience"`
	Level           int      `json:"level"`
	PreviousRoles   []string `json:"previous_roles"`
	CompanySize     string   `json:"company_size"`
	Skills          []string `json:"skills"`
}

// ResumeText is raw query text keyed by a caller-supplied name.
type ResumeText struct {
	Name string `json:"name"`
	Text string `json:"-"`
}
