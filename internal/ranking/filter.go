package ranking

import (
	"fmt"
	"strings"

	"github.com/google/cel-go/cel"

	"github.com/jonathan/talent-matcher/internal/types"
)

// Filter is a compiled CEL eligibility expression evaluated per candidate. The
// expression sees two maps:
//
//	profile:   name, first_name, last_name, title, organization, location,
//	           education, github, linkedin
//	simulated: years_experience, level, company_size, skills, previous_roles
//
// Example: `profile.location.contains("New York") && simulated.years_experience >= 3`
//
// A compiled Filter is safe for concurrent use.
type Filter struct {
	expr string
	prg  cel.Program
}

// NewFilter compiles expr. An empty expression returns a nil Filter, which admits
// every candidate.
func NewFilter(expr string) (*Filter, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, nil
	}

	env, err := cel.NewEnv(
		cel.Variable("profile", cel.MapType(cel.StringType, cel.DynType)),
		cel.Variable("simulated", cel.MapType(cel.StringType, cel.DynType)),
	)
	if err != nil {
		return nil, &FilterError{Expression: expr, Message: "failed to create environment", Cause: err}
	}

	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, &FilterError{Expression: expr, Message: "compile error", Cause: issues.Err()}
	}

	prg, err := env.Program(ast)
	if err != nil {
		return nil, &FilterError{Expression: expr, Message: "program error", Cause: err}
	}

	return &Filter{expr: expr, prg: prg}, nil
}

// String returns the source expression
func (f *Filter) String() string {
	if f == nil {
		return ""
	}
	return f.expr
}

// Allow reports whether the candidate passes the filter.
func (f *Filter) Allow(p *types.StructuredProfile, sim *types.SimulatedProfile) (bool, error) {
	if f == nil {
		return true, nil
	}

	out, _, err := f.prg.Eval(filterInput(p, sim))
	if err != nil {
		return false, &FilterError{Expression: f.expr, Message: "eval error", Cause: err}
	}

	allowed, ok := out.Value().(bool)
	if !ok {
		return false, &FilterError{Expression: f.expr, Message: fmt.Sprintf("expression must return bool, got %T", out.Value())}
	}
	return allowed, nil
}

func filterInput(p *types.StructuredProfile, sim *types.SimulatedProfile) map[string]any {
	if sim == nil {
		sim = &types.SimulatedProfile{}
	}
	skills := append([]string{}, sim.Skills...)
	roles := append([]string{}, sim.PreviousRoles...)

	return map[string]any{
		"profile": map[string]any{
			"name":         p.Name(),
			"first_name":   p.FirstName,
			"last_name":    p.LastName,
			"title":        p.Title,
			"organization": p.Organization,
			"location":     p.Location,
			"education":    p.Education,
			"github":       p.GitHub,
			"linkedin":     p.LinkedIn,
		},
		"simulated": map[string]any{
			"years_experience": int64(sim.YearsExperience),
			"level":            int64(sim.Level),
			"company_size":     sim.CompanySize,
			"skills":           skills,
			"previous_roles":   roles,
		},
	}
}
