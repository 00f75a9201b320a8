package scoring

import (
	"strings"

	"github.com/jonathan/talent-matcher/internal/parsing"
	"github.com/jonathan/talent-matcher/internal/types"
)

// maxFactorScore caps every additive sub-score
const maxFactorScore = 1.0

// Input is everything a sub-scorer may look at
type Input struct {
	Profile        *types.StructuredProfile
	Simulated      *types.SimulatedProfile
	RequiredSkills []string
}

// Factor is a named, independent sub-scorer
type Factor struct {
	Name  string
	Score func(s *Scorer, in Input) float64
}

// Factors lists every sub-scorer in breakdown order. tech_stack is computed and
// reported but carries no weight in the default table.
var Factors = []Factor{
	{Name: types.FactorLocation, Score: func(s *Scorer, in Input) float64 { return s.Location(in.Profile.Location) }},
	{Name: types.FactorTitle, Score: func(s *Scorer, in Input) float64 { return s.Title(in.Profile.Title, in.Profile.Organization) }},
	{Name: types.FactorExperience, Score: func(s *Scorer, in Input) float64 { return s.Experience(in.Simulated) }},
	{Name: types.FactorSkills, Score: func(s *Scorer, in Input) float64 { return s.Skills(in.Simulated.Skills, in.RequiredSkills) }},
	{Name: types.FactorGitHub, Score: func(_ *Scorer, in Input) float64 { return GitHub(in.Profile.GitHub) }},
	{Name: types.FactorEducation, Score: func(s *Scorer, in Input) float64 { return s.Education(in.Profile.Education) }},
	{Name: types.FactorStartup, Score: func(s *Scorer, in Input) float64 { return s.Startup(in.Profile.Title, in.Profile.Organization) }},
	{Name: types.FactorTechStack, Score: func(s *Scorer, in Input) float64 { return s.TechStack(in.Profile.Title, in.Profile.Organization) }},
}

// Scorer evaluates sub-scores against a set of rules. It holds no mutable state.
type Scorer struct {
	rules *Rules
}

// New creates a Scorer; nil rules selects the embedded defaults.
func New(rules *Rules) *Scorer {
	if rules == nil {
		rules = DefaultRules()
	}
	return &Scorer{rules: rules}
}

// Rules returns the rule tables in use
func (s *Scorer) Rules() *Rules {
	return s.rules
}

// Score evaluates every factor. The returned breakdown has no Final value.
func (s *Scorer) Score(in Input) types.ScoreBreakdown {
	if in.Simulated == nil {
		in.Simulated = &types.SimulatedProfile{}
	}
	factors := make([]types.FactorScore, 0, len(Factors))
	for _, f := range Factors {
		factors = append(factors, types.FactorScore{Factor: f.Name, Score: f.Score(s, in)})
	}
	return types.ScoreBreakdown{Factors: factors}
}

// Location scores a location by case-sensitive substring match.
func (s *Scorer) Location(location string) float64 {
	r := s.rules.Location
	for _, city := range r.Primary {
		if strings.Contains(location, city) {
			return r.PrimaryScore
		}
	}
	for _, region := range r.Nearby {
		if strings.Contains(location, region) {
			return r.NearbyScore
		}
	}
	return r.DefaultScore
}

// Title scores the current title and organization.
func (s *Scorer) Title(title, org string) float64 {
	r := s.rules.Title
	title = strings.ToLower(title)
	org = strings.ToLower(org)

	score := 0.0
	for _, step := range r.Ladder {
		if strings.Contains(title, strings.ToLower(step.Keyword)) {
			score += step.Score
			break
		}
	}
	for _, b := range r.Bonuses {
		if containsAny(title, b.Keywords) {
			score += b.Score
		}
	}
	if containsAny(org, r.CompanyBonus.Keywords) {
		score += r.CompanyBonus.Score
	}
	return min(score, maxFactorScore)
}

// TechStack estimates stack familiarity from title and organization.
func (s *Scorer) TechStack(title, org string) float64 {
	r := s.rules.TechStack
	text := strings.ToLower(title + " " + org)

	score := r.Base
	for _, c := range r.Categories {
		if containsAny(text, c.Keywords) {
			score += r.PerCategory
		}
	}
	return min(score, maxFactorScore)
}

// Education scores education text by school tier.
func (s *Scorer) Education(education string) float64 {
	r := s.rules.Education
	lower := strings.ToLower(education)

	if containsAny(lower, r.TopTier.Schools) {
		return r.TopTier.Score
	}
	if containsAny(lower, r.SecondTier.Schools) {
		return r.SecondTier.Score
	}
	return r.Base
}

// Startup scores founding and early-stage background.
func (s *Scorer) Startup(title, org string) float64 {
	r := s.rules.Startup
	lowerTitle := strings.ToLower(title)
	lowerOrg := strings.ToLower(org)

	score := r.Base
	if r.FoundingKeyword != "" && strings.Contains(lowerTitle, strings.ToLower(r.FoundingKeyword)) {
		score += r.FoundingBonus
	}
	if containsAny(lowerTitle+" "+lowerOrg, r.Indicators) {
		score += r.IndicatorBonus
	}
	if !containsAny(lowerOrg, r.BigTech) {
		score += r.SmallCompanyBonus
	}
	return min(score, maxFactorScore)
}

// Experience scores simulated years and career progression.
func (s *Scorer) Experience(sim *types.SimulatedProfile) float64 {
	r := s.rules.Experience
	if sim == nil {
		return r.Base
	}

	score := r.Base
	switch {
	case sim.YearsExperience >= r.SeniorYears:
		score += r.SeniorBonus
	case sim.YearsExperience >= r.MidYears:
		score += r.MidBonus
	}
	if len(sim.PreviousRoles) >= r.ProgressionRoles {
		score += r.ProgressionBonus
	}
	return min(score, maxFactorScore)
}

// Skills scores the share of required skills present in skills, compared
// case-insensitively after alias canonicalization. An empty required set
// yields the configured neutral score.
func (s *Scorer) Skills(skills, required []string) float64 {
	r := s.rules.Skills

	req := parsing.NormalizeSkillSet(required)
	if len(req) == 0 {
		return r.EmptyRequiredScore
	}

	have := make(map[string]bool, len(skills))
	for _, k := range parsing.NormalizeSkillSet(skills) {
		have[k] = true
	}

	matched := 0
	for _, k := range req {
		if have[k] {
			matched++
		}
	}

	return min(r.Base+r.Span*float64(matched)/float64(len(req)), maxFactorScore)
}

// GitHub is 1 for a non-blank link and 0 otherwise.
func GitHub(link string) float64 {
	if strings.TrimSpace(link) != "" {
		return 1.0
	}
	return 0.0
}
