package scoring

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/jonathan/talent-matcher/internal/types"
)

var yearPattern = regexp.MustCompile(`\d{4}`)

// GraduationYear returns the earliest four-digit year in the education text.
func GraduationYear(education string) (int, bool) {
	matches := yearPattern.FindAllString(education, -1)
	if len(matches) == 0 {
		return 0, false
	}
	earliest := 0
	for i, m := range matches {
		y, err := strconv.Atoi(m)
		if err != nil {
			continue
		}
		if i == 0 || y < earliest {
			earliest = y
		}
	}
	return earliest, true
}

// Simulate derives the inferred attributes of a profile. referenceYear is the
// year experience is counted up to.
func (s *Scorer) Simulate(p *types.StructuredProfile, referenceYear int) types.SimulatedProfile {
	rules := s.rules.Profile

	grad, ok := GraduationYear(p.Education)
	if !ok {
		grad = rules.ReferenceYearDefault
	}
	years := referenceYear - grad

	level := s.Level(p.Title)

	path := rules.CareerPaths[level]
	keep := max(0, min(len(path), years/2))
	roles := append([]string{}, path[:keep]...)

	size := types.CompanySizeStartup
	if containsAny(strings.ToLower(p.Organization), rules.BigCompanies) {
		size = types.CompanySizeLarge
	}

	return types.SimulatedProfile{
		YearsExperience: years,
		Level:           level,
		PreviousRoles:   roles,
		CompanySize:     size,
		Skills:          s.simulatedSkills(p.Title, p.Organization),
	}
}

// Level maps a title to a seniority level using the first matching rule.
func (s *Scorer) Level(title string) int {
	lower := strings.ToLower(title)
	for _, lr := range s.rules.Profile.Levels {
		if containsAny(lower, lr.Keywords) {
			return lr.Level
		}
	}
	return s.rules.Profile.DefaultLevel
}

func (s *Scorer) simulatedSkills(title, org string) []string {
	title = strings.ToLower(title)
	org = strings.ToLower(org)

	set := make(map[string]bool)
	for _, sk := range s.rules.Profile.BaseSkills {
		set[sk] = true
	}
	for _, g := range s.rules.Profile.SkillGroups {
		if containsAny(title, g.TitleKeywords) || containsAny(org, g.OrgKeywords) {
			for _, sk := range g.Skills {
				set[sk] = true
			}
		}
	}

	skills := make([]string, 0, len(set))
	for sk := range set {
		skills = append(skills, sk)
	}
	sort.Strings(skills)
	return skills
}

// containsAny reports whether text contains any of the lower-cased keywords.
func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if kw != "" && strings.Contains(text, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
