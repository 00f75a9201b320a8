package parsing

import (
	"regexp"
	"strings"

	"github.com/jonathan/talent-matcher/internal/types"
)

// unitWords matches the unit words stripped before numeric coercion.
// Longer forms come first so "years" is not reduced to "s".
var unitWords = regexp.MustCompile(`(?i)years|yrs|year`)

// ParseExperience parses a years-of-experience requirement.
//
// "N+" is at least N years, "N-M" is N to M years and a bare number is exactly N
// years. Text that does not fit one of those shapes is passed through verbatim as
// an unspecified requirement; it never fails.
func ParseExperience(text string) types.ExperienceRequirement {
	unparsed := types.ExperienceRequirement{Kind: types.ExperienceUnspecified, Raw: text}

	switch {
	case strings.Contains(text, "+"):
		n, ok := parseAmount(stripUnits(strings.ReplaceAll(text, "+", "")))
		if !ok {
			return unparsed
		}
		return types.ExperienceRequirement{Kind: types.ExperienceAtLeast, Min: n, Raw: text}

	case strings.Contains(text, "-"):
		parts := strings.Split(text, "-")
		if len(parts) != 2 {
			return unparsed
		}
		lo, ok := parseAmount(stripUnits(parts[0]))
		if !ok {
			return unparsed
		}
		hi, ok := parseAmount(stripUnits(parts[1]))
		if !ok {
			return unparsed
		}
		return types.ExperienceRequirement{Kind: types.ExperienceRange, Min: lo, Max: hi, Raw: text}

	default:
		n, ok := parseAmount(stripUnits(text))
		if !ok {
			return unparsed
		}
		return types.ExperienceRequirement{Kind: types.ExperienceExactly, Min: n, Max: n, Raw: text}
	}
}

func stripUnits(s string) string {
	return strings.TrimSpace(unitWords.ReplaceAllString(s, ""))
}
