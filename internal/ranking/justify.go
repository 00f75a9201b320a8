package ranking

import (
	"fmt"
	"strings"

	"github.com/jonathan/talent-matcher/internal/types"
)

// Fallback reasons used when no rule fires
const (
	FallbackWeightedReason = "General profile match"
	FallbackSemanticReason = "General skill set and experience match"
)

// ReasonSeparator joins reasons into a justification line
const ReasonSeparator = " | "

// JustifyWeighted explains a weighted candidate score. Reasons are emitted in a
// fixed priority order.
func JustifyWeighted(p *types.StructuredProfile, sim *types.SimulatedProfile, b types.ScoreBreakdown) []string {
	var reasons []string

	switch loc := b.Get(types.FactorLocation); {
	case loc > 0.8:
		reasons = append(reasons, "Location ideal for role")
	case loc > 0.6:
		reasons = append(reasons, "Location workable")
	}

	if b.Get(types.FactorExperience) > 0.8 {
		years := 0
		if sim != nil {
			years = sim.YearsExperience
		}
		reasons = append(reasons, fmt.Sprintf("%d+ years relevant experience", years))
	}
	if b.Get(types.FactorTitle) > 0.8 {
		reasons = append(reasons, "Strong current role")
	}
	if p != nil && strings.Contains(strings.ToLower(p.Title), "founding") {
		reasons = append(reasons, "Previous founding experience")
	}

	switch sk := b.Get(types.FactorSkills); {
	case sk > 0.8:
		reasons = append(reasons, "Excellent skill match")
	case sk > 0.7:
		reasons = append(reasons, "Good technical alignment")
	}

	if b.Get(types.FactorGitHub) > 0 {
		reasons = append(reasons, "Active GitHub presence")
	}
	if b.Get(types.FactorEducation) > 0.9 {
		reasons = append(reasons, "Top-tier education")
	}
	if b.Get(types.FactorStartup) > 0.8 {
		reasons = append(reasons, "Strong startup background")
	}

	if len(reasons) == 0 {
		reasons = append(reasons, FallbackWeightedReason)
	}
	return reasons
}

// JustifySemantic explains an opportunity match from its tech matches, experience
// requirement, industry and source.
func JustifySemantic(opp *types.Opportunity, techMatches []string, exp *types.ExperienceRequirement) []string {
	var reasons []string

	if len(techMatches) > 0 {
		reasons = append(reasons, "Technical match: "+strings.Join(techMatches, ", "))
	}
	if exp != nil {
		reasons = append(reasons, exp.String())
	}
	if opp != nil {
		if opp.Industry != "" {
			reasons = append(reasons, "Industry: "+opp.Industry)
		}
		reasons = append(reasons, "Source: "+opp.DisplaySource())
	}

	if len(reasons) == 0 {
		reasons = append(reasons, FallbackSemanticReason)
	}
	return reasons
}

// JoinReasons renders reasons as a single justification line
func JoinReasons(reasons []string) string {
	return strings.Join(reasons, ReasonSeparator)
}
