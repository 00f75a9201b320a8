package types

import (
	"fmt"
	"strconv"
)

// ExperienceKind classifies a parsed years-of-experience requirement
type ExperienceKind string

const (
	// ExperienceAtLeast is an "N+" requirement
	ExperienceAtLeast ExperienceKind = "at_least"
	// ExperienceRange is an "N-M" requirement
	ExperienceRange ExperienceKind = "range"
	// ExperienceExactly is a bare "N" requirement
	ExperienceExactly ExperienceKind = "exactly"
	// ExperienceUnspecified carries unparseable text verbatim
	ExperienceUnspecified ExperienceKind = "unspecified"
)

// ExperienceRequirement is the structured form of a free-text YOE field.
// Unspecified requirements are a neutral signal, not a failure.
type ExperienceRequirement struct {
	Kind ExperienceKind `json:"kind"`
	Min  float64        `json:"min,omitempty"`
	Max  float64        `json:"max,omitempty"`
	Raw  string         `json:"raw"`
}

// IsNumeric reports whether the requirement was parsed into numbers.
func (e ExperienceRequirement) IsNumeric() bool {
	return e.Kind != ExperienceUnspecified && e.Kind != ""
}

// String renders the requirement the way it is shown in justifications.
func (e ExperienceRequirement) String() string {
	switch e.Kind {
	case ExperienceAtLeast:
		return fmt.Sprintf("Requires %s+ years of experience", formatYears(e.Min))
	case ExperienceRange:
		return fmt.Sprintf("Requires %s-%s years of experience", formatYears(e.Min), formatYears(e.Max))
	case ExperienceExactly:
		return fmt.Sprintf("Requires %s years of experience", formatYears(e.Min))
	default:
		return fmt.Sprintf("Experience requirement: %s", e.Raw)
	}
}

func formatYears(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
