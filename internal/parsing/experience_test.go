package parsing

import (
	"testing"

	"github.com/jonathan/talent-matcher/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestParseExperience(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantKind types.ExperienceKind
		wantMin  float64
		wantMax  float64
		wantText string
	}{
		{"at least", "5+ years", types.ExperienceAtLeast, 5, 0, "Requires 5+ years of experience"},
		{"range", "3-5 years", types.ExperienceRange, 3, 5, "Requires 3-5 years of experience"},
		{"range with spaces", "3 - 5 years", types.ExperienceRange, 3, 5, "Requires 3-5 years of experience"},
		{"exactly", "4 years", types.ExperienceExactly, 4, 4, "Requires 4 years of experience"},
		{"singular unit", "1 year", types.ExperienceExactly, 1, 1, "Requires 1 years of experience"},
		{"abbreviated unit", "2+ yrs", types.ExperienceAtLeast, 2, 0, "Requires 2+ years of experience"},
		{"capitalized unit", "7+ Years", types.ExperienceAtLeast, 7, 0, "Requires 7+ years of experience"},
		{"fractional", "2.5 years", types.ExperienceExactly, 2.5, 2.5, "Requires 2.5 years of experience"},
		{"bare number", "6", types.ExperienceExactly, 6, 6, "Requires 6 years of experience"},
		{"free text passes through", "senior level", types.ExperienceUnspecified, 0, 0, "Experience requirement: senior level"},
		{"not specified", "Not specified", types.ExperienceUnspecified, 0, 0, "Experience requirement: Not specified"},
		{"plus with words", "senior+", types.ExperienceUnspecified, 0, 0, "Experience requirement: senior+"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseExperience(tt.input)
			assert.Equal(t, tt.wantKind, got.Kind)
			assert.Equal(t, tt.wantMin, got.Min)
			assert.Equal(t, tt.wantMax, got.Max)
			assert.Equal(t, tt.input, got.Raw)
			assert.Equal(t, tt.wantText, got.String())
		})
	}
}

func TestParseExperience_UnspecifiedIsNeutral(t *testing.T) {
	got := ParseExperience("senior level")
	assert.False(t, got.IsNumeric())
	assert.Equal(t, "senior level", got.Raw)
}
