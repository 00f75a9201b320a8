package ranking

import (
	"testing"

	"github.com/jonathan/talent-matcher/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFilter_Empty(t *testing.T) {
	f, err := NewFilter("   ")
	require.NoError(t, err)
	assert.Nil(t, f)

	ok, err := f.Allow(&types.StructuredProfile{}, nil)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestFilter_Allow(t *testing.T) {
	p := &types.StructuredProfile{FirstName: "Ada", Location: "New York, NY", GitHub: "https://github.com/ada"}
	sim := &types.SimulatedProfile{YearsExperience: 6, Skills: []string{"Git", "Python"}}

	tests := []struct {
		expr string
		want bool
	}{
		{`profile.location.contains("New York")`, true},
		{`simulated.years_experience >= 3`, true},
		{`simulated.years_experience > 10`, false},
		{`"Python" in simulated.skills`, true},
		{`profile.github != "" && profile.name == "Ada"`, true},
		{`profile.location.startsWith("Boston")`, false},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			f, err := NewFilter(tt.expr)
			require.NoError(t, err)
			got, err := f.Allow(p, sim)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.expr, f.String())
		})
	}
}

func TestNewFilter_CompileError(t *testing.T) {
	_, err := NewFilter(`profile.location ==`)
	var fe *FilterError
	require.ErrorAs(t, err, &fe)
	assert.Contains(t, err.Error(), "compile error")
}

func TestFilter_NonBoolResult(t *testing.T) {
	f, err := NewFilter(`profile.location`)
	require.NoError(t, err)

	_, err = f.Allow(&types.StructuredProfile{Location: "NYC"}, nil)
	assert.ErrorContains(t, err, "must return bool")
}
