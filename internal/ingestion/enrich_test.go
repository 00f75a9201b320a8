package ingestion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTechStack(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"symbols", "Experience with C++ and Node.js, CI/CD", "Node.js, C++, CI/CD"},
		{"no partial words", "Django and Golang", "Django"},
		{"longer term only", "Modern JavaScript", "JavaScript"},
		{"case insensitive", "PYTHON and react", "Python, React"},
		{"none", "Consumer social app", ""},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseTechStack(tt.text))
		})
	}
}

func TestParseYOE(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"range", "Requires 2-4 yrs of experience", "2 - 4 years"},
		{"spaced range", "3 - 5 years of relevant experience", "3 - 5 years"},
		{"minimum", "At least 7 years experience", "7+ years"},
		{"plus", "5+ years of backend experience", "5+ years"},
		{"none", "No requirement listed", DefaultYOE},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseYOE(tt.text))
		})
	}
}

func TestParseIndustry(t *testing.T) {
	assert.Equal(t, "AI, Fintech", ParseIndustry("AI-powered banking platform"))
	assert.Equal(t, "Enterprise", ParseIndustry("B2B SaaS"))
	assert.Equal(t, DefaultIndustry, ParseIndustry("Consumer social app"))
	assert.Equal(t, DefaultIndustry, ParseIndustry(""))
}

func TestExtractEquity(t *testing.T) {
	assert.Equal(t, "0.5% - 1%", ExtractEquity("0.5% - 1% equity"))
	assert.Equal(t, "1%", ExtractEquity("$120k + 1% Equity"))
	assert.Equal(t, CompetitiveEquity, ExtractEquity("stock options"))
}
