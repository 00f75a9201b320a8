package ingestion

import (
	"fmt"
	"regexp"
	"strings"
)

// knownTechnologies is scanned for in free-text job descriptions.
var knownTechnologies = []string{
	"Python", "JavaScript", "TypeScript", "React", "Node.js", "AWS",
	"GCP", "Azure", "Docker", "Kubernetes", "PostgreSQL", "MongoDB",
	"Redis", "GraphQL", "REST", "FastAPI", "Django", "Flask", "Vue",
	"Angular", "Next.js", "Express", "Go", "Rust", "Java", "C++",
	"TensorFlow", "PyTorch", "OpenAI", "Git", "CI/CD",
}

var industryKeywords = []struct {
	name     string
	keywords []string
}{
	{"AI", []string{"ai", "machine learning", "deep learning", "ml", "artificial intelligence"}},
	{"Fintech", []string{"fintech", "financial", "banking", "payment"}},
	{"Enterprise", []string{"enterprise", "b2b", "saas"}},
	{"Data", []string{"data", "analytics", "big data"}},
	{"DevTools", []string{"developer", "tools", "devtools", "dev tools"}},
}

var (
	yoeRangePattern    = regexp.MustCompile(`(\d+)\s*-\s*(\d+)\s*(?:years?|yrs?).+?experience`)
	yoeMinPattern      = regexp.MustCompile(`(\d+)\+?\s*(?:years?|yrs?).+?experience`)
	equityRangePattern = regexp.MustCompile(`(\d+(?:\.\d+)?%?\s*-\s*\d+(?:\.\d+)?%?)\s*equity`)
	equityPattern      = regexp.MustCompile(`(\d+(?:\.\d+)?%?)\s*equity`)
)

// Defaults for fields a feed does not provide
const (
	DefaultEquity       = "Not specified"
	DefaultVisa         = "Contact company"
	DefaultYOE          = "Not specified"
	DefaultTeamSize     = "Not specified"
	DefaultFunding      = "Not specified"
	DefaultIndustry     = "Tech"
	DefaultRequirements = "See job description"
	CompetitiveEquity   = "Competitive"
)

// ParseTechStack lists the known technologies mentioned in text, comma separated.
// Terms must not be embedded in a longer word.
func ParseTechStack(text string) string {
	lower := strings.ToLower(text)
	var found []string
	for _, tech := range knownTechnologies {
		if containsTerm(lower, strings.ToLower(tech)) {
			found = append(found, tech)
		}
	}
	return strings.Join(found, ", ")
}

// ParseYOE extracts a years-of-experience requirement such as "3 - 5 years" or
// "5+ years"; DefaultYOE when none is stated.
func ParseYOE(text string) string {
	lower := strings.ToLower(text)
	if m := yoeRangePattern.FindStringSubmatch(lower); m != nil {
		return fmt.Sprintf("%s - %s years", m[1], m[2])
	}
	if m := yoeMinPattern.FindStringSubmatch(lower); m != nil {
		return m[1] + "+ years"
	}
	return DefaultYOE
}

// ParseIndustry classifies text by keyword into a comma-separated industry list.
func ParseIndustry(text string) string {
	lower := strings.ToLower(text)
	var industries []string
	for _, ind := range industryKeywords {
		for _, kw := range ind.keywords {
			if strings.Contains(lower, kw) {
				industries = append(industries, ind.name)
				break
			}
		}
	}
	if len(industries) == 0 {
		return DefaultIndustry
	}
	return strings.Join(industries, ", ")
}

// ExtractEquity finds an equity figure such as "0.5% - 1%" in text.
func ExtractEquity(text string) string {
	lower := strings.ToLower(text)
	if m := equityRangePattern.FindStringSubmatch(lower); m != nil {
		return m[1]
	}
	if m := equityPattern.FindStringSubmatch(lower); m != nil {
		return m[1]
	}
	return CompetitiveEquity
}

// containsTerm reports whether term occurs in text with no letter or digit
// directly before or after it.
func containsTerm(text, term string) bool {
	if term == "" {
		return false
	}
	for start := 0; ; {
		i := strings.Index(text[start:], term)
		if i < 0 {
			return false
		}
		i += start
		end := i + len(term)
		if (i == 0 || !isWordByte(text[i-1])) && (end == len(text) || !isWordByte(text[end])) {
			return true
		}
		start = i + 1
	}
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}
