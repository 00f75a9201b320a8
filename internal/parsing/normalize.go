// Package parsing normalizes noisy free-text fields (salary, experience, skill
// names) into comparable structured values.
package parsing

import (
	"sort"
	"strings"
)

// skillNormalizations maps common skill name variants to canonical names
var skillNormalizations = map[string]string{
	"golang":     "Go",
	"go lang":    "Go",
	"javascript": "JavaScript",
	"js":         "JavaScript",
	"typescript": "TypeScript",
	"ts":         "TypeScript",
	"k8s":        "Kubernetes",
	"kubernetes": "Kubernetes",
	"react.js":   "React",
	"reactjs":    "React",
	"vue.js":     "Vue",
	"vuejs":      "Vue",
	"node.js":    "Node.js",
	"nodejs":     "Node.js",
	"ci/cd":      "CI/CD",
	"cicd":       "CI/CD",
	"ml":         "Machine Learning",
	"pytorch":    "PyTorch",
	"tensorflow": "TensorFlow",
}

// NormalizeSkillName normalizes a skill name to its canonical form
func NormalizeSkillName(skillName string) string {
	normalized := strings.TrimSpace(skillName)
	if normalized == "" {
		return ""
	}

	lower := strings.ToLower(normalized)
	if canonical, ok := skillNormalizations[lower]; ok {
		return canonical
	}

	// All-caps single words that aren't known aliases: capitalize first letter only
	if normalized == strings.ToUpper(normalized) && len(normalized) > 1 && !strings.Contains(lower, " ") {
		return strings.ToUpper(normalized[:1]) + strings.ToLower(normalized[1:])
	}

	// Mixed case is kept as written
	if normalized != strings.ToUpper(normalized) && normalized != strings.ToLower(normalized) {
		return normalized
	}

	if normalized == lower && !strings.Contains(normalized, " ") {
		return strings.ToUpper(normalized[:1]) + normalized[1:]
	}

	return normalized
}

// SkillKey returns the case-insensitive comparison key for a skill name.
func SkillKey(skillName string) string {
	return strings.ToLower(NormalizeSkillName(skillName))
}

// NormalizeSkillSet returns the distinct comparison keys of skills, sorted.
// Empty names are dropped.
func NormalizeSkillSet(skills []string) []string {
	seen := make(map[string]bool, len(skills))
	keys := make([]string, 0, len(skills))
	for _, s := range skills {
		k := SkillKey(s)
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
