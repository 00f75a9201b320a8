// Package outreach renders short recruiting messages for ranked candidates.
// Message templates are stored as JSON and embedded at compile time.
package outreach

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"text/template"
	"unicode/utf8"

	"github.com/jonathan/talent-matcher/internal/types"
)

//go:embed templates.json
var templateFiles embed.FS

const templateFile = "templates.json"

// MaxLength is the longest message Render returns, in characters.
const MaxLength = 300

// DefaultTemplate is the LinkedIn connection-note template
const DefaultTemplate = "linkedin"

const ellipsis = "..."

var (
	cache   map[string]*template.Template
	cacheMu sync.RWMutex
)

// Data is the template input for one candidate.
type Data struct {
	FirstName      string
	Role           string
	HiringCompany  string
	Years          int
	CurrentCompany string
	TopSkill       string
}

// NewData builds template input from a ranked candidate. The first inferred
// skill is used as the candidate's background.
func NewData(result types.MatchResult, role, hiringCompany string) Data {
	d := Data{Role: role, HiringCompany: hiringCompany}
	if p := result.Profile; p != nil {
		if fields := strings.Fields(p.FirstName); len(fields) > 0 {
			d.FirstName = fields[0]
		} else if fields := strings.Fields(p.Name()); len(fields) > 0 {
			d.FirstName = fields[0]
		}
		d.CurrentCompany = strings.TrimSpace(p.Organization)
	}
	if s := result.Simulated; s != nil {
		d.Years = s.YearsExperience
		if len(s.Skills) > 0 {
			d.TopSkill = s.Skills[0]
		}
	}
	return d
}

// Render executes the named template and caps the result at MaxLength characters.
func Render(name string, data Data) (string, error) {
	tmpl, err := lookup(name)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render template %q: %w", name, err)
	}
	return Truncate(buf.String(), MaxLength), nil
}

// Truncate shortens s to at most limit characters, ending in "..." when cut.
func Truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	if limit <= len(ellipsis) {
		return string([]rune(s)[:limit])
	}
	runes := []rune(s)[:limit-len(ellipsis)]
	return strings.TrimRight(string(runes), " ") + ellipsis
}

// Names returns the available template names, sorted.
func Names() ([]string, error) {
	templates, err := load()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(templates))
	for name := range templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func lookup(name string) (*template.Template, error) {
	templates, err := load()
	if err != nil {
		return nil, err
	}
	tmpl, ok := templates[name]
	if !ok {
		return nil, fmt.Errorf("template %q not found in %s", name, templateFile)
	}
	return tmpl, nil
}

// load parses and caches the embedded templates.
func load() (map[string]*template.Template, error) {
	cacheMu.RLock()
	if cache != nil {
		defer cacheMu.RUnlock()
		return cache, nil
	}
	cacheMu.RUnlock()

	data, err := templateFiles.ReadFile(templateFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read template file %s: %w", templateFile, err)
	}

	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse template file %s: %w", templateFile, err)
	}

	parsed := make(map[string]*template.Template, len(raw))
	for name, text := range raw {
		tmpl, err := template.New(name).Option("missingkey=error").Parse(text)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %q: %w", name, err)
		}
		parsed[name] = tmpl
	}

	cacheMu.Lock()
	cache = parsed
	cacheMu.Unlock()
	return parsed, nil
}
