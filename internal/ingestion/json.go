package ingestion

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/jonathan/talent-matcher/internal/parsing"
	"github.com/jonathan/talent-matcher/internal/types"
)

// jobFeed is the scraped-jobs JSON document
type jobFeed struct {
	Jobs []map[string]any `json:"jobs"`
}

// LoadOpportunitiesJSON reads a scraped-jobs feed from path.
func LoadOpportunitiesJSON(path string) ([]types.Opportunity, *SourceInfo, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, &Error{Path: path, Message: "failed to read file", Cause: err}
	}
	opps, err := ParseOpportunitiesJSON(content)
	if err != nil {
		return nil, nil, &Error{Path: path, Message: "failed to load opportunities", Cause: err}
	}
	return opps, NewSourceInfo(path, KindOpportunityJSON, content, len(opps)), nil
}

// ParseOpportunitiesJSON maps feed entries onto opportunities. Lower-case scraper
// keys (title, company, location, salary, workplace) take precedence over the
// export-style headers; fields absent from an entry get the feed defaults.
func ParseOpportunitiesJSON(data []byte) ([]types.Opportunity, error) {
	var feed jobFeed
	if err := json.Unmarshal(data, &feed); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	if feed.Jobs == nil {
		return nil, &Error{Message: `missing "jobs" array`}
	}

	opps := make([]types.Opportunity, 0, len(feed.Jobs))
	for i, job := range feed.Jobs {
		o := types.Opportunity{
			Role:         field(job, "", "title", colRole),
			Company:      field(job, "", "company", colCompany),
			Locations:    field(job, "", "location", colLocations),
			Workplace:    field(job, "", "workplace", colWorkplace),
			TechStack:    field(job, "", colTechStack),
			OneLiner:     field(job, "", colOneLiner),
			Equity:       field(job, DefaultEquity, colEquity),
			Visa:         field(job, DefaultVisa, colVisa),
			YOE:          field(job, DefaultYOE, colYOE),
			TeamSize:     field(job, DefaultTeamSize, colTeamSize),
			Funding:      field(job, DefaultFunding, colFunding),
			Requirements: field(job, "", colRequirements),
			Industry:     field(job, DefaultIndustry, colIndustry),
			Source:       types.SourceSRN,
		}
		if s, ok := parsing.ParseSalary(field(job, "", "salary", colSalary)); ok {
			o.Salary = s
		}
		o.ID = recordID(o.Source, i, o.Company, o.Role)
		opps = append(opps, o)
	}
	return opps, nil
}

// field returns the first present key's value as text, or def when no key is present.
func field(job map[string]any, def string, keys ...string) string {
	for _, k := range keys {
		v, ok := job[k]
		if !ok {
			continue
		}
		switch x := v.(type) {
		case nil:
			return ""
		case string:
			return strings.TrimSpace(x)
		case float64:
			return strconv.FormatFloat(x, 'f', -1, 64)
		case bool:
			return strconv.FormatBool(x)
		default:
			return fmt.Sprint(x)
		}
	}
	return def
}
