package ingestion

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/talent-matcher/internal/parsing"
	"github.com/jonathan/talent-matcher/internal/types"
)

// Selectors for the job cards on a saved SRN listing page
const (
	srnCardSelector      = ".clickable-element.bubble-element.Group.baTaYaDaT"
	srnCompanySelector   = ".bubble-element.Text.baTaYaDaL"
	srnRoleSelector      = ".bubble-element.Text.baTaYaGaR0"
	srnLocationSelector  = ".bubble-element.Text.baTaYaDe"
	srnSalarySelector    = ".bubble-element.Text.baTaYaEf"
	srnWorkplaceSelector = ".bubble-element.Text.baTaYaEs"
)

// postingSelectors locate the description on a single saved job posting.
var postingSelectors = []string{
	".job-description",
	".job-content",
	"#job-description",
	"#job-content",
	".posting-content",
	".job-details",
	"[data-testid='job-description']",
	"main",
	"article",
	".content",
	"#content",
}

// LoadHTMLPostings reads a saved HTML page. A listing page with job cards yields
// one opportunity per card; any other page is treated as a single posting.
func LoadHTMLPostings(path string) ([]types.Opportunity, *SourceInfo, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, &Error{Path: path, Message: "failed to read file", Cause: err}
	}
	opps, err := ParseHTMLPostings(content, path)
	if err != nil {
		return nil, nil, &Error{Path: path, Message: "failed to parse postings", Cause: err}
	}
	return opps, NewSourceInfo(path, KindHTML, content, len(opps)), nil
}

// ParseHTMLPostings extracts opportunities from HTML. name seeds record IDs.
func ParseHTMLPostings(content []byte, name string) ([]types.Opportunity, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("script, style, noscript").Remove()

	if cards := doc.Find(srnCardSelector); cards.Length() > 0 {
		return parseListingCards(cards, name), nil
	}

	opp, ok := parseSinglePosting(doc, name)
	if !ok {
		return nil, &Error{Message: "no job posting found"}
	}
	return []types.Opportunity{opp}, nil
}

func parseListingCards(cards *goquery.Selection, name string) []types.Opportunity {
	opps := make([]types.Opportunity, 0, cards.Length())
	cards.Each(func(i int, card *goquery.Selection) {
		description := cleanWhitespace(card.Text())
		o := types.Opportunity{
			Company:      selectionText(card, srnCompanySelector),
			Role:         selectionText(card, srnRoleSelector),
			Locations:    selectionText(card, srnLocationSelector),
			Workplace:    selectionText(card, srnWorkplaceSelector),
			Visa:         DefaultVisa,
			TeamSize:     DefaultTeamSize,
			Funding:      DefaultFunding,
			Requirements: DefaultRequirements,
			Equity:       DefaultEquity,
			Source:       types.SourceSRN,
		}
		if o.Workplace == "" {
			o.Workplace = "Not specified"
		}

		salary := selectionText(card, srnSalarySelector)
		if s, ok := parsing.ParseSalary(salary); ok {
			o.Salary = s
		}
		if strings.Contains(strings.ToLower(salary), "equity") {
			o.Equity = ExtractEquity(salary)
		}

		enrich(&o, description)
		o.ID = recordID(name, i, o.Company, o.Role)
		opps = append(opps, o)
	})
	return opps
}

func parseSinglePosting(doc *goquery.Document, name string) (types.Opportunity, bool) {
	var body *goquery.Selection
	for _, sel := range postingSelectors {
		if s := doc.Find(sel); s.Length() > 0 {
			body = s.First()
			break
		}
	}
	if body == nil {
		body = doc.Find("body")
	}
	description := cleanWhitespace(body.Text())

	role := selectionText(doc.Selection, "h1")
	if role == "" {
		role = strings.TrimSpace(doc.Find("title").First().Text())
	}
	if role == "" && description == "" {
		return types.Opportunity{}, false
	}

	company, _ := doc.Find(`meta[property="og:site_name"]`).Attr("content")
	if company == "" {
		company = selectionText(doc.Selection, ".company, .company-name, [data-company]")
	}

	o := types.Opportunity{
		Company:      strings.TrimSpace(company),
		Role:         role,
		Locations:    selectionText(doc.Selection, ".location, .job-location"),
		Workplace:    selectionText(doc.Selection, ".workplace, .workplace-type"),
		OneLiner:     metaContent(doc, "description"),
		Requirements: description,
		Visa:         DefaultVisa,
		TeamSize:     DefaultTeamSize,
		Funding:      DefaultFunding,
		Equity:       DefaultEquity,
		Source:       types.SourceHTML,
	}

	salary := selectionText(doc.Selection, ".salary, .compensation")
	if s, ok := parsing.ParseSalary(salary); ok {
		o.Salary = s
	}
	if strings.Contains(strings.ToLower(description), "equity") {
		o.Equity = ExtractEquity(description)
	}

	enrich(&o, description)
	o.ID = recordID(name, 0, o.Company, o.Role)
	return o, true
}

// enrich fills tech stack, YOE and industry from a free-text description.
func enrich(o *types.Opportunity, description string) {
	o.TechStack = ParseTechStack(description)
	o.YOE = ParseYOE(description)
	o.Industry = ParseIndustry(description)
}

func selectionText(s *goquery.Selection, selector string) string {
	return strings.TrimSpace(s.Find(selector).First().Text())
}

func metaContent(doc *goquery.Document, name string) string {
	v, _ := doc.Find(fmt.Sprintf(`meta[name=%q]`, name)).Attr("content")
	return strings.TrimSpace(v)
}

// cleanWhitespace trims every line and drops blank ones.
func cleanWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}
