package ingestion

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jonathan/talent-matcher/internal/parsing"
	"github.com/jonathan/talent-matcher/internal/types"
)

// Column headers of the opportunity export
const (
	colCompany      = "Company"
	colRole         = "Role"
	colLocations    = "Locations"
	colSalary       = "Salary"
	colWorkplace    = "Workplace"
	colTechStack    = "Tech Stack"
	colOneLiner     = "One liner"
	colEquity       = "Equity"
	colVisa         = "Visa"
	colYOE          = "YOE"
	colTeamSize     = "Team Size"
	colFunding      = "Funding"
	colRequirements = "Requirements"
	colIndustry     = "Industry"
)

// Column headers of the candidate export
const (
	colFirstName = "First name"
	colLastName  = "Last name"
	colTitle     = "Current Title"
	colOrg       = "Current Org Name"
	colLocation  = "Location"
	colEducation = "Education"
	colGitHub    = "GitHub"
	colLinkedIn  = "LinkedIn"
)

// csvTable is a parsed CSV file with case-insensitive header lookup
type csvTable struct {
	header map[string]int
	rows   [][]string
}

func readCSV(r io.Reader) (*csvTable, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, &Error{Message: "CSV has no header row"}
	}

	header := make(map[string]int, len(records[0]))
	for i, h := range records[0] {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, dup := header[key]; !dup {
			header[key] = i
		}
	}
	return &csvTable{header: header, rows: records[1:]}, nil
}

// get returns the trimmed cell for column, or "" when absent.
func (t *csvTable) get(row []string, column string) string {
	i, ok := t.header[strings.ToLower(column)]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func (t *csvTable) require(columns ...string) error {
	var missing []string
	for _, c := range columns {
		if _, ok := t.header[strings.ToLower(c)]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return &Error{Message: "missing required columns: " + strings.Join(missing, ", ")}
	}
	return nil
}

// LoadOpportunitiesCSV reads an opportunity export from path.
func LoadOpportunitiesCSV(path string) ([]types.Opportunity, *SourceInfo, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, &Error{Path: path, Message: "failed to read file", Cause: err}
	}
	opps, err := ParseOpportunitiesCSV(bytes.NewReader(content))
	if err != nil {
		return nil, nil, &Error{Path: path, Message: "failed to load opportunities", Cause: err}
	}
	return opps, NewSourceInfo(path, KindOpportunityCSV, content, len(opps)), nil
}

// ParseOpportunitiesCSV decodes opportunity rows. Salary text is normalized;
// an unparseable salary leaves the range unspecified.
func ParseOpportunitiesCSV(r io.Reader) ([]types.Opportunity, error) {
	t, err := readCSV(r)
	if err != nil {
		return nil, err
	}
	if err := t.require(colCompany, colRole); err != nil {
		return nil, err
	}

	opps := make([]types.Opportunity, 0, len(t.rows))
	for i, row := range t.rows {
		if isBlankRow(row) {
			continue
		}
		o := types.Opportunity{
			Company:      t.get(row, colCompany),
			Role:         t.get(row, colRole),
			Locations:    t.get(row, colLocations),
			Workplace:    t.get(row, colWorkplace),
			TechStack:    t.get(row, colTechStack),
			OneLiner:     t.get(row, colOneLiner),
			Equity:       t.get(row, colEquity),
			Visa:         t.get(row, colVisa),
			YOE:          t.get(row, colYOE),
			TeamSize:     t.get(row, colTeamSize),
			Funding:      t.get(row, colFunding),
			Requirements: t.get(row, colRequirements),
			Industry:     t.get(row, colIndustry),
			Source:       types.SourceParaform,
		}
		if s, ok := parsing.ParseSalary(t.get(row, colSalary)); ok {
			o.Salary = s
		}
		o.ID = recordID(o.Source, i, o.Company, o.Role)
		opps = append(opps, o)
	}
	return opps, nil
}

// LoadCandidatesCSV reads a candidate export from path.
func LoadCandidatesCSV(path string) ([]types.StructuredProfile, *SourceInfo, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, &Error{Path: path, Message: "failed to read file", Cause: err}
	}
	profiles, err := ParseCandidatesCSV(bytes.NewReader(content))
	if err != nil {
		return nil, nil, &Error{Path: path, Message: "failed to load candidates", Cause: err}
	}
	return profiles, NewSourceInfo(path, KindCandidateCSV, content, len(profiles)), nil
}

// ParseCandidatesCSV decodes candidate rows. Missing optional cells are empty.
func ParseCandidatesCSV(r io.Reader) ([]types.StructuredProfile, error) {
	t, err := readCSV(r)
	if err != nil {
		return nil, err
	}
	if err := t.require(colFirstName, colTitle, colOrg); err != nil {
		return nil, err
	}

	profiles := make([]types.StructuredProfile, 0, len(t.rows))
	for _, row := range t.rows {
		if isBlankRow(row) {
			continue
		}
		profiles = append(profiles, types.StructuredProfile{
			FirstName:    t.get(row, colFirstName),
			LastName:     t.get(row, colLastName),
			Title:        t.get(row, colTitle),
			Organization: t.get(row, colOrg),
			Location:     t.get(row, colLocation),
			Education:    t.get(row, colEducation),
			GitHub:       t.get(row, colGitHub),
			LinkedIn:     t.get(row, colLinkedIn),
		})
	}
	return profiles, nil
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
