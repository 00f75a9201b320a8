// Package observability provides formatted console output for match reports.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/talent-matcher/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 72
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted console output
type Printer struct {
	out      io.Writer
	maxItems int
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out, maxItems: maxItemsToShow}
}

// WithMaxItems sets how many candidates are listed per box.
func (p *Printer) WithMaxItems(n int) *Printer {
	if n > 0 {
		p.maxItems = n
	}
	return p
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(clip(title, boxWidth-4), boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(clip(line, boxWidth-4), boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintMatchReport outputs the top opportunities for each resume.
func (p *Printer) PrintMatchReport(report *types.MatchReport) {
	if report == nil {
		return
	}
	if len(report.Results) == 0 {
		p.printBox("RESUME MATCHING RESULTS", "No results to display.")
		return
	}

	for _, rm := range report.Results {
		var sb strings.Builder
		if rm.Error != "" {
			sb.WriteString(fmt.Sprintf("⚠ %s", rm.Error))
			p.printBox("MATCHES: "+rm.ResumeName, sb.String())
			continue
		}
		if len(rm.Matches) == 0 {
			p.printBox("MATCHES: "+rm.ResumeName, "No matching opportunities.")
			continue
		}

		for i, m := range rm.Matches {
			opp := m.Opportunity
			if opp == nil {
				continue
			}
			sb.WriteString(fmt.Sprintf("#%d  %s - %s\n", m.Rank, opp.Company, opp.Role))
			sb.WriteString(fmt.Sprintf("    Score: %.1f/10   Source: %s\n", m.Score, opp.DisplaySource()))
			sb.WriteString(fmt.Sprintf("    Salary: %s\n", opp.Salary.String()))
			for _, line := range wrap(m.Justification, boxWidth-10) {
				sb.WriteString(fmt.Sprintf("    %s\n", line))
			}
			if i < len(rm.Matches)-1 {
				sb.WriteString("\n")
			}
		}
		p.printBox("MATCHES: "+rm.ResumeName, strings.TrimSuffix(sb.String(), "\n"))
	}
}

// PrintCandidateReport outputs the top-ranked candidates with their reasons.
func (p *Printer) PrintCandidateReport(report *types.CandidateReport) {
	if report == nil {
		return
	}
	if len(report.Candidates) == 0 {
		p.printBox("TOP CANDIDATES", "No candidates to display.")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Considered %d candidates\n\n", report.Considered))

	count := min(len(report.Candidates), p.maxItems)
	for i := 0; i < count; i++ {
		c := report.Candidates[i]
		if c.Profile == nil {
			continue
		}
		sb.WriteString(fmt.Sprintf("#%d  %s\n", c.Rank, c.Profile.Name()))
		sb.WriteString(fmt.Sprintf("    Score: %.1f/10\n", c.Score))
		sb.WriteString(fmt.Sprintf("    Current: %s\n", c.Profile.CurrentRole()))
		if s := c.Simulated; s != nil {
			sb.WriteString(fmt.Sprintf("    Experience: %d+ years\n", s.YearsExperience))
			if len(s.Skills) > 0 {
				sb.WriteString(fmt.Sprintf("    Key Skills: %s\n", strings.Join(s.Skills, ", ")))
			}
		}
		if c.Profile.LinkedIn != "" {
			sb.WriteString(fmt.Sprintf("    LinkedIn: %s\n", c.Profile.LinkedIn))
		}
		for j, line := range wrap(c.Justification, boxWidth-15) {
			if j == 0 {
				sb.WriteString(fmt.Sprintf("    Why: %s\n", line))
			} else {
				sb.WriteString(fmt.Sprintf("         %s\n", line))
			}
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(report.Candidates) > count {
		sb.WriteString(fmt.Sprintf("\n... and %d more candidates", len(report.Candidates)-count))
	}

	p.printBox("TOP CANDIDATES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRoleRequirements outputs the role being recruited for.
func (p *Printer) PrintRoleRequirements(title string, requirements []string) {
	if len(requirements) == 0 {
		return
	}
	var sb strings.Builder
	for _, r := range requirements {
		sb.WriteString(fmt.Sprintf("• %s\n", r))
	}
	p.printBox(title, strings.TrimSuffix(sb.String(), "\n"))
}

// PrintOutreach outputs a drafted message for the top candidate.
func (p *Printer) PrintOutreach(message string) {
	if strings.TrimSpace(message) == "" {
		return
	}
	p.printBox("SUGGESTED OUTREACH", strings.Join(wrap(message, boxWidth-4), "\n"))
}

// clip shortens s to n characters, marking the cut with "...".
func clip(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n-3]) + "..."
}

// pad right-pads s with spaces to n characters.
func pad(s string, n int) string {
	if c := utf8.RuneCountInString(s); c < n {
		return s + strings.Repeat(" ", n-c)
	}
	return s
}

// wrap breaks text into lines of at most width characters at word boundaries.
// Words longer than width are left for printBox to clip.
func wrap(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if utf8.RuneCountInString(line)+1+utf8.RuneCountInString(w) > width {
			lines = append(lines, line)
			line = w
			continue
		}
		line += " " + w
	}
	return append(lines, line)
}
