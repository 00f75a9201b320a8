// Package ingestion loads opportunity feeds, candidate exports and resume text
// from local files into the shared data model.
package ingestion

import (
	"regexp"
	"strings"
)

var (
	runOfSpace = regexp.MustCompile(`\s+`)
	blankRun   = regexp.MustCompile(`\n{3,}`)
)

// CleanText normalizes resume text before it is embedded: CR and CRLF become LF,
// runs of spaces inside a line collapse, and at most one blank line separates
// paragraphs. Markdown headings and bullets keep their markers and indentation.
func CleanText(content string) string {
	content = strings.NewReplacer("\r\n", "\n", "\r", "\n").Replace(content)

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = cleanLine(line)
	}

	out := blankRun.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(out)
}

func cleanLine(line string) string {
	body := strings.TrimSpace(line)
	if body == "" {
		return ""
	}
	indent := line[:strings.Index(line, body)]

	switch {
	case strings.HasPrefix(body, "#"):
		// headings start at column zero
		return body
	case strings.HasPrefix(body, "- "), strings.HasPrefix(body, "* "):
		return indent + body
	default:
		return indent + runOfSpace.ReplaceAllString(body, " ")
	}
}
