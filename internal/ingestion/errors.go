package ingestion

import "fmt"

// Source kinds recorded in SourceInfo
const (
	KindOpportunityCSV  = "opportunity_csv"
	KindOpportunityJSON = "opportunity_json"
	KindHTML            = "html"
	KindCandidateCSV    = "candidate_csv"
	KindResumes         = "resumes"
	KindDatabase        = "database"
)

// Error represents a failure loading an input
type Error struct {
	Path    string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Path != "" {
		msg = fmt.Sprintf("%s: %s", e.Path, msg)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// ErrNoSources is returned when no opportunity source could be loaded
var ErrNoSources = fmt.Errorf("no opportunities could be loaded from any source")
