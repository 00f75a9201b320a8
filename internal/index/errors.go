package index

import (
	"fmt"
	"strings"
)

// EntryFailure records one corpus entry that could not be embedded
type EntryFailure struct {
	Index int
	ID    string
	Err   error
}

// BuildError lists the entries excluded from an index. It is returned together with
// the partially built index.
type BuildError struct {
	Failures []EntryFailure
	Total    int
}

func (e *BuildError) Error() string {
	ids := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		if f.ID != "" {
			ids = append(ids, f.ID)
		} else {
			ids = append(ids, fmt.Sprintf("#%d", f.Index))
		}
	}
	return fmt.Sprintf("failed to embed %d of %d entries: %s", len(e.Failures), e.Total, strings.Join(ids, ", "))
}

// Unwrap exposes the per-entry causes to errors.Is / errors.As
func (e *BuildError) Unwrap() []error {
	errs := make([]error, 0, len(e.Failures))
	for _, f := range e.Failures {
		if f.Err != nil {
			errs = append(errs, f.Err)
		}
	}
	return errs
}

// QueryError wraps a failure to embed the query text
type QueryError struct {
	Message string
	Cause   error
}

func (e *QueryError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *QueryError) Unwrap() error {
	return e.Cause
}
