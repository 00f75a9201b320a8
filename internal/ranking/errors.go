package ranking

import (
	"errors"
	"fmt"
)

// ErrWeightsSum marks weights that are usable but do not sum to 1; scores are
// then scaled by the total.
var ErrWeightsSum = errors.New("weights do not sum to 1")

// WeightsError describes a questionable weight table
type WeightsError struct {
	Factor  string
	Message string
	Cause   error
}

func (e *WeightsError) Error() string {
	if e.Factor != "" {
		return fmt.Sprintf("weight %s: %s", e.Factor, e.Message)
	}
	return e.Message
}

func (e *WeightsError) Unwrap() error {
	return e.Cause
}

// FilterError represents a failure compiling or evaluating an eligibility filter
type FilterError struct {
	Expression string
	Message    string
	Cause      error
}

func (e *FilterError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("filter %q: %s: %v", e.Expression, e.Message, e.Cause)
	}
	return fmt.Sprintf("filter %q: %s", e.Expression, e.Message)
}

func (e *FilterError) Unwrap() error {
	return e.Cause
}
