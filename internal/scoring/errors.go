package scoring

import "fmt"

// RulesError represents an error loading or validating rule tables
type RulesError struct {
	Message string
	Cause   error
}

func (e *RulesError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *RulesError) Unwrap() error {
	return e.Cause
}
