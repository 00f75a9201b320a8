package embedding

import "fmt"

// Error represents a failure returned by an embedding provider
type Error struct {
	Provider string
	Message  string
	Cause    error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("embedding provider %s: %s: %v", e.Provider, e.Message, e.Cause)
	}
	return fmt.Sprintf("embedding provider %s: %s", e.Provider, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
