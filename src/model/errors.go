package model

import "fmt"

// ValidationError reports a rejected input field. Validation runs
// before classification or costing, so downstream packages can assume
// legs they receive are well formed.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
