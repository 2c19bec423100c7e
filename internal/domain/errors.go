package domain

import (
	"fmt"
	"strings"
)

// ValidationError reports the fields that made a factory reject its input.
// Callers branch on it with errors.As; it is always recoverable by
// re-collecting the offending fields.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Fields, ", "))
}

func newValidationError(fields ...string) *ValidationError {
	return &ValidationError{Fields: fields}
}
