package visitor

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates no visitor exists with the requested identifier.
var ErrNotFound = errors.New("visitor not found")

// ValidationError carries per-field messages for a rejected submission.
// All violations are collected, not just the first.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid visitor data (%d field(s))", len(e.Fields))
}
