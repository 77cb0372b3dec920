package storage

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingInput reports that an input CSV does not exist.
var ErrMissingInput = errors.New("missing input file")

// SchemaError reports a header or row that does not match the expected columns.
type SchemaError struct {
	Path     string
	Line     int
	Expected []string
	Got      []string
}

func (e *SchemaError) Error() string {
	if e.Line <= 1 {
		return fmt.Sprintf("%s: header mismatch: expected %q, got %q",
			e.Path, strings.Join(e.Expected, ","), strings.Join(e.Got, ","))
	}
	return fmt.Sprintf("%s:%d: expected %d columns, got %d", e.Path, e.Line, len(e.Expected), len(e.Got))
}

// ValueError reports a cell that is not a non-negative integer, or a league
// cell that is not a known competition tag.
type ValueError struct {
	Path   string
	Line   int
	Column string
	Value  string
	// Expected describes the accepted values; empty means a non-negative integer.
	Expected string
}

func (e *ValueError) Error() string {
	if e.Expected == "" {
		return fmt.Sprintf("%s:%d: column %s: invalid count %q", e.Path, e.Line, e.Column, e.Value)
	}
	return fmt.Sprintf("%s:%d: column %s: invalid value %q, want %s", e.Path, e.Line, e.Column, e.Value, e.Expected)
}
