package dataset

import (
	"fmt"
	"strings"
)

// LoadError is returned when the dataset cannot be read. Err carries the cause.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("error loading dataset: %v", e.Err)
	}
	return fmt.Sprintf("error loading dataset %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// MissingColumnsError lists the expected CSV headers absent from the file.
type MissingColumnsError struct {
	Schema  string
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing columns for schema %q: %s", e.Schema, strings.Join(e.Columns, ", "))
}
