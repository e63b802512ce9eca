package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyCatalog is returned when a catalog would contain no areas,
	// either because none were provided or because every provided name
	// folds to the empty string.
	ErrEmptyCatalog = errors.New("catalog: no areas")

	// ErrDuplicateArea is returned when two declared areas fold to the
	// same canonical form.
	ErrDuplicateArea = errors.New("catalog: duplicate area")
)

// UnknownAreaError reports a preference entry that does not resolve to any
// catalog area. Source identifies the record the entry came from so the
// offending row can be fixed without grepping the whole input.
type UnknownAreaError struct {
	Raw    string // entry as written
	Folded string // canonical form that missed the lookup
	Source string // e.g. "student S012, choice 2"
}

func (e *UnknownAreaError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("catalog: unknown area %q", e.Raw)
	}
	return fmt.Sprintf("catalog: unknown area %q (%s)", e.Raw, e.Source)
}
