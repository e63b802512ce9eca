package solve

import (
	"errors"
	"fmt"
)

// ErrEmptyMatrix is returned when no student/supervisor pair scores above
// zero. This is a data-quality signal (the two sides share no catalog areas
// at all), distinct from a capacity shortfall, and aborts the solve.
var ErrEmptyMatrix = errors.New("solve: no pair scores above zero")

// CapacityWarning reports that total supervisor capacity falls short of the
// student count. It is advisory: the solver still returns the best feasible
// partial assignment.
type CapacityWarning struct {
	Students int
	Capacity int
}

func (w *CapacityWarning) Shortfall() int {
	return w.Students - w.Capacity
}

func (w *CapacityWarning) String() string {
	return fmt.Sprintf("total supervisor capacity %d is short of %d students: %d will stay unmatched", w.Capacity, w.Students, w.Shortfall())
}

// SolverError reports an engine failing to certify an optimum, with enough
// problem-size context to reproduce. There is no silent fallback: callers
// get this error instead of an unverified result.
type SolverError struct {
	Engine      string
	Students    int
	Supervisors int
	Slots       int
	Reason      string
}

func (e *SolverError) Error() string {
	return fmt.Sprintf("solve: engine %v failed on %d students x %d supervisors (%d slots): %v",
		e.Engine, e.Students, e.Supervisors, e.Slots, e.Reason)
}
