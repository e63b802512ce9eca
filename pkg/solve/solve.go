// Package solve turns a score matrix and supervisor workloads into a
// capacity-feasible assignment of maximum total score. Two exact engines are
// provided; both consume the same composite weights and therefore agree on
// total score, first-choice count and workload balance.
//
// Tie-breaking between equally scored assignments is encoded in the weights:
// total score dominates, then (optionally) the count of students paired on
// their first-choice area, then the smallest worst-case supervisor slack,
// filling the emptiest supervisors first.
// Ties surviving all three layers fall to the engines' deterministic scan
// order over the input, so callers wanting lexicographic behavior pass
// students and supervisors sorted by id.
package solve

import "fmt"

// Engine names accepted by New.
const (
	EngineHungarian = "hungarian"
	EngineFlow      = "flow"
)

// Engines lists the accepted engine names in flag-help order.
func Engines() []string {
	return []string{EngineFlow, EngineHungarian}
}

// Options tunes the tie-break policy and the treatment of zero-score pairs.
// The zero value disables everything; Defaults returns the documented policy.
type Options struct {
	// MatchZeroScore permits pairing a student with a supervisor they share
	// no area with. Off by default: an empty pairing is usually worse data
	// than an unmatched student.
	MatchZeroScore bool
	// PreferFirstChoice breaks score ties toward assignments that put more
	// students on a pair whose deciding area is their first choice.
	PreferFirstChoice bool
	// BalanceWorkloads breaks remaining ties toward the assignment that
	// minimizes the largest unsatisfied supervisor workload slack.
	BalanceWorkloads bool
}

// Defaults returns the documented tie-break policy: no zero-score matches,
// prefer first choices, balance workloads.
func Defaults() Options {
	return Options{PreferFirstChoice: true, BalanceWorkloads: true}
}

// Problem is one solver invocation: the score matrix (students by row,
// supervisors by column), per-supervisor workload capacities, and the
// first-choice indicator per pair (may be nil when PreferFirstChoice is off).
type Problem struct {
	Scores      [][]int64
	Capacities  []int
	FirstChoice [][]bool
	Options     Options
}

func (p Problem) students() int {
	return len(p.Scores)
}

func (p Problem) supervisors() int {
	return len(p.Capacities)
}

// allowed reports whether a student/supervisor pairing may be selected.
func (p Problem) allowed(student, supervisor int) bool {
	return p.Scores[student][supervisor] > 0 || p.Options.MatchZeroScore
}

func (p Problem) firstChoice(student, supervisor int) bool {
	return p.FirstChoice != nil && p.FirstChoice[student][supervisor]
}

func (p Problem) validate() error {
	for i, row := range p.Scores {
		if len(row) != p.supervisors() {
			return fmt.Errorf("solve: score row %d has %d columns, expected %d", i, len(row), p.supervisors())
		}
		for j, s := range row {
			if s < 0 {
				return fmt.Errorf("solve: negative score %d for pair (%d, %d)", s, i, j)
			}
		}
	}
	for j, capacity := range p.Capacities {
		if capacity < 1 {
			return fmt.Errorf("solve: supervisor %d has workload %d, expected at least 1", j, capacity)
		}
	}
	return nil
}

// Pair is one selected student/supervisor assignment with its matrix score.
type Pair struct {
	Student    int
	Supervisor int
	Score      int64
}

// Assignment is the outcome of one solve: selected pairs in student order,
// the students left unmatched, and aggregate figures.
type Assignment struct {
	Pairs       []Pair
	Unmatched   []int
	TotalScore  int64
	FirstChoice int // pairs whose deciding area is the student's first choice
	Engine      string
}

// Solver computes a feasible, score-maximal assignment for a problem.
type Solver interface {
	Name() string
	Solve(p Problem) (*Assignment, error)
}

// New returns the engine with the given name.
func New(engine string) (Solver, error) {
	switch engine {
	case EngineHungarian:
		return NewHungarianSolver(), nil
	case EngineFlow:
		return NewFlowSolver(), nil
	default:
		return nil, fmt.Errorf("solve: unknown engine %q (must be one of %v)", engine, Engines())
	}
}

// CheckCapacity reports the workload shortfall of a problem, or nil when
// total capacity covers every student. A shortfall is not fatal: the solver
// proceeds and enumerates the unmatched students.
func CheckCapacity(p Problem) *CapacityWarning {
	capacity := 0
	for _, c := range p.Capacities {
		capacity += c
	}
	if capacity >= p.students() {
		return nil
	}
	return &CapacityWarning{Students: p.students(), Capacity: capacity}
}

// prepare validates a problem, rejects all-zero matrices, and derives the
// slot arena and composite weights every engine consumes.
func prepare(p Problem, engine string) (slotArena, weights, error) {
	if err := p.validate(); err != nil {
		return slotArena{}, weights{}, err
	}
	if p.students() > 0 {
		allZero := true
		for _, row := range p.Scores {
			for _, s := range row {
				if s != 0 {
					allZero = false
				}
			}
		}
		if allZero {
			return slotArena{}, weights{}, ErrEmptyMatrix
		}
	}
	arena := newSlotArena(p.Capacities, p.students())
	w, err := newWeights(p, arena)
	if err != nil {
		if solverErr, ok := err.(*SolverError); ok {
			solverErr.Engine = engine
		}
		return slotArena{}, weights{}, err
	}
	return arena, w, nil
}

// assignmentFromPairs finalizes an engine's raw selection: pairs sorted by
// student (engines emit them that way), unmatched as the complement, totals
// recomputed from the matrix.
func assignmentFromPairs(p Problem, engine string, pairs []Pair) *Assignment {
	a := &Assignment{Pairs: pairs, Engine: engine}
	matched := make([]bool, p.students())
	for i := range pairs {
		pairs[i].Score = p.Scores[pairs[i].Student][pairs[i].Supervisor]
		matched[pairs[i].Student] = true
		a.TotalScore += pairs[i].Score
		if p.firstChoice(pairs[i].Student, pairs[i].Supervisor) {
			a.FirstChoice++
		}
	}
	for i := 0; i < p.students(); i++ {
		if !matched[i] {
			a.Unmatched = append(a.Unmatched, i)
		}
	}
	return a
}
