// Package match wires the full pipeline together: validated preference
// records in, score matrix, one solve, and projected match records plus
// summary statistics out. One Input snapshot yields one Result; nothing is
// kept across runs.
package match

import (
	"errors"

	"github.com/samber/lo"

	"github.com/limaJavier/dissmatch/pkg/score"
	"github.com/limaJavier/dissmatch/pkg/solve"
)

// Config selects the scoring strategy, the solver engine and its tie-break
// options for a matcher. It is read once at construction; matchers hold no
// other state.
type Config struct {
	Strategy score.Strategy
	Engine   string
	Options  solve.Options
	Parallel bool // fan the score matrix build out across student rows
}

// Matcher runs one matching pipeline over a validated input snapshot.
type Matcher interface {
	Match(input Input) (*Result, error)
	Verify(input Input, result *Result) bool
}

type matcher struct {
	strategy score.Strategy
	solver   solve.Solver
	options  solve.Options
	parallel bool
}

// New builds a matcher from an immutable configuration.
func New(cfg Config) (Matcher, error) {
	if cfg.Strategy == nil {
		return nil, errors.New("match: config carries no scoring strategy")
	}
	solver, err := solve.New(cfg.Engine)
	if err != nil {
		return nil, err
	}
	return &matcher{
		strategy: cfg.Strategy,
		solver:   solver,
		options:  cfg.Options,
		parallel: cfg.Parallel,
	}, nil
}

func (m *matcher) Match(input Input) (*Result, error) {
	problem := m.problem(input)

	warning := solve.CheckCapacity(problem)

	assignment, err := m.solver.Solve(problem)
	if err != nil {
		return nil, err
	}
	if !solve.Verify(problem, assignment) {
		return nil, &solve.SolverError{
			Engine:      m.solver.Name(),
			Students:    len(input.Students),
			Supervisors: len(input.Supervisors),
			Reason:      "assignment failed verification",
		}
	}

	maxMatchable, err := solve.MaxMatchable(problem)
	if err != nil {
		return nil, err
	}

	result := project(input, assignment, m.strategy)
	result.Summary.MaxMatchable = maxMatchable
	result.Warning = warning
	if warning != nil {
		result.Summary.CapacityWarning = warning.String()
	}
	return result, nil
}

// Verify re-derives the problem from the input and checks the result's
// records against it: feasible loads, consistent scores and choice ranks,
// and records ordered by student id.
func (m *matcher) Verify(input Input, result *Result) bool {
	if result == nil {
		return false
	}
	problem := m.problem(input)
	studentIndex := indexByID(input.Students, func(s Student) string { return s.ID })
	supervisorIndex := indexByID(input.Supervisors, func(s Supervisor) string { return s.ID })

	assignment := &solve.Assignment{
		TotalScore:  result.Summary.TotalScore,
		FirstChoice: result.Summary.FirstChoicePairs,
		Engine:      result.Summary.Engine,
	}
	previousID := ""
	for _, record := range result.Records {
		i, ok := studentIndex[record.StudentID]
		if !ok {
			return false
		}
		j, ok := supervisorIndex[record.SupervisorID]
		if !ok {
			return false
		}
		if record.StudentID <= previousID {
			return false
		}
		previousID = record.StudentID

		// The reported choice ranks must point at the deciding shared area.
		best, shared := score.Best(input.Students[i].Areas, input.Supervisors[j].Areas, m.strategy)
		if shared && (record.StudentChoice != best.StudentRank || record.SupervisorChoice != best.SupervisorRank) {
			return false
		}
		if !shared && (record.StudentChoice != 0 || record.SupervisorChoice != 0) {
			return false
		}
		assignment.Pairs = append(assignment.Pairs, solve.Pair{Student: i, Supervisor: j, Score: record.Score})
	}
	for _, id := range result.Summary.UnmatchedStudents {
		i, ok := studentIndex[id]
		if !ok {
			return false
		}
		assignment.Unmatched = append(assignment.Unmatched, i)
	}
	return solve.Verify(problem, assignment)
}

// problem builds the solver input: the score matrix, workload capacities and
// the first-choice indicator per pair.
func (m *matcher) problem(input Input) solve.Problem {
	students := lo.Map(input.Students, func(s Student, _ int) score.Ranked { return s.Areas })
	supervisors := lo.Map(input.Supervisors, func(s Supervisor, _ int) score.Ranked { return s.Areas })

	var matrix *score.Matrix
	if m.parallel {
		matrix = score.BuildParallel(students, supervisors, m.strategy)
	} else {
		matrix = score.Build(students, supervisors, m.strategy)
	}

	firstChoice := make([][]bool, len(students))
	for i, student := range students {
		firstChoice[i] = make([]bool, len(supervisors))
		for j, supervisor := range supervisors {
			best, ok := score.Best(student, supervisor, m.strategy)
			firstChoice[i][j] = ok && best.StudentRank == 1
		}
	}

	return solve.Problem{
		Scores:      matrix.Grid(),
		Capacities:  lo.Map(input.Supervisors, func(s Supervisor, _ int) int { return s.Workload }),
		FirstChoice: firstChoice,
		Options:     m.options,
	}
}

func indexByID[T any](items []T, id func(T) string) map[string]int {
	index := make(map[string]int, len(items))
	for i, item := range items {
		index[id(item)] = i
	}
	return index
}
