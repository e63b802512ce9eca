package solve

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlotArenaExpandsCapacities(t *testing.T) {
	arena := newSlotArena([]int{2, 1, 3}, 10)

	assert.Equal(t, 6, arena.len())
	assert.Equal(t, []int{0, 0, 1, 2, 2, 2}, arena.supervisor)
	assert.Equal(t, []int{0, 1, 0, 0, 1, 2}, arena.ordinal)
}

func TestSlotArenaCapsSlotsAtStudentCount(t *testing.T) {
	// A workload of 100 cannot absorb more students than exist.
	arena := newSlotArena([]int{100, 2}, 3)

	assert.Equal(t, 5, arena.len())
	assert.Equal(t, []int{0, 0, 0, 1, 1}, arena.supervisor)
}

func TestSolveRespectsLargeWorkloads(t *testing.T) {
	// Arrange: one supervisor with room for everyone.
	problem := Problem{
		Scores:     [][]int64{{3}, {5}, {7}},
		Capacities: []int{50},
		Options:    Defaults(),
	}

	for _, solver := range engines() {
		t.Run(solver.Name(), func(t *testing.T) {
			assignment, err := solver.Solve(problem)

			assert.NoError(t, err)
			assert.Len(t, assignment.Pairs, 3)
			assert.Equal(t, int64(15), assignment.TotalScore)
		})
	}
}

func TestMaxMatchable(t *testing.T) {
	// Student 2 overlaps nobody; students 0 and 1 compete for one slot.
	problem := Problem{
		Scores:     [][]int64{{4}, {6}, {0}},
		Capacities: []int{1},
		Options:    Defaults(),
	}

	matchable, err := MaxMatchable(problem)

	assert.NoError(t, err)
	assert.Equal(t, 1, matchable)
}

func TestMaxMatchableCountsCapacityNotOverlap(t *testing.T) {
	problem := Problem{
		Scores:     [][]int64{{4}, {6}},
		Capacities: []int{2},
		Options:    Defaults(),
	}

	matchable, err := MaxMatchable(problem)

	assert.NoError(t, err)
	assert.Equal(t, 2, matchable)
}

func TestWeightOverflowFromCapacity(t *testing.T) {
	// An absurd workload would push the fill layer past the int64 headroom;
	// the guard has to trip before any composite weight is formed.
	problem := Problem{
		Scores:     [][]int64{{1}, {1}},
		Capacities: []int{1 << 60},
		Options:    Defaults(),
	}

	for _, solver := range engines() {
		t.Run(solver.Name(), func(t *testing.T) {
			_, err := solver.Solve(problem)

			var solverErr *SolverError
			assert.ErrorAs(t, err, &solverErr)
			assert.Equal(t, "composite weights exceed int64 headroom", solverErr.Reason)
		})
	}
}

func TestWeightOverflow(t *testing.T) {
	problem := Problem{
		Scores:     [][]int64{{headroom}},
		Capacities: []int{1},
		Options:    Defaults(),
	}

	for _, solver := range engines() {
		t.Run(solver.Name(), func(t *testing.T) {
			_, err := solver.Solve(problem)

			var solverErr *SolverError
			assert.ErrorAs(t, err, &solverErr)
			assert.Equal(t, solver.Name(), solverErr.Engine)
		})
	}
}
