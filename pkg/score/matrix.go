package score

import (
	"github.com/samber/lo"

	"github.com/limaJavier/dissmatch/pkg/catalog"
)

// Ranked is an ordered preference list; position is 1-based rank.
type Ranked []catalog.Area

// Rank returns the 1-based rank of area on the list, or 0 when absent.
func (r Ranked) Rank(area catalog.Area) int {
	for i, a := range r {
		if a == area {
			return i + 1
		}
	}
	return 0
}

// Overlap is one area shared by a student and a supervisor together with the
// contribution it earns under a strategy.
type Overlap struct {
	Area           catalog.Area
	StudentRank    int
	SupervisorRank int
	Contribution   int64
}

// Overlaps lists the areas both preference lists share, in student rank
// order, with their contributions under strategy.
func Overlaps(student, supervisor Ranked, strategy Strategy) []Overlap {
	var overlaps []Overlap
	for i, area := range student {
		supervisorRank := supervisor.Rank(area)
		if supervisorRank == 0 {
			continue
		}
		overlaps = append(overlaps, Overlap{
			Area:           area,
			StudentRank:    i + 1,
			SupervisorRank: supervisorRank,
			Contribution:   strategy.Contribution(i+1, supervisorRank),
		})
	}
	return overlaps
}

// Pair scores a single student/supervisor pair: zero when the lists share no
// area, otherwise the strategy's combination of per-area contributions.
func Pair(student, supervisor Ranked, strategy Strategy) int64 {
	overlaps := Overlaps(student, supervisor, strategy)
	if len(overlaps) == 0 {
		return 0
	}
	contributions := lo.Map(overlaps, func(o Overlap, _ int) int64 { return o.Contribution })
	return strategy.Combine(contributions)
}

// Best returns the shared area that decides a pair score: the overlap with
// the highest contribution, earliest student rank on ties. ok is false when
// the lists share no area.
func Best(student, supervisor Ranked, strategy Strategy) (best Overlap, ok bool) {
	overlaps := Overlaps(student, supervisor, strategy)
	if len(overlaps) == 0 {
		return Overlap{}, false
	}
	best = overlaps[0]
	for _, o := range overlaps[1:] {
		if o.Contribution > best.Contribution {
			best = o
		}
	}
	return best, true
}

// Matrix holds the pair scores of one cohort: students by row in input order,
// supervisors by column. It is immutable once built.
type Matrix struct {
	students    int
	supervisors int
	cells       []int64 // row-major: students*supervisors
}

// Students returns the number of rows.
func (m *Matrix) Students() int {
	return m.students
}

// Supervisors returns the number of columns.
func (m *Matrix) Supervisors() int {
	return m.supervisors
}

// At returns the score of a student/supervisor pair.
func (m *Matrix) At(student, supervisor int) int64 {
	return m.cells[student*m.supervisors+supervisor]
}

// Grid copies the matrix into per-row slices for solver input.
func (m *Matrix) Grid() [][]int64 {
	grid := make([][]int64, m.students)
	for i := range grid {
		row := make([]int64, m.supervisors)
		copy(row, m.cells[i*m.supervisors:(i+1)*m.supervisors])
		grid[i] = row
	}
	return grid
}

// AllZero reports whether no pair in the matrix scores above zero.
func (m *Matrix) AllZero() bool {
	for _, c := range m.cells {
		if c != 0 {
			return false
		}
	}
	return true
}

// Build computes the full score matrix sequentially.
func Build(students, supervisors []Ranked, strategy Strategy) *Matrix {
	m := &Matrix{
		students:    len(students),
		supervisors: len(supervisors),
		cells:       make([]int64, len(students)*len(supervisors)),
	}
	for i, student := range students {
		buildRow(m.cells[i*m.supervisors:(i+1)*m.supervisors], student, supervisors, strategy)
	}
	return m
}

type rowScores struct {
	row   int
	cells []int64
}

// BuildParallel computes the matrix with one goroutine per student row.
// Scores are pure functions of the preference lists, so the result is
// identical to Build.
func BuildParallel(students, supervisors []Ranked, strategy Strategy) *Matrix {
	m := &Matrix{
		students:    len(students),
		supervisors: len(supervisors),
		cells:       make([]int64, len(students)*len(supervisors)),
	}
	if len(students) == 0 || len(supervisors) == 0 {
		return m
	}

	rowChannel := make(chan rowScores)
	for i, student := range students {
		go func(row int, student Ranked) {
			cells := make([]int64, len(supervisors))
			buildRow(cells, student, supervisors, strategy)
			rowChannel <- rowScores{row: row, cells: cells}
		}(i, student)
	}

	count := 0
	for scores := range rowChannel {
		copy(m.cells[scores.row*m.supervisors:], scores.cells)
		count++
		// Close the channel when all rows have been collected
		if count == m.students {
			close(rowChannel)
		}
	}
	return m
}

func buildRow(cells []int64, student Ranked, supervisors []Ranked, strategy Strategy) {
	for j, supervisor := range supervisors {
		cells[j] = Pair(student, supervisor, strategy)
	}
}
