package solve

import (
	"slices"

	"github.com/onsi/gomega/matchers/support/goraph/bipartitegraph"
	"github.com/samber/lo"
)

// MaxMatchable returns the largest number of students a feasible assignment
// can pair at all, ignoring scores: the size of a maximum-cardinality
// matching between students and workload slots over the allowed pairs. The
// figure separates "capacity ran out" from "these students overlap with
// nobody" in run summaries.
func MaxMatchable(p Problem) (int, error) {
	if p.students() == 0 {
		return 0, nil
	}
	arena := newSlotArena(p.Capacities, p.students())

	neighbors := func(studentAny any, slotAny any) (bool, error) {
		student := studentAny.(int)
		slot := slotAny.(int)
		return p.allowed(student, arena.supervisor[slot]), nil
	}

	students := lo.Map(lo.Range(p.students()), func(i int, _ int) any { return i })
	slots := lo.Map(lo.Range(arena.len()), func(i int, _ int) any { return i })

	graph, err := bipartitegraph.NewBipartiteGraph(students, slots, neighbors)
	if err != nil {
		return 0, err
	}
	return len(graph.LargestMatching()), nil
}

// Verify checks an assignment against its problem: every student selected at
// most once, no supervisor past its workload, no forbidden pair, per-pair and
// total scores consistent with the matrix, and the unmatched list exactly
// the complement of the matched students.
func Verify(p Problem, a *Assignment) bool {
	if a == nil {
		return false
	}
	matched := make([]bool, p.students())
	load := make([]int, p.supervisors())
	var total int64
	firstChoices := 0
	for _, pair := range a.Pairs {
		if pair.Student < 0 || pair.Student >= p.students() ||
			pair.Supervisor < 0 || pair.Supervisor >= p.supervisors() {
			return false
		}
		if matched[pair.Student] || !p.allowed(pair.Student, pair.Supervisor) {
			return false
		}
		if pair.Score != p.Scores[pair.Student][pair.Supervisor] {
			return false
		}
		matched[pair.Student] = true
		load[pair.Supervisor]++
		total += pair.Score
		if p.firstChoice(pair.Student, pair.Supervisor) {
			firstChoices++
		}
	}
	for j, count := range load {
		if count > p.Capacities[j] {
			return false
		}
	}
	if total != a.TotalScore || firstChoices != a.FirstChoice {
		return false
	}

	unmatched := make([]int, 0, p.students())
	for i, ok := range matched {
		if !ok {
			unmatched = append(unmatched, i)
		}
	}
	return slices.Equal(unmatched, a.Unmatched)
}
