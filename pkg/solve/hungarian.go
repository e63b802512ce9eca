package solve

import "math"

// hungarianSolver runs the Jonker-Volgenant variant of the Hungarian
// algorithm on a slot-expanded, square-padded cost matrix. Maximization is
// turned into minimization by subtracting each composite weight from the
// largest one; dummy rows and columns pad the matrix to a square, so leaving
// a student unmatched simply means assigning them a dummy column at the cost
// of a zero-weight pairing. Forbidden cells carry a marker cost no optimal
// solution touches unless a student has no permitted column at all.
type hungarianSolver struct{}

// NewHungarianSolver returns the O(dim³) dense assignment engine. It is
// exact and deterministic; dim is max(students, total slots).
func NewHungarianSolver() Solver {
	return hungarianSolver{}
}

func (hungarianSolver) Name() string {
	return EngineHungarian
}

func (s hungarianSolver) Solve(p Problem) (*Assignment, error) {
	arena, w, err := prepare(p, s.Name())
	if err != nil {
		return nil, err
	}
	if p.students() == 0 {
		return assignmentFromPairs(p, s.Name(), nil), nil
	}

	n, slots := p.students(), arena.len()
	dim := max(n, slots)
	maxW := w.max(p)
	forbidden := int64(n)*maxW + 1

	// cost[i][j]: students then dummy rows by row, slots then dummy columns
	// by column. Dummy rows are constant so they absorb leftover columns
	// without distorting real choices.
	cost := make([][]int64, dim)
	for i := range cost {
		cost[i] = make([]int64, dim)
		for j := range cost[i] {
			switch {
			case i >= n:
				cost[i][j] = 0
			case j >= slots:
				cost[i][j] = maxW
			case p.allowed(i, arena.supervisor[j]):
				cost[i][j] = maxW - w.pair(p, i, arena.supervisor[j]) - w.fill(p.Capacities[arena.supervisor[j]], arena.ordinal[j])
			default:
				cost[i][j] = forbidden
			}
		}
	}

	rowAssign := jonkerVolgenant(cost)

	var pairs []Pair
	for i := 0; i < n; i++ {
		j := rowAssign[i]
		if j < 0 || j >= slots {
			continue
		}
		supervisor := arena.supervisor[j]
		if !p.allowed(i, supervisor) {
			continue
		}
		pairs = append(pairs, Pair{Student: i, Supervisor: supervisor})
	}
	return assignmentFromPairs(p, s.Name(), pairs), nil
}

// jonkerVolgenant solves the square min-cost assignment problem, returning
// the column assigned to each row. Uses 1-indexed arrays internally for
// cleaner index arithmetic.
func jonkerVolgenant(cost [][]int64) []int {
	dim := len(cost)
	const inf = math.MaxInt64 / 2

	u := make([]int64, dim+1) // row potentials
	v := make([]int64, dim+1) // column potentials
	p := make([]int, dim+1)   // p[j] = row assigned to column j
	way := make([]int, dim+1) // way[j] = previous column in augmenting path
	minv := make([]int64, dim+1)
	used := make([]bool, dim+1)

	for i := 1; i <= dim; i++ {
		p[0] = i
		j0 := 0 // virtual column

		for j := 1; j <= dim; j++ {
			minv[j] = inf
			used[j] = false
		}

		for {
			used[j0] = true
			i0 := p[j0]
			var delta int64 = inf
			j1 := -1

			for j := 1; j <= dim; j++ {
				if used[j] {
					continue
				}
				cur := cost[i0-1][j-1] - u[i0] - v[j]
				if cur < minv[j] {
					minv[j] = cur
					way[j] = j0
				}
				if minv[j] < delta {
					delta = minv[j]
					j1 = j
				}
			}

			if j1 < 0 {
				break
			}

			for j := 0; j <= dim; j++ {
				if used[j] {
					u[p[j]] += delta
					v[j] -= delta
				} else {
					minv[j] -= delta
				}
			}

			j0 = j1
			if p[j0] == 0 {
				break
			}
		}

		// Augment along the path.
		for j0 != 0 {
			p[j0] = p[way[j0]]
			j0 = way[j0]
		}
	}

	rowAssign := make([]int, dim)
	for i := range rowAssign {
		rowAssign[i] = -1
	}
	for j := 1; j <= dim; j++ {
		if p[j] > 0 {
			rowAssign[p[j]-1] = j - 1
		}
	}
	return rowAssign
}
