package solve

// slotArena expands supervisors into unit-capacity slots without duplicating
// supervisor state: a slot is just an index mapped back to its supervisor and
// its 0-based fill ordinal. A supervisor with workload w contributes
// min(w, students) slots, since no supervisor can ever hold more students
// than exist.
type slotArena struct {
	supervisor []int // slot -> supervisor index
	ordinal    []int // slot -> fill ordinal within its supervisor
}

func newSlotArena(capacities []int, students int) slotArena {
	var arena slotArena
	for j, capacity := range capacities {
		effective := min(capacity, students)
		for k := 0; k < effective; k++ {
			arena.supervisor = append(arena.supervisor, j)
			arena.ordinal = append(arena.ordinal, k)
		}
	}
	return arena
}

func (a slotArena) len() int {
	return len(a.supervisor)
}
