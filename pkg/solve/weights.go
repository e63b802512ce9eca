package solve

import "math"

// The tie-break policy is encoded in layered composite weights: matrix score
// scaled so it dominates everything below, a first-choice bonus scaled above
// the fill bonuses, and a per-slot fill bonus equal to the workload slack the
// placement removes. High-slack slots pay the largest bonuses, so among
// equally scored assignments the engines fill the emptiest supervisors first
// and the largest remaining slack is as small as the layers above permit.
// Every allowed pairing carries a bonus of at least 1, so an assignment that
// matches an extra student at no score cost always wins.
type weights struct {
	scoreUnit int64
	firstUnit int64
	fillMax   int64
	options   Options
}

// headroom keeps composite arithmetic (including the forbidden-cell marker)
// clear of int64 overflow.
const headroom = math.MaxInt64 / 8

func newWeights(p Problem, arena slotArena) (weights, error) {
	w := weights{scoreUnit: 1, firstUnit: 1, fillMax: 1, options: p.Options}
	n := int64(p.students())
	if n == 0 {
		return w, nil
	}
	if p.Options.BalanceWorkloads {
		for _, capacity := range p.Capacities {
			if int64(capacity) > w.fillMax {
				w.fillMax = int64(capacity)
			}
		}
	}

	overflow := func() error {
		return &SolverError{
			Students:    p.students(),
			Supervisors: p.supervisors(),
			Slots:       arena.len(),
			Reason:      "composite weights exceed int64 headroom",
		}
	}

	// Units are built and checked stepwise: every product is guarded by a
	// division, never by a multiplication that could itself wrap.
	if w.fillMax > (headroom-1)/n {
		return weights{}, overflow()
	}
	w.firstUnit = n*w.fillMax + 1
	if w.firstUnit+w.fillMax > (headroom-1)/n {
		return weights{}, overflow()
	}
	w.scoreUnit = n*(w.firstUnit+w.fillMax) + 1

	var maxScore int64
	for _, row := range p.Scores {
		for _, s := range row {
			if s > maxScore {
				maxScore = s
			}
		}
	}
	if maxScore > headroom/w.scoreUnit/n {
		return weights{}, overflow()
	}
	return w, nil
}

// pair returns the slot-independent part of a pairing's composite weight.
func (w weights) pair(p Problem, student, supervisor int) int64 {
	composite := p.Scores[student][supervisor] * w.scoreUnit
	if w.options.PreferFirstChoice && p.firstChoice(student, supervisor) {
		composite += w.firstUnit
	}
	return composite
}

// fill returns the bonus of occupying a supervisor's slot with the given
// fill ordinal: the supervisor's workload slack before the placement. It is
// positive and decreasing in the ordinal.
func (w weights) fill(capacity, ordinal int) int64 {
	if w.options.BalanceWorkloads {
		return int64(capacity - ordinal)
	}
	return 1
}

// max bounds the composite weight of any single pairing.
func (w weights) max(p Problem) int64 {
	var maxScore int64
	for _, row := range p.Scores {
		for _, s := range row {
			if s > maxScore {
				maxScore = s
			}
		}
	}
	return maxScore*w.scoreUnit + w.firstUnit + w.fillMax
}
