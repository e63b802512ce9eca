// Package score turns preference overlap between students and supervisors
// into the integer pair scores the assignment solver maximizes.
package score

import (
	"fmt"
	"slices"
)

// Strategy names accepted by FromSpec.
const (
	StrategyLinearSum = "linear-sum"
	StrategyLinearMax = "linear-max"
	StrategyClassic   = "classic"
	StrategyCustom    = "custom"
)

// Aggregation selects how per-area contributions combine into one pair score.
type Aggregation int

const (
	AggregateSum Aggregation = iota
	AggregateMax
)

func (a Aggregation) String() string {
	switch a {
	case AggregateSum:
		return "sum"
	case AggregateMax:
		return "max"
	default:
		return fmt.Sprintf("aggregation(%d)", int(a))
	}
}

// ParseAggregation maps the config spelling of an aggregation to its value.
func ParseAggregation(name string) (Aggregation, error) {
	switch name {
	case "sum", "":
		return AggregateSum, nil
	case "max":
		return AggregateMax, nil
	default:
		return 0, fmt.Errorf("unknown aggregation %q (must be sum or max)", name)
	}
}

// Strategy assigns satisfaction points to shared areas and combines them into
// a single pair score. Implementations must be pure: same ranks, same points.
type Strategy interface {
	// Name identifies the strategy in logs and reports.
	Name() string
	// Contribution returns the points one shared area earns given the 1-based
	// rank it holds on the student and supervisor lists.
	Contribution(studentRank, supervisorRank int) int64
	// Combine folds per-area contributions into the pair score. It is never
	// called with an empty slice; pairs without shared areas score zero.
	Combine(contributions []int64) int64
}

// linear scores a shared area by how close to the top of each list it sits:
// (N+1-sr) + (M+1-pr) for list lengths N, M and 1-based ranks sr, pr.
type linear struct {
	name            string
	studentRanks    int
	supervisorRanks int
	agg             Aggregation
}

// NewLinearSum scores pairs by summing rank proximity over every shared area.
// studentRanks and supervisorRanks are the maximum list lengths N and M.
func NewLinearSum(studentRanks, supervisorRanks int) Strategy {
	return &linear{name: StrategyLinearSum, studentRanks: studentRanks, supervisorRanks: supervisorRanks, agg: AggregateSum}
}

// NewLinearMax scores pairs by the single best shared area under rank
// proximity.
func NewLinearMax(studentRanks, supervisorRanks int) Strategy {
	return &linear{name: StrategyLinearMax, studentRanks: studentRanks, supervisorRanks: supervisorRanks, agg: AggregateMax}
}

func (s *linear) Name() string {
	return s.name
}

func (s *linear) Contribution(studentRank, supervisorRank int) int64 {
	var points int64
	if studentRank >= 1 && studentRank <= s.studentRanks {
		points += int64(s.studentRanks + 1 - studentRank)
	}
	if supervisorRank >= 1 && supervisorRank <= s.supervisorRanks {
		points += int64(s.supervisorRanks + 1 - supervisorRank)
	}
	return points
}

func (s *linear) Combine(contributions []int64) int64 {
	return combine(s.agg, contributions)
}

// custom scores a shared area by configured per-rank weight tables. Ranks
// beyond a table earn nothing; penalties are expressed by exclusion, never by
// negative points.
type custom struct {
	name       string
	student    []int64
	supervisor []int64
	agg        Aggregation
}

// NewCustom builds a strategy from explicit per-rank weight tables. At least
// one table must be non-empty and weights must not be negative.
func NewCustom(name string, studentWeights, supervisorWeights []int64, agg Aggregation) (Strategy, error) {
	if len(studentWeights) == 0 && len(supervisorWeights) == 0 {
		return nil, fmt.Errorf("custom strategy %q has no weights", name)
	}
	for _, w := range studentWeights {
		if w < 0 {
			return nil, fmt.Errorf("custom strategy %q has negative student weight %d", name, w)
		}
	}
	for _, w := range supervisorWeights {
		if w < 0 {
			return nil, fmt.Errorf("custom strategy %q has negative supervisor weight %d", name, w)
		}
	}
	return &custom{
		name:       name,
		student:    slices.Clone(studentWeights),
		supervisor: slices.Clone(supervisorWeights),
		agg:        agg,
	}, nil
}

// Classic reproduces the original spreadsheet weighting: student choices earn
// 10/7/5 points, supervisor choices 5/4/3/2/1, and a pair scores its single
// best shared area.
func Classic() Strategy {
	return &custom{
		name:       StrategyClassic,
		student:    []int64{10, 7, 5},
		supervisor: []int64{5, 4, 3, 2, 1},
		agg:        AggregateMax,
	}
}

func (s *custom) Name() string {
	return s.name
}

func (s *custom) Contribution(studentRank, supervisorRank int) int64 {
	var points int64
	if studentRank >= 1 && studentRank <= len(s.student) {
		points += s.student[studentRank-1]
	}
	if supervisorRank >= 1 && supervisorRank <= len(s.supervisor) {
		points += s.supervisor[supervisorRank-1]
	}
	return points
}

func (s *custom) Combine(contributions []int64) int64 {
	return combine(s.agg, contributions)
}

func combine(agg Aggregation, contributions []int64) int64 {
	switch agg {
	case AggregateMax:
		return slices.Max(contributions)
	default:
		var total int64
		for _, c := range contributions {
			total += c
		}
		return total
	}
}

// Spec selects a strategy by name. StudentRanks and SupervisorRanks bound the
// linear strategies; the weight tables and aggregation apply to custom only.
type Spec struct {
	Name              string
	StudentRanks      int
	SupervisorRanks   int
	StudentWeights    []int64
	SupervisorWeights []int64
	Aggregation       string
}

// FromSpec constructs the strategy a spec names.
func FromSpec(spec Spec) (Strategy, error) {
	switch spec.Name {
	case StrategyLinearSum:
		return NewLinearSum(spec.StudentRanks, spec.SupervisorRanks), nil
	case StrategyLinearMax:
		return NewLinearMax(spec.StudentRanks, spec.SupervisorRanks), nil
	case StrategyClassic:
		return Classic(), nil
	case StrategyCustom:
		agg, err := ParseAggregation(spec.Aggregation)
		if err != nil {
			return nil, err
		}
		return NewCustom(StrategyCustom, spec.StudentWeights, spec.SupervisorWeights, agg)
	default:
		return nil, fmt.Errorf("unknown strategy %q (must be one of %v)", spec.Name, Names())
	}
}

// Names lists the accepted strategy names in flag-help order.
func Names() []string {
	return []string{StrategyClassic, StrategyCustom, StrategyLinearMax, StrategyLinearSum}
}
