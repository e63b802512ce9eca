package match

import (
	"slices"

	"github.com/samber/lo"

	"github.com/limaJavier/dissmatch/pkg/score"
	"github.com/limaJavier/dissmatch/pkg/solve"
)

// Record is one projected match. Choice ranks are 1-based positions of the
// deciding shared area in each side's list; 0 means unranked, which only
// occurs for zero-score pairings admitted by MatchZeroScore.
type Record struct {
	StudentID        string `json:"student_id"`
	StudentName      string `json:"student_name"`
	SupervisorID     string `json:"supervisor_id"`
	SupervisorName   string `json:"supervisor_name"`
	Area             string `json:"area"`
	StudentChoice    int    `json:"student_choice"`
	SupervisorChoice int    `json:"supervisor_choice"`
	Score            int64  `json:"score"`
}

// SupervisorSlack is the workload a supervisor still has free after the run.
type SupervisorSlack struct {
	SupervisorID string `json:"supervisor_id"`
	Remaining    int    `json:"remaining"`
}

// Summary aggregates one run: totals, per-rank satisfaction histograms for
// both sides, spread statistics over matched students, remaining capacity
// and the capacity diagnostic.
type Summary struct {
	Engine             string            `json:"engine"`
	Strategy           string            `json:"strategy"`
	Students           int               `json:"students"`
	Supervisors        int               `json:"supervisors"`
	TotalScore         int64             `json:"total_score"`
	Matched            int               `json:"matched"`
	AllMatched         bool              `json:"all_matched"`
	UnmatchedStudents  []string          `json:"unmatched_students"`
	FirstChoicePairs   int               `json:"first_choice_pairs"`
	StudentChoices     []int             `json:"student_choices"`    // index = rank, 0 = unranked
	SupervisorChoices  []int             `json:"supervisor_choices"` // index = rank, 0 = unranked
	MeanSatisfaction   float64           `json:"mean_satisfaction"`
	MedianSatisfaction float64           `json:"median_satisfaction"`
	Slack              []SupervisorSlack `json:"slack"`
	MaxMatchable       int               `json:"max_matchable"`
	CapacityWarning    string            `json:"capacity_warning,omitempty"`
}

// Result is the output snapshot: match records ordered by student id, the
// run summary, and the capacity warning when demand exceeded supply.
type Result struct {
	Records []Record               `json:"records"`
	Summary Summary                `json:"summary"`
	Warning *solve.CapacityWarning `json:"-"`
}

// project converts a solved assignment back into human-readable records and
// the summary block.
func project(input Input, assignment *solve.Assignment, strategy score.Strategy) *Result {
	result := &Result{
		Summary: Summary{
			Engine:            assignment.Engine,
			Strategy:          strategy.Name(),
			Students:          len(input.Students),
			Supervisors:       len(input.Supervisors),
			TotalScore:        assignment.TotalScore,
			Matched:           len(assignment.Pairs),
			AllMatched:        len(assignment.Unmatched) == 0,
			FirstChoicePairs:  assignment.FirstChoice,
			UnmatchedStudents: lo.Map(assignment.Unmatched, func(i int, _ int) string { return input.Students[i].ID }),
			StudentChoices:    make([]int, 1+maxListLen(input.Students, func(s Student) int { return len(s.Areas) })),
			SupervisorChoices: make([]int, 1+maxListLen(input.Supervisors, func(s Supervisor) int { return len(s.Areas) })),
		},
	}

	load := make(map[string]int)
	var satisfactions []int64
	for _, pair := range assignment.Pairs {
		student := input.Students[pair.Student]
		supervisor := input.Supervisors[pair.Supervisor]
		record := Record{
			StudentID:      student.ID,
			StudentName:    student.Name,
			SupervisorID:   supervisor.ID,
			SupervisorName: supervisor.Name,
			Score:          pair.Score,
		}
		if best, ok := score.Best(student.Areas, supervisor.Areas, strategy); ok {
			record.Area = string(best.Area)
			record.StudentChoice = best.StudentRank
			record.SupervisorChoice = best.SupervisorRank
		}
		result.Records = append(result.Records, record)
		result.Summary.StudentChoices[record.StudentChoice]++
		result.Summary.SupervisorChoices[record.SupervisorChoice]++
		load[supervisor.ID]++
		satisfactions = append(satisfactions, pair.Score)
	}

	result.Summary.MeanSatisfaction = mean(satisfactions)
	result.Summary.MedianSatisfaction = median(satisfactions)
	result.Summary.Slack = lo.Map(input.Supervisors, func(s Supervisor, _ int) SupervisorSlack {
		return SupervisorSlack{SupervisorID: s.ID, Remaining: s.Workload - load[s.ID]}
	})
	return result
}

func maxListLen[T any](items []T, length func(T) int) int {
	longest := 0
	for _, item := range items {
		if l := length(item); l > longest {
			longest = l
		}
	}
	return longest
}

func mean(values []int64) float64 {
	if len(values) == 0 {
		return 0
	}
	return float64(lo.Sum(values)) / float64(len(values))
}

func median(values []int64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	middle := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return float64(sorted[middle])
	}
	return float64(sorted[middle-1]+sorted[middle]) / 2
}
