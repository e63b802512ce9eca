// Package report renders a match result for the output sinks: a JSON
// document, a CSV record table, or a plain-text console summary.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/limaJavier/dissmatch/pkg/match"
)

// WriteJSON writes the records and summary as one indented JSON document.
func WriteJSON(w io.Writer, result *match.Result) error {
	document, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("report: cannot marshal result: %w", err)
	}
	document = append(document, '\n')
	_, err = w.Write(document)
	return err
}

// WriteCSV writes the match records as a CSV table. Choice rank 0 is
// rendered "unranked"; the summary stays out of the table, sinks wanting it
// use the JSON document or the console rendering.
func WriteCSV(w io.Writer, result *match.Result) error {
	writer := csv.NewWriter(w)
	header := []string{"student_id", "student_name", "supervisor_id", "supervisor_name", "area", "student_choice", "supervisor_choice", "score"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("report: cannot write CSV header: %w", err)
	}
	for _, record := range result.Records {
		row := []string{
			record.StudentID,
			record.StudentName,
			record.SupervisorID,
			record.SupervisorName,
			record.Area,
			renderChoice(record.StudentChoice),
			renderChoice(record.SupervisorChoice),
			strconv.FormatInt(record.Score, 10),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("report: cannot write CSV record: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// Render prints the run summary the way the department reads it: totals,
// per-rank satisfaction counts for both sides, unmatched students and
// supervisors with free slots.
func Render(w io.Writer, result *match.Result) {
	summary := result.Summary
	fmt.Fprintf(w, "Total satisfaction: %d (engine %v, strategy %v)\n", summary.TotalScore, summary.Engine, summary.Strategy)
	fmt.Fprintf(w, "Matched %d of %d students (max matchable %d)\n", summary.Matched, summary.Students, summary.MaxMatchable)
	fmt.Fprintf(w, "Mean satisfaction %.2f, median %.2f\n", summary.MeanSatisfaction, summary.MedianSatisfaction)

	fmt.Fprintf(w, "Students by choice received:%v\n", renderChoices(summary.StudentChoices))
	fmt.Fprintf(w, "Supervisors by choice received:%v\n", renderChoices(summary.SupervisorChoices))

	if result.Warning != nil {
		fmt.Fprintf(w, "Warning: %v\n", result.Warning)
	}
	if len(summary.UnmatchedStudents) > 0 {
		fmt.Fprintf(w, "Unmatched students:\n")
		for _, id := range summary.UnmatchedStudents {
			fmt.Fprintf(w, "\t%v\n", id)
		}
	}
	free := false
	for _, slack := range summary.Slack {
		if slack.Remaining > 0 {
			if !free {
				fmt.Fprintf(w, "Supervisors with free slots:\n")
				free = true
			}
			fmt.Fprintf(w, "\t%v (%d)\n", slack.SupervisorID, slack.Remaining)
		}
	}
}

func renderChoice(rank int) string {
	if rank == 0 {
		return "unranked"
	}
	return strconv.Itoa(rank)
}

func renderChoices(counts []int) string {
	out := ""
	for rank := 1; rank < len(counts); rank++ {
		out += fmt.Sprintf(" %v: %d", ordinal(rank), counts[rank])
	}
	if len(counts) > 0 && counts[0] > 0 {
		out += fmt.Sprintf(" unranked: %d", counts[0])
	}
	return out
}

func ordinal(rank int) string {
	switch rank {
	case 1:
		return "1st"
	case 2:
		return "2nd"
	case 3:
		return "3rd"
	default:
		return fmt.Sprintf("%dth", rank)
	}
}
