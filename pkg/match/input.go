package match

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/samber/lo"

	"github.com/limaJavier/dissmatch/pkg/catalog"
	"github.com/limaJavier/dissmatch/pkg/score"
)

// RawStudent and RawSupervisor mirror the input records as the data source
// hands them over, before any validation.
type RawStudent struct {
	ID    string
	Name  string
	Areas []string
}

type RawSupervisor struct {
	ID       string
	Name     string
	Workload int
	Areas    []string
}

// RawInput is one unvalidated input snapshot. Catalog may be empty, in which
// case the area universe is derived from the supervisors' preference lists.
type RawInput struct {
	Catalog     []string
	Students    []RawStudent
	Supervisors []RawSupervisor
}

// Student and Supervisor are validated records with canonical, resolved
// areas. Both slices in Input are sorted by ID so downstream tie-breaking is
// reproducible.
type Student struct {
	ID    string
	Name  string
	Areas score.Ranked
}

type Supervisor struct {
	ID       string
	Name     string
	Workload int
	Areas    score.Ranked
}

type Input struct {
	Catalog     *catalog.Catalog
	Students    []Student
	Supervisors []Supervisor
}

// Limits caps the ranked list lengths; they double as the N and M of the
// linear scoring strategies.
type Limits struct {
	StudentAreas    int
	SupervisorAreas int
}

func DefaultLimits() Limits {
	return Limits{StudentAreas: 3, SupervisorAreas: 5}
}

// ProcessOptions adjusts input processing. A non-empty Catalog overrides the
// catalog carried inside the input snapshot.
type ProcessOptions struct {
	Catalog []string
	Limits  Limits
}

// InputFromJSON reads one input snapshot from a JSON file.
func InputFromJSON(file string, opts ProcessOptions) (Input, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return Input{}, fmt.Errorf("match: cannot read input: %w", err)
	}
	var inputJSON map[string]any
	if err := json.Unmarshal(bytes, &inputJSON); err != nil {
		return Input{}, fmt.Errorf("match: cannot parse input: %w", err)
	}

	var rawInput RawInput
	if err := mapstructure.Decode(inputJSON, &rawInput); err != nil {
		return Input{}, fmt.Errorf("match: cannot decode input: %w", err)
	}
	return ProcessRawInput(rawInput, opts)
}

// ProcessRawInput validates a raw snapshot and resolves every preference
// entry against the catalog. All violations across all records are collected
// and returned joined; any violation aborts the run before scoring.
func ProcessRawInput(raw RawInput, opts ProcessOptions) (Input, error) {
	limits := opts.Limits
	if limits.StudentAreas == 0 || limits.SupervisorAreas == 0 {
		limits = DefaultLimits()
	}

	cat, err := buildCatalog(raw, opts)
	if err != nil {
		return Input{}, err
	}

	var violations []error
	input := Input{Catalog: cat}

	supervisorIDs := make(map[string]bool)
	for i, rawSupervisor := range raw.Supervisors {
		record := fmt.Sprintf("supervisor %v", recordLabel(rawSupervisor.ID, i))
		violations = append(violations, checkID(record, rawSupervisor.ID, supervisorIDs)...)
		if rawSupervisor.Workload < 1 {
			violations = append(violations, &ValidationError{
				Record: record,
				Field:  "workload",
				Value:  fmt.Sprint(rawSupervisor.Workload),
				Reason: "must be a positive integer",
			})
		}
		areas, areaViolations := resolveAreas(record, rawSupervisor.Areas, cat, limits.SupervisorAreas)
		violations = append(violations, areaViolations...)

		input.Supervisors = append(input.Supervisors, Supervisor{
			ID:       rawSupervisor.ID,
			Name:     displayName(rawSupervisor.Name, rawSupervisor.ID),
			Workload: rawSupervisor.Workload,
			Areas:    areas,
		})
	}

	studentIDs := make(map[string]bool)
	for i, rawStudent := range raw.Students {
		record := fmt.Sprintf("student %v", recordLabel(rawStudent.ID, i))
		violations = append(violations, checkID(record, rawStudent.ID, studentIDs)...)
		areas, areaViolations := resolveAreas(record, rawStudent.Areas, cat, limits.StudentAreas)
		violations = append(violations, areaViolations...)

		input.Students = append(input.Students, Student{
			ID:    rawStudent.ID,
			Name:  displayName(rawStudent.Name, rawStudent.ID),
			Areas: areas,
		})
	}

	if err := errors.Join(violations...); err != nil {
		return Input{}, err
	}

	// Sorted IDs make the residual solver tie-break lexicographic.
	slices.SortFunc(input.Students, func(a, b Student) int { return strings.Compare(a.ID, b.ID) })
	slices.SortFunc(input.Supervisors, func(a, b Supervisor) int { return strings.Compare(a.ID, b.ID) })
	return input, nil
}

func buildCatalog(raw RawInput, opts ProcessOptions) (*catalog.Catalog, error) {
	if len(opts.Catalog) > 0 {
		return catalog.New(opts.Catalog)
	}
	if len(raw.Catalog) > 0 {
		return catalog.New(raw.Catalog)
	}
	lists := lo.Map(raw.Supervisors, func(s RawSupervisor, _ int) []string { return s.Areas })
	return catalog.Derive(lists)
}

func recordLabel(id string, index int) string {
	if id == "" {
		return fmt.Sprintf("#%d", index+1)
	}
	return id
}

func displayName(name, id string) string {
	if name == "" {
		return id
	}
	return name
}

func checkID(record, id string, seen map[string]bool) []error {
	if id == "" {
		return []error{&ValidationError{Record: record, Field: "id", Reason: "must not be blank"}}
	}
	if seen[id] {
		return []error{&ValidationError{Record: record, Field: "id", Value: id, Reason: "duplicate id"}}
	}
	seen[id] = true
	return nil
}

// resolveAreas maps a raw ranked list onto catalog areas, flagging unknown
// entries, duplicates within the list, empty lists and over-long lists.
func resolveAreas(record string, rawAreas []string, cat *catalog.Catalog, limit int) (score.Ranked, []error) {
	var violations []error
	if len(rawAreas) == 0 {
		violations = append(violations, &ValidationError{
			Record: record,
			Field:  "areas",
			Reason: "ranked list is empty",
		})
	}
	if len(rawAreas) > limit {
		violations = append(violations, &ValidationError{
			Record: record,
			Field:  "areas",
			Value:  fmt.Sprint(len(rawAreas)),
			Reason: fmt.Sprintf("ranked list holds more than %d areas", limit),
		})
	}

	ranked := make(score.Ranked, 0, len(rawAreas))
	seen := make(map[catalog.Area]bool)
	for i, rawArea := range rawAreas {
		field := fmt.Sprintf("areas[%d]", i+1)
		area, err := cat.Resolve(rawArea, fmt.Sprintf("%v, choice %d", record, i+1))
		if err != nil {
			violations = append(violations, &ValidationError{
				Record: record,
				Field:  field,
				Value:  rawArea,
				Reason: "not in the area catalog",
			})
			continue
		}
		if seen[area] {
			violations = append(violations, &ValidationError{
				Record: record,
				Field:  field,
				Value:  rawArea,
				Reason: "area listed twice in one ranked list",
			})
			continue
		}
		seen[area] = true
		ranked = append(ranked, area)
	}
	return ranked, violations
}
