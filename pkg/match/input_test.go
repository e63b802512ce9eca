package match

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/limaJavier/dissmatch/pkg/score"
)

func TestProcessRawInput(t *testing.T) {
	// Arrange: ids out of order, names missing, entries numbered.
	raw := RawInput{
		Supervisors: []RawSupervisor{
			{ID: "P2", Name: "Dr. Noor", Workload: 2, Areas: []string{"1. Databases", "2. Security"}},
			{ID: "P1", Workload: 1, Areas: []string{"Security", "Machine Learning"}},
		},
		Students: []RawStudent{
			{ID: "S2", Areas: []string{"security"}},
			{ID: "S1", Name: "Ada", Areas: []string{"DATABASES", "Machine Learning"}},
		},
	}

	// Act
	input, err := ProcessRawInput(raw, ProcessOptions{})

	// Assert: records sorted by id, areas canonical, names defaulted.
	assert.NoError(t, err)
	assert.Equal(t, []string{"S1", "S2"}, []string{input.Students[0].ID, input.Students[1].ID})
	assert.Equal(t, []string{"P1", "P2"}, []string{input.Supervisors[0].ID, input.Supervisors[1].ID})
	assert.Equal(t, "Ada", input.Students[0].Name)
	assert.Equal(t, "S2", input.Students[1].Name)
	assert.Equal(t, score.Ranked{"Databases", "Machine Learning"}, input.Students[0].Areas)
	assert.Equal(t, 3, input.Catalog.Len(), "catalog derived from supervisor lists")
}

func TestProcessRawInputUnknownAreaAbortsRun(t *testing.T) {
	raw := RawInput{
		Supervisors: []RawSupervisor{{ID: "P1", Workload: 1, Areas: []string{"Databases"}}},
		Students:    []RawStudent{{ID: "S1", Areas: []string{"Databases", "Astrology"}}},
	}

	_, err := ProcessRawInput(raw, ProcessOptions{})

	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "student S1", validationErr.Record)
	assert.Equal(t, "Astrology", validationErr.Value)
}

func TestProcessRawInputCollectsEveryViolation(t *testing.T) {
	raw := RawInput{
		Supervisors: []RawSupervisor{
			{ID: "P1", Workload: 0, Areas: []string{"Databases", "databases"}},
			{ID: "P1", Workload: 1, Areas: []string{"Databases"}},
		},
		Students: []RawStudent{
			{ID: "", Areas: nil},
			{ID: "S1", Areas: []string{"A", "B", "C", "D"}},
		},
	}

	_, err := ProcessRawInput(raw, ProcessOptions{Catalog: []string{"Databases", "A", "B", "C", "D"}})

	assert.Error(t, err)
	for _, fragment := range []string{
		"supervisor P1: workload",
		"area listed twice",
		"duplicate id",
		"student #1: id",
		"ranked list is empty",
		"more than 3 areas",
	} {
		assert.ErrorContains(t, err, fragment)
	}
}

func TestProcessRawInputCatalogPrecedence(t *testing.T) {
	raw := RawInput{
		Catalog:     []string{"Databases", "Security"},
		Supervisors: []RawSupervisor{{ID: "P1", Workload: 1, Areas: []string{"Databases"}}},
		Students:    []RawStudent{{ID: "S1", Areas: []string{"Databases"}}},
	}

	t.Run("input catalog", func(t *testing.T) {
		input, err := ProcessRawInput(raw, ProcessOptions{})

		assert.NoError(t, err)
		assert.Equal(t, 2, input.Catalog.Len())
	})

	t.Run("options catalog overrides", func(t *testing.T) {
		input, err := ProcessRawInput(raw, ProcessOptions{Catalog: []string{"Databases"}})

		assert.NoError(t, err)
		assert.Equal(t, 1, input.Catalog.Len())
	})
}

func TestInputFromJSON(t *testing.T) {
	// Arrange
	file := filepath.Join(t.TempDir(), "input.json")
	payload := `{
		"supervisors": [
			{"id": "P1", "name": "Dr. Noor", "workload": 2, "areas": ["Databases", "Security"]}
		],
		"students": [
			{"id": "S1", "name": "Ada", "areas": ["1. Security"]}
		]
	}`
	assert.NoError(t, os.WriteFile(file, []byte(payload), 0666))

	// Act
	input, err := InputFromJSON(file, ProcessOptions{})

	// Assert
	assert.NoError(t, err)
	assert.Len(t, input.Students, 1)
	assert.Equal(t, score.Ranked{"Security"}, input.Students[0].Areas)
	assert.Equal(t, 2, input.Supervisors[0].Workload)
}

func TestInputFromJSONMissingFile(t *testing.T) {
	_, err := InputFromJSON(filepath.Join(t.TempDir(), "absent.json"), ProcessOptions{})

	assert.Error(t, err)
}
