package score

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/limaJavier/dissmatch/pkg/catalog"
)

func TestRank(t *testing.T) {
	ranked := Ranked{"Databases", "Security", "HCI"}

	assert.Equal(t, 1, ranked.Rank("Databases"))
	assert.Equal(t, 3, ranked.Rank("HCI"))
	assert.Equal(t, 0, ranked.Rank("Robotics"))
}

func TestOverlaps(t *testing.T) {
	// Arrange
	strategy := NewLinearSum(3, 5)
	student := Ranked{"Databases", "Security", "HCI"}
	supervisor := Ranked{"HCI", "Robotics", "Databases"}

	// Act
	overlaps := Overlaps(student, supervisor, strategy)

	// Assert: student rank order, contributions per the linear formula.
	assert.Len(t, overlaps, 2)
	assert.Equal(t, Overlap{Area: "Databases", StudentRank: 1, SupervisorRank: 3, Contribution: 6}, overlaps[0])
	assert.Equal(t, Overlap{Area: "HCI", StudentRank: 3, SupervisorRank: 1, Contribution: 6}, overlaps[1])
}

func TestPairZeroWithoutSharedArea(t *testing.T) {
	strategy := NewLinearSum(3, 5)

	pair := Pair(Ranked{"Databases"}, Ranked{"Robotics", "HCI"}, strategy)

	assert.Equal(t, int64(0), pair)
}

func TestPairAggregation(t *testing.T) {
	student := Ranked{"Databases", "Security", "HCI"}
	supervisor := Ranked{"HCI", "Robotics", "Databases"}

	assert.Equal(t, int64(12), Pair(student, supervisor, NewLinearSum(3, 5)))
	assert.Equal(t, int64(6), Pair(student, supervisor, NewLinearMax(3, 5)))
}

func TestBestPrefersEarliestStudentRankOnTies(t *testing.T) {
	// Databases and HCI both contribute 6 under the linear formula here.
	strategy := NewLinearSum(3, 5)
	student := Ranked{"Databases", "Security", "HCI"}
	supervisor := Ranked{"HCI", "Robotics", "Databases"}

	best, ok := Best(student, supervisor, strategy)

	assert.True(t, ok)
	assert.Equal(t, Overlap{Area: "Databases", StudentRank: 1, SupervisorRank: 3, Contribution: 6}, best)
}

func TestBestWithoutSharedArea(t *testing.T) {
	_, ok := Best(Ranked{"Databases"}, Ranked{"HCI"}, NewLinearSum(3, 5))

	assert.False(t, ok)
}

func TestBuild(t *testing.T) {
	// Arrange
	strategy := Classic()
	students := []Ranked{
		{"Databases", "Security"},
		{"Robotics"},
	}
	supervisors := []Ranked{
		{"Security", "Databases"},
		{"Robotics", "HCI"},
	}

	// Act
	matrix := Build(students, supervisors, strategy)

	// Assert
	assert.Equal(t, 2, matrix.Students())
	assert.Equal(t, 2, matrix.Supervisors())
	assert.Equal(t, int64(14), matrix.At(0, 0), "databases at student rank 1, supervisor rank 2")
	assert.Equal(t, int64(0), matrix.At(0, 1))
	assert.Equal(t, int64(15), matrix.At(1, 1))
	assert.False(t, matrix.AllZero())
}

func TestBuildAllZero(t *testing.T) {
	matrix := Build([]Ranked{{"Databases"}}, []Ranked{{"HCI"}}, Classic())

	assert.True(t, matrix.AllZero())
}

func TestBuildParallelMatchesBuild(t *testing.T) {
	// Arrange: enough rows to interleave goroutine completion.
	areas := []catalog.Area{"A", "B", "C", "D", "E", "F", "G", "H"}
	var students, supervisors []Ranked
	for i := 0; i < 40; i++ {
		students = append(students, Ranked{
			areas[i%len(areas)],
			areas[(i+3)%len(areas)],
			areas[(i+5)%len(areas)],
		})
	}
	for i := 0; i < 11; i++ {
		supervisors = append(supervisors, Ranked{
			areas[(i+1)%len(areas)],
			areas[(i+2)%len(areas)],
			areas[(i+4)%len(areas)],
			areas[(i+6)%len(areas)],
		})
	}
	strategy := NewLinearSum(3, 5)

	// Act
	sequential := Build(students, supervisors, strategy)
	parallel := BuildParallel(students, supervisors, strategy)

	// Assert
	assert.Empty(t, cmp.Diff(sequential.Grid(), parallel.Grid()))
}

func TestGridCopies(t *testing.T) {
	matrix := Build([]Ranked{{"A"}}, []Ranked{{"A"}}, Classic())

	grid := matrix.Grid()
	grid[0][0] = 999

	assert.Equal(t, int64(15), matrix.At(0, 0))
}
