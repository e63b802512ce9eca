// Benchmark harness: times both assignment engines on synthetic cohorts of
// growing size, checks they certify the same optimum, and writes the
// measurements as a CSV table.
package main

import (
	"encoding/csv"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/samber/lo"

	"github.com/limaJavier/dissmatch/pkg/catalog"
	"github.com/limaJavier/dissmatch/pkg/score"
	"github.com/limaJavier/dissmatch/pkg/solve"
)

const seed = 20240901

type instanceShape struct {
	Students    int
	Supervisors int
	Areas       int
}

type benchmarkResult struct {
	Shape      instanceShape
	Engine     string
	Duration   time.Duration
	TotalScore int64
	Matched    int
	Unmatched  int
}

func main() {
	shapes := []instanceShape{
		{Students: 20, Supervisors: 8, Areas: 12},
		{Students: 50, Supervisors: 15, Areas: 20},
		{Students: 100, Supervisors: 25, Areas: 30},
		{Students: 250, Supervisors: 50, Areas: 40},
		{Students: 500, Supervisors: 80, Areas: 60},
	}
	engines := lo.Map(solve.Engines(), func(name string, _ int) solve.Solver {
		return lo.Must(solve.New(name))
	})

	results := make([]benchmarkResult, 0, len(shapes)*len(engines))
	for _, shape := range shapes {
		problem := generate(rand.New(rand.NewSource(seed)), shape)

		var totals []int64
		for _, engine := range engines {
			fmt.Printf("Benchmarking %dx%d with engine %q\n", shape.Students, shape.Supervisors, engine.Name())

			start := time.Now()
			assignment, err := engine.Solve(problem)
			duration := time.Since(start)
			if err != nil {
				log.Fatalf("engine %v failed on %dx%d: %v", engine.Name(), shape.Students, shape.Supervisors, err)
			}
			if !solve.Verify(problem, assignment) {
				log.Fatalf("engine %v produced an unverifiable assignment on %dx%d", engine.Name(), shape.Students, shape.Supervisors)
			}

			totals = append(totals, assignment.TotalScore)
			results = append(results, benchmarkResult{
				Shape:      shape,
				Engine:     engine.Name(),
				Duration:   duration,
				TotalScore: assignment.TotalScore,
				Matched:    len(assignment.Pairs),
				Unmatched:  len(assignment.Unmatched),
			})
		}
		if len(lo.Uniq(totals)) != 1 {
			log.Fatalf("engines disagree on %dx%d: totals %v", shape.Students, shape.Supervisors, totals)
		}
	}

	toCsv(results)
}

// generate builds a synthetic problem: every party ranks a random sample of
// the area universe, scored with the classic strategy.
func generate(random *rand.Rand, shape instanceShape) solve.Problem {
	students := make([]score.Ranked, shape.Students)
	for i := range students {
		students[i] = sampleAreas(random, shape.Areas, 3)
	}
	supervisors := make([]score.Ranked, shape.Supervisors)
	capacities := make([]int, shape.Supervisors)
	for j := range supervisors {
		supervisors[j] = sampleAreas(random, shape.Areas, 5)
		capacities[j] = 1 + random.Intn(4)
	}

	strategy := score.Classic()
	matrix := score.Build(students, supervisors, strategy)
	firstChoice := make([][]bool, shape.Students)
	for i := range firstChoice {
		firstChoice[i] = make([]bool, shape.Supervisors)
		for j := range firstChoice[i] {
			best, ok := score.Best(students[i], supervisors[j], strategy)
			firstChoice[i][j] = ok && best.StudentRank == 1
		}
	}

	return solve.Problem{
		Scores:      matrix.Grid(),
		Capacities:  capacities,
		FirstChoice: firstChoice,
		Options:     solve.Defaults(),
	}
}

func sampleAreas(random *rand.Rand, universe, count int) score.Ranked {
	picks := random.Perm(universe)[:count]
	return lo.Map(picks, func(area int, _ int) catalog.Area {
		return catalog.Area(fmt.Sprintf("area-%02d", area))
	})
}

func toCsv(results []benchmarkResult) {
	file, err := os.Create("benchmark_results.csv")
	if err != nil {
		log.Panicf("cannot create CSV file: %v", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{"Students", "Supervisors", "Areas", "Engine", "Duration(ms)", "TotalScore", "Matched", "Unmatched"}
	if err := writer.Write(header); err != nil {
		log.Panicf("cannot write CSV header: %v", err)
	}

	for _, result := range results {
		record := []string{
			fmt.Sprintf("%d", result.Shape.Students),
			fmt.Sprintf("%d", result.Shape.Supervisors),
			fmt.Sprintf("%d", result.Shape.Areas),
			result.Engine,
			fmt.Sprintf("%.2f", float64(result.Duration.Microseconds())/1000),
			fmt.Sprintf("%d", result.TotalScore),
			fmt.Sprintf("%d", result.Matched),
			fmt.Sprintf("%d", result.Unmatched),
		}
		if err := writer.Write(record); err != nil {
			log.Panicf("cannot write CSV record: %v", err)
		}
	}
}
