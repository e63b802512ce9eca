package score

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLinearContribution(t *testing.T) {
	// Arrange: student lists hold up to 3 ranks, supervisor lists up to 5.
	strategy := NewLinearSum(3, 5)

	// Assert: contribution is (N+1-sr) + (M+1-pr).
	assert.Equal(t, int64(8), strategy.Contribution(1, 1))
	assert.Equal(t, int64(4), strategy.Contribution(3, 2))
	assert.Equal(t, int64(2), strategy.Contribution(3, 5))
}

func TestLinearContributionOutOfRangeRankEarnsNothing(t *testing.T) {
	strategy := NewLinearSum(3, 5)

	assert.Equal(t, int64(5), strategy.Contribution(4, 1))
	assert.Equal(t, int64(3), strategy.Contribution(1, 6))
	assert.Equal(t, int64(0), strategy.Contribution(0, 0))
}

func TestLinearCombine(t *testing.T) {
	sum := NewLinearSum(3, 5)
	max := NewLinearMax(3, 5)
	contributions := []int64{4, 8, 2}

	assert.Equal(t, int64(14), sum.Combine(contributions))
	assert.Equal(t, int64(8), max.Combine(contributions))
	assert.Equal(t, StrategyLinearSum, sum.Name())
	assert.Equal(t, StrategyLinearMax, max.Name())
}

func TestCustomContribution(t *testing.T) {
	// Arrange
	strategy, err := NewCustom("thesis", []int64{10, 7, 5}, []int64{5, 4, 3, 2, 1}, AggregateSum)
	assert.NoError(t, err)

	// Assert
	assert.Equal(t, int64(15), strategy.Contribution(1, 1))
	assert.Equal(t, int64(8), strategy.Contribution(3, 3))
	assert.Equal(t, int64(1), strategy.Contribution(9, 5), "rank beyond the table earns nothing")
}

func TestCustomRejectsNegativeWeights(t *testing.T) {
	_, err := NewCustom("bad", []int64{10, -10}, nil, AggregateSum)

	assert.Error(t, err)
}

func TestCustomRejectsEmptyWeights(t *testing.T) {
	_, err := NewCustom("bad", nil, nil, AggregateSum)

	assert.Error(t, err)
}

func TestClassicPreset(t *testing.T) {
	strategy := Classic()

	assert.Equal(t, StrategyClassic, strategy.Name())
	assert.Equal(t, int64(15), strategy.Contribution(1, 1))
	assert.Equal(t, int64(12), strategy.Contribution(2, 1))
	assert.Equal(t, int64(6), strategy.Contribution(3, 5))
	assert.Equal(t, int64(12), strategy.Combine([]int64{6, 12, 8}), "classic keeps the best shared area only")
}

func TestParseAggregation(t *testing.T) {
	cases := []struct {
		name    string
		agg     Aggregation
		invalid bool
	}{
		{name: "sum", agg: AggregateSum},
		{name: "", agg: AggregateSum},
		{name: "max", agg: AggregateMax},
		{name: "median", invalid: true},
	}

	for _, c := range cases {
		agg, err := ParseAggregation(c.name)
		if c.invalid {
			assert.Error(t, err)
			continue
		}
		assert.NoError(t, err)
		assert.Equal(t, c.agg, agg)
	}
}

func TestFromSpec(t *testing.T) {
	cases := []struct {
		spec    Spec
		name    string
		invalid bool
	}{
		{spec: Spec{Name: StrategyLinearSum, StudentRanks: 3, SupervisorRanks: 5}, name: StrategyLinearSum},
		{spec: Spec{Name: StrategyLinearMax, StudentRanks: 3, SupervisorRanks: 5}, name: StrategyLinearMax},
		{spec: Spec{Name: StrategyClassic}, name: StrategyClassic},
		{spec: Spec{Name: StrategyCustom, StudentWeights: []int64{3, 1}, Aggregation: "max"}, name: StrategyCustom},
		{spec: Spec{Name: StrategyCustom, Aggregation: "median"}, invalid: true},
		{spec: Spec{Name: "greedy"}, invalid: true},
	}

	for _, c := range cases {
		strategy, err := FromSpec(c.spec)
		if c.invalid {
			assert.Error(t, err)
			continue
		}
		assert.NoError(t, err)
		assert.Equal(t, c.name, strategy.Name())
	}
}
