package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/limaJavier/dissmatch/pkg/score"
	"github.com/limaJavier/dissmatch/pkg/solve"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()

	assert.NoError(t, cfg.Validate())
	assert.Equal(t, score.StrategyClassic, cfg.Strategy)
	assert.Equal(t, solve.EngineFlow, cfg.Engine)
	assert.True(t, cfg.PreferFirstChoice)
	assert.True(t, cfg.BalanceWorkloads)
	assert.False(t, cfg.MatchZeroScore)
}

func TestLoadYAML(t *testing.T) {
	// Arrange
	file := filepath.Join(t.TempDir(), "dissmatch.yaml")
	payload := `
strategy: custom
aggregation: max
student_weights: [10, 7, 5]
supervisor_weights: [5, 4, 3, 2, 1]
engine: hungarian
match_zero_score: true
catalog:
  - Databases
  - Security
`
	assert.NoError(t, os.WriteFile(file, []byte(payload), 0666))

	// Act
	cfg, err := Load(file)

	// Assert: file values override, untouched defaults survive.
	assert.NoError(t, err)
	assert.Equal(t, score.StrategyCustom, cfg.Strategy)
	assert.Equal(t, solve.EngineHungarian, cfg.Engine)
	assert.True(t, cfg.MatchZeroScore)
	assert.Equal(t, []int64{10, 7, 5}, cfg.StudentWeights)
	assert.Equal(t, []string{"Databases", "Security"}, cfg.Catalog)
	assert.Equal(t, 3, cfg.MaxStudentAreas)
	assert.True(t, cfg.PreferFirstChoice)
}

func TestLoadRejectsUnknownStrategy(t *testing.T) {
	file := filepath.Join(t.TempDir(), "dissmatch.yaml")
	assert.NoError(t, os.WriteFile(file, []byte("strategy: quadratic\n"), 0666))

	_, err := Load(file)

	assert.ErrorContains(t, err, "unknown strategy")
}

func TestLoadRejectsUnknownEngine(t *testing.T) {
	file := filepath.Join(t.TempDir(), "dissmatch.yaml")
	assert.NoError(t, os.WriteFile(file, []byte("engine: simplex\n"), 0666))

	_, err := Load(file)

	assert.ErrorContains(t, err, "unknown engine")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))

	assert.Error(t, err)
}

func TestMatcherConfigRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Strategy = score.StrategyLinearSum

	matcherCfg, err := cfg.MatcherConfig()

	assert.NoError(t, err)
	assert.Equal(t, score.StrategyLinearSum, matcherCfg.Strategy.Name())
	assert.Equal(t, solve.EngineFlow, matcherCfg.Engine)
	assert.True(t, matcherCfg.Options.PreferFirstChoice)
}

func TestProcessOptionsCarriesLimits(t *testing.T) {
	cfg := Default()
	cfg.MaxStudentAreas = 4

	opts := cfg.ProcessOptions()

	assert.Equal(t, 4, opts.Limits.StudentAreas)
	assert.Equal(t, 5, opts.Limits.SupervisorAreas)
}
