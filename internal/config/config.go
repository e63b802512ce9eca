// Package config loads and validates the run configuration. A Config is
// read once, validated, and passed down by value; no package-level state.
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/limaJavier/dissmatch/pkg/match"
	"github.com/limaJavier/dissmatch/pkg/score"
	"github.com/limaJavier/dissmatch/pkg/solve"
)

type Config struct {
	// Catalog lists the canonical areas. Empty means: take the catalog from
	// the input snapshot, or derive it from the supervisors' lists.
	Catalog []string `mapstructure:"catalog"`

	// Scoring.
	Strategy          string  `mapstructure:"strategy"`
	Aggregation       string  `mapstructure:"aggregation"`
	StudentWeights    []int64 `mapstructure:"student_weights"`
	SupervisorWeights []int64 `mapstructure:"supervisor_weights"`

	// Solving.
	Engine            string `mapstructure:"engine"`
	MatchZeroScore    bool   `mapstructure:"match_zero_score"`
	PreferFirstChoice bool   `mapstructure:"prefer_first_choice"`
	BalanceWorkloads  bool   `mapstructure:"balance_workloads"`
	Parallel          bool   `mapstructure:"parallel"`

	// Input limits.
	MaxStudentAreas    int `mapstructure:"max_student_areas"`
	MaxSupervisorAreas int `mapstructure:"max_supervisor_areas"`
}

// Default returns the documented defaults: classic scoring, flow engine,
// first-choice preference and workload balancing on, zero-score matching
// off.
func Default() Config {
	return Config{
		Strategy:           score.StrategyClassic,
		Engine:             solve.EngineFlow,
		PreferFirstChoice:  true,
		BalanceWorkloads:   true,
		MaxStudentAreas:    3,
		MaxSupervisorAreas: 5,
	}
}

// Load reads a config file on top of the defaults. The format follows the
// file extension (yaml, json or toml).
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("config: cannot read %v: %w", path, err)
	}
	cfg := Default()
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: cannot decode %v: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every field that construction would reject later, so a
// bad file fails at load time with a config error rather than mid-run.
func (c Config) Validate() error {
	if _, err := score.FromSpec(c.StrategySpec()); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := solve.New(c.Engine); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.MaxStudentAreas < 1 || c.MaxSupervisorAreas < 1 {
		return fmt.Errorf("config: area list limits must be positive, got %d and %d", c.MaxStudentAreas, c.MaxSupervisorAreas)
	}
	return nil
}

// StrategySpec translates the scoring fields into a score.Spec.
func (c Config) StrategySpec() score.Spec {
	return score.Spec{
		Name:              c.Strategy,
		StudentRanks:      c.MaxStudentAreas,
		SupervisorRanks:   c.MaxSupervisorAreas,
		StudentWeights:    c.StudentWeights,
		SupervisorWeights: c.SupervisorWeights,
		Aggregation:       c.Aggregation,
	}
}

// MatcherConfig builds the matcher configuration, constructing the strategy.
func (c Config) MatcherConfig() (match.Config, error) {
	strategy, err := score.FromSpec(c.StrategySpec())
	if err != nil {
		return match.Config{}, err
	}
	return match.Config{
		Strategy: strategy,
		Engine:   c.Engine,
		Options: solve.Options{
			MatchZeroScore:    c.MatchZeroScore,
			PreferFirstChoice: c.PreferFirstChoice,
			BalanceWorkloads:  c.BalanceWorkloads,
		},
		Parallel: c.Parallel,
	}, nil
}

// ProcessOptions builds the input-processing options.
func (c Config) ProcessOptions() match.ProcessOptions {
	return match.ProcessOptions{
		Catalog: c.Catalog,
		Limits: match.Limits{
			StudentAreas:    c.MaxStudentAreas,
			SupervisorAreas: c.MaxSupervisorAreas,
		},
	}
}
