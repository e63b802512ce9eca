package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/limaJavier/dissmatch/internal/config"
	"github.com/limaJavier/dissmatch/internal/logging"
	"github.com/limaJavier/dissmatch/internal/report"
	"github.com/limaJavier/dissmatch/pkg/match"
	"github.com/limaJavier/dissmatch/pkg/score"
	"github.com/limaJavier/dissmatch/pkg/solve"
)

var validFormats = []string{"json", "csv", "text"}

func main() {
	app := &cli.App{
		Name:  "dissmatch",
		Usage: "Assign students to dissertation supervisors by mutual area preferences",
		Commands: []*cli.Command{
			matchCmd,
			validateCmd,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var matchCmd = &cli.Command{
	Name:  "match",
	Usage: "Validate the input, solve the assignment and write the matches",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "input",
			Required: true,
			Usage:    "path to the input JSON (students, supervisors, optional catalog)",
		},
		&cli.StringFlag{
			Name:  "config",
			Usage: "path to a config file (yaml, json or toml)",
		},
		&cli.StringFlag{
			Name:  "out",
			Usage: "output file; stdout when empty",
		},
		&cli.StringFlag{
			Name:  "format",
			Value: "json",
			Usage: fmt.Sprintf("output format, one of %v", validFormats),
		},
		&cli.StringFlag{
			Name:  "engine",
			Usage: fmt.Sprintf("override the solver engine, one of %v", solve.Engines()),
		},
		&cli.StringFlag{
			Name:  "strategy",
			Usage: fmt.Sprintf("override the scoring strategy, one of %v", score.Names()),
		},
		&cli.BoolFlag{
			Name:  "zero-score",
			Usage: "permit matching students with supervisors they share no area with",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "development-style logging",
		},
	},
	Action: runMatch,
}

var validateCmd = &cli.Command{
	Name:  "validate",
	Usage: "Check the input records and report every violation without solving",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "input",
			Required: true,
			Usage:    "path to the input JSON",
		},
		&cli.StringFlag{
			Name:  "config",
			Usage: "path to a config file (yaml, json or toml)",
		},
	},
	Action: runValidate,
}

func runMatch(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	format := ctx.String("format")
	if !slices.Contains(validFormats, format) {
		return fmt.Errorf("%v is not a valid format (must be one of %v)", format, validFormats)
	}
	if engine := ctx.String("engine"); engine != "" {
		cfg.Engine = engine
	}
	if strategy := ctx.String("strategy"); strategy != "" {
		cfg.Strategy = strategy
	}
	if ctx.Bool("zero-score") {
		cfg.MatchZeroScore = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(ctx.Bool("verbose"))
	if err != nil {
		return err
	}
	defer logger.Sync()

	input, err := match.InputFromJSON(ctx.String("input"), cfg.ProcessOptions())
	if err != nil {
		return err
	}
	logger.Info("input validated",
		zap.Int("students", len(input.Students)),
		zap.Int("supervisors", len(input.Supervisors)),
		zap.Int("areas", input.Catalog.Len()),
	)

	matcherCfg, err := cfg.MatcherConfig()
	if err != nil {
		return err
	}
	matcher, err := match.New(matcherCfg)
	if err != nil {
		return err
	}

	result, err := matcher.Match(input)
	if errors.Is(err, solve.ErrEmptyMatrix) {
		return fmt.Errorf("students and supervisors share no areas at all, check the preference data: %w", err)
	}
	if err != nil {
		return err
	}
	if !matcher.Verify(input, result) {
		return errors.New("result failed verification")
	}

	if result.Warning != nil {
		logger.Warn("capacity shortfall", zap.String("warning", result.Warning.String()))
	}
	logger.Info("solved",
		zap.String("engine", result.Summary.Engine),
		zap.String("strategy", result.Summary.Strategy),
		zap.Int64("total_score", result.Summary.TotalScore),
		zap.Int("matched", result.Summary.Matched),
		zap.Int("unmatched", len(result.Summary.UnmatchedStudents)),
		zap.Int("first_choice_pairs", result.Summary.FirstChoicePairs),
	)

	return writeResult(ctx.String("out"), format, result)
}

func runValidate(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	input, err := match.InputFromJSON(ctx.String("input"), cfg.ProcessOptions())
	if err != nil {
		return err
	}
	fmt.Printf("input is valid: %d students, %d supervisors, %d areas\n",
		len(input.Students), len(input.Supervisors), input.Catalog.Len())
	return nil
}

func loadConfig(ctx *cli.Context) (config.Config, error) {
	if path := ctx.String("config"); path != "" {
		return config.Load(path)
	}
	return config.Default(), nil
}

func writeResult(outFile, format string, result *match.Result) error {
	var out io.Writer = os.Stdout
	if outFile != "" {
		file, err := os.Create(outFile)
		if err != nil {
			return fmt.Errorf("cannot create output file: %w", err)
		}
		defer file.Close()
		out = file
	}

	switch format {
	case "csv":
		return report.WriteCSV(out, result)
	case "text":
		report.Render(out, result)
		return nil
	default:
		return report.WriteJSON(out, result)
	}
}
