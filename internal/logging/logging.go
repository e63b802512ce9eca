// Package logging builds the zap logger the command-line tools share. The
// engine packages stay logger-free; all run-phase logging happens at the
// cmd boundary.
package logging

import "go.uber.org/zap"

// New returns a production logger, or a human-friendly development logger
// when verbose is on.
func New(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.DisableStacktrace = true
	return cfg.Build()
}
