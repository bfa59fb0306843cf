// Package logging builds the zap.Logger the CLI forwards Engine.Log
// records and its own diagnostics to. The engine core never imports this
// package; only cmd/stateforgectl does.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a production-profile zap.Logger, raising the level to debug
// when verbose is set.
func New(verbose bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// ForwardEngineLog writes each accumulated Engine.Log record as a debug
// entry, tagged with component=engine so engine records are
// distinguishable from the CLI's own log lines.
func ForwardEngineLog(logger *zap.Logger, records []string) {
	for _, r := range records {
		logger.Debug(r, zap.String("component", "engine"))
	}
}
