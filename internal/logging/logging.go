// Package logging builds the logr.Logger used across the analyzer engines.
package logging

import (
	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Verbosity levels for logr V-logging. INFO messages always pass; DEBUG and
// TRACE are opt-in via NewLogger's level argument.
const (
	INFO  = 0
	DEBUG = 1
	TRACE = 2
)

// NewLogger returns a zap-backed logr.Logger that emits messages up to the
// given verbosity level.
func NewLogger(level int) (logr.Logger, error) {
	cfg := zap.NewProductionConfig()
	// logr verbosity maps onto negative zap levels.
	cfg.Level = zap.NewAtomicLevelAt(zapcore.Level(-level))
	z, err := cfg.Build()
	if err != nil {
		return logr.Logger{}, err
	}
	return zapr.NewLogger(z), nil
}

// Discard returns a logger that drops everything. Handy default for callers
// that do not care about engine logs.
func Discard() logr.Logger {
	return logr.Discard()
}
