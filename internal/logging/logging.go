// Package logging provides the structured, leveled logger that the CLI
// threads into the scan orchestrator through orchestrator.Options; the
// scanner, graph builder, and query/impact/drift packages take no logger.
// It mirrors the teacher's Debugf/Infof/Warnf/Errorf shape but is
// backed by zap's structured core instead of the standard log package, and
// is carried as an explicit value rather than a mutable package global so
// concurrent scans never race on verbosity state.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps a zap.SugaredLogger with the verbosity toggle the CLI exposes.
type Logger struct {
	sugar   *zap.SugaredLogger
	verbose bool
}

// New builds a Logger writing to stderr. Debug-level messages are only
// emitted when verbose is true; warnings and errors always are.
func New(verbose bool) *Logger {
	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if verbose {
		level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	cfg := zap.Config{
		Level:            level,
		Development:      false,
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}
	cfg.EncoderConfig.TimeKey = ""
	z, err := cfg.Build()
	if err != nil {
		z = zap.NewNop()
	}
	return &Logger{sugar: z.Sugar(), verbose: verbose}
}

// Noop returns a Logger that discards everything; useful as a default for
// library callers that don't want CLI-style logging.
func Noop() *Logger {
	return &Logger{sugar: zap.NewNop().Sugar()}
}

func (l *Logger) Debugf(format string, args ...any) {
	if l == nil {
		return
	}
	l.sugar.Debugf(format, args...)
}

func (l *Logger) Infof(format string, args ...any) {
	if l == nil {
		return
	}
	l.sugar.Infof(format, args...)
}

func (l *Logger) Warnf(format string, args ...any) {
	if l == nil {
		return
	}
	l.sugar.Warnf(format, args...)
}

func (l *Logger) Errorf(format string, args ...any) {
	if l == nil {
		return
	}
	l.sugar.Errorf(format, args...)
}

// Sync flushes any buffered log entries; callers should defer it in main().
func (l *Logger) Sync() {
	if l == nil {
		return
	}
	_ = l.sugar.Sync()
}
