// Package debug configures the structured logger used by the command line
// tool and times long running operations.
package debug

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

type DebugLevel int

const (
	LevelOff DebugLevel = iota
	LevelError
	LevelWarn
	LevelInfo
	LevelDebug
	LevelTrace
)

func (dl DebugLevel) String() string {
	switch dl {
	case LevelOff:
		return "OFF"
	case LevelError:
		return "ERROR"
	case LevelWarn:
		return "WARN"
	case LevelInfo:
		return "INFO"
	case LevelDebug:
		return "DEBUG"
	case LevelTrace:
		return "TRACE"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel accepts the names printed by String, in any case.
func ParseLevel(s string) (DebugLevel, error) {
	for level := LevelOff; level <= LevelTrace; level++ {
		if strings.EqualFold(s, level.String()) {
			return level, nil
		}
	}
	return LevelOff, fmt.Errorf("invalid debug level %q", s)
}

func isValidDebugLevel(level DebugLevel) bool {
	return level >= LevelOff && level <= LevelTrace
}

type DebugMode struct {
	level     DebugLevel
	output    io.Writer
	logger    *slog.Logger
	startTime time.Time
}

type DebugOption func(*DebugMode)

func WithLevel(level DebugLevel) DebugOption {
	return func(dm *DebugMode) {
		if isValidDebugLevel(level) {
			dm.level = level
		} else {
			dm.level = LevelInfo
		}
	}
}

func WithOutput(output io.Writer) DebugOption {
	return func(dm *DebugMode) {
		dm.output = output
	}
}

func NewDebugMode(opts ...DebugOption) *DebugMode {
	dm := &DebugMode{
		level:     LevelInfo,
		output:    os.Stderr,
		startTime: time.Now(),
	}

	for _, opt := range opts {
		opt(dm)
	}

	dm.setupLogger()
	return dm
}

func (dm *DebugMode) setupLogger() {
	opts := &slog.HandlerOptions{
		Level:     dm.slogLevel(),
		AddSource: dm.level >= LevelTrace,
	}

	dm.logger = slog.New(slog.NewTextHandler(dm.output, opts))
}

func (dm *DebugMode) slogLevel() slog.Level {
	switch dm.level {
	case LevelError:
		return slog.LevelError
	case LevelWarn:
		return slog.LevelWarn
	case LevelInfo:
		return slog.LevelInfo
	case LevelDebug, LevelTrace:
		return slog.LevelDebug
	default:
		// above every level slog emits
		return slog.LevelError + 4
	}
}

// Logger returns the logger configured for the current level.
func (dm *DebugMode) Logger() *slog.Logger {
	return dm.logger
}

// DebugContext times one operation and logs its outcome.
type DebugContext struct {
	mode      *DebugMode
	operation string
	startTime time.Time
}

func (dm *DebugMode) NewContext(operation string) *DebugContext {
	return &DebugContext{
		mode:      dm,
		operation: operation,
		startTime: time.Now(),
	}
}

func (dc *DebugContext) Duration() time.Duration {
	return time.Since(dc.startTime)
}

func (dc *DebugContext) Complete() {
	dc.mode.Logger().Debug("operation completed",
		"operation", dc.operation,
		"duration", dc.Duration())
}

// CompleteWithError logs the failure with attrs appended after the
// operation and duration.
func (dc *DebugContext) CompleteWithError(err error, attrs ...any) {
	args := []any{"operation", dc.operation, "duration", dc.Duration()}
	args = append(args, attrs...)
	args = append(args, "error", err)
	dc.mode.Logger().Error("operation failed", args...)
}
