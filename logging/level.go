package logging

import (
	"fmt"
	"strings"
	"sync/atomic"

	"go.uber.org/zap/zapcore"
)

// Level is the level of the logger.
type Level int

// Levels, from least to most severe.
const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
)

func (level Level) String() string {
	switch level {
	case DEBUG:
		return "Debug"
	case INFO:
		return "Info"
	case WARN:
		return "Warn"
	case ERROR:
		return "Error"
	}
	panic(fmt.Sprintf("unreachable: %d", level))
}

// AsZap converts the Level to the equivalent zap level.
func (level Level) AsZap() zapcore.Level {
	switch level {
	case DEBUG:
		return zapcore.DebugLevel
	case INFO:
		return zapcore.InfoLevel
	case WARN:
		return zapcore.WarnLevel
	case ERROR:
		return zapcore.ErrorLevel
	}
	panic(fmt.Sprintf("unreachable: %d", level))
}

// LevelFromString parses an input string to a log level. The string must be
// one of debug, info, warn or error (case insensitive).
func LevelFromString(input string) (Level, error) {
	switch strings.ToLower(input) {
	case "debug":
		return DEBUG, nil
	case "info":
		return INFO, nil
	case "warn", "warning":
		return WARN, nil
	case "error":
		return ERROR, nil
	}
	return DEBUG, fmt.Errorf("unknown log level: %q", input)
}

// AtomicLevel is a thread-safe log level. Copies share the underlying
// value, so a logger and its subloggers can be re-leveled independently
// only by giving each its own AtomicLevel.
type AtomicLevel struct {
	val *atomic.Int32
}

// NewAtomicLevelAt creates a new AtomicLevel at the given level.
func NewAtomicLevelAt(level Level) AtomicLevel {
	val := &atomic.Int32{}
	val.Store(int32(level))
	return AtomicLevel{val: val}
}

// Get returns the level.
func (al AtomicLevel) Get() Level {
	return Level(al.val.Load())
}

// Set sets the level.
func (al AtomicLevel) Set(level Level) {
	al.val.Store(int32(level))
}
