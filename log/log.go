// Package log provides the process wide logger used by postboard.
package log

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log level constants
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

var zapLevel = zap.NewAtomicLevelAt(zapcore.InfoLevel)

var encoderConfig = zapcore.EncoderConfig{
	TimeKey:        "ts",
	LevelKey:       "lvl",
	NameKey:        "name",
	CallerKey:      "caller",
	MessageKey:     "message",
	StacktraceKey:  "stacktrace",
	LineEnding:     zapcore.DefaultLineEnding,
	EncodeLevel:    zapcore.CapitalLevelEncoder,
	EncodeTime:     zapcore.RFC3339TimeEncoder,
	EncodeDuration: zapcore.SecondsDurationEncoder,
	EncodeCaller:   zapcore.ShortCallerEncoder,
}

var std, wrapped = build(zapcore.NewCore(
	zapcore.NewConsoleEncoder(encoderConfig),
	zapcore.AddSync(os.Stderr),
	zapLevel,
))

// Default is a zap sugared logger writing to stderr. Replace it with anything
// implementing Logger.
var Default Logger = std

// build returns a logger for direct use and one that skips the package level
// wrapper frame when reporting the caller
func build(core zapcore.Core) (*zap.SugaredLogger, *zap.SugaredLogger) {
	base := zap.New(core, zap.AddCaller())
	return base.Sugar(), base.WithOptions(zap.AddCallerSkip(1)).Sugar()
}

func forward() Logger {
	if Default == Logger(std) {
		return wrapped
	}
	return Default
}

// Logger is the subset of *zap.SugaredLogger the rest of the module uses.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// SetLevel sets the level of Default. Unknown levels fall back to info.
func SetLevel(level string) {
	switch level {
	case LevelDebug:
		zapLevel.SetLevel(zapcore.DebugLevel)
	case LevelWarn:
		zapLevel.SetLevel(zapcore.WarnLevel)
	case LevelError:
		zapLevel.SetLevel(zapcore.ErrorLevel)
	default:
		zapLevel.SetLevel(zapcore.InfoLevel)
	}
}

// Nop returns a Logger that discards everything.
func Nop() Logger {
	return zap.NewNop().Sugar()
}

func Debugf(format string, args ...interface{}) { forward().Debugf(format, args...) }

func Infof(format string, args ...interface{}) { forward().Infof(format, args...) }

func Warnf(format string, args ...interface{}) { forward().Warnf(format, args...) }

func Errorf(format string, args ...interface{}) { forward().Errorf(format, args...) }
