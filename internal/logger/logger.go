package logger

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Field is a structured logging field.
type Field = zap.Field

// Levels accepted by New, lowest first.
var Levels = []string{"debug", "info", "warn", "error"}

type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	Fatal(msg string, fields ...Field)

	Debugf(template string, args ...any)
	Infof(template string, args ...any)
	Warnf(template string, args ...any)
	Errorf(template string, args ...any)
	Fatalf(template string, args ...any)

	// With returns a child logger that adds fields to every entry.
	With(fields ...Field) Logger
	// Named returns a child logger whose name is suffixed with name.
	Named(name string) Logger

	Sync() error
}

type loggerImpl struct {
	base    *zap.Logger
	sugared *zap.SugaredLogger
}

// New builds the process logger: colored console output when pretty,
// JSON otherwise. An unknown level falls back to info.
func New(level string, pretty bool) (Logger, error) {
	var cfg zap.Config
	if pretty {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "time"
		cfg.EncoderConfig.EncodeTime = zapcore.RFC3339TimeEncoder
	}

	lvl, ok := parseLevel(level)
	if !ok {
		lvl = zapcore.InfoLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	base, err := cfg.Build(
		zap.AddStacktrace(zapcore.FatalLevel), // Only add stack traces for Fatal
	)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return FromZap(base.Named("navdir")), nil
}

// ValidLevel reports whether New understands level.
func ValidLevel(level string) bool {
	_, ok := parseLevel(level)
	return ok
}

// NewNop returns a logger that discards everything. Meant for tests.
func NewNop() Logger {
	return FromZap(zap.NewNop())
}

// FromZap wraps an existing zap logger.
func FromZap(base *zap.Logger) Logger {
	return &loggerImpl{base: base, sugared: base.Sugar()}
}

func parseLevel(lvl string) (zapcore.Level, bool) {
	switch lvl {
	case "debug":
		return zapcore.DebugLevel, true
	case "info":
		return zapcore.InfoLevel, true
	case "warn":
		return zapcore.WarnLevel, true
	case "error":
		return zapcore.ErrorLevel, true
	default:
		return zapcore.InfoLevel, false
	}
}

func (l *loggerImpl) Debug(msg string, fields ...Field) { l.base.Debug(msg, fields...) }
func (l *loggerImpl) Info(msg string, fields ...Field)  { l.base.Info(msg, fields...) }
func (l *loggerImpl) Warn(msg string, fields ...Field)  { l.base.Warn(msg, fields...) }
func (l *loggerImpl) Error(msg string, fields ...Field) { l.base.Error(msg, fields...) }
func (l *loggerImpl) Fatal(msg string, fields ...Field) { l.base.Fatal(msg, fields...) }

func (l *loggerImpl) Debugf(t string, args ...any) { l.sugared.Debugf(t, args...) }
func (l *loggerImpl) Infof(t string, args ...any)  { l.sugared.Infof(t, args...) }
func (l *loggerImpl) Warnf(t string, args ...any)  { l.sugared.Warnf(t, args...) }
func (l *loggerImpl) Errorf(t string, args ...any) { l.sugared.Errorf(t, args...) }
func (l *loggerImpl) Fatalf(t string, args ...any) { l.sugared.Fatalf(t, args...) }

func (l *loggerImpl) With(fields ...Field) Logger { return FromZap(l.base.With(fields...)) }
func (l *loggerImpl) Named(name string) Logger    { return FromZap(l.base.Named(name)) }

func (l *loggerImpl) Sync() error { return l.base.Sync() }

// Field constructors, so other packages log without importing zap.
func String(key, val string) Field                 { return zap.String(key, val) }
func Strings(key string, val []string) Field       { return zap.Strings(key, val) }
func Int(key string, val int) Field                { return zap.Int(key, val) }
func Int64(key string, val int64) Field            { return zap.Int64(key, val) }
func Bool(key string, val bool) Field              { return zap.Bool(key, val) }
func Duration(key string, val time.Duration) Field { return zap.Duration(key, val) }
func Error(err error) Field                        { return zap.Error(err) }
