package logger

import (
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Level = zapcore.Level

const (
	DebugLevel = zapcore.DebugLevel
	InfoLevel  = zapcore.InfoLevel
)

var (
	level = zap.NewAtomicLevelAt(InfoLevel)

	rootOnce sync.Once
	root     *zap.Logger
	rootErr  error
)

func init() {
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		_ = level.UnmarshalText([]byte(lvl))
	}
}

// Logger is a named, sugared zap logger.
type Logger struct {
	sugar *zap.SugaredLogger
}

// SetLevel changes the level of every logger handed out by this package.
func SetLevel(l Level) {
	level.SetLevel(l)
}

func base() (*zap.Logger, error) {
	rootOnce.Do(func() {
		cfg := zap.NewProductionConfig()
		cfg.Level = level
		cfg.Encoding = "console"
		cfg.EncoderConfig.TimeKey = "ts"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		root, rootErr = cfg.Build()
	})
	return root, rootErr
}

func Named(name string) (*Logger, error) {
	l, err := base()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return &Logger{sugar: l.Named(name).Sugar()}, nil
}

func MustNamed(name string) *Logger {
	l, err := Named(name)
	if err != nil {
		panic(err)
	}
	return l
}

// Nop returns a logger that discards everything. Used by tests.
func Nop() *Logger {
	return &Logger{sugar: zap.NewNop().Sugar()}
}

// Unwrap exposes the underlying zap logger for libraries that want one (fx).
func (l *Logger) Unwrap() *zap.SugaredLogger {
	return l.sugar
}

func (l *Logger) Debugw(msg string, keysAndValues ...any) { l.sugar.Debugw(msg, keysAndValues...) }
func (l *Logger) Infow(msg string, keysAndValues ...any)  { l.sugar.Infow(msg, keysAndValues...) }
func (l *Logger) Warnw(msg string, keysAndValues ...any)  { l.sugar.Warnw(msg, keysAndValues...) }
func (l *Logger) Errorw(msg string, keysAndValues ...any) { l.sugar.Errorw(msg, keysAndValues...) }

func (l *Logger) Debugf(template string, args ...any) { l.sugar.Debugf(template, args...) }

// Sync flushes buffered entries. Errors from syncing stdout/stderr are ignored.
func Sync() {
	if root != nil {
		_ = root.Sync()
	}
}
