package logger

import (
	"context"
	"io"
	"os"
	"strings"

	charmlog "github.com/charmbracelet/log"
)

type implLogger struct {
	logger *charmlog.Logger
}

// New creates a text Logger writing to stderr.
// Stdout is reserved for the console conversation.
func New(level string) Logger {
	return NewWithOptions(Options{Level: level, Output: os.Stderr})
}

// Options configures NewWithOptions.
type Options struct {
	Level  string
	Format string // "text" or "json"
	Output io.Writer
}

// NewWithOptions creates a Logger with an explicit output and format.
func NewWithOptions(opts Options) Logger {
	if opts.Output == nil {
		opts.Output = os.Stderr
	}
	level := strings.ToLower(opts.Level)
	cl := charmlog.NewWithOptions(opts.Output, charmlog.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Level:           toCharmLevel(level),
	})
	if strings.EqualFold(opts.Format, "json") {
		cl.SetFormatter(charmlog.JSONFormatter)
	}
	return &implLogger{logger: cl}
}

// toCharmLevel maps a config level to a charm level, defaulting to info.
func toCharmLevel(level string) charmlog.Level {
	switch level {
	case "debug":
		return charmlog.DebugLevel
	case "info":
		return charmlog.InfoLevel
	case "warn", "warning":
		return charmlog.WarnLevel
	case "error":
		return charmlog.ErrorLevel
	default:
		return charmlog.InfoLevel
	}
}

func (l *implLogger) Debug(ctx context.Context, msg string, args ...interface{}) {
	l.logger.Debugf(msg, args...)
}

func (l *implLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	l.logger.Infof(msg, args...)
}

func (l *implLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	l.logger.Warnf(msg, args...)
}

func (l *implLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	l.logger.Errorf(msg, args...)
}

type implNop struct{}

// NewNop returns a Logger that discards everything. Useful in tests.
func NewNop() Logger {
	return implNop{}
}

func (implNop) Debug(ctx context.Context, msg string, args ...interface{}) {}
func (implNop) Info(ctx context.Context, msg string, args ...interface{})  {}
func (implNop) Warn(ctx context.Context, msg string, args ...interface{})  {}
func (implNop) Error(ctx context.Context, msg string, args ...interface{}) {}
