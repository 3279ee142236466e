package services

import (
	"io"
	"log/slog"
	"os"
	"strings"

	slogmulti "github.com/samber/slog-multi"
)

// Logger defines common logging interface for all services
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}

// LoggerOptions controls where and how log records are written.
type LoggerOptions struct {
	Level  string // debug, info, warn, error
	Format string // text or json
	File   string // optional JSON log file, written alongside stdout
}

// ProductionLogger adapts *slog.Logger to the Logger interface.
type ProductionLogger struct {
	logger *slog.Logger
}

// NewProductionLogger builds the service logger. Records go to stdout in the
// chosen format and, when opts.File is set, are fanned out as JSON to that
// file. The returned cleanup closes the file.
func NewProductionLogger(service string, opts LoggerOptions) (*ProductionLogger, func() error) {
	level := ParseLevel(opts.Level)
	stdout := newHandler(os.Stdout, opts.Format, level)

	if opts.File == "" {
		return &ProductionLogger{logger: slog.New(stdout).With("service", service)}, func() error { return nil }
	}

	file, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		logger := slog.New(stdout).With("service", service)
		logger.Error("failed to open log file, using stdout only", "error", err, "file", opts.File)
		return &ProductionLogger{logger: logger}, func() error { return nil }
	}

	fileHandler := slog.NewJSONHandler(file, &slog.HandlerOptions{Level: level})
	logger := slog.New(slogmulti.Fanout(stdout, fileHandler)).With("service", service)
	return &ProductionLogger{logger: logger}, file.Close
}

// NewLoggerWithWriters fans records out to two writers, text then JSON. Used by tests.
func NewLoggerWithWriters(service string, text, json io.Writer, level slog.Level) *ProductionLogger {
	textHandler := slog.NewTextHandler(text, &slog.HandlerOptions{Level: level})
	jsonHandler := slog.NewJSONHandler(json, &slog.HandlerOptions{Level: level})
	return &ProductionLogger{logger: slog.New(slogmulti.Fanout(textHandler, jsonHandler)).With("service", service)}
}

func newHandler(w io.Writer, format string, level slog.Level) slog.Handler {
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(format, "json") {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// ParseLevel maps LOG_LEVEL values onto slog levels, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Slog exposes the underlying logger for packages that take *slog.Logger.
func (p *ProductionLogger) Slog() *slog.Logger {
	return p.logger
}

func (p *ProductionLogger) Info(msg string, keysAndValues ...interface{}) {
	p.logger.Info(msg, keysAndValues...)
}

func (p *ProductionLogger) Error(msg string, keysAndValues ...interface{}) {
	p.logger.Error(msg, keysAndValues...)
}

func (p *ProductionLogger) Debug(msg string, keysAndValues ...interface{}) {
	p.logger.Debug(msg, keysAndValues...)
}

func (p *ProductionLogger) Warn(msg string, keysAndValues ...interface{}) {
	p.logger.Warn(msg, keysAndValues...)
}

// NoOpLogger is a logger that does nothing (for testing)
type NoOpLogger struct{}

func (n *NoOpLogger) Info(msg string, keysAndValues ...interface{})  {}
func (n *NoOpLogger) Error(msg string, keysAndValues ...interface{}) {}
func (n *NoOpLogger) Debug(msg string, keysAndValues ...interface{}) {}
func (n *NoOpLogger) Warn(msg string, keysAndValues ...interface{})  {}
