package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is the structured logger used across the bot. Arguments after msg
// are key/value pairs, e.g. log.Error("reply failed", "error", err, "command", "ping").
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	Fatal(msg string, args ...any)
}

// Options configures New.
type Options struct {
	// File is the rotated log file. Empty logs to stdout only.
	File  string
	Level string
}

// SlogLogger writes JSON records to stdout and, when configured, a rotated file.
type SlogLogger struct {
	logger *slog.Logger
	closer io.Closer
}

func New(opts Options) *SlogLogger {
	var w io.Writer = os.Stdout
	var closer io.Closer
	if opts.File != "" {
		logFile := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    10, // MB
			MaxBackups: 5,
			MaxAge:     30, // days
			Compress:   true,
		}
		w = io.MultiWriter(os.Stdout, logFile)
		closer = logFile
	}

	return &SlogLogger{
		logger: slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
			AddSource: true,
			Level:     ParseLevel(opts.Level),
		})),
		closer: closer,
	}
}

// Nop returns a Logger that discards everything.
func Nop() Logger {
	return &SlogLogger{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// ParseLevel maps "debug", "info", "warn" and "error" to slog levels.
// Anything else is info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Slog exposes the underlying *slog.Logger.
func (l *SlogLogger) Slog() *slog.Logger {
	return l.logger
}

func (l *SlogLogger) Debug(msg string, args ...any) {
	l.logger.Debug(msg, args...)
}

func (l *SlogLogger) Info(msg string, args ...any) {
	l.logger.Info(msg, args...)
}

func (l *SlogLogger) Warn(msg string, args ...any) {
	l.logger.Warn(msg, args...)
}

func (l *SlogLogger) Error(msg string, args ...any) {
	l.logger.Error(msg, args...)
}

// Fatal logs at error level and exits the process.
func (l *SlogLogger) Fatal(msg string, args ...any) {
	l.logger.Error(msg, args...)
	l.Close()
	os.Exit(1)
}

// Close flushes and closes the log file, if any.
func (l *SlogLogger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}
