package logger

import (
	"log/slog"
	"os"
	"strings"
	"sync"
)

var (
	once   sync.Once
	logger *slog.Logger
)

// Config holds logger configuration.
type Config struct {
	Level     string // DEBUG, INFO, WARN, ERROR
	Format    string // text or json
	AddSource bool
}

// Init initializes the global logger. It writes to stderr so stdout stays
// reserved for data output. Subsequent calls are no-ops.
func Init(cfg Config) {
	once.Do(func() {
		var level slog.Level
		switch strings.ToUpper(cfg.Level) {
		case "DEBUG":
			level = slog.LevelDebug
		case "INFO":
			level = slog.LevelInfo
		case "WARN":
			level = slog.LevelWarn
		case "ERROR":
			level = slog.LevelError
		default:
			level = slog.LevelWarn
		}

		opts := &slog.HandlerOptions{
			Level:     level,
			AddSource: cfg.AddSource,
		}

		var handler slog.Handler
		if strings.ToLower(cfg.Format) == "json" {
			handler = slog.NewJSONHandler(os.Stderr, opts)
		} else {
			handler = slog.NewTextHandler(os.Stderr, opts)
		}

		logger = slog.New(handler)
		slog.SetDefault(logger)
	})
}

// Get returns the global logger, initializing it with defaults if needed.
func Get() *slog.Logger {
	if logger == nil {
		Init(Config{Level: "WARN", Format: "text"})
	}
	return logger
}

// Debug logs at debug level.
func Debug(msg string, args ...any) { Get().Debug(msg, args...) }

// Info logs at info level.
func Info(msg string, args ...any) { Get().Info(msg, args...) }

// Warn logs at warn level.
func Warn(msg string, args ...any) { Get().Warn(msg, args...) }

// Error logs at error level.
func Error(msg string, args ...any) { Get().Error(msg, args...) }
