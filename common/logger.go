package common

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger builds the process logger: pretty console output in
// development, JSON in production.
func NewLogger(cfg *Config) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	var level zerolog.Level
	switch cfg.LogLevel {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	default:
		level = zerolog.InfoLevel
	}

	if cfg.IsDevelopment() {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
			Level(level).
			With().
			Timestamp().
			Logger()
	}

	return zerolog.New(os.Stdout).
		Level(level).
		With().
		Timestamp().
		Str("service", "portfolio").
		Logger()
}
