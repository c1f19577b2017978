package logger

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
)

const serviceName = "vtc-pricing-service"

// New builds the process logger. level falls back to debug in development and
// info elsewhere when empty or unknown.
func New(env, level string) zerolog.Logger {
	log := zerolog.New(os.Stderr).With().
		Timestamp().
		Str("service", serviceName).
		Logger()
	if env == "development" {
		log = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	return log.Level(parseLevel(env, level))
}

func parseLevel(env, level string) zerolog.Level {
	if lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level))); err == nil && level != "" {
		return lvl
	}
	if env == "development" {
		return zerolog.DebugLevel
	}
	return zerolog.InfoLevel
}
