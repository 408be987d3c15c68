package config

import (
	"io"

	"github.com/charmbracelet/log"
)

// NewLogger creates a structured logger writing to w. The level comes from
// ASTEROIDS_LOG_LEVEL and falls back to info when unset or unknown.
func NewLogger(w io.Writer, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})

	raw := GetEnv(EnvLogLevel, "info")
	level, err := log.ParseLevel(raw)
	if err != nil {
		logger.Warn("unknown log level, using info", "value", raw)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}
