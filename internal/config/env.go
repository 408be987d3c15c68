// Package config provides shared process configuration utilities.
package config

import "os"

// Environment variables read by the binaries.
const (
	EnvTuning     = "ASTEROIDS_TUNING"    // Path to a YAML tuning file
	EnvLogLevel   = "ASTEROIDS_LOG_LEVEL" // debug, info, warn, error
	EnvSSHHost    = "SSH_HOST"
	EnvSSHPort    = "SSH_PORT"
	EnvSSHHostKey = "SSH_HOST_KEY"
)

// GetEnv returns the value of the environment variable named by the key,
// or fallback if the variable is not set.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
