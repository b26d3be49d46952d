package config

import (
	"fmt"
	"os"
	"strings"
)

// Environment variables read by loadFromEnv.
const (
	EnvDataFile      = "TRACKER_FILE"
	EnvLogLevel      = "TRACKER_LOG_LEVEL"
	EnvLogFormat     = "TRACKER_LOG_FORMAT"
	EnvLogTimestamps = "TRACKER_LOG_TIMESTAMPS"
	EnvLogCaller     = "TRACKER_LOG_CALLER"
)

// loadFromEnv overrides config from TRACKER_* environment variables.
// Unset and empty variables are ignored.
func loadFromEnv(cfg *Config, sources map[string]ConfigSource) error {
	if v := os.Getenv(EnvDataFile); v != "" {
		cfg.DataFile = v
		sources["data_file"] = SourceEnv
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
		sources["log_level"] = SourceEnv
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		cfg.LogFormat = v
		sources["log_format"] = SourceEnv
	}
	if v := os.Getenv(EnvLogTimestamps); v != "" {
		b, err := boolFromString(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvLogTimestamps, err)
		}
		cfg.LogTimestamps = b
		sources["log_timestamps"] = SourceEnv
	}
	if v := os.Getenv(EnvLogCaller); v != "" {
		b, err := boolFromString(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvLogCaller, err)
		}
		cfg.LogCaller = b
		sources["log_caller"] = SourceEnv
	}
	return nil
}

// boolFromString parses the boolean spellings accepted in the environment.
func boolFromString(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true, nil
	case "0", "false", "no", "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean %q", s)
	}
}
