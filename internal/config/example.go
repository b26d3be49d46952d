package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# Tracker configuration file
# Values can be overridden by TRACKER_* environment variables or CLI flags

# Task file (relative to the working directory; supports ~ and $VAR)
data_file = "tasks.json"

# Log level: debug, info, warn, error
log_level = "warn"

# Log format: text, json, logfmt
log_format = "text"

# Show timestamps in logs
log_timestamps = false

# Show caller location in logs
log_caller = false
`
}
