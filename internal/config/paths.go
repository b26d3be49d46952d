package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// resolveDataFile turns the configured data_file into an absolute path.
// Environment references and a leading ~ are expanded; relative paths are
// joined to workDir. A reference to an unset variable is an error rather
// than an empty path segment.
func resolveDataFile(raw, workDir string) (string, error) {
	p := strings.TrimSpace(raw)
	if p == "" {
		return "", errors.New("data_file must not be empty")
	}

	p, err := expandVars(p)
	if err != nil {
		return "", fmt.Errorf("data_file %q: %w", raw, err)
	}
	p, err = expandHome(p)
	if err != nil {
		return "", fmt.Errorf("data_file %q: %w", raw, err)
	}
	if p == "" {
		return "", fmt.Errorf("data_file %q expands to an empty path", raw)
	}

	if !filepath.IsAbs(p) {
		p = filepath.Join(workDir, p)
	}
	return filepath.Clean(p), nil
}

// expandVars replaces $VAR and ${VAR}, then any platform-specific forms.
func expandVars(p string) (string, error) {
	var missing []string
	out := os.Expand(p, func(key string) string {
		v, ok := os.LookupEnv(key)
		if !ok {
			missing = append(missing, key)
		}
		return v
	})
	if len(missing) > 0 {
		return "", fmt.Errorf("unset environment variable %s", strings.Join(missing, ", "))
	}
	return expandPlatformVars(out)
}

// expandHome replaces a leading "~" or "~/" with the user's home directory.
// "~user" forms are not supported.
func expandHome(p string) (string, error) {
	if !strings.HasPrefix(p, "~") {
		return p, nil
	}
	if len(p) > 1 && !os.IsPathSeparator(p[1]) {
		return "", errors.New("~user paths are not supported")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("expanding ~: %w", err)
	}
	return filepath.Join(home, p[1:]), nil
}
