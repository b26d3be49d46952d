//go:build !windows

package config

func expandPlatformVars(p string) (string, error) {
	return p, nil
}
