//go:build windows

package config

import (
	"fmt"
	"os"
	"strings"
)

// expandPlatformVars replaces %VAR% references. A percent sign that does not
// enclose a variable name is kept as written.
func expandPlatformVars(p string) (string, error) {
	var b strings.Builder
	var missing []string
	rest := p
	for {
		before, after, ok := strings.Cut(rest, "%")
		b.WriteString(before)
		if !ok {
			break
		}
		name, tail, closed := strings.Cut(after, "%")
		if !closed || name == "" || strings.ContainsAny(name, ` \/:`) {
			b.WriteByte('%')
			rest = after
			continue
		}
		if v, found := os.LookupEnv(name); found {
			b.WriteString(v)
		} else {
			missing = append(missing, name)
		}
		rest = tail
	}
	if len(missing) > 0 {
		return "", fmt.Errorf("unset environment variable %s", strings.Join(missing, ", "))
	}
	return b.String(), nil
}
