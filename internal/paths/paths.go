// Package paths provides path resolution utilities.
package paths

import (
	"os"
	"path/filepath"
	"strings"
)

// Expand resolves a user supplied path.
//
//   - "~" and "~/x" are resolved against the home directory
//   - $VAR and ${VAR} are replaced from the environment
//   - "" stays empty
//
// The result is cleaned but not made absolute. When the home directory is
// unavailable a leading "~" is left as is.
func Expand(path string) string {
	if path == "" {
		return ""
	}
	path = os.ExpandEnv(path)
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
		}
	}
	return filepath.Clean(path)
}

// ExpandAll expands every path in place and drops empty entries.
func ExpandAll(paths []string) []string {
	out := paths[:0]
	for _, p := range paths {
		if p = Expand(strings.TrimSpace(p)); p != "" {
			out = append(out, p)
		}
	}
	return out
}
