// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-markd/internal/fileutil"
)

// InContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var InContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForHiddenFile explains why a dot-prefixed input was skipped.
func ForHiddenFile() string {
	return format("files whose name starts with \".\" are never converted; rename it to include it")
}

// ForMissingInput returns a hint for an input path that does not exist.
func ForMissingInput() string {
	return format("pass an existing file or directory as the first argument")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config and, when one was searched, the user config location.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, "markd"+string(os.PathSeparator)) || strings.Contains(p, "markd/") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForListenAddr returns hints for failures to bind the listen address.
// Inside a container, binding loopback makes the server unreachable from the host.
func ForListenAddr(addr string) string {
	var hints []string
	hints = append(hints, "set LISTEN_PORT or --addr to a free host:port or bare port")
	if InContainer() && (strings.HasPrefix(addr, "127.") || strings.HasPrefix(addr, "localhost")) {
		hints = append(hints, "bind 0.0.0.0 inside containers")
	}
	return formatHints(hints)
}

// ForDataDir returns a hint for an unreadable data directory.
func ForDataDir() string {
	return format("set DATA_DIR or --data-dir to a readable directory")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
