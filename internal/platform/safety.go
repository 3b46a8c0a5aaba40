package platform

import (
	"os"
	"path/filepath"
	"strings"
)

// IsDevRun reports whether the process looks like `go run` or `go test`.
func IsDevRun() bool {
	exe, err := os.Executable()
	if err != nil {
		return false
	}
	if strings.HasPrefix(strings.ToLower(exe), strings.ToLower(os.TempDir())) {
		return true
	}
	return strings.HasSuffix(exe, ".test") || strings.HasSuffix(exe, ".test.exe")
}

// ResolveDataDir returns dir unchanged unless forceTemp is set, in which case
// paths outside the system temp directory are moved under
// <tmp>/thoughts-dev/<base> so development runs never touch real data.
func ResolveDataDir(dir string, forceTemp bool) string {
	if !forceTemp {
		if dir == "" {
			return "."
		}
		return dir
	}

	clean := filepath.Clean(dir)
	if rel, err := filepath.Rel(os.TempDir(), clean); err == nil && !strings.HasPrefix(rel, "..") && filepath.IsAbs(clean) {
		return clean
	}

	name := filepath.Base(clean)
	if dir == "" || name == "." || name == string(os.PathSeparator) {
		name = "default"
	}
	return filepath.Join(os.TempDir(), "thoughts-dev", name)
}
