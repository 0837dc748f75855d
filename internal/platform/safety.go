package platform

import (
	"os"
	"path/filepath"
	"strings"
)

// DevDirName is the folder under the temp dir used by the dev sandbox.
const DevDirName = "cofiy-dev"

// IsDevRun reports whether the binary looks like it was built by `go run` or
// `go test`.
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

// ResolveDataPath returns the directory the store should use. With forceTemp
// the path is re-rooted under {tmp}/cofiy-dev unless it already lives in the
// temp dir.
func ResolveDataPath(userPath string, forceTemp bool) string {
	if userPath == "" {
		userPath = DefaultDataDir
	}
	if !forceTemp {
		return userPath
	}

	clean := filepath.Clean(userPath)
	if rel, err := filepath.Rel(os.TempDir(), clean); err == nil && !strings.HasPrefix(rel, "..") {
		return clean
	}

	sub := filepath.Base(clean)
	if sub == "." || sub == string(os.PathSeparator) {
		sub = "default"
	}
	return filepath.Join(os.TempDir(), DevDirName, sub)
}
