package platform

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/aretw0/cofiy/pkg/adapters/fs"
)

// DefaultDataDir is where the store lives relative to the working directory.
const DefaultDataDir = "data"

// ErrRootNotFound is returned when no data directory is found upwards.
var ErrRootNotFound = errors.New("data root not found")

// FindRoot walks up from startDir looking for a directory that holds
// data/companies.json or a cofiy config file, and returns it.
func FindRoot(startDir string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for dir := abs; ; {
		if hasFile(dir, filepath.Join(DefaultDataDir, fs.DefaultFileName)) ||
			hasFile(dir, "cofiy.yaml") || hasFile(dir, ".cofiy.yaml") {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrRootNotFound
		}
		dir = parent
	}
}

func hasFile(dir, name string) bool {
	_, err := os.Stat(filepath.Join(dir, name))
	return err == nil
}
