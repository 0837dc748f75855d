package fs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// TempFilePrefix marks in-flight writes. The watcher ignores these names.
const TempFilePrefix = "cofiy-tmp-"

// WriteFileAtomic replaces filename with data. Readers see either the old or
// the new content, never a partial write.
func WriteFileAtomic(filename string, data []byte, perm os.FileMode) error {
	return writeAtomic(filename, perm, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}

// writeAtomic streams fill into a temp file next to filename, then renames it
// into place and syncs the directory entry.
func writeAtomic(filename string, perm os.FileMode, fill func(io.Writer) error) error {
	dir := filepath.Dir(filename)
	tmp, err := os.CreateTemp(dir, TempFilePrefix+"*")
	if err != nil {
		return fmt.Errorf("create temp file in %s: %w", dir, err)
	}
	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err := fill(tmp); err != nil {
		return fmt.Errorf("write %s: %w", filename, err)
	}
	if err := tmp.Chmod(perm); err != nil {
		return fmt.Errorf("chmod %s: %w", tmp.Name(), err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), filename); err != nil {
		return fmt.Errorf("replace %s: %w", filename, err)
	}
	committed = true
	syncDir(dir)
	return nil
}

// syncDir flushes the rename to disk. Not every platform can open a directory
// for syncing, so failures are ignored.
func syncDir(dir string) {
	d, err := os.Open(dir)
	if err != nil {
		return
	}
	_ = d.Sync()
	d.Close()
}
