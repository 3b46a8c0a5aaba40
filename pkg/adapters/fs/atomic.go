package fs

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
)

// TempFilePrefix marks in-flight atomic writes. The watcher skips these.
const TempFilePrefix = ".thoughts-tmp-"

// writeFileAtomic replaces filename with data via a temp file in the same
// directory, so readers see either the old value or the new one. It returns
// the checksum of what was written.
func writeFileAtomic(filename string, data []byte, perm os.FileMode) ([32]byte, error) {
	sum := sha256.Sum256(data)
	dir := filepath.Dir(filename)

	tmp, err := os.CreateTemp(dir, TempFilePrefix+"*")
	if err != nil {
		return sum, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return sum, fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return sum, fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return sum, fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), perm); err != nil {
		return sum, fmt.Errorf("failed to chmod temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), filename); err != nil {
		return sum, fmt.Errorf("failed to rename temp file to %s: %w", filename, err)
	}
	return sum, nil
}

// checksumFile hashes the current content of filename.
func checksumFile(filename string) ([32]byte, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return [32]byte{}, err
	}
	return sha256.Sum256(data), nil
}
