// =============================================================================
// Lead Converter - File Manager Utility
// =============================================================================
//
// This module provides the file helpers the converter writes its outputs
// with:
//   - Directory management (parent directories are created on demand)
//   - Atomic replacement of output files
//
// WRITE STRATEGY:
//   Data is written to a uniquely named temporary file next to the target,
//   synced, then renamed over the target. Readers either see the previous
//   file or the complete new one. If anything fails the temporary file is
//   removed and the target is left as it was.
//
//   A target that is a symbolic link is replaced by a regular file; the
//   file the link pointed to is not written through.
//
// =============================================================================

package utils

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// =============================================================================
// DIRECTORY MANAGEMENT
// =============================================================================

// EnsureParentDir creates the directory that will hold path.
func EnsureParentDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// =============================================================================
// ATOMIC WRITES
// =============================================================================

// TempPath returns the temporary path used while writing path.
// The name is hidden and carries a random UUID so concurrent writers never
// share a temporary file.
func TempPath(path string) string {
	dir, base := filepath.Split(path)
	return filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", base, uuid.New().String()))
}

// WriteFileAtomic replaces path with data.
//
// PARAMETERS:
//   - path: The destination file.
//   - data: The complete new contents.
//   - perm: Permission bits for a newly created file.
//
// RETURNS:
//   - An error if the directory cannot be created or the file cannot be
//     written or renamed. The destination is untouched in that case.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) (err error) {
	if err := EnsureParentDir(path); err != nil {
		return err
	}

	tmp := TempPath(path)

	file, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}

	defer func() {
		if err != nil {
			file.Close()
			os.Remove(tmp)
		}
	}()

	if _, err = file.Write(data); err != nil {
		return fmt.Errorf("failed to write temporary file: %w", err)
	}
	if err = file.Sync(); err != nil {
		return fmt.Errorf("failed to sync temporary file: %w", err)
	}
	if err = file.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file: %w", err)
	}
	if err = os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}

	return nil
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
