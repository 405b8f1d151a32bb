// =============================================================================
// Supplier Price List Converter - File Utilities
// =============================================================================
//
// This module provides the small set of file helpers the converter needs:
//   - Atomic file replacement (write to a temp sibling, then rename)
//   - Existence checks used by configuration loading
//
// ATOMIC WRITE STRATEGY:
//   The temp file is created in the destination directory so the final
//   rename never crosses a filesystem boundary. Its name carries a random
//   UUID so concurrent runs writing the same destination cannot collide:
//
//     ./supplier_pricelist.csv
//     ./.supplier_pricelist.csv.3f2b8c1e-....tmp   (while writing)
//
//   On any error the temp file is removed and the destination is untouched.
//
// =============================================================================

package utils

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// =============================================================================
// ATOMIC WRITE
// =============================================================================

// TempPath returns a unique temporary sibling path for path.
func TempPath(path string) string {
	dir, base := filepath.Split(path)
	return filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", base, uuid.New().String()))
}

// WriteFileAtomic writes a file by calling write with a buffered writer on a
// temporary sibling file, then renaming it over path.
//
// PARAMETERS:
//   - path: The destination file.
//   - write: Produces the file content.
//
// RETURNS:
//   - An error if the temp file cannot be created, write fails, or the
//     rename fails. The destination is unchanged in every error case.
func WriteFileAtomic(path string, write func(w io.Writer) error) (err error) {
	tempPath := TempPath(path)

	file, err := os.OpenFile(tempPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	defer func() {
		if err != nil {
			file.Close()
			os.Remove(tempPath)
		}
	}()

	buffered := bufio.NewWriter(file)
	if err = write(buffered); err != nil {
		return err
	}
	if err = buffered.Flush(); err != nil {
		return fmt.Errorf("failed to flush temp file: %w", err)
	}
	if err = file.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err = file.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err = os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("failed to move temp file into place: %w", err)
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
