package write

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Purge deletes dir and everything below it. A missing dir is not an error.
// Purge refuses empty paths, the working directory and filesystem roots.
func Purge(dir string) error {
	clean := filepath.Clean(dir)
	if dir == "" || clean == "." || clean == filepath.VolumeName(clean)+string(filepath.Separator) {
		return fmt.Errorf("refusing to purge %q", dir)
	}

	if err := os.RemoveAll(clean); err != nil {
		return fmt.Errorf("failed to purge %s: %w", clean, err)
	}
	return nil
}

// PurgePrefixed purges every entry of dir whose name starts with prefix and
// returns the removed paths. A missing dir is not an error.
func PurgePrefixed(dir, prefix string) ([]string, error) {
	if prefix == "" {
		return nil, fmt.Errorf("refusing to purge %s without a prefix", dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	var removed []string
	for _, entry := range entries {
		if !strings.HasPrefix(entry.Name(), prefix) {
			continue
		}
		p := filepath.Join(dir, entry.Name())
		if err := Purge(p); err != nil {
			return removed, err
		}
		removed = append(removed, p)
	}
	return removed, nil
}

// DeleteFiles removes every path. Paths that no longer exist are ignored;
// all other failures are collected and returned together.
func DeleteFiles(paths []string) error {
	var errs []error
	for _, p := range paths {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			errs = append(errs, fmt.Errorf("failed to delete file %s: %w", p, err))
		}
	}
	return errors.Join(errs...)
}
