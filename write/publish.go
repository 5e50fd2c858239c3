package write

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Publish moves every top-level entry of staged into target and returns the
// published paths. An entry that already exists in target is moved aside
// first and purged once its replacement is in place; if the replacement
// cannot be moved in, the previous entry is restored.
//
// staged and target must live on the same filesystem.
func Publish(staged, target string) ([]string, error) {
	entries, err := os.ReadDir(staged)
	if err != nil {
		return nil, fmt.Errorf("failed to list staged output %s: %w", staged, err)
	}

	if err := os.MkdirAll(target, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create directories: %w", err)
	}

	published := make([]string, 0, len(entries))
	for _, entry := range entries {
		dst := filepath.Join(target, entry.Name())
		if err := replace(filepath.Join(staged, entry.Name()), dst); err != nil {
			return published, err
		}
		published = append(published, dst)
	}
	return published, nil
}

func replace(src, dst string) error {
	var previous string

	if _, err := os.Lstat(dst); err == nil {
		previous = filepath.Join(filepath.Dir(dst), "."+filepath.Base(dst)+".old-"+uuid.NewString())
		if err := os.Rename(dst, previous); err != nil {
			return fmt.Errorf("failed to move aside %s: %w", dst, err)
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat %s: %w", dst, err)
	}

	if err := os.Rename(src, dst); err != nil {
		if previous != "" {
			os.Rename(previous, dst)
		}
		return fmt.Errorf("failed to publish %s: %w", dst, err)
	}

	if previous != "" {
		return Purge(previous)
	}
	return nil
}
