// Package write puts generated icon sources and compiled artifacts on disk:
// writing, purging stale output, deleting intermediate sources and
// publishing a staged build into its final location.
package write

import (
	"fmt"
	"os"
	"path/filepath"
)

// SourceExt is the extension appended to every logical source name.
const SourceExt = ".ts"

// WriteOptions controls a single Write.
type WriteOptions struct {
	CreateDirs bool
	Overwrite  bool
	Atomic     bool
}

// SourceOptions are the options used for generated sources: parent
// directories are created and existing files are replaced atomically.
var SourceOptions = WriteOptions{
	CreateDirs: true,
	Overwrite:  true,
	Atomic:     true,
}

// BaseWriter writes files to the operating system filesystem.
type BaseWriter struct{}

func NewBaseWriter() *BaseWriter {
	return &BaseWriter{}
}

// WriteSource writes content to dir/name.ts, creating dir when needed, and
// returns the written path.
func (bw *BaseWriter) WriteSource(dir, name string, content []byte) (string, error) {
	path := filepath.Join(dir, name+SourceExt)
	if err := bw.Write(path, content, SourceOptions); err != nil {
		return "", err
	}
	return path, nil
}

func (bw *BaseWriter) Write(path string, content []byte, options WriteOptions) error {
	if options.CreateDirs {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("failed to create directories: %w", err)
		}
	}

	if !options.Overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("file already exists and overwrite is false: %s", path)
		}
	}

	if options.Atomic {
		return bw.atomicWrite(path, content)
	}

	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// NeedsWrite reports whether path is missing or holds different content.
func (bw *BaseWriter) NeedsWrite(path string, content []byte) (bool, error) {
	existing, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return true, nil
		}
		return false, err
	}

	return string(existing) != string(content), nil
}

func (bw *BaseWriter) atomicWrite(path string, content []byte) error {
	file, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	tempPath := file.Name()

	if _, err := file.Write(content); err != nil {
		file.Close()
		os.Remove(tempPath)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	if err := file.Close(); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	if err := os.Chmod(tempPath, 0o644); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
