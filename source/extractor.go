package source

import (
	"fmt"
	"io/fs"
	"os"
)

// Extractor reads the raw text of source files.
type Extractor struct {
	fsys fs.FS
}

// NewExtractor returns an Extractor reading from the operating system.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// NewFSExtractor returns an Extractor reading from fsys.
func NewFSExtractor(fsys fs.FS) *Extractor {
	return &Extractor{fsys: fsys}
}

// Extract returns the content of path.
func (e *Extractor) Extract(path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if e.fsys != nil {
		data, err = fs.ReadFile(e.fsys, path)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read source %s: %w", path, err)
	}
	return string(data), nil
}
