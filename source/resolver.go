// Package source finds icon source files and reads their content.
package source

import (
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// File is one path produced by the Resolver.
type File struct {
	// Path is the matched path as returned by the glob, OS separators for
	// the OS resolver and slash separated for an fs.FS resolver.
	Path string
	// Name is the base name without its extension.
	Name string
	// Ext is the extension including the leading dot, as found on disk.
	Ext string
}

// NewFile splits path into its base name and extension.
func NewFile(p string) File {
	base := filepath.Base(p)
	ext := filepath.Ext(base)
	return File{
		Path: p,
		Name: strings.TrimSuffix(base, ext),
		Ext:  ext,
	}
}

// HasExt reports whether the file carries ext, ignoring case.
func (f File) HasExt(ext string) bool {
	return strings.EqualFold(f.Ext, ext)
}

// BadPatternError reports a glob pattern that cannot be parsed.
type BadPatternError struct {
	Pattern string
}

func (e *BadPatternError) Error() string {
	return fmt.Sprintf("malformed glob pattern %q", e.Pattern)
}

// Resolver expands glob patterns into files.
//
// Patterns are evaluated in the order given. The matches of a single pattern
// are sorted lexically by path and the per-pattern results are concatenated
// without removing duplicates. Only regular files match. A pattern without
// matches contributes nothing and is not an error.
type Resolver struct {
	fsys fs.FS
}

// NewResolver returns a Resolver over the operating system filesystem.
func NewResolver() *Resolver {
	return &Resolver{}
}

// NewFSResolver returns a Resolver over fsys. Patterns are slash separated
// and relative to the root of fsys.
func NewFSResolver(fsys fs.FS) *Resolver {
	return &Resolver{fsys: fsys}
}

// Resolve expands patterns.
func (r *Resolver) Resolve(patterns []string) ([]File, error) {
	var files []File

	for _, pattern := range patterns {
		matches, err := r.glob(pattern)
		if err != nil {
			return nil, err
		}

		sort.Strings(matches)
		for _, match := range matches {
			files = append(files, NewFile(match))
		}
	}

	return files, nil
}

func (r *Resolver) glob(pattern string) ([]string, error) {
	if r.fsys != nil {
		if !doublestar.ValidatePattern(pattern) {
			return nil, &BadPatternError{Pattern: pattern}
		}
		matches, err := doublestar.Glob(r.fsys, path.Clean(pattern), doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("failed to expand %q: %w", pattern, err)
		}
		return matches, nil
	}

	if !doublestar.ValidatePattern(filepath.ToSlash(pattern)) {
		return nil, &BadPatternError{Pattern: pattern}
	}
	matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("failed to expand %q: %w", pattern, err)
	}
	return matches, nil
}
