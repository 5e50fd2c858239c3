// Package compile turns the generated TypeScript sources into JavaScript
// artifacts emitted next to each source.
package compile

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// Compiler validates sources and emits their build artifacts in place. It
// returns only after every artifact has been written.
type Compiler interface {
	Compile(ctx context.Context, paths []string) error
}

// Names of the built-in compilers.
const (
	NameTSC     = "tsc"
	NameEsbuild = "esbuild"
)

// Names lists the built-in compilers.
func Names() []string {
	names := []string{NameTSC, NameEsbuild}
	sort.Strings(names)
	return names
}

// New returns the built-in compiler called name. tscPath is only used by
// the tsc compiler; empty means "tsc" from PATH.
func New(name, tscPath string) (Compiler, error) {
	switch strings.ToLower(name) {
	case "", NameTSC:
		return NewTSC(tscPath), nil
	case NameEsbuild:
		return NewEsbuild(), nil
	default:
		return nil, fmt.Errorf("unknown compiler %q, expected one of %s", name, strings.Join(Names(), ", "))
	}
}

// Error carries the diagnostics of a failed compilation.
type Error struct {
	Compiler    string
	Diagnostics []string
	Err         error
}

func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s failed", e.Compiler)
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	for _, d := range e.Diagnostics {
		b.WriteString("\n  ")
		b.WriteString(d)
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func artifactBase(path string) string {
	return strings.TrimSuffix(path, ".ts")
}
