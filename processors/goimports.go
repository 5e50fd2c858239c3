package processors

import (
	"fmt"
	"go/format"
	"path/filepath"
	"strings"

	"golang.org/x/tools/imports"
)

// GoImports formats generated Go bindings with goimports, falling back to
// gofmt when import resolution fails. Other files pass through unchanged.
type GoImports struct {
	// TabWidth sets the tab width for formatting (default: 8)
	TabWidth int
	// TabIndent determines whether to use tabs for indentation (default: true)
	TabIndent bool
	// AllErrors reports all syntax errors instead of the first (default: false)
	AllErrors bool
}

// NewGoImports creates a Go imports processor with gofmt defaults.
func NewGoImports() *GoImports {
	return &GoImports{
		TabWidth:  8,
		TabIndent: true,
	}
}

// ProcessContent implements the postprocess.Processor interface.
func (g *GoImports) ProcessContent(filePath string, content []byte) ([]byte, error) {
	if !strings.EqualFold(filepath.Ext(filePath), ".go") {
		return content, nil
	}

	options := &imports.Options{
		AllErrors: g.AllErrors,
		Comments:  true,
		TabIndent: g.TabIndent,
		TabWidth:  g.TabWidth,
	}

	formatted, err := imports.Process(filePath, content, options)
	if err == nil {
		return formatted, nil
	}

	formatted, fmtErr := format.Source(content)
	if fmtErr != nil {
		return nil, fmt.Errorf("failed to format %s with goimports (%w) and gofmt (%w)", filePath, err, fmtErr)
	}
	return formatted, nil
}
