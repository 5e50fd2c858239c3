// Package processors provides the post-processors used by the icon pipeline:
// SVG minification for icon markup and goimports formatting for the
// generated Go bindings.
package processors

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/svg"
)

const svgMediaType = "image/svg+xml"

// SVGMinify shrinks SVG markup: comments, metadata and redundant whitespace
// are removed and numbers are shortened. It only touches .svg paths.
type SVGMinify struct {
	minifier *minify.M
}

// NewSVGMinify creates an SVG minifier. precision is the number of
// significant digits kept in numbers, zero keeps them all.
func NewSVGMinify(precision int) *SVGMinify {
	m := minify.New()
	m.AddFunc("text/css", css.Minify)
	m.Add(svgMediaType, &svg.Minifier{Precision: precision})

	return &SVGMinify{minifier: m}
}

// ProcessContent implements the postprocess.Processor interface.
func (s *SVGMinify) ProcessContent(filePath string, content []byte) ([]byte, error) {
	if !strings.EqualFold(filepath.Ext(filePath), ".svg") {
		return content, nil
	}

	out, err := s.minifier.Bytes(svgMediaType, content)
	if err != nil {
		return nil, fmt.Errorf("failed to optimize %s: %w", filePath, err)
	}
	return out, nil
}
