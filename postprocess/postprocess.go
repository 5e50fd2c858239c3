// Package postprocess chains transformations applied to icon markup and
// generated source before it is written.
//
// The engine runs every extracted SVG through a Chain, which by default holds
// the SVG minifier from the processors package. More processors can be
// appended to normalize or rewrite markup:
//
//	eng := engine.New(engine.WithOptimizer(postprocess.ProcessorFunc(
//		func(path string, svg []byte) ([]byte, error) {
//			return bytes.ReplaceAll(svg, []byte("#000"), []byte("currentColor")), nil
//		})))
package postprocess

import "fmt"

// Processor defines the interface for content post-processors.
// Implementations should be stateless and safe for concurrent use.
type Processor interface {
	// ProcessContent returns the transformed content of filePath.
	// Processors return content unchanged for file types they do not handle.
	ProcessContent(filePath string, content []byte) ([]byte, error)
}

// ProcessorFunc adapts a plain function to the Processor interface.
type ProcessorFunc func(filePath string, content []byte) ([]byte, error)

// ProcessContent implements the Processor interface.
func (f ProcessorFunc) ProcessContent(filePath string, content []byte) ([]byte, error) {
	return f(filePath, content)
}

// ProcessError reports which processor of a chain failed.
type ProcessError struct {
	Index int
	Path  string
	Err   error
}

func (e *ProcessError) Error() string {
	return fmt.Sprintf("processor %d failed for %s: %v", e.Index, e.Path, e.Err)
}

func (e *ProcessError) Unwrap() error {
	return e.Err
}

// Chain runs processors in the order they were added.
type Chain struct {
	processors []Processor
}

// NewChain creates a chain holding processors.
func NewChain(processors ...Processor) *Chain {
	return &Chain{
		processors: append(make([]Processor, 0, len(processors)), processors...),
	}
}

// Add adds a processor to the end of the chain.
func (c *Chain) Add(processor Processor) {
	c.processors = append(c.processors, processor)
}

// AddFunc adds a function as a processor to the end of the chain.
func (c *Chain) AddFunc(fn func(filePath string, content []byte) ([]byte, error)) {
	c.processors = append(c.processors, ProcessorFunc(fn))
}

// Process runs all processors in sequence on content and stops at the first
// failure, returned as a *ProcessError.
func (c *Chain) Process(filePath string, content []byte) ([]byte, error) {
	result := content
	for i, processor := range c.processors {
		processed, err := processor.ProcessContent(filePath, result)
		if err != nil {
			return nil, &ProcessError{Index: i, Path: filePath, Err: err}
		}
		result = processed
	}
	return result, nil
}

// ProcessString is Process for text content.
func (c *Chain) ProcessString(filePath, content string) (string, error) {
	out, err := c.Process(filePath, []byte(content))
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Len returns the number of processors in the chain.
func (c *Chain) Len() int {
	return len(c.processors)
}
