package engine

import (
	"log/slog"

	"github.com/cpcf/iconforge/compile"
	"github.com/cpcf/iconforge/postprocess"
	"github.com/cpcf/iconforge/source"
)

type Option func(*Engine)

func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithResolver replaces the resolver used for the source patterns.
func WithResolver(resolver *source.Resolver) Option {
	return func(e *Engine) {
		e.resolver = resolver
	}
}

// WithExtractor replaces the extractor used to read source markup.
func WithExtractor(extractor *source.Extractor) Option {
	return func(e *Engine) {
		e.extractor = extractor
	}
}

// WithCompiler overrides the compiler named in the options.
func WithCompiler(compiler compile.Compiler) Option {
	return func(e *Engine) {
		e.compiler = compiler
	}
}

// WithConcurrency overrides Options.Concurrency. Values below one are ignored.
func WithConcurrency(n int) Option {
	return func(e *Engine) {
		e.concurrency = n
	}
}

// WithMinify toggles the built-in SVG minifier. It is on by default.
func WithMinify(enabled bool) Option {
	return func(e *Engine) {
		e.minify = enabled
	}
}

// WithOptimizer appends a processor to the markup chain, after the minifier.
func WithOptimizer(processor postprocess.Processor) Option {
	return func(e *Engine) {
		e.optimizers = append(e.optimizers, processor)
	}
}
