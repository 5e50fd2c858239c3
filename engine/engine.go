// Package engine runs the icon conversion pipeline: it resolves the source
// patterns, renders one TypeScript module per SVG file plus an index into a
// staging directory, compiles them, and publishes the artifacts into the
// output directory only once compilation has succeeded.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/cpcf/iconforge/compile"
	"github.com/cpcf/iconforge/config"
	"github.com/cpcf/iconforge/postprocess"
	"github.com/cpcf/iconforge/processors"
	"github.com/cpcf/iconforge/snippet"
	"github.com/cpcf/iconforge/source"
	"github.com/cpcf/iconforge/state"
	"github.com/cpcf/iconforge/write"
)

// IconExt is the extension a source file needs to be converted.
const IconExt = ".svg"

const indexName = "index"

type Engine struct {
	logger      *slog.Logger
	resolver    *source.Resolver
	extractor   *source.Extractor
	compiler    compile.Compiler
	writer      *write.BaseWriter
	formatter   postprocess.Processor
	concurrency int
	minify      bool
	optimizers  []postprocess.Processor
}

// Result describes a successful conversion.
type Result struct {
	// Modules holds every generated icon module in discovery order.
	Modules []IconModule
	// Skipped lists resolved paths that were not SVG files.
	Skipped []string
	Index   string
	Union   string
	// Published lists the artifact files now in the output directory and
	// Changed those whose content differs from the previous run.
	Published    []string
	Changed      []string
	ModelPath    string
	BindingsPath string
	ManifestPath string
}

func New(opts ...Option) *Engine {
	e := &Engine{
		logger:    slog.Default(),
		resolver:  source.NewResolver(),
		extractor: source.NewExtractor(),
		writer:    write.NewBaseWriter(),
		formatter: processors.NewGoImports(),
		minify:    true,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Convert performs one full regeneration. Every failure is a *StageError;
// when Convert fails before publishing, the output directory still holds
// the previous run's artifacts.
func (e *Engine) Convert(ctx context.Context, options config.Options) (*Result, error) {
	if err := options.Validate(); err != nil {
		return nil, stageError(StageValidating, KindConfig, "", err)
	}
	compiler, err := e.compilerFor(options)
	if err != nil {
		return nil, stageError(StageValidating, KindConfig, "", err)
	}

	e.logger.Info("resolving sources", "patterns", options.SrcFiles)
	files, err := e.resolver.Resolve(options.SrcFiles)
	if err != nil {
		var bad *source.BadPatternError
		if errors.As(err, &bad) {
			return nil, stageError(StageResolving, KindResolution, bad.Pattern, err)
		}
		return nil, stageError(StageResolving, KindResolution, "", err)
	}
	e.logger.Debug("resolved sources", "count", len(files))

	staging, err := e.prepareStaging(options)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := write.Purge(staging); err != nil {
			e.logger.Warn("failed to remove staging directory", "path", staging, "error", err)
		}
	}()

	result := &Result{}
	modules, skipped, err := planModules(files, options)
	if err != nil {
		return nil, err
	}
	result.Modules = modules
	result.Skipped = skipped
	for _, p := range skipped {
		e.logger.Debug("skipping non-svg file", "path", p)
	}

	optimizers := e.optimizerChain(options)
	e.logger.Info("generating icons", "count", len(modules), "workers", e.workers(options), "optimizers", optimizers.Len())
	renderer := NewRenderer(e.logger, e.extractor, optimizers)
	if err := renderer.RenderAll(ctx, modules, e.workers(options)); err != nil {
		return nil, err
	}

	index, union, err := e.writeModules(staging, modules, options)
	if err != nil {
		return nil, err
	}
	result.Index = index
	result.Union = union

	indexPath, err := e.writer.WriteSource(staging, indexName, []byte(index))
	if err != nil {
		return nil, stageError(StageIndexWriting, KindIO, filepath.Join(staging, indexName+write.SourceExt), err)
	}
	e.logger.Debug("wrote index", "path", indexPath)

	sources, err := stagedSources(staging, options.IconsFolderName)
	if err != nil {
		return nil, stageError(StageCompiling, KindIO, staging, err)
	}
	e.logger.Info("compiling", "count", len(sources), "compiler", options.Compiler)
	if err := compiler.Compile(ctx, sources); err != nil {
		return nil, stageError(StageCompiling, KindCompile, staging, err)
	}

	if err := write.DeleteFiles(sources); err != nil {
		return nil, stageError(StageCleaningUp, KindIO, staging, err)
	}

	if _, err := write.Publish(staging, options.OutputDirectory); err != nil {
		return nil, stageError(StagePublishing, KindIO, options.OutputDirectory, err)
	}
	e.logger.Info("published icons", "path", options.IconsDir())

	if result.ModelPath, err = e.writeModel(options, union); err != nil {
		return nil, stageError(StageModelWriting, KindIO, options.ModelPath(), err)
	}

	if result.BindingsPath, err = e.writeBindings(options, modules); err != nil {
		return nil, err
	}

	if err := e.updateManifest(options, modules, result); err != nil {
		return nil, err
	}

	e.logger.Info("conversion complete", "icons", len(modules), "output", options.OutputDirectory)
	return result, nil
}

func (e *Engine) compilerFor(options config.Options) (compile.Compiler, error) {
	if e.compiler != nil {
		return e.compiler, nil
	}
	return compile.New(options.Compiler, options.TSCPath)
}

func (e *Engine) workers(options config.Options) int {
	if e.concurrency > 0 {
		return e.concurrency
	}
	if options.Concurrency > 0 {
		return options.Concurrency
	}
	return 1
}

func (e *Engine) optimizerChain(options config.Options) *postprocess.Chain {
	chain := postprocess.NewChain()
	if e.minify {
		chain.Add(processors.NewSVGMinify(options.Precision))
	}
	for _, p := range e.optimizers {
		chain.Add(p)
	}
	return chain
}

// prepareStaging creates the output directory, removes staging directories
// left behind by interrupted runs and creates a fresh one.
func (e *Engine) prepareStaging(options config.Options) (string, error) {
	out := options.OutputDirectory
	if err := os.MkdirAll(out, 0o755); err != nil {
		return "", stageError(StagePurging, KindIO, out, fmt.Errorf("failed to create output directory: %w", err))
	}

	removed, err := write.PurgePrefixed(out, config.StagingPrefix)
	if err != nil {
		return "", stageError(StagePurging, KindIO, out, err)
	}
	for _, p := range removed {
		e.logger.Warn("removed stale staging directory", "path", p)
	}

	staging := filepath.Join(out, config.StagingPrefix+uuid.NewString())
	if err := os.MkdirAll(filepath.Join(staging, options.IconsFolderName), 0o755); err != nil {
		return "", stageError(StagePurging, KindIO, staging, fmt.Errorf("failed to create staging directory: %w", err))
	}
	e.logger.Debug("created staging directory", "path", staging)

	return staging, nil
}

// planModules picks the SVG files out of files and derives their names. Two
// files that would produce the same module file, variable or Go identifier
// are a conflict, and so is a name that is not valid UTF-8.
func planModules(files []source.File, options config.Options) ([]IconModule, []string, error) {
	var (
		modules   []IconModule
		skipped   []string
		fileNames = make(map[string]string)
		variables = make(map[string]string)
		goNames   = make(map[string]string)
	)

	for _, f := range files {
		if !f.HasExt(IconExt) {
			skipped = append(skipped, f.Path)
			continue
		}
		if !utf8.ValidString(f.Name) {
			return nil, nil, stageError(StageGenerating, KindConflict, f.Path, fmt.Errorf("file name %q is not valid UTF-8", f.Name))
		}

		m := IconModule{
			Source:       f.Path,
			VariableName: snippet.VariableName(options.Prefix, f.Name),
			TypeName:     snippet.TypeName(f.Name, options.Delimiter),
			FileName:     snippet.FileName(options.Prefix, f.Name),
		}

		if prev, ok := fileNames[m.FileName]; ok {
			return nil, nil, conflict(f.Path, "file name", m.FileName, prev)
		}
		if prev, ok := variables[m.VariableName]; ok {
			return nil, nil, conflict(f.Path, "variable name", m.VariableName, prev)
		}
		if options.BindingsEnabled() {
			goName := snippet.GoIdentifier(m.VariableName)
			if prev, ok := goNames[goName]; ok {
				return nil, nil, conflict(f.Path, "Go identifier", goName, prev)
			}
			goNames[goName] = f.Path
		}
		fileNames[m.FileName] = f.Path
		variables[m.VariableName] = f.Path

		modules = append(modules, m)
	}

	return modules, skipped, nil
}

func conflict(path, what, name, previous string) error {
	return stageError(StageGenerating, KindConflict, path, fmt.Errorf("%s %q is already generated from %s", what, name, previous))
}

// writeModules writes the rendered modules into the staged icons folder and
// assembles the index and the type union in discovery order.
func (e *Engine) writeModules(staging string, modules []IconModule, options config.Options) (string, string, error) {
	dir := filepath.Join(staging, options.IconsFolderName)
	union := snippet.NewTypeUnion(snippet.TypeUnionHeader(options.TypeName), snippet.UnionDelimiter, len(modules))

	var index strings.Builder
	for _, m := range modules {
		index.WriteString(snippet.ExportStatement(m.FileName, options.IconsFolderName))

		p, err := e.writer.WriteSource(dir, m.FileName, []byte(m.Content))
		if err != nil {
			return "", "", stageError(StageGenerating, KindIO, m.Source, err)
		}
		e.logger.Debug("wrote icon", "path", m.Source, "file", p)

		union.Add(m.TypeName)
	}

	return index.String(), union.String(), nil
}

// stagedSources lists the TypeScript sources to compile: every module in the
// icons folder followed by the index.
func stagedSources(staging, iconsFolder string) ([]string, error) {
	resolver := source.NewFSResolver(os.DirFS(staging))
	files, err := resolver.Resolve([]string{
		path.Join(iconsFolder, "*"+write.SourceExt),
		indexName + write.SourceExt,
	})
	if err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(files))
	for _, f := range files {
		paths = append(paths, filepath.Join(staging, filepath.FromSlash(f.Path)))
	}
	return paths, nil
}

func (e *Engine) writeModel(options config.Options, union string) (string, error) {
	if !options.ModelEnabled() {
		if options.ModelOutputPath != "" || options.ModelFileName != "" {
			e.logger.Warn("model needs both an output path and a file name, skipping",
				"path", options.ModelOutputPath, "file", options.ModelFileName)
		}
		return "", nil
	}

	p := options.ModelPath()
	content := []byte(union + snippet.InterfaceDefinition(options.InterfaceName, options.TypeName))
	if err := e.writeIfChanged(p, content); err != nil {
		return "", err
	}
	e.logger.Info("wrote model", "path", p)
	return p, nil
}

func (e *Engine) writeBindings(options config.Options, modules []IconModule) (string, error) {
	if !options.BindingsEnabled() {
		return "", nil
	}

	p := options.BindingsPath()
	icons := make([]snippet.GoIcon, 0, len(modules))
	for _, m := range modules {
		icons = append(icons, snippet.GoIcon{
			VariableName: m.VariableName,
			TypeName:     m.TypeName,
			Markup:       m.Markup,
		})
	}

	content, err := e.formatter.ProcessContent(p, []byte(snippet.GoBindings(options.GoPackage, icons)))
	if err != nil {
		return "", stageError(StageBindingsWriting, KindCompile, p, err)
	}
	if err := e.writeIfChanged(p, content); err != nil {
		return "", stageError(StageBindingsWriting, KindIO, p, err)
	}
	e.logger.Info("wrote go bindings", "path", p)
	return p, nil
}

func (e *Engine) writeIfChanged(p string, content []byte) error {
	needs, err := e.writer.NeedsWrite(p, content)
	if err != nil {
		return err
	}
	if !needs {
		e.logger.Debug("unchanged", "path", p)
		return nil
	}
	return e.writer.Write(p, content, write.SourceOptions)
}

// updateManifest records the published artifacts and removes artifacts of
// the previous run that this run no longer produced.
func (e *Engine) updateManifest(options config.Options, modules []IconModule, result *Result) error {
	out := options.OutputDirectory
	mm := state.NewManifestManager(out)

	previous, err := mm.LoadManifest()
	if err != nil {
		e.logger.Warn("ignoring unreadable manifest", "path", mm.Path(), "error", err)
		previous = mm.NewManifest()
	}

	sources := make(map[string]string, len(modules)*2)
	for _, m := range modules {
		for _, ext := range []string{".js", ".d.ts"} {
			sources[path.Join(options.IconsFolderName, m.FileName+ext)] = m.Source
		}
	}

	current := mm.NewManifest()
	if err := mm.AddTree(current, options.IconsFolderName, sources); err != nil {
		return stageError(StageManifest, KindIO, options.IconsDir(), err)
	}
	for _, ext := range []string{".js", ".d.ts"} {
		rel := indexName + ext
		if _, err := os.Stat(filepath.Join(out, rel)); err != nil {
			continue
		}
		if err := mm.AddEntry(current, rel, ""); err != nil {
			return stageError(StageManifest, KindIO, filepath.Join(out, rel), err)
		}
	}

	stale := state.Stale(previous, current)
	stalePaths := make([]string, 0, len(stale))
	for _, rel := range stale {
		stalePaths = append(stalePaths, filepath.Join(out, filepath.FromSlash(rel)))
	}
	if err := write.DeleteFiles(stalePaths); err != nil {
		return stageError(StageManifest, KindIO, out, err)
	}
	for _, p := range stalePaths {
		e.logger.Debug("removed stale artifact", "path", p)
	}

	for _, entry := range mm.ListEntries(current) {
		full := filepath.Join(out, filepath.FromSlash(entry.Path))
		changed, err := mm.HasChanged(previous, entry.Path)
		if err != nil {
			return stageError(StageManifest, KindIO, full, err)
		}
		result.Published = append(result.Published, full)
		if changed {
			result.Changed = append(result.Changed, full)
		}
	}
	e.logger.Debug("compared artifacts with previous run", "published", len(result.Published), "changed", len(result.Changed))

	if err := mm.SaveManifest(current); err != nil {
		return stageError(StageManifest, KindIO, mm.Path(), err)
	}
	result.ManifestPath = mm.Path()
	return nil
}
