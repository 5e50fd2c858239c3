// Package cli implements the iconforge command: flag parsing, configuration
// layering and the logging of the conversion outcome.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/cpcf/iconforge/config"
	"github.com/cpcf/iconforge/debug"
	"github.com/cpcf/iconforge/engine"
)

// Exit codes.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitConfig  = 2
)

// Config is the parsed command line.
type Config struct {
	ConfigPath string
	LogLevel   debug.DebugLevel
	Options    config.Options
}

type patternList []string

func (l *patternList) String() string {
	return strings.Join(*l, ",")
}

func (l *patternList) Set(v string) error {
	*l = append(*l, v)
	return nil
}

// ParseConfig layers defaults, the config file, ICONFORGE_* environment
// variables and the flags set in args, in that order. Positional arguments
// are source patterns.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var (
		cfg      Config
		flags    = config.Defaults()
		patterns patternList
		verbose  bool
		level    string
	)

	fs.StringVar(&cfg.ConfigPath, "config", "", "path to a YAML or TOML config file")
	fs.BoolVar(&verbose, "v", false, "enable debug logging")
	fs.StringVar(&level, "log-level", debug.LevelInfo.String(), "log level: off, error, warn, info, debug or trace")
	fs.Var(&patterns, "src", "source glob pattern, repeatable")
	fs.StringVar(&flags.TypeName, "type-name", flags.TypeName, "name of the icon name union type")
	fs.StringVar(&flags.InterfaceName, "interface-name", flags.InterfaceName, "name of the icon interface")
	fs.StringVar(&flags.Prefix, "prefix", flags.Prefix, "prefix of generated file and variable names")
	fs.StringVar(&flags.Delimiter, "delimiter", flags.Delimiter, "separator splitting file names into type-name words")
	fs.StringVar(&flags.OutputDirectory, "out", flags.OutputDirectory, "output directory")
	fs.StringVar(&flags.IconsFolderName, "icons-folder", flags.IconsFolderName, "icons folder inside the output directory")
	fs.StringVar(&flags.ModelOutputPath, "model-path", flags.ModelOutputPath, "directory of the model module")
	fs.StringVar(&flags.ModelFileName, "model-name", flags.ModelFileName, "file name of the model module")
	fs.StringVar(&flags.Compiler, "compiler", flags.Compiler, "compiler: esbuild or tsc")
	fs.StringVar(&flags.TSCPath, "tsc", flags.TSCPath, "path of the tsc binary")
	fs.IntVar(&flags.Concurrency, "concurrency", flags.Concurrency, "icons rendered in parallel")
	fs.IntVar(&flags.Precision, "precision", flags.Precision, "significant digits kept in SVG numbers, 0 keeps all")
	fs.StringVar(&flags.GoOutputPath, "go-out", flags.GoOutputPath, "directory of the generated Go bindings")
	fs.StringVar(&flags.GoPackage, "go-package", flags.GoPackage, "package name of the generated Go bindings")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	var err error
	if cfg.LogLevel, err = debug.ParseLevel(level); err != nil {
		return Config{}, err
	}
	if verbose && cfg.LogLevel < debug.LevelDebug {
		cfg.LogLevel = debug.LevelDebug
	}

	options := config.Defaults()
	if cfg.ConfigPath != "" {
		if err := config.Decode(cfg.ConfigPath, &options); err != nil {
			return Config{}, fmt.Errorf("load config: %w", err)
		}
	}
	if err := config.ApplyEnv(&options); err != nil {
		return Config{}, fmt.Errorf("read environment: %w", err)
	}

	fs.Visit(func(f *flag.Flag) {
		override(&options, flags, f.Name)
	})
	patterns = append(patterns, fs.Args()...)
	if len(patterns) > 0 {
		options.SrcFiles = patterns
	}

	if err := options.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}

	cfg.Options = options
	return cfg, nil
}

func override(o *config.Options, flags config.Options, name string) {
	switch name {
	case "type-name":
		o.TypeName = flags.TypeName
	case "interface-name":
		o.InterfaceName = flags.InterfaceName
	case "prefix":
		o.Prefix = flags.Prefix
	case "delimiter":
		o.Delimiter = flags.Delimiter
	case "out":
		o.OutputDirectory = flags.OutputDirectory
	case "icons-folder":
		o.IconsFolderName = flags.IconsFolderName
	case "model-path":
		o.ModelOutputPath = flags.ModelOutputPath
	case "model-name":
		o.ModelFileName = flags.ModelFileName
	case "compiler":
		o.Compiler = flags.Compiler
	case "tsc":
		o.TSCPath = flags.TSCPath
	case "concurrency":
		o.Concurrency = flags.Concurrency
	case "precision":
		o.Precision = flags.Precision
	case "go-out":
		o.GoOutputPath = flags.GoOutputPath
	case "go-package":
		o.GoPackage = flags.GoPackage
	}
}

// Run converts the icons described by cfg, logging to out. A failure is
// logged once with its stage, kind and path before it is returned.
func Run(ctx context.Context, cfg Config, out io.Writer, opts ...engine.Option) error {
	if out == nil {
		return errors.New("output is required")
	}

	dm := debug.NewDebugMode(debug.WithLevel(cfg.LogLevel), debug.WithOutput(out))
	logger := dm.Logger()
	op := dm.NewContext("convert")

	e := engine.New(append([]engine.Option{engine.WithLogger(logger)}, opts...)...)
	result, convErr := e.Convert(ctx, cfg.Options)
	if convErr != nil {
		var stageErr *engine.StageError
		if errors.As(convErr, &stageErr) {
			op.CompleteWithError(stageErr.Err,
				"stage", stageErr.Stage.String(),
				"kind", stageErr.Kind.String(),
				"path", stageErr.Path)
		} else {
			op.CompleteWithError(convErr)
		}
		return convErr
	}

	op.Complete()
	logger.Info("done", "icons", len(result.Modules), "skipped", len(result.Skipped), "artifacts", len(result.Published), "changed", len(result.Changed))
	return nil
}

// ExitCode maps an error returned by ParseConfig or Run to a process exit
// code.
func ExitCode(err error) int {
	if err == nil || errors.Is(err, flag.ErrHelp) {
		return ExitOK
	}
	var stageErr *engine.StageError
	if errors.As(err, &stageErr) {
		if stageErr.Kind == engine.KindConfig {
			return ExitConfig
		}
		return ExitFailure
	}
	return ExitConfig
}
