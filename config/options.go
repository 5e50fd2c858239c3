package config

import (
	"errors"
	"fmt"
	"go/token"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/cpcf/iconforge/compile"
	"github.com/cpcf/iconforge/snippet"
)

// StagingPrefix starts the name of the temporary directory a run builds
// its output in. It is reserved inside the output directory.
const StagingPrefix = ".iconforge-"

var folderName = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// Options configure one conversion run.
type Options struct {
	// TypeName names the generated union of icon type names.
	TypeName string `yaml:"typeName" toml:"typeName" env:"TYPE_NAME"`
	// InterfaceName names the interface binding an icon to the union.
	InterfaceName string `yaml:"interfaceName" toml:"interfaceName" env:"INTERFACE_NAME"`
	// Prefix starts every generated variable and file name.
	Prefix string `yaml:"prefix" toml:"prefix" env:"PREFIX"`
	// Delimiter separates the words of an icon file name.
	Delimiter string `yaml:"delimiter" toml:"delimiter" env:"DELIMITER"`
	// OutputDirectory receives the index module and the icons folder.
	OutputDirectory string `yaml:"outputDirectory" toml:"outputDirectory" env:"OUTPUT_DIRECTORY"`
	// SrcFiles are glob patterns selecting the icon sources.
	SrcFiles []string `yaml:"srcFiles" toml:"srcFiles" env:"SRC_FILES"`
	// ModelOutputPath and ModelFileName locate the optional model module.
	// Both must be set for the model to be written.
	ModelOutputPath string `yaml:"modelOutputPath" toml:"modelOutputPath" env:"MODEL_OUTPUT_PATH"`
	ModelFileName   string `yaml:"modelFileName" toml:"modelFileName" env:"MODEL_FILE_NAME"`
	// IconsFolderName is the folder below OutputDirectory holding one
	// module per icon.
	IconsFolderName string `yaml:"iconsFolderName" toml:"iconsFolderName" env:"ICONS_FOLDER_NAME"`

	// Compiler selects the built-in compiler, tsc or esbuild.
	Compiler string `yaml:"compiler" toml:"compiler" env:"COMPILER"`
	// TSCPath locates the tsc binary.
	TSCPath string `yaml:"tscPath" toml:"tscPath" env:"TSC_PATH"`
	// Concurrency bounds the number of icons prepared in parallel.
	Concurrency int `yaml:"concurrency" toml:"concurrency" env:"CONCURRENCY"`
	// Precision is the number of significant digits the SVG optimizer
	// keeps, zero keeps all.
	Precision int `yaml:"precision" toml:"precision" env:"PRECISION"`
	// GoOutputPath enables Go bindings written to GoOutputPath/icons.go.
	GoOutputPath string `yaml:"goOutputPath" toml:"goOutputPath" env:"GO_OUTPUT_PATH"`
	GoPackage    string `yaml:"goPackage" toml:"goPackage" env:"GO_PACKAGE"`
}

// Defaults returns the options used when nothing else is configured.
func Defaults() Options {
	return Options{
		TypeName:        "myIcons",
		InterfaceName:   "MyIcon",
		Prefix:          "myIcon",
		Delimiter:       "-",
		OutputDirectory: "./dist",
		SrcFiles:        []string{"*.svg"},
		IconsFolderName: "build",
		Compiler:        compile.NameTSC,
		Concurrency:     1,
		GoPackage:       "icons",
	}
}

// ModelEnabled reports whether the model module is written.
func (o Options) ModelEnabled() bool {
	return o.ModelOutputPath != "" && o.ModelFileName != ""
}

// ModelPath is the path of the model module.
func (o Options) ModelPath() string {
	return filepath.Join(o.ModelOutputPath, o.ModelFileName+".model.ts")
}

// IconsDir is the published icons folder.
func (o Options) IconsDir() string {
	return filepath.Join(o.OutputDirectory, o.IconsFolderName)
}

// BindingsEnabled reports whether Go bindings are written.
func (o Options) BindingsEnabled() bool {
	return o.GoOutputPath != ""
}

// BindingsPath is the path of the generated Go bindings.
func (o Options) BindingsPath() string {
	return filepath.Join(o.GoOutputPath, "icons.go")
}

// Validate implements Validator.
func (o Options) Validate() error {
	var errs []error

	if len(o.SrcFiles) == 0 {
		errs = append(errs, errors.New("srcFiles must list at least one pattern"))
	}
	if strings.TrimSpace(o.OutputDirectory) == "" {
		errs = append(errs, errors.New("outputDirectory is required"))
	}
	if !folderName.MatchString(o.IconsFolderName) || o.IconsFolderName == "." || o.IconsFolderName == ".." {
		errs = append(errs, fmt.Errorf("iconsFolderName %q must be a plain folder name", o.IconsFolderName))
	} else if strings.HasPrefix(o.IconsFolderName, StagingPrefix) {
		errs = append(errs, fmt.Errorf("iconsFolderName %q uses the reserved prefix %s", o.IconsFolderName, StagingPrefix))
	}
	if strings.ContainsAny(o.Prefix, `/\`) || strings.Contains(o.Prefix, "..") || !utf8.ValidString(o.Prefix) {
		errs = append(errs, fmt.Errorf("prefix %q must not contain path separators or ..", o.Prefix))
	}
	if !snippet.IsIdentifier(o.TypeName) {
		errs = append(errs, fmt.Errorf("typeName %q is not a valid identifier", o.TypeName))
	}
	if !snippet.IsIdentifier(o.InterfaceName) {
		errs = append(errs, fmt.Errorf("interfaceName %q is not a valid identifier", o.InterfaceName))
	}
	if o.TypeName != "" && o.TypeName == o.InterfaceName {
		errs = append(errs, fmt.Errorf("typeName and interfaceName must differ, both are %q", o.TypeName))
	}
	if o.Delimiter == "" {
		errs = append(errs, errors.New("delimiter is required"))
	}
	if o.Compiler != "" && !slices.Contains(compile.Names(), strings.ToLower(o.Compiler)) {
		errs = append(errs, fmt.Errorf("compiler %q must be one of %s", o.Compiler, strings.Join(compile.Names(), ", ")))
	}
	if o.Concurrency < 0 {
		errs = append(errs, fmt.Errorf("concurrency must not be negative, got %d", o.Concurrency))
	}
	if o.Precision < 0 {
		errs = append(errs, fmt.Errorf("precision must not be negative, got %d", o.Precision))
	}
	if o.BindingsEnabled() && (!token.IsIdentifier(o.GoPackage) || o.GoPackage == "_") {
		errs = append(errs, fmt.Errorf("goPackage %q is not a valid package name", o.GoPackage))
	}

	return errors.Join(errs...)
}
