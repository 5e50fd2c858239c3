package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to create test config file: %v", err)
	}
	return configPath
}

func TestLoadYAML_Options(t *testing.T) {
	configPath := writeConfig(t, "iconforge.yaml", `
typeName: IconName
interfaceName: Icon
prefix: app
delimiter: "-"
outputDirectory: dist/icons
srcFiles:
  - assets/icons/*.svg
  - assets/extra/**/*.svg
iconsFolderName: icons
modelOutputPath: src/models
modelFileName: icons
compiler: esbuild
concurrency: 4
`)

	options := Defaults()
	if err := LoadYAML(configPath, &options); err != nil {
		t.Fatalf("Failed to load YAML config: %v", err)
	}

	want := Defaults()
	want.TypeName = "IconName"
	want.InterfaceName = "Icon"
	want.Prefix = "app"
	want.OutputDirectory = "dist/icons"
	want.SrcFiles = []string{"assets/icons/*.svg", "assets/extra/**/*.svg"}
	want.IconsFolderName = "icons"
	want.ModelOutputPath = "src/models"
	want.ModelFileName = "icons"
	want.Compiler = "esbuild"
	want.Concurrency = 4

	if diff := cmp.Diff(want, options); diff != "" {
		t.Errorf("options mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadTOML_Options(t *testing.T) {
	configPath := writeConfig(t, "iconforge.toml", `
typeName = "IconName"
interfaceName = "Icon"
prefix = "app"
srcFiles = ["icons/*.svg"]
goOutputPath = "internal/icons"
goPackage = "icons"
`)

	options := Defaults()
	if err := Load(configPath, &options); err != nil {
		t.Fatalf("Failed to load TOML config: %v", err)
	}

	if options.Prefix != "app" || options.GoOutputPath != "internal/icons" {
		t.Errorf("unexpected options: %+v", options)
	}
	if diff := cmp.Diff([]string{"icons/*.svg"}, options.SrcFiles); diff != "" {
		t.Errorf("srcFiles mismatch (-want +got):\n%s", diff)
	}
	if !options.BindingsEnabled() || options.BindingsPath() != filepath.Join("internal/icons", "icons.go") {
		t.Errorf("unexpected bindings path %q", options.BindingsPath())
	}
}

func TestLoadTOML_UnknownKey(t *testing.T) {
	options := Defaults()
	err := LoadTOMLFromString("prefix = \"app\"\nprefixx = \"typo\"\n", &options)
	if err == nil || !strings.Contains(err.Error(), "prefixx") {
		t.Fatalf("Expected unknown key error, got %v", err)
	}
}

func TestLoad_UnsupportedFormat(t *testing.T) {
	options := Defaults()
	if err := Load(writeConfig(t, "iconforge.json", "{}"), &options); err == nil {
		t.Fatal("Expected error for unsupported format, got nil")
	}
}

func TestLoadYAML_WithValidation_Failure(t *testing.T) {
	configPath := writeConfig(t, "invalid.yaml", `
typeName: "my icons"
`)

	options := Defaults()
	err := LoadYAML(configPath, &options)
	if err == nil {
		t.Fatal("Expected validation error, got nil")
	}
	if !strings.HasPrefix(err.Error(), "configuration validation failed: ") || !strings.Contains(err.Error(), "typeName") {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestDecode_SkipsValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"iconforge.yaml", "srcFiles: []\ntypeName: \"my icons\"\n"},
		{"iconforge.toml", "srcFiles = []\ntypeName = \"my icons\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			options := Defaults()
			if err := Decode(writeConfig(t, tt.name, tt.content), &options); err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if len(options.SrcFiles) != 0 || options.TypeName != "my icons" {
				t.Errorf("file values not decoded: %+v", options)
			}
			if err := options.Validate(); err == nil {
				t.Error("decoded options should still fail validation")
			}
		})
	}
}

func TestDecode_UnknownTOMLKey(t *testing.T) {
	options := Defaults()
	if err := Decode(writeConfig(t, "iconforge.toml", "prefixx = \"typo\"\n"), &options); err == nil {
		t.Fatal("Expected error for unknown key, got nil")
	}
}

func TestLoadYAML_FileNotExists(t *testing.T) {
	options := Defaults()
	err := LoadYAML("/nonexistent/iconforge.yaml", &options)
	if err == nil || !strings.Contains(err.Error(), "does not exist") {
		t.Fatalf("Expected error for non-existent file, got %v", err)
	}
}

func TestLoadYAML_InvalidYAML(t *testing.T) {
	options := Defaults()
	if err := LoadYAMLFromString("invalid: yaml: content: [", &options); err == nil {
		t.Fatal("Expected error for invalid YAML, got nil")
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("ICONFORGE_OUTPUT_DIRECTORY", "build/out")
	t.Setenv("ICONFORGE_SRC_FILES", "a/*.svg,b/*.svg")
	t.Setenv("ICONFORGE_CONCURRENCY", "8")

	options := Defaults()
	if err := ApplyEnv(&options); err != nil {
		t.Fatalf("ApplyEnv failed: %v", err)
	}

	if options.OutputDirectory != "build/out" {
		t.Errorf("OutputDirectory = %q", options.OutputDirectory)
	}
	if diff := cmp.Diff([]string{"a/*.svg", "b/*.svg"}, options.SrcFiles); diff != "" {
		t.Errorf("srcFiles mismatch (-want +got):\n%s", diff)
	}
	if options.Concurrency != 8 {
		t.Errorf("Concurrency = %d", options.Concurrency)
	}
	if options.Prefix != Defaults().Prefix {
		t.Errorf("unset variables should keep the current value, got prefix %q", options.Prefix)
	}
}

func TestApplyEnv_InvalidNumber(t *testing.T) {
	t.Setenv("ICONFORGE_CONCURRENCY", "many")

	options := Defaults()
	if err := ApplyEnv(&options); err == nil {
		t.Fatal("Expected error for invalid number, got nil")
	}
}
