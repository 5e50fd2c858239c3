// Package config loads icon conversion settings from YAML or TOML files and
// from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable read by ApplyEnv.
const EnvPrefix = "ICONFORGE_"

// Validator defines an interface that configuration types can implement
// to provide custom validation logic
type Validator interface {
	Validate() error
}

// Load reads path into target like Decode and then validates target if it
// implements Validator.
func Load[T any](path string, target *T) error {
	if err := Decode(path, target); err != nil {
		return err
	}
	return validate(target)
}

// Decode reads path into target without validating it, choosing the decoder
// from the file extension: .yaml and .yml use YAML, .toml uses TOML. Callers
// that layer more sources over the file validate the merged result.
func Decode[T any](path string, target *T) error {
	var decode func(string, *T) error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		decode = decodeYAML[T]
	case ".toml":
		decode = decodeTOML[T]
	default:
		return fmt.Errorf("unsupported configuration format %q", filepath.Ext(path))
	}

	data, err := readConfig(path)
	if err != nil {
		return err
	}
	return decode(string(data), target)
}

// LoadYAML loads any YAML configuration into the provided target struct.
// The target must be a pointer to the struct you want to unmarshal into.
// If the target implements the Validator interface, validation will be called.
func LoadYAML[T any](path string, target *T) error {
	data, err := readConfig(path)
	if err != nil {
		return err
	}
	return LoadYAMLFromString(string(data), target)
}

// LoadYAMLFromString loads YAML configuration from a string instead of a file.
func LoadYAMLFromString[T any](yamlContent string, target *T) error {
	if err := decodeYAML(yamlContent, target); err != nil {
		return err
	}
	return validate(target)
}

// LoadTOML loads a TOML configuration into target. Keys that do not map to
// a field of target are rejected.
func LoadTOML[T any](path string, target *T) error {
	data, err := readConfig(path)
	if err != nil {
		return err
	}
	return LoadTOMLFromString(string(data), target)
}

// LoadTOMLFromString loads TOML configuration from a string.
func LoadTOMLFromString[T any](tomlContent string, target *T) error {
	if err := decodeTOML(tomlContent, target); err != nil {
		return err
	}
	return validate(target)
}

// ApplyEnv overrides fields of target tagged with `env` from ICONFORGE_*
// environment variables. Unset variables leave the field untouched.
func ApplyEnv[T any](target *T) error {
	if err := env.ParseWithOptions(target, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("failed to parse environment: %w", err)
	}
	return nil
}

func decodeTOML[T any](content string, target *T) error {
	meta, err := toml.Decode(content, target)
	if err != nil {
		return fmt.Errorf("failed to parse TOML configuration: %w", err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}
		sort.Strings(keys)
		return fmt.Errorf("unknown configuration keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

func decodeYAML[T any](content string, target *T) error {
	if err := yaml.Unmarshal([]byte(content), target); err != nil {
		return fmt.Errorf("failed to parse YAML configuration: %w", err)
	}
	return nil
}

func readConfig(path string) ([]byte, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path %q: %w", path, err)
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("configuration file does not exist: %s", absPath)
		}
		return nil, fmt.Errorf("failed to read configuration file %q: %w", absPath, err)
	}
	return data, nil
}

func validate(target any) error {
	if validator, ok := target.(Validator); ok {
		if err := validator.Validate(); err != nil {
			return fmt.Errorf("configuration validation failed: %w", err)
		}
	}
	return nil
}
