// Package state provides a manifest for tracking the artifacts published
// into an output directory.
package state

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// ManifestFile is the manifest name inside the output directory.
const ManifestFile = ".iconforge.manifest.json"

const generator = "iconforge"

type ManifestEntry struct {
	Path   string `json:"path"`
	Hash   string `json:"hash"`
	Size   int64  `json:"size"`
	Source string `json:"source,omitempty"`
}

type Manifest struct {
	Version    string                   `json:"version"`
	Generated  time.Time                `json:"generated"`
	Generator  string                   `json:"generator"`
	OutputRoot string                   `json:"output_root"`
	Entries    map[string]ManifestEntry `json:"entries"`
}

type ManifestManager struct {
	outputRoot   string
	manifestPath string
}

func NewManifestManager(outputRoot string) *ManifestManager {
	return &ManifestManager{
		outputRoot:   outputRoot,
		manifestPath: filepath.Join(outputRoot, ManifestFile),
	}
}

// Path returns the location of the manifest file.
func (mm *ManifestManager) Path() string {
	return mm.manifestPath
}

// LoadManifest reads the manifest, or returns an empty one when the output
// directory has none yet.
func (mm *ManifestManager) LoadManifest() (*Manifest, error) {
	file, err := os.Open(mm.manifestPath)
	if err != nil {
		if os.IsNotExist(err) {
			return mm.NewManifest(), nil
		}
		return nil, fmt.Errorf("failed to open manifest file: %w", err)
	}
	defer file.Close()

	var manifest Manifest
	if err := json.NewDecoder(file).Decode(&manifest); err != nil {
		return nil, fmt.Errorf("failed to decode manifest: %w", err)
	}
	if manifest.Entries == nil {
		manifest.Entries = make(map[string]ManifestEntry)
	}

	return &manifest, nil
}

func (mm *ManifestManager) SaveManifest(manifest *Manifest) error {
	if err := os.MkdirAll(filepath.Dir(mm.manifestPath), 0o755); err != nil {
		return fmt.Errorf("failed to create manifest directory: %w", err)
	}

	file, err := os.CreateTemp(filepath.Dir(mm.manifestPath), ManifestFile+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary manifest file: %w", err)
	}
	tmpPath := file.Name()
	defer os.Remove(tmpPath)

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(manifest); err != nil {
		file.Close()
		return fmt.Errorf("failed to encode manifest: %w", err)
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close temporary manifest file: %w", err)
	}

	if err := os.Rename(tmpPath, mm.manifestPath); err != nil {
		return fmt.Errorf("failed to move manifest file: %w", err)
	}

	return nil
}

func (mm *ManifestManager) NewManifest() *Manifest {
	return &Manifest{
		Version:    "1.0",
		Generated:  time.Now().UTC(),
		Generator:  generator,
		OutputRoot: mm.outputRoot,
		Entries:    make(map[string]ManifestEntry),
	}
}

// AddEntry records the file at path, relative to the output root. source is
// the input the artifact was generated from, if any.
func (mm *ManifestManager) AddEntry(manifest *Manifest, path, source string) error {
	fullPath := filepath.Join(mm.outputRoot, filepath.FromSlash(path))
	stat, err := os.Stat(fullPath)
	if err != nil {
		return fmt.Errorf("failed to stat file %s: %w", fullPath, err)
	}

	hash, err := calculateFileHash(fullPath)
	if err != nil {
		return fmt.Errorf("failed to calculate hash for %s: %w", fullPath, err)
	}

	if manifest.Entries == nil {
		manifest.Entries = make(map[string]ManifestEntry)
	}
	key := filepath.ToSlash(path)
	manifest.Entries[key] = ManifestEntry{
		Path:   key,
		Hash:   hash,
		Size:   stat.Size(),
		Source: source,
	}

	return nil
}

// AddTree records every regular file at or below path, relative to the
// output root. sources maps relative artifact paths to their inputs.
func (mm *ManifestManager) AddTree(manifest *Manifest, path string, sources map[string]string) error {
	root := filepath.Join(mm.outputRoot, filepath.FromSlash(path))
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(mm.outputRoot, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		return mm.AddEntry(manifest, rel, sources[rel])
	})
}

func (mm *ManifestManager) GetEntry(manifest *Manifest, path string) (ManifestEntry, bool) {
	entry, exists := manifest.Entries[filepath.ToSlash(path)]
	return entry, exists
}

// ListEntries returns the entries sorted by path.
func (mm *ManifestManager) ListEntries(manifest *Manifest) []ManifestEntry {
	if len(manifest.Entries) == 0 {
		return nil
	}

	entries := make([]ManifestEntry, 0, len(manifest.Entries))
	for _, entry := range manifest.Entries {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Path < entries[j].Path
	})
	return entries
}

// HasChanged reports whether the file at path differs from its entry.
func (mm *ManifestManager) HasChanged(manifest *Manifest, path string) (bool, error) {
	entry, exists := mm.GetEntry(manifest, path)
	if !exists {
		return true, nil
	}

	fullPath := filepath.Join(mm.outputRoot, filepath.FromSlash(path))
	stat, err := os.Stat(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return true, nil
		}
		return false, fmt.Errorf("failed to stat file %s: %w", fullPath, err)
	}

	if stat.Size() != entry.Size {
		return true, nil
	}

	hash, err := calculateFileHash(fullPath)
	if err != nil {
		return false, fmt.Errorf("failed to calculate hash for %s: %w", fullPath, err)
	}

	return hash != entry.Hash, nil
}

// Stale lists the paths recorded in previous but not in current, sorted.
// Paths that would leave the output root are never reported.
func Stale(previous, current *Manifest) []string {
	var stale []string
	for p := range previous.Entries {
		if _, ok := current.Entries[p]; ok {
			continue
		}
		if !filepath.IsLocal(filepath.FromSlash(p)) {
			continue
		}
		stale = append(stale, p)
	}
	sort.Strings(stale)
	return stale
}

func calculateFileHash(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	h := sha256.New()
	if _, err := io.Copy(h, file); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
