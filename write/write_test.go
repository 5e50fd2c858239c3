package write

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", path, err)
	}
	return string(data)
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names
}

func TestWriteSource(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out", "icons")
	bw := NewBaseWriter()

	path, err := bw.WriteSource(dir, "app-home.icon", []byte("first"))
	if err != nil {
		t.Fatalf("WriteSource failed: %v", err)
	}
	if path != filepath.Join(dir, "app-home.icon.ts") {
		t.Errorf("unexpected path %s", path)
	}

	if _, err := bw.WriteSource(dir, "app-home.icon", []byte("second")); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}
	if got := readFile(t, path); got != "second" {
		t.Errorf("content = %q, want second", got)
	}

	if diff := cmp.Diff([]string{"app-home.icon.ts"}, listDir(t, dir)); diff != "" {
		t.Errorf("temporary files left behind (-want +got):\n%s", diff)
	}
}

func TestWriteNoOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.ts")
	bw := NewBaseWriter()

	if err := bw.Write(path, []byte("a"), WriteOptions{}); err != nil {
		t.Fatal(err)
	}
	err := bw.Write(path, []byte("b"), WriteOptions{Overwrite: false})
	if err == nil || !strings.Contains(err.Error(), "overwrite is false") {
		t.Errorf("expected overwrite error, got %v", err)
	}
}

func TestWriteFailsOnFileParent(t *testing.T) {
	root := t.TempDir()
	blocker := filepath.Join(root, "blocker")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := NewBaseWriter().WriteSource(filepath.Join(blocker, "icons"), "x", []byte("x")); err == nil {
		t.Error("expected an error when the parent is a file")
	}
}

func TestNeedsWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.ts")
	bw := NewBaseWriter()

	needs, err := bw.NeedsWrite(path, []byte("x"))
	if err != nil || !needs {
		t.Fatalf("missing file should need a write, got %v, %v", needs, err)
	}

	if err := bw.Write(path, []byte("x"), SourceOptions); err != nil {
		t.Fatal(err)
	}
	if needs, _ := bw.NeedsWrite(path, []byte("x")); needs {
		t.Error("identical content should not need a write")
	}
	if needs, _ := bw.NeedsWrite(path, []byte("y")); !needs {
		t.Error("different content should need a write")
	}
}

func TestPurge(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "icons")
	if err := os.MkdirAll(filepath.Join(dir, "nested"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "nested", "a.js"), nil, 0o644); err != nil {
		t.Fatal(err)
	}

	if err := Purge(dir); err != nil {
		t.Fatalf("Purge failed: %v", err)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Errorf("directory still exists: %v", err)
	}

	if err := Purge(dir); err != nil {
		t.Errorf("purging a missing directory should be a no-op, got %v", err)
	}

	for _, bad := range []string{"", ".", string(filepath.Separator)} {
		if err := Purge(bad); err == nil {
			t.Errorf("Purge(%q) should be refused", bad)
		}
	}
}

func TestPurgePrefixed(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{".iconforge-1", ".iconforge-2", "icons"} {
		if err := os.MkdirAll(filepath.Join(root, name), 0o755); err != nil {
			t.Fatal(err)
		}
	}

	removed, err := PurgePrefixed(root, ".iconforge-")
	if err != nil {
		t.Fatalf("PurgePrefixed failed: %v", err)
	}
	if len(removed) != 2 {
		t.Errorf("expected 2 removed entries, got %v", removed)
	}
	if diff := cmp.Diff([]string{"icons"}, listDir(t, root)); diff != "" {
		t.Errorf("unexpected remaining entries (-want +got):\n%s", diff)
	}

	if removed, err := PurgePrefixed(filepath.Join(root, "missing"), ".x"); err != nil || removed != nil {
		t.Errorf("missing dir should be a no-op, got %v, %v", removed, err)
	}
}

func TestDeleteFiles(t *testing.T) {
	root := t.TempDir()
	var paths []string
	for _, name := range []string{"a.ts", "b.ts"} {
		p := filepath.Join(root, name)
		if err := os.WriteFile(p, nil, 0o644); err != nil {
			t.Fatal(err)
		}
		paths = append(paths, p)
	}
	keep := filepath.Join(root, "a.js")
	if err := os.WriteFile(keep, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	if err := DeleteFiles(append(paths, filepath.Join(root, "gone.ts"))); err != nil {
		t.Fatalf("DeleteFiles failed: %v", err)
	}
	if diff := cmp.Diff([]string{"a.js"}, listDir(t, root)); diff != "" {
		t.Errorf("unexpected remaining entries (-want +got):\n%s", diff)
	}
}

func TestPublish(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, "dist")
	staged := filepath.Join(target, ".staging")

	// previous run
	if err := os.MkdirAll(filepath.Join(target, "icons"), 0o755); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"icons/stale.icon.js", "index.js", "README.md"} {
		if err := os.WriteFile(filepath.Join(target, name), []byte("old"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	if err := os.MkdirAll(filepath.Join(staged, "icons"), 0o755); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"icons/app-home.icon.js", "index.js", "index.d.ts"} {
		if err := os.WriteFile(filepath.Join(staged, name), []byte("new"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	published, err := Publish(staged, target)
	if err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	want := []string{
		filepath.Join(target, "icons"),
		filepath.Join(target, "index.d.ts"),
		filepath.Join(target, "index.js"),
	}
	if diff := cmp.Diff(want, published); diff != "" {
		t.Errorf("published mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff([]string{"app-home.icon.js"}, listDir(t, filepath.Join(target, "icons"))); diff != "" {
		t.Errorf("icons folder not replaced (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{".staging", "README.md", "icons", "index.d.ts", "index.js"}, listDir(t, target)); diff != "" {
		t.Errorf("unexpected target entries (-want +got):\n%s", diff)
	}
	if got := readFile(t, filepath.Join(target, "index.js")); got != "new" {
		t.Errorf("index.js = %q, want new", got)
	}
	if got := readFile(t, filepath.Join(target, "README.md")); got != "old" {
		t.Errorf("unrelated files should be untouched, got %q", got)
	}
}
