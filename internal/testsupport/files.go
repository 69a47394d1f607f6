package testsupport

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
)

// WriteFile fills the target path with the requested number of bytes using a
// simple repeating pattern. A size <= 0 writes a single byte.
func WriteFile(t testing.TB, path string, size int64) {
	t.Helper()

	if size <= 0 {
		size = 1
	}
	WriteString(t, path, strings.Repeat("B", int(size)))
}

// WriteString creates path (and its parents) with the given content.
func WriteString(t testing.TB, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// BuildTree materializes a directory tree under root. Keys are slash-separated
// relative paths; a key ending in "/" creates an empty directory, any other key
// creates a file holding the mapped content.
func BuildTree(t testing.TB, root string, entries map[string]string) {
	t.Helper()
	for rel, content := range entries {
		target := filepath.Join(root, filepath.FromSlash(strings.TrimSuffix(rel, "/")))
		if strings.HasSuffix(rel, "/") {
			if err := os.MkdirAll(target, 0o755); err != nil {
				t.Fatalf("mkdir %s: %v", target, err)
			}
			continue
		}
		WriteString(t, target, content)
	}
}

// Snapshot walks root and returns every entry keyed by its slash-separated
// relative path. Directories map to "/" and files to their content. The root
// itself is omitted.
func Snapshot(t testing.TB, root string) map[string]string {
	t.Helper()
	out := map[string]string{}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			out[rel] = "/"
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		out[rel] = string(data)
		return nil
	})
	if err != nil {
		t.Fatalf("snapshot %s: %v", root, err)
	}
	return out
}

// Files returns the sorted relative paths of all regular files in a snapshot.
func Files(snapshot map[string]string) []string {
	var files []string
	for rel, content := range snapshot {
		if content != "/" {
			files = append(files, rel)
		}
	}
	sort.Strings(files)
	return files
}

// FindFile returns the first snapshot file under dir whose base name starts
// with prefix, in sorted order.
func FindFile(snapshot map[string]string, dir, prefix string) (string, bool) {
	dir = strings.TrimSuffix(dir, "/") + "/"
	for _, rel := range Files(snapshot) {
		if !strings.HasPrefix(rel, dir) {
			continue
		}
		rest := rel[len(dir):]
		if strings.Contains(rest, "/") {
			continue
		}
		if strings.HasPrefix(rest, prefix) {
			return rel, true
		}
	}
	return "", false
}

// AssertFile fails the test unless rel exists under root with the given content.
func AssertFile(t testing.TB, root, rel, content string) {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		t.Fatalf("expected file %s: %v", rel, err)
	}
	if string(data) != content {
		t.Fatalf("file %s content = %q, want %q", rel, data, content)
	}
}

// AssertMissing fails the test if rel exists under root.
func AssertMissing(t testing.TB, root, rel string) {
	t.Helper()
	if _, err := os.Lstat(filepath.Join(root, filepath.FromSlash(rel))); err == nil {
		t.Fatalf("expected %s to be absent", rel)
	}
}

// EmptyDirs lists directories in the snapshot that have no entries.
func EmptyDirs(snapshot map[string]string) []string {
	var empty []string
	for rel, content := range snapshot {
		if content != "/" {
			continue
		}
		prefix := rel + "/"
		hasChild := false
		for other := range snapshot {
			if strings.HasPrefix(other, prefix) {
				hasChild = true
				break
			}
		}
		if !hasChild {
			empty = append(empty, rel)
		}
	}
	sort.Strings(empty)
	return empty
}
