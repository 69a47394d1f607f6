package staging

import (
	"os"
	"path/filepath"
	"testing"

	"brandsort/internal/logging"
)

func TestIsMarker(t *testing.T) {
	cases := []struct {
		name string
		want bool
	}{
		{DefaultPrefix, true},
		{"__WEBP to be move to the right folders (march)", true},
		{"__webp to be", false},
		{"Acme", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := IsMarker(tc.name, DefaultPrefix); got != tc.want {
			t.Errorf("IsMarker(%q) = %v, want %v", tc.name, got, tc.want)
		}
	}
	if IsMarker("anything", "  ") {
		t.Error("blank prefix should never match")
	}
}

func TestFindReturnsFirstMarkerDirectory(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"Acme", DefaultPrefix + " 2", DefaultPrefix + " 1"} {
		if err := os.Mkdir(filepath.Join(root, name), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	// A regular file with the marker name is never the staging area.
	if err := os.WriteFile(filepath.Join(root, DefaultPrefix+" 0"), nil, 0o644); err != nil {
		t.Fatal(err)
	}

	got, ok, err := Find(root, DefaultPrefix)
	if err != nil || !ok {
		t.Fatalf("Find = %q, %v, %v", got, ok, err)
	}
	if want := filepath.Join(root, DefaultPrefix+" 1"); got != want {
		t.Fatalf("Find = %q, want %q", got, want)
	}
}

func TestFindWithoutStaging(t *testing.T) {
	root := t.TempDir()
	if _, ok, err := Find(root, DefaultPrefix); ok || err != nil {
		t.Fatalf("expected no staging area, got ok=%v err=%v", ok, err)
	}
	if _, _, err := Find(filepath.Join(root, "missing"), DefaultPrefix); err == nil {
		t.Fatal("expected error for missing root")
	}
}

func TestRemoveIfEmpty(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, DefaultPrefix)
	if err := os.MkdirAll(filepath.Join(dir, "leftover"), 0o755); err != nil {
		t.Fatal(err)
	}

	res, err := RemoveIfEmpty(dir, logging.NewNop())
	if err != nil {
		t.Fatalf("RemoveIfEmpty: %v", err)
	}
	if res.Removed || res.Remaining != 1 {
		t.Fatalf("expected kept staging with 1 entry, got %+v", res)
	}

	if err := os.Remove(filepath.Join(dir, "leftover")); err != nil {
		t.Fatal(err)
	}
	res, err = RemoveIfEmpty(dir, logging.NewNop())
	if err != nil || !res.Removed {
		t.Fatalf("expected removal, got %+v, %v", res, err)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Fatalf("staging folder should be gone, stat err %v", err)
	}

	res, err = RemoveIfEmpty(dir, nil)
	if err != nil || res.Removed {
		t.Fatalf("missing staging should be a no-op, got %+v, %v", res, err)
	}
}

func TestListDirectories(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "Beta", "x"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(dir, "Alpha"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "Beta", "x", "a.jpg"), []byte("1234"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "loose.jpg"), []byte("1"), 0o644); err != nil {
		t.Fatal(err)
	}

	dirs, err := ListDirectories(dir)
	if err != nil {
		t.Fatalf("ListDirectories: %v", err)
	}
	if len(dirs) != 2 {
		t.Fatalf("expected 2 directories, got %d", len(dirs))
	}
	if dirs[0].Name != "Alpha" || dirs[1].Name != "Beta" {
		t.Fatalf("unexpected order: %s, %s", dirs[0].Name, dirs[1].Name)
	}
	if dirs[1].Size != 4 || dirs[1].Files != 1 {
		t.Fatalf("unexpected Beta metadata: %+v", dirs[1])
	}

	for _, p := range []string{"", "   ", filepath.Join(dir, "missing")} {
		if got, err := ListDirectories(p); err != nil || got != nil {
			t.Errorf("ListDirectories(%q) = %v, %v", p, got, err)
		}
	}
}
