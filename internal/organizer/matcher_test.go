package organizer

import (
	"path/filepath"
	"testing"

	"brandsort/internal/naming"
	"brandsort/internal/testsupport"
)

func TestFindCategoryFolderUsesSynonyms(t *testing.T) {
	parent := t.TempDir()
	testsupport.BuildTree(t, parent, map[string]string{
		"jpg/":     "",
		"Videos/":  "",
		"note.txt": "x",
	})

	got, ok := findCategoryFolder(parent, naming.CategoryJPEG)
	if !ok || filepath.Base(got) != "jpg" {
		t.Fatalf("expected jpg folder, got %q %v", got, ok)
	}
	if _, ok := findCategoryFolder(parent, naming.CategoryWEBP); ok {
		t.Fatal("expected no WEBP folder")
	}
	if _, ok := findCategoryFolder(filepath.Join(parent, "missing"), naming.CategoryJPEG); ok {
		t.Fatal("missing parent should not match")
	}
}

func TestFindBrandFolder(t *testing.T) {
	root := t.TempDir()
	testsupport.BuildTree(t, root, map[string]string{
		"Acme-Pro/":   "",
		"Old Images/": "",
		"__WEBP to be move to the right folders/": "",
		"Zeta/": "",
	})
	r := newTestRun(t, root)

	cases := []struct {
		brand string
		want  string
	}{
		{"acme pro", "Acme-Pro"},
		{"ACME_PRO", "Acme-Pro"},
		{"zeta", "Zeta"},
		{"acme", ""},
		{"old images", ""},
		{"__webp to be move to the right folders", ""},
		{"", ""},
	}
	for _, tc := range cases {
		got, ok := r.findBrandFolder(root, tc.brand)
		if tc.want == "" {
			if ok {
				t.Errorf("findBrandFolder(%q) = %q, want no match", tc.brand, got)
			}
			continue
		}
		if !ok || filepath.Base(got) != tc.want {
			t.Errorf("findBrandFolder(%q) = %q, want %q", tc.brand, got, tc.want)
		}
	}
}

func TestFindProductFolder(t *testing.T) {
	brand := t.TempDir()
	testsupport.BuildTree(t, brand, map[string]string{"X-100/": "", "X-200.jpg": "file"})

	if got, ok := findProductFolder(brand, "x100"); !ok || filepath.Base(got) != "X-100" {
		t.Fatalf("expected X-100, got %q %v", got, ok)
	}
	if _, ok := findProductFolder(brand, "x200"); ok {
		t.Fatal("files must not match as product folders")
	}
}

func TestFindMoreSpecificFolder(t *testing.T) {
	candidates := []folder{
		{name: "Acme", path: "/r/Acme"},
		{name: "Acme Pro", path: "/r/Acme Pro"},
		{name: "Acme-Pro Series", path: "/r/Acme-Pro Series"},
		{name: "Other Pro Series", path: "/r/Other Pro Series"},
	}

	if got, ok := findMoreSpecificFolder("acme", candidates); !ok || got != "/r/Acme-Pro Series" {
		t.Fatalf("expected most specific folder, got %q %v", got, ok)
	}
	if got, ok := findMoreSpecificFolder("Acme Pro", candidates); !ok || got != "/r/Acme-Pro Series" {
		t.Fatalf("expected superset folder, got %q %v", got, ok)
	}
	if _, ok := findMoreSpecificFolder("acme pro series", candidates); ok {
		t.Fatal("equal word sets are not more specific")
	}
	if _, ok := findMoreSpecificFolder("", candidates); ok {
		t.Fatal("empty brand should not match")
	}
}
