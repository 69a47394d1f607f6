package organizer

import (
	"reflect"
	"testing"

	"brandsort/internal/testsupport"
)

func TestFlattenLiftsSameNameFolders(t *testing.T) {
	root := t.TempDir()
	testsupport.BuildTree(t, root, map[string]string{
		"Acme/Acme/a.txt":      "nested",
		"Acme/Acme/sub/b.txt":  "b",
		"Acme/a.txt":           "existing",
		"Acme/sub/c.txt":       "c",
		"Zeta/Zeta/Zeta/z.txt": "z",
	})
	r := newTestRun(t, root)
	r.flatten()

	got := testsupport.Files(testsupport.Snapshot(t, root))
	want := []string{
		"Acme/a.txt",
		"Acme/a_" + fixedStamp + ".txt",
		"Acme/sub/b.txt",
		"Acme/sub/c.txt",
		"Zeta/z.txt",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("files after flatten:\n got %v\nwant %v", got, want)
	}
	testsupport.AssertFile(t, root, "Acme/a.txt", "existing")
	testsupport.AssertFile(t, root, "Acme/a_"+fixedStamp+".txt", "nested")
	testsupport.AssertMissing(t, root, "Acme/Acme")
	if r.stats.FoldersFlattened != 3 {
		t.Fatalf("expected 3 flattened folders, got %+v", r.stats)
	}
}

func TestSweepFilesIntoCategoryFolders(t *testing.T) {
	root := t.TempDir()
	testsupport.BuildTree(t, root, map[string]string{
		"top.jpg":                 "root file",
		"Acme/x1/acme-x1.jpg":     "jpeg",
		"Acme/x1/IMG_0001.jpg":    "raw",
		"Acme/x1/notes.txt":       "notes",
		"Acme/x1/README":          "readme",
		"Acme/x1/jpg/acme-x2.jpg": "already filed",
		"Acme/x1/clip.MOV":        "video",
	})
	r := newTestRun(t, root)
	r.sweep()

	got := testsupport.Files(testsupport.Snapshot(t, root))
	want := []string{
		"Acme/x1/README",
		"Acme/x1/Unedited/IMG_0001.jpg",
		"Acme/x1/Videos/clip.MOV",
		"Acme/x1/jpg/acme-x1.jpg",
		"Acme/x1/jpg/acme-x2.jpg",
		"Acme/x1/notes.txt",
		"top.jpg",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("files after sweep:\n got %v\nwant %v", got, want)
	}
}
