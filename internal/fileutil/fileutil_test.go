package fileutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCopyFileVerified(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.bin")
	dst := filepath.Join(dir, "dst.bin")

	content := []byte("verified copy content")
	if err := os.WriteFile(src, content, 0o644); err != nil {
		t.Fatal(err)
	}

	if err := CopyFileVerified(src, dst); err != nil {
		t.Fatal(err)
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(content) {
		t.Fatalf("content mismatch: got %q, want %q", got, content)
	}
}

func TestCopyFileVerified_MissingSource(t *testing.T) {
	dir := t.TempDir()
	if err := CopyFileVerified(filepath.Join(dir, "nonexistent"), filepath.Join(dir, "dst.bin")); err == nil {
		t.Fatal("expected error for missing source")
	}
}

func TestMoveCreatesParent(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.jpg")
	dst := filepath.Join(dir, "Acme", "JPEG", "a.jpg")
	if err := os.WriteFile(src, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := Move(src, dst); err != nil {
		t.Fatalf("Move: %v", err)
	}
	if Exists(src) {
		t.Fatal("source still present after move")
	}
	if got, _ := os.ReadFile(dst); string(got) != "x" {
		t.Fatalf("destination content = %q", got)
	}
}

func TestMoveOntoSelfIsNoop(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.jpg")
	if err := os.WriteFile(src, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := Move(src, filepath.Join(dir, ".", "a.jpg")); err != nil {
		t.Fatalf("Move: %v", err)
	}
	if !Exists(src) {
		t.Fatal("file vanished after self-move")
	}
}

func TestCopyTreeDirectory(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	if err := os.MkdirAll(filepath.Join(src, "nested"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(src, "nested", "f.txt"), []byte("deep"), 0o644); err != nil {
		t.Fatal(err)
	}
	dst := filepath.Join(dir, "dst")
	if err := copyTree(src, dst); err != nil {
		t.Fatalf("copyTree: %v", err)
	}
	if got, _ := os.ReadFile(filepath.Join(dst, "nested", "f.txt")); string(got) != "deep" {
		t.Fatalf("copied content = %q", got)
	}
}

func TestSameContent(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) string {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
		return p
	}
	a := write("a", "same bytes")
	b := write("b", "same bytes")
	c := write("c", "diff bytes")
	d := write("d", "short")

	cases := []struct {
		x, y string
		want bool
	}{
		{a, b, true},
		{a, c, false},
		{a, d, false},
		{a, a, true},
	}
	for _, tc := range cases {
		got, err := SameContent(tc.x, tc.y)
		if err != nil {
			t.Fatalf("SameContent(%s, %s): %v", tc.x, tc.y, err)
		}
		if got != tc.want {
			t.Fatalf("SameContent(%s, %s) = %v, want %v", filepath.Base(tc.x), filepath.Base(tc.y), got, tc.want)
		}
	}

	if same, _ := SameContent(a, dir); same {
		t.Fatal("file and directory reported as same content")
	}
	if _, err := SameContent(a, filepath.Join(dir, "missing")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestSameContentLargerThanChunk(t *testing.T) {
	dir := t.TempDir()
	body := make([]byte, 200*1024)
	for i := range body {
		body[i] = byte(i % 251)
	}
	a := filepath.Join(dir, "a")
	b := filepath.Join(dir, "b")
	if err := os.WriteFile(a, body, 0o644); err != nil {
		t.Fatal(err)
	}
	body[len(body)-1] ^= 0xff
	if err := os.WriteFile(b, body, 0o644); err != nil {
		t.Fatal(err)
	}
	if same, err := SameContent(a, b); err != nil || same {
		t.Fatalf("SameContent = %v, %v; want false, nil", same, err)
	}
}

func TestUniquePath(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "a_replaced_20240101_000000.jpg")
	if got := UniquePath(p); got != p {
		t.Fatalf("UniquePath on free path = %q", got)
	}
	if err := os.WriteFile(p, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(dir, "a_replaced_20240101_000000_1.jpg")
	if got := UniquePath(p); got != want {
		t.Fatalf("UniquePath = %q, want %q", got, want)
	}
	if err := os.WriteFile(want, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if got := UniquePath(p); got != filepath.Join(dir, "a_replaced_20240101_000000_2.jpg") {
		t.Fatalf("UniquePath second collision = %q", got)
	}
}
