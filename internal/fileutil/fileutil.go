package fileutil

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
)

// CopyFileVerified copies one regular file, keeping its permissions and
// modification time. The copy is read back and compared by SHA-256 against
// the digest taken while reading the source; on any mismatch dst is removed.
func CopyFileVerified(src, dst string) (err error) {
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(dst)
		}
	}()

	want := sha256.New()
	n, copyErr := io.Copy(out, io.TeeReader(in, want))
	if err := errors.Join(copyErr, out.Close()); err != nil {
		return err
	}
	if n != info.Size() {
		return fmt.Errorf("copy size mismatch: source %d bytes, copied %d bytes", info.Size(), n)
	}
	got, err := digest(dst)
	if err != nil {
		return err
	}
	if !bytes.Equal(got, want.Sum(nil)) {
		return fmt.Errorf("copy hash mismatch for %s", dst)
	}
	_ = os.Chtimes(dst, info.ModTime(), info.ModTime())
	return nil
}

func digest(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return nil, err
	}
	return h.Sum(nil), nil
}

// Move renames src to dst, creating dst's parent directory as needed.
// When the rename crosses filesystems the tree is copied with verification
// and the source removed afterwards. Moving a path onto itself is a no-op.
func Move(src, dst string) error {
	if filepath.Clean(src) == filepath.Clean(dst) {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("create destination parent: %w", err)
	}
	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}
	if !errors.Is(err, syscall.EXDEV) {
		return err
	}
	if err := copyTree(src, dst); err != nil {
		_ = os.RemoveAll(dst)
		return fmt.Errorf("cross-device copy: %w", err)
	}
	return os.RemoveAll(src)
}

func copyTree(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		target := filepath.Join(dst, strings.TrimPrefix(path, src))
		if !d.IsDir() {
			return CopyFileVerified(path, target)
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		return os.MkdirAll(target, info.Mode().Perm()|0o700)
	})
}

// SameContent reports whether a and b are regular files with identical bytes.
// Sizes are compared first; contents are streamed so large files never load
// into memory.
func SameContent(a, b string) (bool, error) {
	ai, err := os.Stat(a)
	if err != nil {
		return false, err
	}
	bi, err := os.Stat(b)
	if err != nil {
		return false, err
	}
	if !ai.Mode().IsRegular() || !bi.Mode().IsRegular() {
		return false, nil
	}
	if ai.Size() != bi.Size() {
		return false, nil
	}

	fa, err := os.Open(a)
	if err != nil {
		return false, err
	}
	defer fa.Close()
	fb, err := os.Open(b)
	if err != nil {
		return false, err
	}
	defer fb.Close()

	const chunk = 64 * 1024
	bufA := make([]byte, chunk)
	bufB := make([]byte, chunk)
	for {
		na, errA := io.ReadFull(fa, bufA)
		nb, errB := io.ReadFull(fb, bufB)
		if na != nb || !bytes.Equal(bufA[:na], bufB[:nb]) {
			return false, nil
		}
		doneA := errors.Is(errA, io.EOF) || errors.Is(errA, io.ErrUnexpectedEOF)
		doneB := errors.Is(errB, io.EOF) || errors.Is(errB, io.ErrUnexpectedEOF)
		if errA != nil && !doneA {
			return false, errA
		}
		if errB != nil && !doneB {
			return false, errB
		}
		if doneA || doneB {
			return doneA == doneB, nil
		}
	}
}

// Exists reports whether path is present (file or directory).
func Exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// UniquePath returns path when nothing exists there, otherwise the first
// "<stem>_<n><ext>" sibling that is free, starting at n=1.
func UniquePath(path string) string {
	if !Exists(path) {
		return path
	}
	dir := filepath.Dir(path)
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	if ext == base {
		ext = ""
	}
	stem := base[:len(base)-len(ext)]
	for n := 1; ; n++ {
		candidate := filepath.Join(dir, stem+"_"+strconv.Itoa(n)+ext)
		if !Exists(candidate) {
			return candidate
		}
	}
}
