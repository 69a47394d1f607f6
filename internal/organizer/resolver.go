package organizer

import (
	"os"
	"path/filepath"
	"strings"

	"brandsort/internal/fileutil"
	"brandsort/internal/logging"
	"brandsort/internal/naming"
	"brandsort/internal/services"
	"brandsort/internal/textutil"
)

// placeMode selects what happens when a destination holds a different file.
type placeMode int

const (
	// modeReplace quarantines the existing file and lets the incoming one take its path.
	modeReplace placeMode = iota
	// modeMerge keeps the existing file and renames the incoming one alongside it.
	modeMerge
)

// maxAncestorWalk bounds the search for the brand folder of a duplicate.
const maxAncestorWalk = 3

// sameLogicalFile reports whether a and b name the same file once separators
// and case are ignored.
func sameLogicalFile(a, b string) bool {
	return textutil.NormalizeFilename(filepath.Base(a)) == textutil.NormalizeFilename(filepath.Base(b))
}

// isTrueDuplicate reports whether a and b are the same logical file with
// identical bytes. Read errors count as "not a duplicate".
func isTrueDuplicate(a, b string) bool {
	if !sameLogicalFile(a, b) {
		return false
	}
	same, err := fileutil.SameContent(a, b)
	return err == nil && same
}

// place moves src to dst, resolving an occupied destination. target is the
// folder whose quarantine receives replaced files.
func (r *run) place(src, dst string, mode placeMode, target string) {
	if filepath.Clean(src) == filepath.Clean(dst) {
		return
	}
	info, err := os.Stat(dst)
	if err != nil {
		if r.move(src, dst) {
			r.stats.FilesMoved++
			r.logger.Info("moved file",
				logging.String("file", filepath.Base(src)),
				logging.String("to", r.rel(dst)),
				logging.EventType("file_moved"),
			)
		}
		return
	}

	category := naming.Classify(filepath.Base(src))
	if !info.IsDir() && isTrueDuplicate(src, dst) {
		brand := r.brandAncestor(dst)
		quarantined := r.quarantinePath(brand, category, src, "duplicate")
		if r.move(src, quarantined) {
			r.stats.Duplicates++
			r.logger.Info("moved duplicate to quarantine",
				logging.String("file", filepath.Base(src)),
				logging.String("existing", r.rel(dst)),
				logging.String("to", r.rel(quarantined)),
				logging.EventType("duplicate_quarantined"),
			)
		}
		return
	}

	if mode == modeReplace && !info.IsDir() {
		replaced := r.quarantinePath(target, category, dst, "replaced")
		if !r.move(dst, replaced) {
			return
		}
		r.stats.Replaced++
		r.logger.Info("moved existing file to quarantine",
			logging.String("file", filepath.Base(dst)),
			logging.String("to", r.rel(replaced)),
			logging.EventType("file_replaced"),
		)
		if r.move(src, dst) {
			r.stats.FilesMoved++
			r.logger.Info("moved file",
				logging.String("file", filepath.Base(src)),
				logging.String("to", r.rel(dst)),
				logging.EventType("file_moved"),
			)
		}
		return
	}

	stem, ext := textutil.SplitExt(filepath.Base(src))
	renamed := fileutil.UniquePath(filepath.Join(filepath.Dir(dst), stem+"_conflict_"+r.now()+ext))
	if r.move(src, renamed) {
		r.stats.Conflicts++
		r.logger.Info("kept both files; renamed incoming",
			logging.String("file", filepath.Base(src)),
			logging.String("to", r.rel(renamed)),
			logging.EventType("file_conflict"),
		)
	}
}

// quarantinePath builds a free path for file under base's quarantine folder,
// nested under category when one applies.
func (r *run) quarantinePath(base string, category naming.Category, file, tag string) string {
	dir := filepath.Join(base, r.opts.QuarantineName)
	if !category.IsNone() {
		dir = filepath.Join(dir, category.String())
	}
	stem, ext := textutil.SplitExt(filepath.Base(file))
	return fileutil.UniquePath(filepath.Join(dir, stem+"_"+tag+"_"+r.now()+ext))
}

// brandAncestor approximates the brand folder of path: walking up from its
// directory, the first folder whose parent holds more than one folder. The
// walk never leaves the root and falls back to the file's own directory.
func (r *run) brandAncestor(path string) string {
	start := filepath.Dir(path)
	current := start
	for i := 0; i < maxAncestorWalk; i++ {
		if current == r.root {
			break
		}
		parent := filepath.Dir(current)
		if parent == current || !within(r.root, parent) {
			break
		}
		if len(listFolders(parent)) > 1 {
			return current
		}
		current = parent
	}
	return start
}

// move renames src to dst and logs a wrapped ErrMove on failure.
func (r *run) move(src, dst string) bool {
	if err := fileutil.Move(src, dst); err != nil {
		r.stats.Errors++
		logging.WarnWithContext(r.logger, "move failed; skipping", "move_failed",
			logging.String("file", filepath.Base(src)),
			logging.String("to", r.rel(dst)),
			logging.Error(services.Wrap(ErrMove, r.phase, "move", r.rel(src), err)),
			logging.String(logging.FieldErrorHint, "check permissions and free space"),
			logging.String(logging.FieldImpact, "item left in place"),
		)
		return false
	}
	return true
}

// ensureDir creates path if needed and counts newly created folders.
func (r *run) ensureDir(path string) bool {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return true
	}
	if err := os.MkdirAll(path, 0o755); err != nil {
		r.stats.Errors++
		logging.WarnWithContext(r.logger, "create folder failed", "mkdir_failed",
			logging.String("path", r.rel(path)),
			logging.Error(services.Wrap(ErrMove, r.phase, "create folder", r.rel(path), err)),
			logging.String(logging.FieldErrorHint, "check permissions"),
			logging.String(logging.FieldImpact, "files for this folder left in place"),
		)
		return false
	}
	r.stats.FoldersCreated++
	r.logger.Info("created folder", logging.String("path", r.rel(path)), logging.EventType("folder_created"))
	return true
}

// within reports whether path is root or below it.
func within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
