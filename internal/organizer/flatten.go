package organizer

import (
	"io/fs"
	"os"
	"path/filepath"

	"brandsort/internal/fileutil"
	"brandsort/internal/logging"
	"brandsort/internal/services"
	"brandsort/internal/textutil"
)

// flatten collapses directories named like their parent, deepest first.
func (r *run) flatten() {
	dirs := r.collectDirs()
	for i := len(dirs) - 1; i >= 0; i-- {
		dir := dirs[i]
		parent := filepath.Dir(dir)
		if filepath.Base(dir) != filepath.Base(parent) {
			continue
		}
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			continue
		}
		r.logger.Info("found nested folder", logging.String("path", r.rel(dir)))
		entries, err := os.ReadDir(dir)
		if err != nil {
			r.readFailed(dir, err)
			continue
		}
		for _, entry := range entries {
			r.liftEntry(filepath.Join(dir, entry.Name()), parent)
		}
		if err := os.Remove(dir); err != nil {
			r.removeFailed(dir, err)
			continue
		}
		r.stats.FoldersFlattened++
		r.logger.Info("flattened nested folder",
			logging.String("path", r.rel(dir)),
			logging.EventType("folder_flattened"),
		)
	}
}

// liftEntry moves src into dest. A folder landing on a folder has its
// children moved in instead; anything else that is taken gets a timestamp
// suffix.
func (r *run) liftEntry(src, dest string) {
	dst := filepath.Join(dest, filepath.Base(src))
	if !fileutil.Exists(dst) {
		r.move(src, dst)
		return
	}
	srcInfo, srcErr := os.Stat(src)
	dstInfo, dstErr := os.Stat(dst)
	if srcErr == nil && dstErr == nil && srcInfo.IsDir() && dstInfo.IsDir() {
		entries, err := os.ReadDir(src)
		if err != nil {
			r.readFailed(src, err)
			return
		}
		for _, entry := range entries {
			child := filepath.Join(src, entry.Name())
			target := filepath.Join(dst, entry.Name())
			if fileutil.Exists(target) {
				target = r.timestamped(target)
			}
			r.move(child, target)
		}
		if err := os.Remove(src); err != nil {
			r.removeFailed(src, err)
		}
		return
	}
	r.move(src, r.timestamped(dst))
}

// timestamped returns a free "<stem>_<ts><ext>" sibling of path.
func (r *run) timestamped(path string) string {
	stem, ext := textutil.SplitExt(filepath.Base(path))
	return fileutil.UniquePath(filepath.Join(filepath.Dir(path), stem+"_"+r.now()+ext))
}

// collectDirs lists every directory below the root in walk (pre-)order.
// Unreadable subtrees are logged and skipped.
func (r *run) collectDirs() []string {
	var dirs []string
	_ = filepath.WalkDir(r.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			r.readFailed(path, err)
			if d != nil && d.IsDir() && path != r.root {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() && path != r.root {
			dirs = append(dirs, path)
		}
		return nil
	})
	return dirs
}

func (r *run) readFailed(path string, err error) {
	r.stats.Errors++
	logging.WarnWithContext(r.logger, "could not read folder", "read_failed",
		logging.String("path", r.rel(path)),
		logging.Error(err),
		logging.String(logging.FieldErrorHint, "check folder permissions"),
		logging.String(logging.FieldImpact, "folder contents left in place"),
	)
}

func (r *run) removeFailed(path string, err error) {
	r.stats.Errors++
	logging.WarnWithContext(r.logger, "could not remove folder", "remove_failed",
		logging.String("path", r.rel(path)),
		logging.Error(services.Wrap(ErrRemove, r.phase, "remove folder", r.rel(path), err)),
		logging.String(logging.FieldErrorHint, "check for hidden files or permissions"),
		logging.String(logging.FieldImpact, "folder left in place"),
	)
}
