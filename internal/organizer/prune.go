package organizer

import (
	"os"
	"path/filepath"

	"brandsort/internal/logging"
	"brandsort/internal/staging"
)

// prune removes empty directories below the root, deepest first. Staging
// folders are preserved even when empty.
func (r *run) prune() {
	dirs := r.collectDirs()
	for i := len(dirs) - 1; i >= 0; i-- {
		dir := dirs[i]
		if staging.IsMarker(filepath.Base(dir), r.opts.StagingPrefix) {
			r.logger.Info("preserving staging folder", logging.String("path", r.rel(dir)))
			continue
		}
		entries, err := os.ReadDir(dir)
		if err != nil || len(entries) > 0 {
			continue
		}
		if err := os.Remove(dir); err != nil {
			r.removeFailed(dir, err)
			continue
		}
		r.stats.FoldersRemoved++
		r.logger.Info("removed empty folder",
			logging.String("path", r.rel(dir)),
			logging.EventType("folder_removed"),
		)
	}
}
