package organizer

import (
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"

	"brandsort/internal/fileutil"
	"brandsort/internal/logging"
	"brandsort/internal/staging"
)

// redistribute moves each staging subfolder into the main tree, merging it
// into an equivalent folder when one exists.
func (r *run) redistribute() {
	if r.staging == "" {
		r.logger.Info("no staging folder to move; skipping", logging.EventType("phase_skipped"))
		return
	}
	dirs, err := staging.ListDirectories(r.staging)
	if err != nil {
		r.readFailed(r.staging, err)
		return
	}
	for _, dir := range dirs {
		if existing, ok := r.findMatchingFolder(r.root, dir.Name); ok {
			r.logger.Info("merging staging folder",
				logging.String("folder", dir.Name),
				logging.String("into", r.rel(existing)),
				logging.String("size", humanize.Bytes(uint64(dir.Size))),
				logging.Int("files", dir.Files),
			)
			r.merge(dir.Path, existing)
			r.stats.FoldersMerged++
			continue
		}
		target := fileutil.UniquePath(filepath.Join(r.root, dir.Name))
		if r.move(dir.Path, target) {
			r.stats.FoldersMoved++
			r.logger.Info("moved staging folder into main folder",
				logging.String("folder", dir.Name),
				logging.String("to", r.rel(target)),
				logging.String("size", humanize.Bytes(uint64(dir.Size))),
				logging.EventType("folder_moved"),
			)
		}
	}
	if _, err := staging.RemoveIfEmpty(r.staging, r.logger); err != nil {
		r.stats.Errors++
	}
}

// merge folds source into target. Folders pair up by name and merge
// recursively; files go to the category folder of their new parent and never
// overwrite an existing file.
func (r *run) merge(source, target string) {
	entries, err := os.ReadDir(source)
	if err != nil {
		r.readFailed(source, err)
		return
	}
	for _, entry := range entries {
		src := filepath.Join(source, entry.Name())
		if entry.IsDir() {
			dst, ok := matchNormalized(listFolders(target), entry.Name())
			if !ok {
				dst = filepath.Join(target, entry.Name())
			}
			if info, err := os.Stat(dst); err == nil {
				if info.IsDir() {
					r.merge(src, dst)
					continue
				}
				dst = fileutil.UniquePath(dst)
			}
			if r.move(src, dst) {
				r.stats.FoldersMoved++
				r.logger.Info("moved new folder",
					logging.String("folder", entry.Name()),
					logging.String("to", r.rel(dst)),
					logging.EventType("folder_moved"),
				)
			}
			continue
		}
		final, ok := r.categoryFolder(target, entry.Name())
		if !ok {
			continue
		}
		r.place(src, filepath.Join(final, entry.Name()), modeMerge, target)
	}
	if err := os.Remove(source); err != nil && !os.IsNotExist(err) {
		r.logger.Debug("merge source kept", logging.String("path", r.rel(source)), logging.Error(err))
	}
}
