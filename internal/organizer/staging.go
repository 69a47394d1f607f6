package organizer

import (
	"io/fs"
	"path/filepath"
	"strings"

	"brandsort/internal/fileutil"
	"brandsort/internal/logging"
	"brandsort/internal/naming"
	"brandsort/internal/staging"
	"brandsort/internal/textutil"
)

// classifyStaging routes every file in the staging area into brand, product,
// and category folders inside the staging area itself.
func (r *run) classifyStaging() {
	dir, ok, err := staging.Find(r.root, r.opts.StagingPrefix)
	if err != nil {
		r.readFailed(r.root, err)
		return
	}
	if !ok {
		r.logger.Info("no staging folder found; skipping", logging.EventType("phase_skipped"))
		return
	}
	r.staging = dir
	r.logger.Info("found staging folder", logging.String("path", r.rel(dir)))

	for _, file := range r.collectFiles(dir, true) {
		if !fileutil.Exists(file) {
			continue
		}
		name := filepath.Base(file)
		stem, _ := textutil.SplitExt(name)
		parsed := naming.Parse(stem)
		if parsed.Name == "" {
			r.skip(file, "could not determine brand")
			continue
		}
		brandDir := r.resolveBrand(dir, parsed.Name)
		target, dst, ok := r.destination(brandDir, parsed, name)
		if !ok {
			continue
		}
		r.place(file, dst, modeReplace, target)
	}
}

// collectFiles lists the files below dir that carry an extension. Hidden files
// are ignored; quarantine folders are skipped when skipQuarantine is set.
func (r *run) collectFiles(dir string, skipQuarantine bool) []string {
	var files []string
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			r.readFailed(path, err)
			if d != nil && d.IsDir() && path != dir {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if skipQuarantine && path != dir && strings.EqualFold(d.Name(), r.opts.QuarantineName) {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() && strings.Contains(d.Name(), ".") && !strings.HasPrefix(d.Name(), ".") {
			files = append(files, path)
		}
		return nil
	})
	return files
}

func (r *run) skip(file, reason string) {
	r.stats.Skipped++
	r.logger.Info("skipped file",
		logging.String("file", filepath.Base(file)),
		logging.String("reason", reason),
		logging.EventType("file_skipped"),
	)
}
