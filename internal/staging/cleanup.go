package staging

import (
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"brandsort/internal/logging"
	"brandsort/internal/services"
)

// DefaultPrefix is the folder-name prefix that marks the staging area.
const DefaultPrefix = "__webp to be move to the right folders"

// IsMarker reports whether name starts with prefix, ignoring case.
func IsMarker(name, prefix string) bool {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return false
	}
	return len(name) >= len(prefix) && strings.EqualFold(name[:len(prefix)], prefix)
}

// Find returns the first top-level directory of root whose name carries the
// staging marker. Directory order is lexical, matching os.ReadDir.
func Find(root, prefix string) (string, bool, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return "", false, err
	}
	for _, entry := range entries {
		if entry.IsDir() && IsMarker(entry.Name(), prefix) {
			return filepath.Join(root, entry.Name()), true, nil
		}
	}
	return "", false, nil
}

// RemoveResult contains the outcome of removing a drained staging area.
type RemoveResult struct {
	Removed   bool
	Remaining int
}

// RemoveIfEmpty deletes the staging directory when nothing is left in it and
// logs why it was kept otherwise.
func RemoveIfEmpty(stagingDir string, logger *slog.Logger) (RemoveResult, error) {
	entries, err := os.ReadDir(stagingDir)
	if err != nil {
		if os.IsNotExist(err) {
			return RemoveResult{}, nil
		}
		return RemoveResult{}, err
	}
	if len(entries) > 0 {
		if logger != nil {
			logger.Info("staging folder kept; entries remain",
				logging.String("path", stagingDir),
				logging.Int("remaining", len(entries)),
				logging.String(logging.FieldEventType, "staging_kept"),
			)
		}
		return RemoveResult{Remaining: len(entries)}, nil
	}
	if err := os.Remove(stagingDir); err != nil {
		wrapped := services.Wrap(services.ErrRemove, "redistribute", "remove staging folder", stagingDir, err)
		if logger != nil {
			logger.Warn("failed to remove staging folder",
				logging.String("path", stagingDir),
				logging.Error(wrapped),
				logging.String(logging.FieldEventType, "staging_cleanup_failed"),
				logging.String(logging.FieldErrorHint, "check folder permissions"),
				logging.String(logging.FieldImpact, "empty staging folder left in place"),
			)
		}
		return RemoveResult{}, wrapped
	}
	if logger != nil {
		logger.Info("removed staging folder",
			logging.String("path", stagingDir),
			logging.String(logging.FieldEventType, "staging_cleanup"),
		)
	}
	return RemoveResult{Removed: true}, nil
}

// ListDirectories returns all directories in the staging directory with their metadata.
func ListDirectories(stagingDir string) ([]DirInfo, error) {
	stagingDir = strings.TrimSpace(stagingDir)
	if stagingDir == "" {
		return nil, nil
	}

	entries, err := os.ReadDir(stagingDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var dirs []DirInfo
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		dirPath := filepath.Join(stagingDir, entry.Name())
		size, files := dirSize(dirPath)

		dirs = append(dirs, DirInfo{
			Name:    entry.Name(),
			Path:    dirPath,
			ModTime: info.ModTime(),
			Size:    size,
			Files:   files,
		})
	}
	sort.SliceStable(dirs, func(i, j int) bool { return dirs[i].Name < dirs[j].Name })

	return dirs, nil
}

// DirInfo contains metadata about a staging subdirectory.
type DirInfo struct {
	Name    string
	Path    string
	ModTime time.Time
	Size    int64
	Files   int
}

// dirSize totals file sizes and counts below path, best effort.
func dirSize(path string) (int64, int) {
	var size int64
	var files int
	_ = filepath.Walk(path, func(_ string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if !info.IsDir() {
			size += info.Size()
			files++
		}
		return nil
	})
	return size, files
}
