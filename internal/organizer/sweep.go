package organizer

import (
	"os"
	"path/filepath"
	"strings"

	"brandsort/internal/naming"
	"brandsort/internal/textutil"
)

// sweep files every remaining loose file below the root into the category
// folder of the directory it sits in. Files directly in the root are left
// alone.
func (r *run) sweep() {
	for _, dir := range r.collectDirs() {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			name := entry.Name()
			if !entry.Type().IsRegular() || !strings.Contains(name, ".") || strings.HasPrefix(name, ".") {
				continue
			}
			category := naming.Classify(name)
			if category.IsNone() || textutil.CategoriesEquivalent(filepath.Base(dir), category.String()) {
				continue
			}
			final, ok := r.categoryFolder(dir, name)
			if !ok {
				continue
			}
			r.place(filepath.Join(dir, name), filepath.Join(final, name), modeReplace, dir)
		}
	}
}
