package organizer

import (
	"os"
	"path/filepath"
	"strings"

	"brandsort/internal/fileutil"
	"brandsort/internal/naming"
	"brandsort/internal/textutil"
)

// classifyBrands routes the loose files of every top-level folder into brand,
// product, and category folders under the root.
func (r *run) classifyBrands() {
	for _, top := range r.topLevelFolders() {
		entries, err := os.ReadDir(top.path)
		if err != nil {
			r.readFailed(top.path, err)
			continue
		}
		for _, entry := range entries {
			if !entry.Type().IsRegular() || strings.HasPrefix(entry.Name(), ".") {
				continue
			}
			file := filepath.Join(top.path, entry.Name())
			if !fileutil.Exists(file) {
				continue
			}
			stem, _ := textutil.SplitExt(entry.Name())
			parsed := naming.Parse(stem)
			brand := parsed.Name
			if brand == "" {
				brand = top.name
			}
			brandDir := r.resolveBrand(r.root, brand)
			target, dst, ok := r.destination(brandDir, parsed, entry.Name())
			if !ok {
				continue
			}
			r.place(file, dst, modeReplace, target)
		}
	}
}
