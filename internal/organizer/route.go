package organizer

import (
	"path/filepath"

	"brandsort/internal/logging"
	"brandsort/internal/naming"
	"brandsort/internal/textutil"
)

// resolveBrand picks the brand folder for name under parent: an equivalent
// folder, else a more specific one, else a new folder (not yet created).
func (r *run) resolveBrand(parent, name string) string {
	if path, ok := r.findBrandFolder(parent, name); ok {
		return path
	}
	if path, ok := findMoreSpecificFolder(name, r.brandCandidates(parent)); ok {
		r.logger.Debug("using more specific brand folder",
			logging.String("brand", name),
			logging.String("folder", filepath.Base(path)),
		)
		return path
	}
	return filepath.Join(parent, folderName(name))
}

// destination creates the product and category folders for filename under
// brandDir. It returns the folder that owns replaced files and the final path.
func (r *run) destination(brandDir string, parsed naming.Parsed, filename string) (string, string, bool) {
	if !r.ensureDir(brandDir) {
		return "", "", false
	}
	target := brandDir
	if parsed.Code != "" {
		product, ok := findProductFolder(brandDir, parsed.Code)
		if !ok {
			product = filepath.Join(brandDir, folderName(parsed.Code))
		}
		if !r.ensureDir(product) {
			return "", "", false
		}
		target = product
	}
	final, ok := r.categoryFolder(target, filename)
	if !ok {
		return "", "", false
	}
	return target, filepath.Join(final, filename), true
}

// categoryFolder returns the folder inside dir that filename belongs in: the
// matching category subfolder (created on demand), or dir itself when the file
// has no category or dir already is that category.
func (r *run) categoryFolder(dir, filename string) (string, bool) {
	category := naming.Classify(filename)
	if category.IsNone() || textutil.CategoriesEquivalent(filepath.Base(dir), category.String()) {
		return dir, true
	}
	if existing, ok := findCategoryFolder(dir, category); ok {
		return existing, true
	}
	folder := filepath.Join(dir, category.String())
	return folder, r.ensureDir(folder)
}

// folderName makes an extracted name usable as a single path element.
func folderName(name string) string {
	if clean := textutil.SanitizeFolderName(name); clean != "" {
		return clean
	}
	return "_"
}
