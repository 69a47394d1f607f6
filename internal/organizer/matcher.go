package organizer

import (
	"os"
	"path/filepath"
	"strings"

	"brandsort/internal/naming"
	"brandsort/internal/staging"
	"brandsort/internal/textutil"
)

// folder is a transient handle on a directory considered as a match candidate.
type folder struct {
	name string
	path string
}

// listFolders returns the immediate child directories of parent in lexical
// order. A missing or unreadable parent yields no candidates.
func listFolders(parent string) []folder {
	entries, err := os.ReadDir(parent)
	if err != nil {
		return nil
	}
	out := make([]folder, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			out = append(out, folder{name: entry.Name(), path: filepath.Join(parent, entry.Name())})
		}
	}
	return out
}

// reserved reports whether name is the staging marker or a quarantine folder.
// Neither may be chosen as a brand.
func (r *run) reserved(name string) bool {
	return staging.IsMarker(name, r.opts.StagingPrefix) || strings.EqualFold(name, r.opts.QuarantineName)
}

// findCategoryFolder returns the child of parent whose name is equivalent to category.
func findCategoryFolder(parent string, category naming.Category) (string, bool) {
	for _, f := range listFolders(parent) {
		if textutil.CategoriesEquivalent(f.name, category.String()) {
			return f.path, true
		}
	}
	return "", false
}

// findBrandFolder matches brand against the children of parent by normalized
// name. Normalization drops separators, so "Acme-Pro" and "Acme Pro" already
// share a key and no separate hyphen/space pass is needed.
func (r *run) findBrandFolder(parent, brand string) (string, bool) {
	return matchNormalized(r.brandCandidates(parent), brand)
}

func (r *run) brandCandidates(parent string) []folder {
	all := listFolders(parent)
	out := all[:0]
	for _, f := range all {
		if !r.reserved(f.name) {
			out = append(out, f)
		}
	}
	return out
}

// findProductFolder returns the child of brandPath matching code by normalized name.
func findProductFolder(brandPath, code string) (string, bool) {
	return matchNormalized(listFolders(brandPath), code)
}

// findMatchingFolder looks for a folder under parent equivalent to name,
// skipping reserved folders. Used when merging staging subfolders.
func (r *run) findMatchingFolder(parent, name string) (string, bool) {
	return r.findBrandFolder(parent, name)
}

// findMoreSpecificFolder returns the candidate whose word set strictly contains
// the words of brand, preferring the candidate with the most words.
func findMoreSpecificFolder(brand string, candidates []folder) (string, bool) {
	words := textutil.WordSet(brand)
	if len(words) == 0 {
		return "", false
	}
	best, bestWords := "", 0
	for _, c := range candidates {
		set := textutil.WordSet(c.name)
		if !textutil.IsStrictSubset(words, set) {
			continue
		}
		if len(set) > bestWords {
			best, bestWords = c.path, len(set)
		}
	}
	return best, best != ""
}

func matchNormalized(candidates []folder, name string) (string, bool) {
	key := textutil.NormalizeName(name)
	if key == "" {
		return "", false
	}
	for _, c := range candidates {
		if textutil.NormalizeName(c.name) == key {
			return c.path, true
		}
	}
	return "", false
}

// topLevelFolders lists the root's folders that may act as brands.
func (r *run) topLevelFolders() []folder {
	return r.brandCandidates(r.root)
}
