package textutil

import (
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// jpegLabels is the only synonym group recognised for category folders.
var jpegLabels = map[string]struct{}{
	"jpeg": {},
	"jpg":  {},
}

// lower folds s to NFC lowercase. A Caser is stateful, so one is built per call.
func lower(s string) string {
	return cases.Lower(language.Und).String(norm.NFC.String(s))
}

// IsSeparator reports whether r separates tokens in file and folder names.
func IsSeparator(r rune) bool {
	return r == '-' || r == '_' || unicode.IsSpace(r)
}

// NormalizeName folds a folder or brand name into a comparison key: lowercase
// letters and digits only. Separators and punctuation are dropped, so
// "Acme-Pro", "acme pro" and "ACME_PRO!" share the key "acmepro".
func NormalizeName(name string) string {
	folded := lower(name)
	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// SplitExt splits a filename into stem and extension. Leading dots belong to
// the stem, so ".hidden" has no extension.
func SplitExt(name string) (string, string) {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	if strings.Trim(stem, ".") == "" {
		return name, ""
	}
	return stem, ext
}

// NormalizeFilename removes separators from the stem and lowercases both stem
// and extension.
func NormalizeFilename(name string) string {
	stem, ext := SplitExt(name)
	var b strings.Builder
	b.Grow(len(stem))
	for _, r := range stem {
		if !IsSeparator(r) {
			b.WriteRune(r)
		}
	}
	return lower(strings.TrimSpace(b.String())) + lower(ext)
}

// NormalizeCategoryLabel trims and lowercases a category label. The boolean is
// false for empty input.
func NormalizeCategoryLabel(label string) (string, bool) {
	trimmed := strings.TrimSpace(label)
	if trimmed == "" {
		return "", false
	}
	return lower(trimmed), true
}

// CategoriesEquivalent reports whether two category labels name the same
// category. JPEG and JPG are the single synonym pair.
func CategoriesEquivalent(a, b string) bool {
	left, ok := NormalizeCategoryLabel(a)
	if !ok {
		return false
	}
	right, ok := NormalizeCategoryLabel(b)
	if !ok {
		return false
	}
	if left == right {
		return true
	}
	_, leftJPEG := jpegLabels[left]
	_, rightJPEG := jpegLabels[right]
	return leftJPEG && rightJPEG
}

// WordSet returns the lowercase words of name, treating hyphens as spaces.
func WordSet(name string) map[string]struct{} {
	words := strings.Fields(strings.ReplaceAll(lower(name), "-", " "))
	set := make(map[string]struct{}, len(words))
	for _, word := range words {
		set[word] = struct{}{}
	}
	return set
}

// IsStrictSubset reports whether every word of sub is in super and super has
// more words.
func IsStrictSubset(sub, super map[string]struct{}) bool {
	if len(super) <= len(sub) {
		return false
	}
	for word := range sub {
		if _, ok := super[word]; !ok {
			return false
		}
	}
	return true
}
