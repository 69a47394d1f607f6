package naming

import (
	"path/filepath"
	"strings"

	"brandsort/internal/textutil"
)

// Category is the content type folder a file belongs in. The zero value means
// no category folder applies.
type Category string

const (
	CategoryNone     Category = ""
	CategoryUnedited Category = "Unedited"
	CategoryWEBP     Category = "WEBP"
	CategoryJPEG     Category = "JPEG"
	CategoryVideos   Category = "Videos"
)

var videoExtensions = map[string]struct{}{
	".mp4": {},
	".mov": {},
	".avi": {},
	".mkv": {},
}

// Categories lists every real category in classification priority order.
func Categories() []Category {
	return []Category{CategoryUnedited, CategoryWEBP, CategoryJPEG, CategoryVideos}
}

// String returns the folder name for the category.
func (c Category) String() string {
	return string(c)
}

// IsNone reports whether no category folder applies.
func (c Category) IsNone() bool {
	return c == CategoryNone
}

// Classify maps a filename to its category. Camera originals ("img" prefix
// once separators are removed) win over the extension.
func Classify(filename string) Category {
	normalized := textutil.NormalizeFilename(filepath.Base(filename))
	_, ext := textutil.SplitExt(normalized)
	switch {
	case strings.HasPrefix(normalized, "img"):
		return CategoryUnedited
	case ext == ".webp":
		return CategoryWEBP
	case ext == ".jpg" || ext == ".jpeg":
		return CategoryJPEG
	}
	if _, ok := videoExtensions[ext]; ok {
		return CategoryVideos
	}
	return CategoryNone
}
