// Package photometa reads the capture metadata embedded in photo files.
//
// Only EXIF is consulted. The organizer itself never reads file contents for
// routing; this metadata is shown to operators by `brandsort inspect`.
package photometa

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rwcarlsen/goexif/exif"
)

// ErrNoMetadata reports a file that carries no readable EXIF block.
var ErrNoMetadata = errors.New("no exif metadata")

// Meta is the subset of EXIF that helps explain where a photo came from.
type Meta struct {
	Taken  time.Time
	Camera string
}

// Read decodes the EXIF block of the file at path. Files without EXIF (PNG,
// WEBP, videos, or stripped JPEGs) return ErrNoMetadata.
func Read(path string) (Meta, error) {
	f, err := os.Open(path)
	if err != nil {
		return Meta{}, err
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		return Meta{}, fmt.Errorf("%w: %s: %v", ErrNoMetadata, path, err)
	}
	var meta Meta
	if taken, err := x.DateTime(); err == nil {
		meta.Taken = taken
	}
	meta.Camera = camera(x)
	return meta, nil
}

// camera joins Make and Model, dropping the make when the model repeats it
// ("Canon" + "Canon EOS R5" becomes "Canon EOS R5").
func camera(x *exif.Exif) string {
	field := func(name exif.FieldName) string {
		tag, err := x.Get(name)
		if err != nil {
			return ""
		}
		value, err := tag.StringVal()
		if err != nil {
			return ""
		}
		return strings.TrimSpace(strings.Trim(value, "\x00"))
	}
	maker, model := field(exif.Make), field(exif.Model)
	if maker == "" || strings.HasPrefix(strings.ToLower(model), strings.ToLower(maker)) {
		return model
	}
	return strings.TrimSpace(maker + " " + model)
}
