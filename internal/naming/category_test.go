package naming

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		file string
		want Category
	}{
		{"img_0001.jpg", CategoryUnedited},
		{"IMG 0002.webp", CategoryUnedited},
		{"Img-7.mov", CategoryUnedited},
		{"acme-x100.webp", CategoryWEBP},
		{"acme-x100.WEBP", CategoryWEBP},
		{"acme-x100.jpg", CategoryJPEG},
		{"acme-x100.JPEG", CategoryJPEG},
		{"clip.mp4", CategoryVideos},
		{"clip.MKV", CategoryVideos},
		{"clip.avi", CategoryVideos},
		{"clip.mov", CategoryVideos},
		{"notes.txt", CategoryNone},
		{"image-1.png", CategoryNone},
		{"noext", CategoryNone},
		{"/some/dir/img_1.png", CategoryUnedited},
	}
	for _, tt := range tests {
		if got := Classify(tt.file); got != tt.want {
			t.Errorf("Classify(%q) = %q, want %q", tt.file, got, tt.want)
		}
	}
}

func TestClassifyIgnoresExtractorOutput(t *testing.T) {
	// The extractor reads "img_0001" as brand "img" code "0001"; the
	// classifier still reports the camera original category.
	if p := Parse("img_0001"); p.Name != "img" {
		t.Fatalf("unexpected parse %+v", p)
	}
	if got := Classify("img_0001.jpg"); got != CategoryUnedited {
		t.Fatalf("Classify = %q, want Unedited", got)
	}
}

func TestCategories(t *testing.T) {
	cats := Categories()
	if len(cats) != 4 || cats[0] != CategoryUnedited {
		t.Fatalf("unexpected categories %v", cats)
	}
	if !CategoryNone.IsNone() || CategoryJPEG.IsNone() {
		t.Fatal("IsNone mismatch")
	}
	if CategoryVideos.String() != "Videos" {
		t.Fatalf("String() = %q", CategoryVideos.String())
	}
}
