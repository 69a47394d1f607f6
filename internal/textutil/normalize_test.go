package textutil

import "testing"

func TestNormalizeNameSeparatorInsensitive(t *testing.T) {
	tests := []struct {
		a, b string
	}{
		{"Acme-Pro", "acme pro"},
		{"Acme-1", "acme 1"},
		{"ACME_PRO!", "acme-pro"},
		{"  Acme   Pro  ", "AcmePro"},
	}
	for _, tt := range tests {
		if NormalizeName(tt.a) != NormalizeName(tt.b) {
			t.Errorf("NormalizeName(%q)=%q, NormalizeName(%q)=%q; want equal", tt.a, NormalizeName(tt.a), tt.b, NormalizeName(tt.b))
		}
	}
}

func TestNormalizeNameIdempotent(t *testing.T) {
	inputs := []string{"Acme-Pro Series", "Café Crème", "x100 (v2)", "", "___", "Ünïcödé-Brand"}
	for _, in := range inputs {
		once := NormalizeName(in)
		if twice := NormalizeName(once); twice != once {
			t.Errorf("NormalizeName not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestNormalizeNameKeepsNonASCIILetters(t *testing.T) {
	if got := NormalizeName("Café-Crème"); got != "cafécrème" {
		t.Fatalf("NormalizeName = %q, want %q", got, "cafécrème")
	}
	// Decomposed e + combining acute compares equal to the composed form.
	if NormalizeName("Cafe\u0301") != NormalizeName("Caf\u00e9") {
		t.Fatal("expected NFC normalization to equate decomposed and composed forms")
	}
}

func TestNormalizeFilename(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Acme-X100_red.JPG", "acmex100red.jpg"},
		{"IMG 0001.jpeg", "img0001.jpeg"},
		{".hidden", ".hidden"},
		{"noext", "noext"},
	}
	for _, tt := range tests {
		if got := NormalizeFilename(tt.in); got != tt.want {
			t.Errorf("NormalizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSplitExt(t *testing.T) {
	tests := []struct {
		in, stem, ext string
	}{
		{"photo.jpg", "photo", ".jpg"},
		{"archive.tar.gz", "archive.tar", ".gz"},
		{".bashrc", ".bashrc", ""},
		{"plain", "plain", ""},
	}
	for _, tt := range tests {
		stem, ext := SplitExt(tt.in)
		if stem != tt.stem || ext != tt.ext {
			t.Errorf("SplitExt(%q) = (%q, %q), want (%q, %q)", tt.in, stem, ext, tt.stem, tt.ext)
		}
	}
}

func TestNormalizeCategoryLabel(t *testing.T) {
	if _, ok := NormalizeCategoryLabel("   "); ok {
		t.Fatal("expected empty label to report false")
	}
	if got, ok := NormalizeCategoryLabel(" WEBP "); !ok || got != "webp" {
		t.Fatalf("NormalizeCategoryLabel = (%q, %v)", got, ok)
	}
}

func TestCategoriesEquivalent(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"JPG", "jpeg", true},
		{"jpeg", "JPEG", true},
		{"Videos", "video", false},
		{"WEBP", "webp", true},
		{"", "", false},
		{"jpg", "", false},
		{"Unedited", "JPEG", false},
	}
	for _, tt := range tests {
		if got := CategoriesEquivalent(tt.a, tt.b); got != tt.want {
			t.Errorf("CategoriesEquivalent(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestWordSetAndStrictSubset(t *testing.T) {
	brand := WordSet("Acme")
	folder := WordSet("Acme Pro-Series")
	if len(folder) != 3 {
		t.Fatalf("expected 3 words, got %v", folder)
	}
	if !IsStrictSubset(brand, folder) {
		t.Fatal("expected {acme} to be a strict subset of {acme pro series}")
	}
	if IsStrictSubset(folder, folder) {
		t.Fatal("a set is not a strict subset of itself")
	}
	if IsStrictSubset(WordSet("Zeta"), folder) {
		t.Fatal("disjoint sets must not match")
	}
}

func TestSanitizeFolderName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{` a/b:c? `, "a-b-c"},
		{`Acme\Pro*`, "Acme-Pro-"},
		{"x<1>|\t", "x1"},
		{"..", ""},
		{" . ", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := SanitizeFolderName(tt.in); got != tt.want {
			t.Errorf("SanitizeFolderName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
