package naming

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		stem string
		want Parsed
	}{
		{"acme123", Parsed{Name: "acme", Code: "123", Rule: "single-glued"}},
		{"acme", Parsed{Name: "acme", Rule: "single"}},
		{"brand2.0-code-a", Parsed{Name: "brand2.0", Code: "code", Variant: "a", Rule: "version"}},
		{"acme-pro-2.0-x", Parsed{Name: "acme pro", Code: "2.0", Variant: "x", Rule: "version"}},
		{"acme-pro-2.0-kit-x", Parsed{Name: "acme pro", Code: "2.0-kit", Variant: "x", Rule: "version"}},
		{"acme-x100-v2_red", Parsed{Name: "acme", Code: "x100-v2-red", Rule: "multi-alpha-brand"}},
		{"acme_x100_v2", Parsed{Name: "acme", Code: "x100_v2", Rule: "multi-alpha-brand"}},
		{"acme123_red", Parsed{Name: "acme", Code: "123_red", Rule: "pair-glued"}},
		{"acme123-red", Parsed{Name: "acme", Code: "123-red", Rule: "pair-glued"}},
		{"acme-x100", Parsed{Name: "acme", Code: "x100", Rule: "pair-brand-model"}},
		{"acme-photo-1", Parsed{Name: "acme", Code: "photo", Variant: "1", Rule: "pair-long-code"}},
		{"photo-1", Parsed{Name: "photo", Variant: "1", Rule: "single"}},
		{"img_0001", Parsed{Name: "img", Code: "0001", Rule: "pair-brand-model"}},
		{"x1-y", Parsed{Name: "x", Code: "1", Variant: "y", Rule: "single-glued"}},
		{"a b", Parsed{Name: "a", Variant: "b", Rule: "single"}},
		{"ac-b1", Parsed{Name: "ac", Code: "b1", Rule: "pair-brand-model"}},
		{"1a-2", Parsed{Name: "1a", Variant: "2", Rule: "single"}},
		{"12-34-56", Parsed{Name: "12", Code: "34-56", Rule: "multi-first-digit"}},
		{"x9-big-box-z", Parsed{Name: "x9", Code: "big-box", Variant: "z", Rule: "multi-first-digit"}},
		{"x9-big-box-7", Parsed{Name: "x9", Code: "big-box", Variant: "7", Rule: "multi-first-digit"}},
		{"x9-big-box-deluxe", Parsed{Name: "x9", Code: "big-box-deluxe", Rule: "multi-first-digit"}},
		{"x9-big-b2-deluxe", Parsed{Name: "x9 big", Code: "b2-deluxe", Rule: "multi-first-digit"}},
		{"Acme Pro 300", Parsed{Name: "Acme", Code: "Pro-300", Rule: "multi-alpha-brand"}},
		{"acme!!-x100", Parsed{Name: "acme", Code: "x100", Rule: "pair-brand-model"}},
	}
	for _, tt := range tests {
		t.Run(tt.stem, func(t *testing.T) {
			got := Parse(tt.stem)
			if got != tt.want {
				t.Fatalf("Parse(%q) = %+v, want %+v", tt.stem, got, tt.want)
			}
		})
	}
}

func TestParseEmpty(t *testing.T) {
	for _, stem := range []string{"", "   ", "!!!", "-_-"} {
		if got := Parse(stem); got != (Parsed{}) {
			t.Errorf("Parse(%q) = %+v, want zero value", stem, got)
		}
	}
}

func TestParseAlwaysYieldsNameOrCode(t *testing.T) {
	stems := []string{"a", "a-b", "1", "1-2", "x_y_z", "Ünïcödé-42", "über_2.5", ".hidden", "a.b.c"}
	for _, stem := range stems {
		got := Parse(stem)
		if got.Name == "" && got.Code == "" {
			t.Errorf("Parse(%q) produced neither name nor code", stem)
		}
		if got.Variant != "" && len(got.Variant) != 1 {
			t.Errorf("Parse(%q) variant %q is not a single character", stem, got.Variant)
		}
	}
}

func TestParseDeterministic(t *testing.T) {
	stem := "acme-x100-v2_red"
	first := Parse(stem)
	for i := 0; i < 10; i++ {
		if got := Parse(stem); got != first {
			t.Fatalf("Parse not deterministic: %+v vs %+v", first, got)
		}
	}
}

func TestTokens(t *testing.T) {
	got := Tokens("Acme  Pro_2.0--x (copy)")
	want := []string{"Acme", "Pro", "2.0", "x", "copy"}
	if len(got) != len(want) {
		t.Fatalf("Tokens = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Tokens = %q, want %q", got, want)
		}
	}
}

func TestRulesMatchInOrder(t *testing.T) {
	// "acme2.0" satisfies both the version and the single-glued predicates;
	// the version rule is listed first and must win.
	got := Parse("acme2.0")
	if got.Rule != "version" || got.Name != "acme2.0" || got.Code != "" {
		t.Fatalf("Parse(acme2.0) = %+v", got)
	}
	seen := map[string]bool{}
	for _, rule := range Rules {
		if seen[rule.Name] {
			t.Fatalf("duplicate rule name %q", rule.Name)
		}
		seen[rule.Name] = true
	}
}
