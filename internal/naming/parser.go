package naming

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"brandsort/internal/textutil"
)

// Parsed holds the decomposition of one filename stem. Empty strings mean the
// component is absent.
type Parsed struct {
	Name    string
	Code    string
	Variant string
	// Rule names the split rule that fired.
	Rule string
}

// Tokens strips characters other than letters, digits, underscores,
// whitespace, dots, and hyphens from stem and splits it on separators.
func Tokens(stem string) []string {
	var cleaned strings.Builder
	for _, r := range norm.NFC.String(stem) {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), unicode.IsNumber(r):
			cleaned.WriteRune(r)
		case r == '_', r == '.', r == '-', unicode.IsSpace(r):
			cleaned.WriteRune(r)
		}
	}
	return strings.FieldsFunc(cleaned.String(), textutil.IsSeparator)
}

// Parse decomposes a filename stem (extension already removed) into brand
// name, product code, and variant.
func Parse(stem string) Parsed {
	parts := Tokens(stem)
	if len(parts) == 0 {
		return Parsed{}
	}

	var out Parsed
	if len(parts) > 1 && isVariant(parts[len(parts)-1]) {
		out.Variant = parts[len(parts)-1]
		parts = parts[:len(parts)-1]
	}

	var nameParts, codeParts []string
	for _, rule := range Rules {
		if !rule.Match(parts) {
			continue
		}
		nameParts, codeParts = rule.Split(parts)
		out.Rule = rule.Name
		break
	}

	out.Name = strings.TrimSpace(strings.Join(nameParts, " "))
	out.Code = assembleCode(stem, nameParts, codeParts, out.Variant)

	if out.Name == "" && out.Code != "" && !hasDigit(out.Code) && !strings.Contains(out.Code, "-") {
		out.Name = out.Code
		out.Code = ""
	}
	if out.Name == "" && out.Code == "" {
		out.Name = parts[0]
	}
	return out
}

// assembleCode joins code parts using the separator the original stem used
// between them: underscores when the code region only contains underscores,
// hyphens otherwise.
func assembleCode(stem string, nameParts, codeParts []string, variant string) string {
	switch len(codeParts) {
	case 0:
		return ""
	case 1:
		return codeParts[0]
	}

	region := stem
	for _, part := range nameParts {
		if strings.HasPrefix(region, part) {
			region = strings.TrimLeftFunc(region[len(part):], textutil.IsSeparator)
		}
	}
	if variant != "" && strings.HasSuffix(region, variant) {
		region = strings.TrimRightFunc(strings.TrimSuffix(region, variant), textutil.IsSeparator)
	}

	if strings.Contains(region, "_") && !strings.Contains(region, "-") {
		return strings.Join(codeParts, "_")
	}
	return strings.Join(codeParts, "-")
}
