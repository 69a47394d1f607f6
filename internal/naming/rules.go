package naming

import (
	"regexp"
	"strings"
	"unicode"
)

// SplitRule pairs a predicate over the token list with the function that
// divides the tokens into name and code parts. Rules are evaluated in order by
// [Parse]; first match wins.
type SplitRule struct {
	Name  string
	Match func(parts []string) bool
	Split func(parts []string) (name, code []string)
}

var (
	// reVersion finds a dotted version such as "2.0" anywhere inside a token.
	reVersion = regexp.MustCompile(`\p{Nd}+\.\p{Nd}+`)

	// reGlued matches a brand glued to a model number, e.g. "acme123v2".
	reGlued = regexp.MustCompile(`^([A-Za-z]+)(\p{Nd}.*)$`)

	reAlpha = regexp.MustCompile(`^[A-Za-z]+$`)

	reVariant = regexp.MustCompile(`^[A-Za-z0-9]$`)
)

// Rules is the ordered split table applied after the variant token has been
// removed.
var Rules = []SplitRule{
	{
		Name:  "version",
		Match: func(parts []string) bool { return versionIndex(parts) >= 0 },
		Split: func(parts []string) ([]string, []string) {
			idx := versionIndex(parts)
			if idx == 0 {
				return parts[:1], parts[1:]
			}
			return parts[:idx], parts[idx:]
		},
	},
	{
		Name:  "single-glued",
		Match: func(parts []string) bool { return len(parts) == 1 && reGlued.MatchString(parts[0]) },
		Split: func(parts []string) ([]string, []string) {
			m := reGlued.FindStringSubmatch(parts[0])
			return []string{m[1]}, []string{m[2]}
		},
	},
	{
		Name:  "single",
		Match: func(parts []string) bool { return len(parts) == 1 },
		Split: func(parts []string) ([]string, []string) {
			return parts, nil
		},
	},
	{
		Name:  "pair-glued",
		Match: func(parts []string) bool { return len(parts) == 2 && reGlued.MatchString(parts[0]) },
		Split: func(parts []string) ([]string, []string) {
			m := reGlued.FindStringSubmatch(parts[0])
			return []string{m[1]}, []string{m[2], parts[1]}
		},
	},
	{
		Name: "pair-brand-model",
		Match: func(parts []string) bool {
			return len(parts) == 2 && reAlpha.MatchString(parts[0]) && hasDigit(parts[1])
		},
		Split: splitFirst,
	},
	{
		Name:  "pair-long-code",
		Match: func(parts []string) bool { return len(parts) == 2 && len([]rune(parts[1])) >= 2 },
		Split: splitFirst,
	},
	{
		Name:  "pair-name",
		Match: func(parts []string) bool { return len(parts) == 2 },
		Split: func(parts []string) ([]string, []string) {
			return parts, nil
		},
	},
	{
		Name:  "multi-alpha-brand",
		Match: func(parts []string) bool { return len(parts) >= 3 && reAlpha.MatchString(parts[0]) },
		Split: splitFirst,
	},
	{
		Name:  "multi-first-digit",
		Match: func(parts []string) bool { return len(parts) >= 3 },
		Split: func(parts []string) ([]string, []string) {
			start := 1
			for i := 1; i < len(parts); i++ {
				if hasDigit(parts[i]) {
					start = i
					break
				}
			}
			return parts[:start], parts[start:]
		},
	},
}

func splitFirst(parts []string) ([]string, []string) {
	return parts[:1], parts[1:]
}

func versionIndex(parts []string) int {
	for i, part := range parts {
		if reVersion.MatchString(part) {
			return i
		}
	}
	return -1
}

func hasDigit(s string) bool {
	return strings.IndexFunc(s, unicode.IsDigit) >= 0
}

// isVariant reports whether token is a single ASCII letter or digit.
func isVariant(token string) bool {
	return reVariant.MatchString(token)
}
