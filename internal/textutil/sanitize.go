package textutil

import "strings"

// SanitizeFolderName makes an extracted name safe to use as one path
// component. Path and drive separators and '*' become '-'; the remaining
// characters Windows rejects are dropped. Names that reduce to "." or ".."
// yield "".
func SanitizeFolderName(name string) string {
	out := strings.TrimSpace(strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*':
			return '-'
		case '?', '"', '<', '>', '|':
			return -1
		}
		if r < ' ' {
			return -1
		}
		return r
	}, name))
	if strings.Trim(out, ".") == "" {
		return ""
	}
	return out
}
