package utils

import (
	"strings"
)

// SafeFileName keeps only [a-zA-Z0-9._-] and replaces everything else with
// '_'. A leading '.' is replaced as well, so the result is never hidden.
func SafeFileName(in string) string {
	var name strings.Builder
	for i, c := range in {
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') ||
			(c == '.' && i > 0) || (c == '-') || (c == '_') {

			name.WriteRune(c)
		} else {
			// Replace all other characters with '_' (underscore)
			name.WriteString("_")
		}
	}
	return name.String()
}

// PathSafeName is more permissive than SafeFileName: it only replaces the
// characters that are invalid in file names on common systems (<>:"/\|?*
// and control characters), keeping spaces and non-ASCII letters.
func PathSafeName(in string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f || strings.ContainsRune(`<>:"/\|?*`, r) {
			return '_'
		}
		return r
	}, in)
}
