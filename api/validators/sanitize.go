package validators

import (
	"strings"
	"unicode"
)

// SanitizeString trims input, drops non-printable runes and caps the result at
// maxLen bytes without splitting a rune. maxLen <= 0 disables the cap.
func SanitizeString(input string, maxLen int) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(input) {
		if !unicode.IsPrint(r) {
			continue
		}
		if maxLen > 0 && b.Len()+len(string(r)) > maxLen {
			break
		}
		b.WriteRune(r)
	}
	return b.String()
}
