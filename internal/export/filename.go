package export

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// removeDiacritics strips diacritical marks ("Pexeso Jiří" -> "Pexeso Jiri").
func removeDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)
	return result
}

// DownloadFilename derives a safe PDF attachment name from a project
// name: diacritics stripped, lowercased, runs of other characters
// collapsed into single dashes.
func DownloadFilename(projectName string) string {
	name := strings.ToLower(removeDiacritics(projectName))

	var b strings.Builder
	lastDash := true // suppress a leading dash
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}

	out := strings.TrimSuffix(b.String(), "-")
	if out == "" {
		out = "memory-cards"
	}
	return out + ".pdf"
}
