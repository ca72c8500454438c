package words

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripDiacritics decomposes, drops combining marks, then recomposes, so
// "ÁRBOL" becomes "ARBOL" and "ñandú" becomes "nandu".
var stripDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize maps an upstream word into session form: trimmed, diacritics
// stripped, lowercase.
func Normalize(word string) string {
	stripped, _, err := transform.String(stripDiacritics, word)
	if err != nil {
		stripped = word
	}
	return strings.ToLower(strings.TrimSpace(stripped))
}
