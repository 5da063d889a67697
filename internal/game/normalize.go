package game

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var diacriticStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

func stripDiacritics(text string) string {
	out, _, err := transform.String(diacriticStripper, text)
	if err != nil {
		return text
	}
	return out
}

// normalizeAnswer produces the uppercase comparison form used for the
// starting-letter check and exact dictionary lookups.
func normalizeAnswer(text string) string {
	return strings.ToUpper(stripDiacritics(strings.TrimSpace(text)))
}

// normalizeKey produces the lowercase form used for map keys and duplicate
// detection.
func normalizeKey(text string) string {
	return strings.ToLower(stripDiacritics(strings.TrimSpace(text)))
}

var leadingArticles = []string{"el", "la", "los", "las", "un", "una"}

// dedupeKey is the frequency-bucket key for duplicate scoring: lowercase,
// diacritic-free, with a leading Spanish article dropped so "La Pera" and
// "Pera" collide.
func dedupeKey(text string) string {
	key := normalizeKey(text)
	for _, article := range leadingArticles {
		prefix := article + " "
		if strings.HasPrefix(key, prefix) {
			rest := strings.TrimSpace(strings.TrimPrefix(key, prefix))
			if rest != "" {
				return rest
			}
		}
	}
	return key
}
