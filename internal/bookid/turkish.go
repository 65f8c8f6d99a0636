// AngelaMos | 2026
// turkish.go

package bookid

import (
	"strings"
	"unicode"
)

// turkishDominantThreshold is the fraction of tokens that must look
// Turkish for the text to be treated as predominantly Turkish.
const turkishDominantThreshold = 0.3

const turkishDiacritics = "çğıöşüÇĞİÖŞÜ"

// commonTurkishWords are prose indicators: a line carrying one of these
// reads as running Turkish text, not a printed author name.
var commonTurkishWords = map[string]struct{}{
	"bir": {}, "ve": {}, "bu": {}, "da": {}, "de": {}, "ne": {},
	"için": {}, "ile": {}, "çok": {}, "gibi": {}, "daha": {},
	"kadar": {}, "sonra": {}, "ama": {}, "her": {}, "olan": {},
	"olarak": {}, "en": {}, "ki": {}, "mi": {}, "değil": {},
	"yeni": {}, "roman": {}, "kitap": {}, "hikaye": {}, "öykü": {},
	"yayınları": {}, "yayınevi": {}, "çeviri": {}, "çeviren": {},
}

var stopwords = map[string]struct{}{
	// Turkish
	"bir": {}, "ve": {}, "bu": {}, "da": {}, "de": {}, "ile": {},
	"için": {}, "mi": {}, "mu": {}, "ki": {}, "ya": {}, "o": {},
	// English
	"the": {}, "a": {}, "an": {}, "and": {}, "of": {}, "in": {},
	"on": {}, "by": {}, "for": {}, "to": {}, "with": {}, "at": {},
}

func hasTurkishDiacritics(s string) bool {
	return strings.ContainsAny(s, turkishDiacritics)
}

func isCommonTurkishWord(token string) bool {
	_, ok := commonTurkishWords[lowerTurkish(token)]
	return ok
}

func isStopword(token string) bool {
	_, ok := stopwords[lowerTurkish(token)]
	return ok
}

// lowerTurkish lowercases with Turkish casing rules (dotted/dotless I).
func lowerTurkish(s string) string {
	return strings.ToLowerSpecial(unicode.TurkishCase, s)
}

// looksTurkish reports whether a token reads as Turkish: it carries
// native diacritics or is a common Turkish word.
func looksTurkish(token string) bool {
	return hasTurkishDiacritics(token) || isCommonTurkishWord(token)
}

// isTurkishDominant measures the fraction of tokens that look Turkish
// against the 0.3 threshold.
func isTurkishDominant(text string) bool {
	tokens := strings.Fields(text)
	if len(tokens) == 0 {
		return false
	}

	turkish := 0
	for _, t := range tokens {
		if looksTurkish(t) {
			turkish++
		}
	}

	return float64(turkish)/float64(len(tokens)) >= turkishDominantThreshold
}

// turkishKeywords extracts the Turkish-looking tokens of a query, used
// for provider result scoring. Stopwords and short tokens are skipped.
func turkishKeywords(query string) []string {
	var keywords []string
	for _, t := range strings.Fields(query) {
		if len([]rune(t)) <= 2 || isStopword(t) {
			continue
		}
		if looksTurkish(t) {
			keywords = append(keywords, lowerTurkish(t))
		}
	}
	return keywords
}

// keywordMatchRatio is the fraction of keywords contained in the title.
func keywordMatchRatio(title string, keywords []string) float64 {
	if len(keywords) == 0 {
		return 0
	}

	lower := lowerTurkish(title)
	matched := 0
	for _, k := range keywords {
		if strings.Contains(lower, k) {
			matched++
		}
	}

	return float64(matched) / float64(len(keywords))
}
