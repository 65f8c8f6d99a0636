// AngelaMos | 2026
// candidates.go

package bookid

import (
	"sort"
	"strings"
	"unicode"
)

// splitLines returns the non-empty trimmed lines of recognized text.
func splitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// authorCandidates picks lines that read like printed author names:
// 1-4 tokens, mostly uppercase letters, not pure filler, and free of
// Turkish prose markers. Adjacent qualifying lines are also merged into
// one candidate for names split across two printed lines.
func authorCandidates(lines []string) []string {
	var candidates []string
	prevQualified := false

	for _, line := range lines {
		if !isAuthorLine(line) {
			prevQualified = false
			continue
		}

		if prevQualified && len(candidates) > 0 {
			merged := candidates[len(candidates)-1] + " " + line
			if len(strings.Fields(merged)) <= 4 {
				candidates = append(candidates, merged)
			}
		}

		candidates = append(candidates, line)
		prevQualified = true
	}

	return dedupe(candidates)
}

func isAuthorLine(line string) bool {
	tokens := strings.Fields(line)
	if len(tokens) < 1 || len(tokens) > 4 {
		return false
	}

	var letters, upper int
	for _, r := range line {
		if unicode.IsLetter(r) {
			letters++
			if unicode.IsUpper(r) {
				upper++
			}
		}
	}
	if letters == 0 || upper*2 < letters {
		return false
	}

	allStop := true
	for _, t := range tokens {
		if !isStopword(t) {
			allStop = false
			break
		}
	}
	if allStop {
		return false
	}

	// Diacritics or common prose words mark running Turkish text.
	if hasTurkishDiacritics(line) {
		return false
	}
	for _, t := range tokens {
		if isCommonTurkishWord(t) {
			return false
		}
	}

	return true
}

// titleCandidates keeps lines of length 5-100 with fewer than 5
// non-alphanumeric runes. When the text is predominantly Turkish,
// Turkish-looking titles sort first.
func titleCandidates(lines []string, turkishDominant bool) []string {
	var candidates []string
	for _, line := range lines {
		if isTitleLine(line) {
			candidates = append(candidates, line)
		}
	}

	if turkishDominant {
		sort.SliceStable(candidates, func(i, j int) bool {
			return titleLooksTurkish(candidates[i]) &&
				!titleLooksTurkish(candidates[j])
		})
	}

	return dedupe(candidates)
}

func isTitleLine(line string) bool {
	runes := []rune(line)
	if len(runes) < 5 || len(runes) > 100 {
		return false
	}

	symbols := 0
	for _, r := range runes {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && !unicode.IsSpace(r) {
			symbols++
		}
	}

	return symbols < 5
}

func titleLooksTurkish(line string) bool {
	if hasTurkishDiacritics(line) {
		return true
	}
	for _, t := range strings.Fields(line) {
		if isCommonTurkishWord(t) {
			return true
		}
	}
	return false
}

func dedupe(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := items[:0]
	for _, item := range items {
		key := lowerTurkish(item)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, item)
	}
	return out
}
