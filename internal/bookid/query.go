// AngelaMos | 2026
// query.go

package bookid

import (
	"sort"
	"strings"
)

const (
	maxQueries      = 10
	maxQueryLength  = 150
	minQueryLength  = 3
	maxAuthorCombos = 3
)

// buildQueries composes the ordered provider query list: author×title
// combinations first (first 3 authors against every title), otherwise
// titles alone, authors alone, the two longest lines joined, and the
// first three lines joined. Deduplicated, short queries dropped, capped
// at 10, each truncated to 150 characters.
func buildQueries(authors, titles, lines []string) []string {
	var queries []string

	if len(authors) > 0 && len(titles) > 0 {
		limit := len(authors)
		if limit > maxAuthorCombos {
			limit = maxAuthorCombos
		}
		for _, author := range authors[:limit] {
			for _, title := range titles {
				queries = append(queries, title+" "+author)
			}
		}
	} else {
		queries = append(queries, titles...)
		queries = append(queries, authors...)

		if len(lines) >= 2 {
			longest := longestLines(lines, 2)
			queries = append(queries, strings.Join(longest, " "))
		}

		head := lines
		if len(head) > 3 {
			head = head[:3]
		}
		if len(head) > 0 {
			queries = append(queries, strings.Join(head, " "))
		}
	}

	seen := make(map[string]struct{}, len(queries))
	out := make([]string, 0, len(queries))
	for _, q := range queries {
		q = strings.TrimSpace(q)
		if len([]rune(q)) < minQueryLength {
			continue
		}
		if runes := []rune(q); len(runes) > maxQueryLength {
			q = string(runes[:maxQueryLength])
		}

		key := lowerTurkish(q)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}

		out = append(out, q)
		if len(out) == maxQueries {
			break
		}
	}

	return out
}

func longestLines(lines []string, n int) []string {
	sorted := make([]string, len(lines))
	copy(sorted, lines)
	sort.SliceStable(sorted, func(i, j int) bool {
		return len([]rune(sorted[i])) > len([]rune(sorted[j]))
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
