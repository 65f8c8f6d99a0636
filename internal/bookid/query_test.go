// AngelaMos | 2026
// query_test.go

package bookid

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildQueriesCombinesAuthorsAndTitles(t *testing.T) {
	queries := buildQueries(
		[]string{"SABAHATTIN ALI"},
		[]string{"Kürk Mantolu Madonna"},
		nil,
	)
	assert.Equal(t, []string{"Kürk Mantolu Madonna SABAHATTIN ALI"}, queries)
}

func TestBuildQueriesLimitsAuthorCombos(t *testing.T) {
	authors := []string{"A ONE", "B TWO", "C THREE", "D FOUR"}
	titles := []string{"Some Title"}

	queries := buildQueries(authors, titles, nil)

	assert.Len(t, queries, 3)
	for _, q := range queries {
		assert.NotContains(t, q, "D FOUR")
	}
}

func TestBuildQueriesFallsBackToLines(t *testing.T) {
	lines := []string{
		"first line of text",
		"second somewhat longer line",
		"third line",
	}
	queries := buildQueries(nil, nil, lines)

	assert.Contains(
		t,
		queries,
		"second somewhat longer line first line of text",
	)
	assert.Contains(
		t,
		queries,
		"first line of text second somewhat longer line third line",
	)
}

func TestBuildQueriesCapsAtTen(t *testing.T) {
	var titles []string
	for i := 0; i < 30; i++ {
		titles = append(titles, fmt.Sprintf("Unique Title Number %d", i))
	}

	queries := buildQueries([]string{"SOME AUTHOR"}, titles, nil)
	assert.Len(t, queries, 10)
}

func TestBuildQueriesTruncatesLongQueries(t *testing.T) {
	long := strings.Repeat("ü", 300)
	queries := buildQueries(nil, []string{long}, nil)

	assert.Len(t, queries, 1)
	assert.Len(t, []rune(queries[0]), 150)
}

func TestBuildQueriesDropsShortAndDuplicate(t *testing.T) {
	queries := buildQueries(nil, []string{"ab", "İnce Memed", "ince memed"}, nil)
	assert.Equal(t, []string{"İnce Memed"}, queries)
}
