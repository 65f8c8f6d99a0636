// AngelaMos | 2026
// candidates_test.go

package bookid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitLines(t *testing.T) {
	lines := splitLines("  SABAHATTIN ALI  \n\n Kürk Mantolu Madonna \n")
	assert.Equal(t, []string{"SABAHATTIN ALI", "Kürk Mantolu Madonna"}, lines)

	assert.Empty(t, splitLines("  \n \n"))
}

func TestAuthorCandidates(t *testing.T) {
	lines := []string{
		"SABAHATTIN ALI",
		"Kürk Mantolu Madonna",
		"bu bir roman",
	}
	got := authorCandidates(lines)
	assert.Equal(t, []string{"SABAHATTIN ALI"}, got)
}

func TestAuthorCandidatesMergesAdjacentLines(t *testing.T) {
	lines := []string{"YASAR", "KEMAL"}
	got := authorCandidates(lines)
	assert.Contains(t, got, "YASAR KEMAL")
	assert.Contains(t, got, "YASAR")
	assert.Contains(t, got, "KEMAL")
}

func TestIsAuthorLine(t *testing.T) {
	assert.True(t, isAuthorLine("ORHAN PAMUK"))
	assert.True(t, isAuthorLine("J.R.R. TOLKIEN"))

	// Mostly lowercase.
	assert.False(t, isAuthorLine("orhan pamuk"))
	// Too many tokens.
	assert.False(t, isAuthorLine("ONE TWO THREE FOUR FIVE"))
	// Diacritics mark running Turkish text.
	assert.False(t, isAuthorLine("KÜRK MANTOLU"))
	// Pure stopwords.
	assert.False(t, isAuthorLine("THE AND OF"))
	// No letters at all.
	assert.False(t, isAuthorLine("1984"))
}

func TestTitleCandidates(t *testing.T) {
	lines := []string{
		"Brave New World",
		"Kürk Mantolu Madonna",
		"ab",
		"!!!! #### %%%% @@@@",
	}

	got := titleCandidates(lines, false)
	assert.Equal(t, []string{"Brave New World", "Kürk Mantolu Madonna"}, got)

	// Turkish-dominant text sorts Turkish-looking titles first.
	got = titleCandidates(lines, true)
	assert.Equal(t, []string{"Kürk Mantolu Madonna", "Brave New World"}, got)
}

func TestTitleCandidatesDeduplicates(t *testing.T) {
	got := titleCandidates([]string{"İnce Memed", "ince memed"}, false)
	assert.Len(t, got, 1)
}
