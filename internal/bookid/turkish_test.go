// AngelaMos | 2026
// turkish_test.go

package bookid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLowerTurkish(t *testing.T) {
	assert.Equal(t, "istanbul", lowerTurkish("İSTANBUL"))
	assert.Equal(t, "kırmızı", lowerTurkish("KIRMIZI"))
	assert.Equal(t, "çğıöşü", lowerTurkish("ÇĞIÖŞÜ"))
}

func TestLooksTurkish(t *testing.T) {
	assert.True(t, looksTurkish("çocuk"))
	assert.True(t, looksTurkish("kitap"))
	assert.False(t, looksTurkish("house"))
	assert.False(t, looksTurkish("kalem"))
}

func TestIsTurkishDominant(t *testing.T) {
	assert.True(t, isTurkishDominant("bir çocuk ve köpeği"))
	assert.False(t, isTurkishDominant("the quick brown fox jumps"))
	assert.False(t, isTurkishDominant(""))

	// 1 of 4 tokens is below the 0.3 threshold.
	assert.False(t, isTurkishDominant("çiçek one two three"))
	// 2 of 4 clears it.
	assert.True(t, isTurkishDominant("çiçek böcek two three"))
}

func TestTurkishKeywords(t *testing.T) {
	got := turkishKeywords("Kürk Mantolu Madonna ve the")
	assert.Equal(t, []string{"kürk"}, got)

	got = turkishKeywords("İnce Memed için")
	assert.Equal(t, []string{"ince"}, got)

	assert.Empty(t, turkishKeywords("plain english words"))
}

func TestKeywordMatchRatio(t *testing.T) {
	assert.Equal(t, 0.0, keywordMatchRatio("Some Title", nil))
	assert.Equal(t, 1.0, keywordMatchRatio("Kürk Mantolu Madonna", []string{"kürk", "mantolu"}))
	assert.Equal(t, 0.5, keywordMatchRatio("Kürk Palto", []string{"kürk", "mantolu"}))
	assert.Equal(t, 0.0, keywordMatchRatio("Unrelated", []string{"kürk"}))

	// Matching is case-insensitive with Turkish rules.
	assert.Equal(t, 1.0, keywordMatchRatio("KÜRK MANTOLU MADONNA", []string{"kürk"}))
}
