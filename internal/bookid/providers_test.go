// AngelaMos | 2026
// providers_test.go

package bookid

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDoer struct {
	status  int
	body    string
	lastURL string
	err     error
}

func (f *fakeDoer) Do(req *http.Request) (*http.Response, error) {
	f.lastURL = req.URL.String()
	if f.err != nil {
		return nil, f.err
	}
	status := f.status
	if status == 0 {
		status = http.StatusOK
	}
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(f.body)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}, nil
}

func TestGoogleBooksPrefersKeywordMatch(t *testing.T) {
	doer := &fakeDoer{body: `{
		"items": [
			{"volumeInfo": {"title": "Irrelevant First Hit", "authors": ["Somebody"]}},
			{"volumeInfo": {"title": "Kürk Mantolu Madonna", "authors": ["Sabahattin Ali"]}}
		]
	}`}

	p := NewGoogleBooksProvider(doer)
	match, err := p.Search(
		context.Background(),
		"kürk mantolu",
		[]string{"kürk", "mantolu"},
	)
	require.NoError(t, err)
	require.NotNil(t, match)
	assert.Equal(t, "Kürk Mantolu Madonna", match.Title)
	assert.Equal(t, "Sabahattin Ali", match.Author)
	assert.Contains(t, doer.lastURL, "langRestrict=tr")
}

func TestGoogleBooksFallsBackToFirstResult(t *testing.T) {
	doer := &fakeDoer{body: `{
		"items": [
			{"volumeInfo": {"title": "Some Book", "authors": ["An Author"]}}
		]
	}`}

	p := NewGoogleBooksProvider(doer)
	match, err := p.Search(context.Background(), "some book", nil)
	require.NoError(t, err)
	require.NotNil(t, match)
	assert.Equal(t, "Some Book", match.Title)
	assert.NotContains(t, doer.lastURL, "langRestrict")
}

func TestGoogleBooksNoResults(t *testing.T) {
	doer := &fakeDoer{body: `{}`}

	p := NewGoogleBooksProvider(doer)
	match, err := p.Search(context.Background(), "nothing", nil)
	require.NoError(t, err)
	assert.Nil(t, match)
}

func TestGoogleBooksNon200(t *testing.T) {
	doer := &fakeDoer{status: http.StatusTooManyRequests, body: "slow down"}

	p := NewGoogleBooksProvider(doer)
	_, err := p.Search(context.Background(), "anything", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestOpenLibraryPrefersTurkishTitle(t *testing.T) {
	doer := &fakeDoer{body: `{
		"docs": [
			{"title": "Plain English Title", "author_name": ["Someone"]},
			{"title": "Aşk ve Gurur", "author_name": ["Jane Austen"]}
		]
	}`}

	p := NewOpenLibraryProvider(doer)
	match, err := p.Search(context.Background(), "gurur", nil)
	require.NoError(t, err)
	require.NotNil(t, match)
	assert.Equal(t, "Aşk ve Gurur", match.Title)
	assert.Equal(t, "Jane Austen", match.Author)
}

func TestOpenLibraryKeywordMatchWins(t *testing.T) {
	doer := &fakeDoer{body: `{
		"docs": [
			{"title": "Wrong Book", "author_name": ["X"]},
			{"title": "İnce Memed", "author_name": ["Yaşar Kemal"]}
		]
	}`}

	p := NewOpenLibraryProvider(doer)
	match, err := p.Search(
		context.Background(),
		"ince memed",
		[]string{"ince", "memed"},
	)
	require.NoError(t, err)
	require.NotNil(t, match)
	assert.Equal(t, "İnce Memed", match.Title)
}

func TestOpenLibraryEmptyDocs(t *testing.T) {
	doer := &fakeDoer{body: `{"docs": []}`}

	p := NewOpenLibraryProvider(doer)
	match, err := p.Search(context.Background(), "nothing", nil)
	require.NoError(t, err)
	assert.Nil(t, match)
}
