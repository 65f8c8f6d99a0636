// AngelaMos | 2026
// identify_test.go

package bookid

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEngine struct {
	texts []string
	errs  []error
	calls int
}

func (f *fakeEngine) Recognize(ctx context.Context, image []byte) (string, error) {
	i := f.calls
	f.calls++
	var text string
	if i < len(f.texts) {
		text = f.texts[i]
	}
	var err error
	if i < len(f.errs) {
		err = f.errs[i]
	}
	return text, err
}

type fakeProvider struct {
	match   *Match
	err     error
	queries []string
}

func (f *fakeProvider) Search(
	ctx context.Context,
	query string,
	keywords []string,
) (*Match, error) {
	f.queries = append(f.queries, query)
	return f.match, f.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestIdentifyReturnsFirstProviderHit(t *testing.T) {
	engine := &fakeEngine{texts: []string{
		"SABAHATTIN ALI\nKürk Mantolu Madonna",
		"",
	}}
	provider := &fakeProvider{match: &Match{
		Title:  "Kürk Mantolu Madonna",
		Author: "Sabahattin Ali",
	}}

	id := NewIdentifier(engine, []Provider{provider}, 0, testLogger())
	result, err := id.Identify(context.Background(), []byte("not an image"))

	require.NoError(t, err)
	assert.True(t, result.Matched)
	assert.Equal(t, "Kürk Mantolu Madonna", result.Title)
	assert.Equal(t, "Sabahattin Ali", result.Author)
}

func TestIdentifyExhaustedQueriesIsNotAnError(t *testing.T) {
	engine := &fakeEngine{texts: []string{
		"SABAHATTIN ALI\nKürk Mantolu Madonna",
		"",
	}}
	provider := &fakeProvider{}

	id := NewIdentifier(engine, []Provider{provider}, 0, testLogger())
	result, err := id.Identify(context.Background(), []byte("x"))

	require.NoError(t, err)
	assert.False(t, result.Matched)
	assert.NotEmpty(t, provider.queries)
}

func TestIdentifyProviderErrorsAreSkipped(t *testing.T) {
	engine := &fakeEngine{texts: []string{
		"SABAHATTIN ALI\nKürk Mantolu Madonna",
		"",
	}}
	failing := &fakeProvider{err: errors.New("boom")}
	working := &fakeProvider{match: &Match{Title: "Found It"}}

	id := NewIdentifier(
		engine,
		[]Provider{failing, working},
		0,
		testLogger(),
	)
	result, err := id.Identify(context.Background(), []byte("x"))

	require.NoError(t, err)
	assert.True(t, result.Matched)
	assert.Equal(t, "Found It", result.Title)
}

func TestIdentifyEngineUnavailable(t *testing.T) {
	engine := &fakeEngine{errs: []error{
		errors.New("tesseract missing"),
		errors.New("tesseract missing"),
	}}

	id := NewIdentifier(engine, nil, 0, testLogger())
	_, err := id.Identify(context.Background(), []byte("x"))

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEngineUnavailable)
}

func TestIdentifyOneVariantFailingIsTolerated(t *testing.T) {
	engine := &fakeEngine{
		texts: []string{"", "SABAHATTIN ALI\nKürk Mantolu Madonna"},
		errs:  []error{errors.New("bad variant"), nil},
	}
	provider := &fakeProvider{match: &Match{Title: "Hit"}}

	id := NewIdentifier(engine, []Provider{provider}, 0, testLogger())
	result, err := id.Identify(context.Background(), []byte("x"))

	require.NoError(t, err)
	assert.True(t, result.Matched)
}

func TestIdentifyEmptyTextReturnsUnmatched(t *testing.T) {
	engine := &fakeEngine{texts: []string{"", ""}}
	provider := &fakeProvider{match: &Match{Title: "should not be used"}}

	id := NewIdentifier(engine, []Provider{provider}, 0, testLogger())
	result, err := id.Identify(context.Background(), []byte("x"))

	require.NoError(t, err)
	assert.False(t, result.Matched)
	assert.Empty(t, provider.queries)
}

func TestRecognizePicksTextWithMorePlausibleWords(t *testing.T) {
	engine := &fakeEngine{texts: []string{
		"a b c",
		"three plausible words here",
	}}

	id := NewIdentifier(engine, nil, 0, testLogger())
	text, err := id.recognize(context.Background(), []byte("x"))

	require.NoError(t, err)
	assert.Equal(t, "three plausible words here", text)
}
