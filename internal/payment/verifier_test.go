// AngelaMos | 2026
// verifier_test.go

package payment

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ozgesarac/ceyizdiz/internal/config"
)

type fakeDoer struct {
	status  int
	body    string
	lastReq *http.Request
}

func (f *fakeDoer) Do(req *http.Request) (*http.Response, error) {
	f.lastReq = req
	status := f.status
	if status == 0 {
		status = http.StatusOK
	}
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(f.body)),
	}, nil
}

func newTestBillingClient(doer *fakeDoer) *BillingClient {
	return NewBillingClient(config.BillingConfig{
		BaseURL: "https://billing.example.com",
		APIKey:  "secret",
		Timeout: time.Second,
	}, doer)
}

func TestBillingClientVerifyActive(t *testing.T) {
	doer := &fakeDoer{body: `{"state": "active"}`}
	c := newTestBillingClient(doer)

	state, err := c.Verify(context.Background(), ProductRemoveAds, "tok-1")
	require.NoError(t, err)
	assert.Equal(t, StateActive, state)

	assert.Equal(
		t,
		"https://billing.example.com/purchases/remove_ads/tokens/tok-1",
		doer.lastReq.URL.String(),
	)
	assert.Equal(t, "Bearer secret", doer.lastReq.Header.Get("Authorization"))
}

func TestBillingClientVerifyRefunded(t *testing.T) {
	doer := &fakeDoer{body: `{"state": "refunded"}`}
	c := newTestBillingClient(doer)

	state, err := c.Verify(context.Background(), ProductRemoveAds, "tok-1")
	require.NoError(t, err)
	assert.Equal(t, StateRefunded, state)
}

func TestBillingClientUnknownState(t *testing.T) {
	doer := &fakeDoer{body: `{"state": "pending"}`}
	c := newTestBillingClient(doer)

	_, err := c.Verify(context.Background(), ProductRemoveAds, "tok-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pending")
}

func TestBillingClientNon200(t *testing.T) {
	doer := &fakeDoer{status: http.StatusNotFound, body: "no such token"}
	c := newTestBillingClient(doer)

	_, err := c.Verify(context.Background(), ProductRemoveAds, "bad")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestBillingClientEscapesToken(t *testing.T) {
	doer := &fakeDoer{body: `{"state": "active"}`}
	c := newTestBillingClient(doer)

	_, err := c.Verify(context.Background(), ProductRemoveAds, "a/b c")
	require.NoError(t, err)
	assert.NotContains(t, doer.lastReq.URL.Path, " ")
}
