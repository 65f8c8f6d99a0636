// AngelaMos | 2026
// recheck_test.go

package payment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ozgesarac/ceyizdiz/internal/config"
)

func newTestRechecker(repo *fakeRepo, verifier *fakeVerifier, ents *fakeEntitlements) *Rechecker {
	svc := NewService(repo, verifier, ents, testLogger())
	return NewRechecker(svc, nil, config.RecheckConfig{
		Interval:  time.Hour,
		BatchSize: 100,
		RowDelay:  time.Millisecond,
	}, testLogger())
}

func TestRecheckBatchRevertsRefundedPurchase(t *testing.T) {
	repo := newFakeRepo()
	repo.active = []Purchase{
		{ID: "p1", UserID: "u1", PurchaseToken: "tok-1", ProductID: ProductRemoveAds, State: StateActive},
		{ID: "p2", UserID: "u2", PurchaseToken: "tok-2", ProductID: ProductExtraCategories, State: StateActive},
	}
	verifier := &fakeVerifier{states: map[string]string{
		"tok-1": StateRefunded,
	}}
	ents := &fakeEntitlements{}
	r := newTestRechecker(repo, verifier, ents)

	err := r.RecheckBatch(context.Background())
	require.NoError(t, err)

	// Refunded purchase marked and its effect reverted.
	assert.Equal(t, StateRefunded, repo.states["p1"])
	assert.Equal(t, 1, ents.adFreeRevokes)

	// Still-active purchase untouched.
	_, marked := repo.states["p2"]
	assert.False(t, marked)
	assert.Equal(t, 0, ents.extraRevokes)
}

func TestRecheckBatchSkipsFailingRows(t *testing.T) {
	repo := newFakeRepo()
	repo.active = []Purchase{
		{ID: "p1", UserID: "u1", PurchaseToken: "tok-1", ProductID: ProductRemoveAds, State: StateActive},
		{ID: "p2", UserID: "u2", PurchaseToken: "tok-2", ProductID: ProductRemoveAds, State: StateActive},
	}
	verifier := &fakeVerifier{err: errors.New("billing down")}
	ents := &fakeEntitlements{}
	r := newTestRechecker(repo, verifier, ents)

	err := r.RecheckBatch(context.Background())
	require.NoError(t, err)

	// Every row was attempted despite the failures.
	assert.Equal(t, 2, verifier.calls)
	assert.Empty(t, repo.states)
	assert.Equal(t, 0, ents.adFreeRevokes)
}

func TestRecheckBatchHonorsCancellation(t *testing.T) {
	repo := newFakeRepo()
	for i := 0; i < 5; i++ {
		repo.active = append(repo.active, Purchase{
			ID:            string(rune('a' + i)),
			UserID:        "u1",
			PurchaseToken: string(rune('a' + i)),
			ProductID:     ProductRemoveAds,
			State:         StateActive,
		})
	}
	verifier := &fakeVerifier{}
	r := newTestRechecker(repo, verifier, &fakeEntitlements{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := r.RecheckBatch(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	// Only the first row ran before the inter-row wait noticed the
	// canceled context.
	assert.Equal(t, 1, verifier.calls)
}

func TestRecheckBatchEmpty(t *testing.T) {
	repo := newFakeRepo()
	verifier := &fakeVerifier{}
	r := newTestRechecker(repo, verifier, &fakeEntitlements{})

	require.NoError(t, r.RecheckBatch(context.Background()))
	assert.Equal(t, 0, verifier.calls)
}

func TestRecheckBatchRespectsBatchSize(t *testing.T) {
	repo := newFakeRepo()
	for i := 0; i < 150; i++ {
		repo.active = append(repo.active, Purchase{
			ID:            "p",
			UserID:        "u1",
			PurchaseToken: "t",
			ProductID:     ProductRemoveAds,
			State:         StateActive,
		})
	}
	verifier := &fakeVerifier{}
	r := newTestRechecker(repo, verifier, &fakeEntitlements{})

	require.NoError(t, r.RecheckBatch(context.Background()))
	assert.Equal(t, 100, verifier.calls)
}
