// AngelaMos | 2026
// service_test.go

package payment

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ozgesarac/ceyizdiz/internal/core"
)

type fakeRepo struct {
	Repository
	byToken map[string]*Purchase
	active  []Purchase
	states  map[string]string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		byToken: make(map[string]*Purchase),
		states:  make(map[string]string),
	}
}

func (f *fakeRepo) Create(ctx context.Context, p *Purchase) error {
	if _, ok := f.byToken[p.PurchaseToken]; ok {
		return core.ErrDuplicateKey
	}
	f.byToken[p.PurchaseToken] = p
	return nil
}

func (f *fakeRepo) ListActive(ctx context.Context, limit int) ([]Purchase, error) {
	if len(f.active) > limit {
		return f.active[:limit], nil
	}
	return f.active, nil
}

func (f *fakeRepo) ListActiveForUser(ctx context.Context, userID string) ([]Purchase, error) {
	var out []Purchase
	for _, p := range f.active {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeRepo) UpdateState(ctx context.Context, id, state string) error {
	f.states[id] = state
	return nil
}

type fakeVerifier struct {
	states map[string]string
	err    error
	calls  int
}

func (f *fakeVerifier) Verify(ctx context.Context, productID, token string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	if state, ok := f.states[token]; ok {
		return state, nil
	}
	return StateActive, nil
}

type fakeEntitlements struct {
	adFreeGrants  int
	adFreeRevokes int
	extraGrants   int
	extraRevokes  int
	adFree        bool
	adFreeUntil   *time.Time
	categoryLimit int
}

func (f *fakeEntitlements) GrantAdFree(ctx context.Context, userID string, until time.Time) error {
	f.adFreeGrants++
	return nil
}

func (f *fakeEntitlements) RevokeAdFree(ctx context.Context, userID string) error {
	f.adFreeRevokes++
	return nil
}

func (f *fakeEntitlements) GrantExtraCategories(ctx context.Context, userID string) error {
	f.extraGrants++
	return nil
}

func (f *fakeEntitlements) RevokeExtraCategories(ctx context.Context, userID string) error {
	f.extraRevokes++
	return nil
}

func (f *fakeEntitlements) AdStatus(ctx context.Context, userID string) (bool, *time.Time, int, error) {
	return f.adFree, f.adFreeUntil, f.categoryLimit, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestVerifyPurchaseRemoveAds(t *testing.T) {
	repo := newFakeRepo()
	ents := &fakeEntitlements{}
	svc := NewService(repo, &fakeVerifier{}, ents, testLogger())

	p, err := svc.VerifyPurchase(context.Background(), "u1", VerifyPurchaseRequest{
		PurchaseToken: "tok-1",
		ProductID:     ProductRemoveAds,
		OrderID:       "ord-1",
	})
	require.NoError(t, err)
	assert.Equal(t, StateActive, p.State)
	assert.Equal(t, 1, ents.adFreeGrants)
	assert.Equal(t, 0, ents.extraGrants)
}

func TestVerifyPurchaseExtraCategories(t *testing.T) {
	repo := newFakeRepo()
	ents := &fakeEntitlements{}
	svc := NewService(repo, &fakeVerifier{}, ents, testLogger())

	_, err := svc.VerifyPurchase(context.Background(), "u1", VerifyPurchaseRequest{
		PurchaseToken: "tok-2",
		ProductID:     ProductExtraCategories,
		OrderID:       "ord-2",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, ents.extraGrants)
	assert.Equal(t, 0, ents.adFreeGrants)
}

func TestVerifyPurchaseReplayedTokenRejected(t *testing.T) {
	repo := newFakeRepo()
	ents := &fakeEntitlements{}
	svc := NewService(repo, &fakeVerifier{}, ents, testLogger())

	req := VerifyPurchaseRequest{
		PurchaseToken: "tok-1",
		ProductID:     ProductRemoveAds,
		OrderID:       "ord-1",
	}

	_, err := svc.VerifyPurchase(context.Background(), "u1", req)
	require.NoError(t, err)

	// Same token again, even from another account.
	_, err = svc.VerifyPurchase(context.Background(), "u2", req)
	assert.ErrorIs(t, err, ErrTokenAlreadyUsed)

	// The effect was applied exactly once.
	assert.Equal(t, 1, ents.adFreeGrants)
}

func TestVerifyPurchaseInactiveState(t *testing.T) {
	repo := newFakeRepo()
	ents := &fakeEntitlements{}
	verifier := &fakeVerifier{states: map[string]string{"tok-1": StateRefunded}}
	svc := NewService(repo, verifier, ents, testLogger())

	_, err := svc.VerifyPurchase(context.Background(), "u1", VerifyPurchaseRequest{
		PurchaseToken: "tok-1",
		ProductID:     ProductRemoveAds,
		OrderID:       "ord-1",
	})
	assert.ErrorIs(t, err, ErrNotEntitled)
	assert.Empty(t, repo.byToken)
	assert.Equal(t, 0, ents.adFreeGrants)
}

func TestVerifyPurchaseBillingError(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(
		repo,
		&fakeVerifier{err: errors.New("billing down")},
		&fakeEntitlements{},
		testLogger(),
	)

	_, err := svc.VerifyPurchase(context.Background(), "u1", VerifyPurchaseRequest{
		PurchaseToken: "tok-1",
		ProductID:     ProductRemoveAds,
	})
	require.Error(t, err)
	assert.Empty(t, repo.byToken)
}

func TestStatus(t *testing.T) {
	until := time.Now().Add(time.Hour)
	repo := newFakeRepo()
	repo.active = []Purchase{
		{ID: "p1", UserID: "u1", ProductID: ProductRemoveAds, State: StateActive},
		{ID: "p2", UserID: "other", ProductID: ProductRemoveAds, State: StateActive},
	}
	ents := &fakeEntitlements{adFree: true, adFreeUntil: &until, categoryLimit: 10}
	svc := NewService(repo, &fakeVerifier{}, ents, testLogger())

	status, err := svc.Status(context.Background(), "u1")
	require.NoError(t, err)
	assert.True(t, status.AdFree)
	assert.Equal(t, 10, status.CategoryLimit)
	require.Len(t, status.Purchases, 1)
	assert.Equal(t, "p1", status.Purchases[0].ID)
}
