// AngelaMos | 2026
// service_test.go

package user

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ozgesarac/ceyizdiz/internal/core"
)

type fakeRepo struct {
	Repository
	users       map[string]*User
	adFreeSet   []bool
	adjustments [][2]int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: make(map[string]*User)}
}

func (f *fakeRepo) GetByID(ctx context.Context, id string) (*User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	return u, nil
}

func (f *fakeRepo) SetAdFree(ctx context.Context, id string, adFree bool, until *time.Time) error {
	f.adFreeSet = append(f.adFreeSet, adFree)
	if u, ok := f.users[id]; ok {
		u.AdFree = adFree
		u.AdFreeUntil = until
	}
	return nil
}

func (f *fakeRepo) AdjustCategoryLimit(ctx context.Context, id string, delta, floor int) error {
	f.adjustments = append(f.adjustments, [2]int{delta, floor})
	if u, ok := f.users[id]; ok {
		u.CategoryLimit += delta
		if u.CategoryLimit < floor {
			u.CategoryLimit = floor
		}
	}
	return nil
}

func TestIsAdFreeHonorsExpiry(t *testing.T) {
	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(time.Hour)

	assert.False(t, (&User{AdFree: false}).IsAdFree())
	assert.True(t, (&User{AdFree: true}).IsAdFree())
	assert.True(t, (&User{AdFree: true, AdFreeUntil: &future}).IsAdFree())
	assert.False(t, (&User{AdFree: true, AdFreeUntil: &past}).IsAdFree())
}

func TestAdStatusReportsExpiredEntitlementAsInactive(t *testing.T) {
	past := time.Now().Add(-time.Hour)
	repo := newFakeRepo()
	repo.users["u1"] = &User{
		ID:            "u1",
		AdFree:        true,
		AdFreeUntil:   &past,
		CategoryLimit: 10,
	}
	svc := NewService(repo)

	adFree, until, limit, err := svc.AdStatus(context.Background(), "u1")
	require.NoError(t, err)
	assert.False(t, adFree)
	assert.Equal(t, &past, until)
	assert.Equal(t, 10, limit)
}

func TestGrantAndRevokeExtraCategories(t *testing.T) {
	repo := newFakeRepo()
	repo.users["u1"] = &User{ID: "u1", CategoryLimit: DefaultCategoryLimit}
	svc := NewService(repo)

	require.NoError(t, svc.GrantExtraCategories(context.Background(), "u1"))
	assert.Equal(t, DefaultCategoryLimit+CategoryLimitStep, repo.users["u1"].CategoryLimit)

	require.NoError(t, svc.RevokeExtraCategories(context.Background(), "u1"))
	assert.Equal(t, DefaultCategoryLimit, repo.users["u1"].CategoryLimit)

	// A second revoke never dips below the free quota.
	require.NoError(t, svc.RevokeExtraCategories(context.Background(), "u1"))
	assert.Equal(t, DefaultCategoryLimit, repo.users["u1"].CategoryLimit)
}

func TestGrantAdFree(t *testing.T) {
	repo := newFakeRepo()
	repo.users["u1"] = &User{ID: "u1"}
	svc := NewService(repo)

	until := time.Now().Add(24 * time.Hour)
	require.NoError(t, svc.GrantAdFree(context.Background(), "u1", until))
	assert.True(t, repo.users["u1"].IsAdFree())

	require.NoError(t, svc.RevokeAdFree(context.Background(), "u1"))
	assert.False(t, repo.users["u1"].IsAdFree())
	assert.Equal(t, []bool{true, false}, repo.adFreeSet)
}

func TestCategoryLimitUnknownUser(t *testing.T) {
	svc := NewService(newFakeRepo())

	_, err := svc.CategoryLimit(context.Background(), "ghost")
	assert.ErrorIs(t, err, core.ErrNotFound)
}
