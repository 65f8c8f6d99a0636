// AngelaMos | 2026
// service_test.go

package category

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ozgesarac/ceyizdiz/internal/core"
)

type fakeRepo struct {
	Repository
	categories map[string]*Category
	count      int
	created    []*Category
	deleted    []string
	purged     bool
}

func (f *fakeRepo) Create(ctx context.Context, c *Category) error {
	f.created = append(f.created, c)
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, userID, id string) (*Category, error) {
	c, ok := f.categories[id]
	if !ok || c.UserID != userID {
		return nil, core.ErrNotFound
	}
	return c, nil
}

func (f *fakeRepo) Delete(ctx context.Context, userID, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeRepo) DeleteAllForUser(ctx context.Context, userID string) error {
	f.purged = true
	return nil
}

func (f *fakeRepo) CountForUser(ctx context.Context, userID string) (int, error) {
	return f.count, nil
}

type fakeQuota struct {
	limit int
	err   error
}

func (f *fakeQuota) CategoryLimit(ctx context.Context, userID string) (int, error) {
	return f.limit, f.err
}

// cascadeLog records cross-store calls in order so the tests can assert
// the children-first sequence.
type cascadeLog struct {
	calls []string
}

type fakeDowries struct{ log *cascadeLog }

func (f *fakeDowries) DeleteByCategory(ctx context.Context, userID, categoryID string) error {
	f.log.calls = append(f.log.calls, "dowries:"+categoryID)
	return nil
}

func (f *fakeDowries) DeleteAllForUser(ctx context.Context, userID string) error {
	f.log.calls = append(f.log.calls, "dowries:all")
	return nil
}

type fakeBooks struct{ log *cascadeLog }

func (f *fakeBooks) DeleteByCategory(ctx context.Context, userID, categoryID string) error {
	f.log.calls = append(f.log.calls, "books:"+categoryID)
	return nil
}

func (f *fakeBooks) DeleteAllForUser(ctx context.Context, userID string) error {
	f.log.calls = append(f.log.calls, "books:all")
	return nil
}

type fakeImages struct{ log *cascadeLog }

func (f *fakeImages) DeleteAllForUser(ctx context.Context, userID string) error {
	f.log.calls = append(f.log.calls, "images:all")
	return nil
}

type fakePurchases struct{ log *cascadeLog }

func (f *fakePurchases) DeleteAllForUser(ctx context.Context, userID string) error {
	f.log.calls = append(f.log.calls, "purchases:all")
	return nil
}

func newTestService(repo *fakeRepo, quota *fakeQuota) (*Service, *cascadeLog) {
	log := &cascadeLog{}
	svc := NewService(
		repo,
		quota,
		&fakeDowries{log: log},
		&fakeBooks{log: log},
		&fakeImages{log: log},
		&fakePurchases{log: log},
		slog.New(slog.DiscardHandler),
	)
	return svc, log
}

func TestCreateWithinQuota(t *testing.T) {
	repo := &fakeRepo{count: 4}
	svc, _ := newTestService(repo, &fakeQuota{limit: 5})

	c, err := svc.Create(context.Background(), "u1", CreateCategoryRequest{
		Name: "Mutfak",
	})
	require.NoError(t, err)
	assert.Equal(t, "Mutfak", c.Name)
	assert.Equal(t, "u1", c.UserID)
	assert.NotEmpty(t, c.ID)
	assert.Len(t, repo.created, 1)
}

func TestCreateQuotaExceeded(t *testing.T) {
	repo := &fakeRepo{count: 5}
	svc, _ := newTestService(repo, &fakeQuota{limit: 5})

	_, err := svc.Create(context.Background(), "u1", CreateCategoryRequest{
		Name: "Mutfak",
	})
	assert.ErrorIs(t, err, ErrQuotaExceeded)
	assert.Empty(t, repo.created)
}

func TestCreateQuotaLookupError(t *testing.T) {
	repo := &fakeRepo{}
	svc, _ := newTestService(repo, &fakeQuota{err: errors.New("db down")})

	_, err := svc.Create(context.Background(), "u1", CreateCategoryRequest{
		Name: "Mutfak",
	})
	require.Error(t, err)
	assert.Empty(t, repo.created)
}

func TestDeleteCascadesChildrenFirst(t *testing.T) {
	repo := &fakeRepo{categories: map[string]*Category{
		"c1": {ID: "c1", UserID: "u1", Name: "Mutfak"},
	}}
	svc, log := newTestService(repo, &fakeQuota{limit: 5})

	err := svc.Delete(context.Background(), "u1", "c1")
	require.NoError(t, err)

	assert.Equal(t, []string{"dowries:c1", "books:c1"}, log.calls)
	assert.Equal(t, []string{"c1"}, repo.deleted)
}

func TestDeleteForeignCategoryIsNotFound(t *testing.T) {
	repo := &fakeRepo{categories: map[string]*Category{
		"c1": {ID: "c1", UserID: "owner", Name: "Mutfak"},
	}}
	svc, log := newTestService(repo, &fakeQuota{limit: 5})

	err := svc.Delete(context.Background(), "intruder", "c1")
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.Empty(t, log.calls)
	assert.Empty(t, repo.deleted)
}

func TestPurgeUserOrder(t *testing.T) {
	repo := &fakeRepo{}
	svc, log := newTestService(repo, &fakeQuota{limit: 5})

	err := svc.PurgeUser(context.Background(), "u1")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"images:all",
		"dowries:all",
		"books:all",
		"purchases:all",
	}, log.calls)
	assert.True(t, repo.purged)
}
