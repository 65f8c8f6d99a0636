// AngelaMos | 2026
// service_test.go

package book

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ozgesarac/ceyizdiz/internal/core"
)

type fakeRepo struct {
	Repository
	categoryExists bool
	created        []*Book
	books          map[string]*Book
	updated        []*Book
}

func (f *fakeRepo) CategoryExists(ctx context.Context, userID, categoryID string) (bool, error) {
	return f.categoryExists, nil
}

func (f *fakeRepo) Create(ctx context.Context, b *Book) error {
	f.created = append(f.created, b)
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, userID, id string) (*Book, error) {
	b, ok := f.books[id]
	if !ok || b.UserID != userID {
		return nil, core.ErrNotFound
	}
	return b, nil
}

func (f *fakeRepo) Update(ctx context.Context, b *Book) error {
	f.updated = append(f.updated, b)
	return nil
}

func TestCreateUnknownCategory(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	_, err := svc.Create(context.Background(), "u1", CreateBookRequest{
		CategoryID: "missing",
		Name:       "Tutunamayanlar",
	})
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.Empty(t, repo.created)
}

func TestCreateDefaultsStatus(t *testing.T) {
	repo := &fakeRepo{categoryExists: true}
	svc := NewService(repo)

	b, err := svc.Create(context.Background(), "u1", CreateBookRequest{
		CategoryID: "c1",
		Name:       "Tutunamayanlar",
		Author:     "Oğuz Atay",
	})
	require.NoError(t, err)
	assert.Equal(t, StatusNotPurchased, b.Status)
	assert.False(t, b.Read)
}

func TestUpdateMoveToUnknownCategory(t *testing.T) {
	repo := &fakeRepo{books: map[string]*Book{
		"b1": {ID: "b1", UserID: "u1", CategoryID: "c1"},
	}}
	svc := NewService(repo)

	missing := "c2"
	_, err := svc.Update(context.Background(), "u1", "b1", UpdateBookRequest{
		CategoryID: &missing,
	})
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.Empty(t, repo.updated)
}

func TestUpdateReadFlag(t *testing.T) {
	repo := &fakeRepo{
		categoryExists: true,
		books: map[string]*Book{
			"b1": {ID: "b1", UserID: "u1", CategoryID: "c1"},
		},
	}
	svc := NewService(repo)

	read := true
	b, err := svc.Update(context.Background(), "u1", "b1", UpdateBookRequest{
		Read: &read,
	})
	require.NoError(t, err)
	assert.True(t, b.Read)
	assert.Len(t, repo.updated, 1)
}

func TestGetForeignBookIsNotFound(t *testing.T) {
	repo := &fakeRepo{books: map[string]*Book{
		"b1": {ID: "b1", UserID: "owner"},
	}}
	svc := NewService(repo)

	_, err := svc.Get(context.Background(), "intruder", "b1")
	assert.ErrorIs(t, err, core.ErrNotFound)
}
