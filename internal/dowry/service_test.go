// AngelaMos | 2026
// service_test.go

package dowry

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
	dowries        map[string]*Dowry
	byCategory     []Dowry
	categoryExists bool
	created        []*Dowry
	deleted        []string
	deletedByCat   []string
	statusUpdates  map[string]string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		dowries:       make(map[string]*Dowry),
		statusUpdates: make(map[string]string),
	}
}

func (f *fakeRepo) Create(ctx context.Context, d *Dowry) error {
	f.created = append(f.created, d)
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, userID, id string) (*Dowry, error) {
	d, ok := f.dowries[id]
	if !ok || d.UserID != userID {
		return nil, core.ErrNotFound
	}
	return d, nil
}

func (f *fakeRepo) UpdateStatus(ctx context.Context, userID, id, status string) error {
	f.statusUpdates[id] = status
	return nil
}

func (f *fakeRepo) Delete(ctx context.Context, userID, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeRepo) DeleteByCategory(ctx context.Context, userID, categoryID string) error {
	f.deletedByCat = append(f.deletedByCat, categoryID)
	return nil
}

func (f *fakeRepo) ListByCategory(ctx context.Context, userID, categoryID string) ([]Dowry, error) {
	return f.byCategory, nil
}

func (f *fakeRepo) CategoryExists(ctx context.Context, userID, categoryID string) (bool, error) {
	return f.categoryExists, nil
}

type fakeImages struct {
	deleted []string
	err     error
}

func (f *fakeImages) Delete(ctx context.Context, userID, imageID string) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, imageID)
	return nil
}

func newTestService(repo *fakeRepo, images *fakeImages) *Service {
	return NewService(repo, images, slog.New(slog.DiscardHandler))
}

func TestCreateUnknownCategory(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeImages{})

	_, err := svc.Create(context.Background(), "u1", CreateDowryRequest{
		CategoryID: "missing",
		Name:       "Tencere",
	})
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.Empty(t, repo.created)
}

func TestCreateDefaultsStatus(t *testing.T) {
	repo := newFakeRepo()
	repo.categoryExists = true
	svc := newTestService(repo, &fakeImages{})

	d, err := svc.Create(context.Background(), "u1", CreateDowryRequest{
		CategoryID: "c1",
		Name:       "Tencere",
	})
	require.NoError(t, err)
	assert.Equal(t, StatusNotPurchased, d.Status)
	assert.Equal(t, "u1", d.UserID)
}

func TestDeleteRemovesLinkedImage(t *testing.T) {
	imageID := "img-1"
	repo := newFakeRepo()
	repo.dowries["d1"] = &Dowry{ID: "d1", UserID: "u1", ImageID: &imageID}
	images := &fakeImages{}
	svc := newTestService(repo, images)

	require.NoError(t, svc.Delete(context.Background(), "u1", "d1"))
	assert.Equal(t, []string{"img-1"}, images.deleted)
	assert.Equal(t, []string{"d1"}, repo.deleted)
}

func TestDeleteProceedsWhenImageDeleteFails(t *testing.T) {
	imageID := "img-1"
	repo := newFakeRepo()
	repo.dowries["d1"] = &Dowry{ID: "d1", UserID: "u1", ImageID: &imageID}
	images := &fakeImages{err: errors.New("s3 down")}
	svc := newTestService(repo, images)

	require.NoError(t, svc.Delete(context.Background(), "u1", "d1"))
	assert.Equal(t, []string{"d1"}, repo.deleted)
}

func TestDeleteForeignDowryIsNotFound(t *testing.T) {
	repo := newFakeRepo()
	repo.dowries["d1"] = &Dowry{ID: "d1", UserID: "owner"}
	svc := newTestService(repo, &fakeImages{})

	err := svc.Delete(context.Background(), "intruder", "d1")
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.Empty(t, repo.deleted)
}

func TestDeleteByCategoryRemovesImagesFirst(t *testing.T) {
	img := "img-1"
	repo := newFakeRepo()
	repo.byCategory = []Dowry{
		{ID: "d1", UserID: "u1", ImageID: &img},
		{ID: "d2", UserID: "u1"},
	}
	images := &fakeImages{}
	svc := newTestService(repo, images)

	require.NoError(t, svc.DeleteByCategory(context.Background(), "u1", "c1"))
	assert.Equal(t, []string{"img-1"}, images.deleted)
	assert.Equal(t, []string{"c1"}, repo.deletedByCat)
}
