// AngelaMos | 2026
// service_test.go

package image

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ozgesarac/ceyizdiz/internal/bookid"
	"github.com/ozgesarac/ceyizdiz/internal/core"
)

var pngBytes = []byte("\x89PNG\r\n\x1a\n sufficient header bytes")

type fakeRepo struct {
	images    map[string]*Image
	created   []*Image
	deleted   []string
	createErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{images: make(map[string]*Image)}
}

func (f *fakeRepo) Create(ctx context.Context, img *Image) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, img)
	f.images[img.ID] = img
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, userID, id string) (*Image, error) {
	img, ok := f.images[id]
	if !ok || img.UserID != userID {
		return nil, core.ErrNotFound
	}
	return img, nil
}

func (f *fakeRepo) Delete(ctx context.Context, userID, id string) error {
	f.deleted = append(f.deleted, id)
	delete(f.images, id)
	return nil
}

func (f *fakeRepo) ListForUser(ctx context.Context, userID string) ([]Image, error) {
	var out []Image
	for _, img := range f.images {
		if img.UserID == userID {
			out = append(out, *img)
		}
	}
	return out, nil
}

func (f *fakeRepo) DeleteAllForUser(ctx context.Context, userID string) error {
	for id, img := range f.images {
		if img.UserID == userID {
			delete(f.images, id)
		}
	}
	return nil
}

type fakeStore struct {
	objects map[string][]byte
	removed []string
	putErr  error
	getErr  error
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: make(map[string][]byte)}
}

func (f *fakeStore) Put(ctx context.Context, key, contentType string, data []byte) error {
	if f.putErr != nil {
		return f.putErr
	}
	f.objects[key] = data
	return nil
}

func (f *fakeStore) Get(ctx context.Context, key string) ([]byte, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.objects[key], nil
}

func (f *fakeStore) Delete(ctx context.Context, key string) error {
	f.removed = append(f.removed, key)
	delete(f.objects, key)
	return nil
}

type fakeLinker struct {
	attached  [][2]string
	detached  []string
	attachErr error
}

func (f *fakeLinker) AttachImage(ctx context.Context, userID, id, imageID string) error {
	if f.attachErr != nil {
		return f.attachErr
	}
	f.attached = append(f.attached, [2]string{id, imageID})
	return nil
}

func (f *fakeLinker) DetachImage(ctx context.Context, userID, imageID string) error {
	f.detached = append(f.detached, imageID)
	return nil
}

type fakeIdentifier struct {
	result bookid.Result
	err    error
	seen   []byte
}

func (f *fakeIdentifier) Identify(ctx context.Context, data []byte) (bookid.Result, error) {
	f.seen = data
	return f.result, f.err
}

func newTestService(
	repo *fakeRepo,
	store *fakeStore,
	linker *fakeLinker,
	identifier *fakeIdentifier,
) *Service {
	return NewService(repo, store, linker, identifier, slog.New(slog.DiscardHandler))
}

func TestUploadStoresObjectAndRow(t *testing.T) {
	repo := newFakeRepo()
	store := newFakeStore()
	svc := newTestService(repo, store, &fakeLinker{}, &fakeIdentifier{})

	img, err := svc.Upload(context.Background(), "u1", pngBytes, nil)
	require.NoError(t, err)
	assert.Equal(t, "image/png", img.ContentType)
	assert.Equal(t, int64(len(pngBytes)), img.SizeBytes)
	assert.Len(t, store.objects, 1)
	assert.Len(t, repo.created, 1)
}

func TestUploadRejectsUnsupportedType(t *testing.T) {
	repo := newFakeRepo()
	store := newFakeStore()
	svc := newTestService(repo, store, &fakeLinker{}, &fakeIdentifier{})

	_, err := svc.Upload(context.Background(), "u1", []byte("plain text"), nil)
	assert.ErrorIs(t, err, ErrUnsupportedType)
	assert.Empty(t, store.objects)
	assert.Empty(t, repo.created)
}

func TestUploadLinksDowry(t *testing.T) {
	repo := newFakeRepo()
	store := newFakeStore()
	linker := &fakeLinker{}
	svc := newTestService(repo, store, linker, &fakeIdentifier{})

	dowryID := "d1"
	img, err := svc.Upload(context.Background(), "u1", pngBytes, &dowryID)
	require.NoError(t, err)
	require.Len(t, linker.attached, 1)
	assert.Equal(t, [2]string{"d1", img.ID}, linker.attached[0])
}

func TestUploadRollsBackOnFailedLink(t *testing.T) {
	repo := newFakeRepo()
	store := newFakeStore()
	linker := &fakeLinker{attachErr: core.ErrNotFound}
	svc := newTestService(repo, store, linker, &fakeIdentifier{})

	dowryID := "missing"
	_, err := svc.Upload(context.Background(), "u1", pngBytes, &dowryID)
	require.Error(t, err)
	assert.Empty(t, store.objects)
	assert.Empty(t, repo.images)
}

func TestDeleteUnlinksAndRemoves(t *testing.T) {
	repo := newFakeRepo()
	repo.images["i1"] = &Image{ID: "i1", UserID: "u1", StorageKey: "k1"}
	store := newFakeStore()
	store.objects["k1"] = pngBytes
	linker := &fakeLinker{}
	svc := newTestService(repo, store, linker, &fakeIdentifier{})

	require.NoError(t, svc.Delete(context.Background(), "u1", "i1"))
	assert.Equal(t, []string{"k1"}, store.removed)
	assert.Equal(t, []string{"i1"}, linker.detached)
	assert.Equal(t, []string{"i1"}, repo.deleted)
}

func TestFetchForeignImageIsNotFound(t *testing.T) {
	repo := newFakeRepo()
	repo.images["i1"] = &Image{ID: "i1", UserID: "owner", StorageKey: "k1"}
	svc := newTestService(repo, newFakeStore(), &fakeLinker{}, &fakeIdentifier{})

	_, _, err := svc.Fetch(context.Background(), "intruder", "i1")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestIdentifyBookRunsPipelineOnStoredBytes(t *testing.T) {
	repo := newFakeRepo()
	repo.images["i1"] = &Image{ID: "i1", UserID: "u1", StorageKey: "k1"}
	store := newFakeStore()
	store.objects["k1"] = pngBytes
	identifier := &fakeIdentifier{result: bookid.Result{
		Title:   "Kürk Mantolu Madonna",
		Author:  "Sabahattin Ali",
		Matched: true,
	}}
	svc := newTestService(repo, store, &fakeLinker{}, identifier)

	result, err := svc.IdentifyBook(context.Background(), "u1", "i1")
	require.NoError(t, err)
	assert.True(t, result.Matched)
	assert.Equal(t, pngBytes, identifier.seen)
}

func TestIdentifyBookEngineUnavailable(t *testing.T) {
	repo := newFakeRepo()
	repo.images["i1"] = &Image{ID: "i1", UserID: "u1", StorageKey: "k1"}
	store := newFakeStore()
	store.objects["k1"] = pngBytes
	identifier := &fakeIdentifier{err: bookid.ErrEngineUnavailable}
	svc := newTestService(repo, store, &fakeLinker{}, identifier)

	_, err := svc.IdentifyBook(context.Background(), "u1", "i1")
	assert.ErrorIs(t, err, bookid.ErrEngineUnavailable)
}

func TestDeleteAllForUserRemovesObjects(t *testing.T) {
	repo := newFakeRepo()
	repo.images["i1"] = &Image{ID: "i1", UserID: "u1", StorageKey: "k1"}
	repo.images["i2"] = &Image{ID: "i2", UserID: "u1", StorageKey: "k2"}
	store := newFakeStore()
	store.objects["k1"] = pngBytes
	store.objects["k2"] = pngBytes
	svc := newTestService(repo, store, &fakeLinker{}, &fakeIdentifier{})

	require.NoError(t, svc.DeleteAllForUser(context.Background(), "u1"))
	assert.Len(t, store.removed, 2)
	assert.Empty(t, repo.images)
}
