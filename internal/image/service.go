// AngelaMos | 2026
// service.go

package image

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/ozgesarac/ceyizdiz/internal/bookid"
	"github.com/ozgesarac/ceyizdiz/internal/core"
)

var ErrUnsupportedType = errors.New("unsupported image type")

var allowedTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/webp": {},
}

// ObjectStore is the slice of core.Storage the service uses.
type ObjectStore interface {
	Put(ctx context.Context, key, contentType string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

// DowryLinker maintains the dowry-side image reference. Satisfied by
// dowry.Repository.
type DowryLinker interface {
	AttachImage(ctx context.Context, userID, id, imageID string) error
	DetachImage(ctx context.Context, userID, imageID string) error
}

// Identifier runs book identification over raw image bytes. Satisfied by
// bookid.Identifier.
type Identifier interface {
	Identify(ctx context.Context, data []byte) (bookid.Result, error)
}

type Service struct {
	repo       Repository
	store      ObjectStore
	dowries    DowryLinker
	identifier Identifier
	logger     *slog.Logger
}

func NewService(
	repo Repository,
	store ObjectStore,
	dowries DowryLinker,
	identifier Identifier,
	logger *slog.Logger,
) *Service {
	return &Service{
		repo:       repo,
		store:      store,
		dowries:    dowries,
		identifier: identifier,
		logger:     logger,
	}
}

// Upload sniffs the content type, stores the object and inserts the row.
// When dowryID is set the dowry must belong to the caller; a failed link
// rolls the upload back best-effort.
func (s *Service) Upload(
	ctx context.Context,
	userID string,
	data []byte,
	dowryID *string,
) (*Image, error) {
	contentType := http.DetectContentType(data)
	if _, ok := allowedTypes[contentType]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, contentType)
	}

	key := core.NewObjectKey(userID)

	if err := s.store.Put(ctx, key, contentType, data); err != nil {
		return nil, fmt.Errorf("store image: %w", err)
	}

	image := &Image{
		ID:          uuid.New().String(),
		UserID:      userID,
		StorageKey:  key,
		ContentType: contentType,
		SizeBytes:   int64(len(data)),
		DowryID:     dowryID,
	}

	if err := s.repo.Create(ctx, image); err != nil {
		s.removeObject(ctx, key)
		return nil, err
	}

	if dowryID != nil {
		if err := s.dowries.AttachImage(ctx, userID, *dowryID, image.ID); err != nil {
			s.removeObject(ctx, key)
			//nolint:errcheck // row cleanup after failed link
			_ = s.repo.Delete(ctx, userID, image.ID)
			return nil, fmt.Errorf("link dowry: %w", err)
		}
	}

	return image, nil
}

// Fetch returns the stored bytes with their content type.
func (s *Service) Fetch(
	ctx context.Context,
	userID, id string,
) ([]byte, string, error) {
	image, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, "", err
	}

	data, err := s.store.Get(ctx, image.StorageKey)
	if err != nil {
		return nil, "", fmt.Errorf("fetch image: %w", err)
	}

	return data, image.ContentType, nil
}

// Delete removes the object best-effort, unlinks any dowry reference and
// deletes the row. A missing S3 object never blocks the row delete.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	image, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return err
	}

	s.removeObject(ctx, image.StorageKey)

	if err := s.dowries.DetachImage(ctx, userID, id); err != nil {
		s.logger.Error("detach image from dowry",
			"image_id", id,
			"error", err,
		)
	}

	return s.repo.Delete(ctx, userID, id)
}

// DeleteAllForUser clears every object and row the user owns. Object
// failures are logged; the rows always go.
func (s *Service) DeleteAllForUser(ctx context.Context, userID string) error {
	images, err := s.repo.ListForUser(ctx, userID)
	if err != nil {
		return err
	}

	for _, img := range images {
		s.removeObject(ctx, img.StorageKey)
	}

	return s.repo.DeleteAllForUser(ctx, userID)
}

// IdentifyBook fetches the owned image and runs the recognition pipeline.
func (s *Service) IdentifyBook(
	ctx context.Context,
	userID, id string,
) (bookid.Result, error) {
	image, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return bookid.Result{}, err
	}

	data, err := s.store.Get(ctx, image.StorageKey)
	if err != nil {
		return bookid.Result{}, fmt.Errorf("fetch image: %w", err)
	}

	return s.identifier.Identify(ctx, data)
}

func (s *Service) removeObject(ctx context.Context, key string) {
	if err := s.store.Delete(ctx, key); err != nil {
		s.logger.Error("delete stored object", "key", key, "error", err)
	}
}
