// AngelaMos | 2026
// repository.go

package image

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ozgesarac/ceyizdiz/internal/core"
)

type Repository interface {
	Create(ctx context.Context, image *Image) error
	GetByID(ctx context.Context, userID, id string) (*Image, error)
	Delete(ctx context.Context, userID, id string) error
	ListForUser(ctx context.Context, userID string) ([]Image, error)
	DeleteAllForUser(ctx context.Context, userID string) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, image *Image) error {
	query := `
		INSERT INTO images (id, user_id, storage_key, content_type,
			size_bytes, dowry_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`

	err := r.db.GetContext(ctx, &image.CreatedAt, query,
		image.ID,
		image.UserID,
		image.StorageKey,
		image.ContentType,
		image.SizeBytes,
		image.DowryID,
	)
	if err != nil {
		return fmt.Errorf("create image: %w", err)
	}

	return nil
}

func (r *repository) GetByID(
	ctx context.Context,
	userID, id string,
) (*Image, error) {
	query := `
		SELECT id, user_id, storage_key, content_type, size_bytes,
		       dowry_id, created_at
		FROM images
		WHERE id = $1 AND user_id = $2`

	var image Image
	err := r.db.GetContext(ctx, &image, query, id, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get image: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get image: %w", err)
	}

	return &image, nil
}

func (r *repository) Delete(ctx context.Context, userID, id string) error {
	query := `DELETE FROM images WHERE id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("delete image: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete image: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete image: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) ListForUser(
	ctx context.Context,
	userID string,
) ([]Image, error) {
	query := `
		SELECT id, user_id, storage_key, content_type, size_bytes,
		       dowry_id, created_at
		FROM images
		WHERE user_id = $1`

	var images []Image
	if err := r.db.SelectContext(ctx, &images, query, userID); err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}

	return images, nil
}

func (r *repository) DeleteAllForUser(
	ctx context.Context,
	userID string,
) error {
	query := `DELETE FROM images WHERE user_id = $1`

	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("delete images for user: %w", err)
	}

	return nil
}
