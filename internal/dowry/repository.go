// AngelaMos | 2026
// repository.go

package dowry

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/ozgesarac/ceyizdiz/internal/core"
)

const dowryColumns = `id, user_id, category_id, name, description, price,
	       location, url, status, image_id, created_at, updated_at`

type Repository interface {
	Create(ctx context.Context, dowry *Dowry) error
	GetByID(ctx context.Context, userID, id string) (*Dowry, error)
	Update(ctx context.Context, dowry *Dowry) error
	UpdateStatus(ctx context.Context, userID, id, status string) error
	Delete(ctx context.Context, userID, id string) error
	DeleteByCategory(ctx context.Context, userID, categoryID string) error
	DeleteAllForUser(ctx context.Context, userID string) error
	List(
		ctx context.Context,
		userID string,
		params ListDowriesParams,
	) ([]Dowry, int, error)
	ListByCategory(
		ctx context.Context,
		userID, categoryID string,
	) ([]Dowry, error)
	AttachImage(ctx context.Context, userID, id, imageID string) error
	DetachImage(ctx context.Context, userID, imageID string) error
	CategoryExists(
		ctx context.Context,
		userID, categoryID string,
	) (bool, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, dowry *Dowry) error {
	query := `
		INSERT INTO dowries (id, user_id, category_id, name, description,
			price, location, url, status, image_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, dowry, query,
		dowry.ID,
		dowry.UserID,
		dowry.CategoryID,
		dowry.Name,
		dowry.Description,
		dowry.Price,
		dowry.Location,
		dowry.URL,
		dowry.Status,
		dowry.ImageID,
	)
	if err != nil {
		return fmt.Errorf("create dowry: %w", err)
	}

	return nil
}

func (r *repository) GetByID(
	ctx context.Context,
	userID, id string,
) (*Dowry, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM dowries
		WHERE id = $1 AND user_id = $2`, dowryColumns)

	var dowry Dowry
	err := r.db.GetContext(ctx, &dowry, query, id, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get dowry: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get dowry: %w", err)
	}

	return &dowry, nil
}

func (r *repository) Update(ctx context.Context, dowry *Dowry) error {
	query := `
		UPDATE dowries
		SET category_id = $3, name = $4, description = $5, price = $6,
		    location = $7, url = $8, image_id = $9, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &dowry.UpdatedAt, query,
		dowry.ID,
		dowry.UserID,
		dowry.CategoryID,
		dowry.Name,
		dowry.Description,
		dowry.Price,
		dowry.Location,
		dowry.URL,
		dowry.ImageID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update dowry: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update dowry: %w", err)
	}

	return nil
}

func (r *repository) UpdateStatus(
	ctx context.Context,
	userID, id, status string,
) error {
	query := `
		UPDATE dowries
		SET status = $3, updated_at = NOW()
		WHERE id = $1 AND user_id = $2`

	return r.execOne(ctx, "update dowry status", query, id, userID, status)
}

func (r *repository) Delete(ctx context.Context, userID, id string) error {
	query := `DELETE FROM dowries WHERE id = $1 AND user_id = $2`

	return r.execOne(ctx, "delete dowry", query, id, userID)
}

func (r *repository) DeleteByCategory(
	ctx context.Context,
	userID, categoryID string,
) error {
	query := `DELETE FROM dowries WHERE user_id = $1 AND category_id = $2`

	if _, err := r.db.ExecContext(ctx, query, userID, categoryID); err != nil {
		return fmt.Errorf("delete dowries by category: %w", err)
	}

	return nil
}

func (r *repository) DeleteAllForUser(
	ctx context.Context,
	userID string,
) error {
	query := `DELETE FROM dowries WHERE user_id = $1`

	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("delete dowries for user: %w", err)
	}

	return nil
}

func (r *repository) List(
	ctx context.Context,
	userID string,
	params ListDowriesParams,
) ([]Dowry, int, error) {
	params.Normalize()

	conditions := []string{"user_id = $1"}
	args := []any{userID}
	argIdx := 2

	if params.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(name ILIKE $%d OR description ILIKE $%d)", argIdx, argIdx))
		args = append(args, "%"+core.EscapeLike(params.Search)+"%")
		argIdx++
	}

	if params.Status != "" {
		conditions = append(conditions,
			fmt.Sprintf("status = $%d", argIdx))
		args = append(args, params.Status)
		argIdx++
	}

	if params.CategoryID != "" {
		conditions = append(conditions,
			fmt.Sprintf("category_id = $%d", argIdx))
		args = append(args, params.CategoryID)
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf(
		"SELECT COUNT(*) FROM dowries WHERE %s",
		whereClause,
	)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count dowries: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM dowries
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`,
		dowryColumns, whereClause, argIdx, argIdx+1)

	args = append(args, params.PageSize, params.Offset())

	var dowries []Dowry
	if err := r.db.SelectContext(ctx, &dowries, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list dowries: %w", err)
	}

	return dowries, total, nil
}

func (r *repository) ListByCategory(
	ctx context.Context,
	userID, categoryID string,
) ([]Dowry, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM dowries
		WHERE user_id = $1 AND category_id = $2`, dowryColumns)

	var dowries []Dowry
	err := r.db.SelectContext(ctx, &dowries, query, userID, categoryID)
	if err != nil {
		return nil, fmt.Errorf("list dowries by category: %w", err)
	}

	return dowries, nil
}

func (r *repository) AttachImage(
	ctx context.Context,
	userID, id, imageID string,
) error {
	query := `
		UPDATE dowries
		SET image_id = $3, updated_at = NOW()
		WHERE id = $1 AND user_id = $2`

	return r.execOne(ctx, "attach image", query, id, userID, imageID)
}

// DetachImage clears the reference on whichever dowry points at the
// image; deleting an unlinked image is a no-op here.
func (r *repository) DetachImage(
	ctx context.Context,
	userID, imageID string,
) error {
	query := `
		UPDATE dowries
		SET image_id = NULL, updated_at = NOW()
		WHERE user_id = $1 AND image_id = $2`

	if _, err := r.db.ExecContext(ctx, query, userID, imageID); err != nil {
		return fmt.Errorf("detach image: %w", err)
	}

	return nil
}

func (r *repository) CategoryExists(
	ctx context.Context,
	userID, categoryID string,
) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM categories WHERE id = $1 AND user_id = $2
		)`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, categoryID, userID)
	if err != nil {
		return false, fmt.Errorf("check category: %w", err)
	}

	return exists, nil
}

func (r *repository) execOne(
	ctx context.Context,
	op, query string,
	args ...any,
) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if rows == 0 {
		return fmt.Errorf("%s: %w", op, core.ErrNotFound)
	}

	return nil
}
