// AngelaMos | 2026
// repository.go

package category

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/ozgesarac/ceyizdiz/internal/core"
)

type Repository interface {
	Create(ctx context.Context, category *Category) error
	GetByID(ctx context.Context, userID, id string) (*Category, error)
	Update(ctx context.Context, category *Category) error
	Delete(ctx context.Context, userID, id string) error
	DeleteAllForUser(ctx context.Context, userID string) error
	List(
		ctx context.Context,
		userID string,
		params ListCategoriesParams,
	) ([]Category, int, error)
	CountForUser(ctx context.Context, userID string) (int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, category *Category) error {
	query := `
		INSERT INTO categories (id, user_id, name, icon)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, category, query,
		category.ID,
		category.UserID,
		category.Name,
		category.Icon,
	)
	if err != nil {
		return fmt.Errorf("create category: %w", err)
	}

	return nil
}

func (r *repository) GetByID(
	ctx context.Context,
	userID, id string,
) (*Category, error) {
	query := `
		SELECT id, user_id, name, icon, created_at, updated_at
		FROM categories
		WHERE id = $1 AND user_id = $2`

	var category Category
	err := r.db.GetContext(ctx, &category, query, id, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get category: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}

	return &category, nil
}

func (r *repository) Update(ctx context.Context, category *Category) error {
	query := `
		UPDATE categories
		SET name = $3, icon = $4, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &category.UpdatedAt, query,
		category.ID,
		category.UserID,
		category.Name,
		category.Icon,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update category: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, userID, id string) error {
	query := `DELETE FROM categories WHERE id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete category: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) DeleteAllForUser(
	ctx context.Context,
	userID string,
) error {
	query := `DELETE FROM categories WHERE user_id = $1`

	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("delete categories for user: %w", err)
	}

	return nil
}

func (r *repository) List(
	ctx context.Context,
	userID string,
	params ListCategoriesParams,
) ([]Category, int, error) {
	params.Normalize()

	conditions := []string{"user_id = $1"}
	args := []any{userID}
	argIdx := 2

	if params.Search != "" {
		conditions = append(conditions,
			fmt.Sprintf("name ILIKE $%d", argIdx))
		args = append(args, "%"+core.EscapeLike(params.Search)+"%")
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf(
		"SELECT COUNT(*) FROM categories WHERE %s",
		whereClause,
	)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count categories: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, user_id, name, icon, created_at, updated_at
		FROM categories
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`,
		whereClause, argIdx, argIdx+1)

	args = append(args, params.PageSize, params.Offset())

	var categories []Category
	if err := r.db.SelectContext(ctx, &categories, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list categories: %w", err)
	}

	return categories, total, nil
}

func (r *repository) CountForUser(
	ctx context.Context,
	userID string,
) (int, error) {
	query := `SELECT COUNT(*) FROM categories WHERE user_id = $1`

	var count int
	if err := r.db.GetContext(ctx, &count, query, userID); err != nil {
		return 0, fmt.Errorf("count categories: %w", err)
	}

	return count, nil
}
