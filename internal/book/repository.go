// AngelaMos | 2026
// repository.go

package book

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/ozgesarac/ceyizdiz/internal/core"
)

const bookColumns = `id, user_id, category_id, name, author, status, read,
	       created_at, updated_at`

type Repository interface {
	Create(ctx context.Context, book *Book) error
	GetByID(ctx context.Context, userID, id string) (*Book, error)
	Update(ctx context.Context, book *Book) error
	UpdateStatus(ctx context.Context, userID, id, status string) error
	Delete(ctx context.Context, userID, id string) error
	DeleteByCategory(ctx context.Context, userID, categoryID string) error
	DeleteAllForUser(ctx context.Context, userID string) error
	List(
		ctx context.Context,
		userID string,
		params ListBooksParams,
	) ([]Book, int, error)
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

func (r *repository) Create(ctx context.Context, book *Book) error {
	query := `
		INSERT INTO books (id, user_id, category_id, name, author, status, read)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, book, query,
		book.ID,
		book.UserID,
		book.CategoryID,
		book.Name,
		book.Author,
		book.Status,
		book.Read,
	)
	if err != nil {
		return fmt.Errorf("create book: %w", err)
	}

	return nil
}

func (r *repository) GetByID(
	ctx context.Context,
	userID, id string,
) (*Book, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM books
		WHERE id = $1 AND user_id = $2`, bookColumns)

	var book Book
	err := r.db.GetContext(ctx, &book, query, id, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get book: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get book: %w", err)
	}

	return &book, nil
}

func (r *repository) Update(ctx context.Context, book *Book) error {
	query := `
		UPDATE books
		SET category_id = $3, name = $4, author = $5, read = $6,
		    updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &book.UpdatedAt, query,
		book.ID,
		book.UserID,
		book.CategoryID,
		book.Name,
		book.Author,
		book.Read,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update book: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update book: %w", err)
	}

	return nil
}

func (r *repository) UpdateStatus(
	ctx context.Context,
	userID, id, status string,
) error {
	query := `
		UPDATE books
		SET status = $3, updated_at = NOW()
		WHERE id = $1 AND user_id = $2`

	return r.execOne(ctx, "update book status", query, id, userID, status)
}

func (r *repository) Delete(ctx context.Context, userID, id string) error {
	query := `DELETE FROM books WHERE id = $1 AND user_id = $2`

	return r.execOne(ctx, "delete book", query, id, userID)
}

func (r *repository) DeleteByCategory(
	ctx context.Context,
	userID, categoryID string,
) error {
	query := `DELETE FROM books WHERE user_id = $1 AND category_id = $2`

	if _, err := r.db.ExecContext(ctx, query, userID, categoryID); err != nil {
		return fmt.Errorf("delete books by category: %w", err)
	}

	return nil
}

func (r *repository) DeleteAllForUser(
	ctx context.Context,
	userID string,
) error {
	query := `DELETE FROM books WHERE user_id = $1`

	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("delete books for user: %w", err)
	}

	return nil
}

func (r *repository) List(
	ctx context.Context,
	userID string,
	params ListBooksParams,
) ([]Book, int, error) {
	params.Normalize()

	conditions := []string{"user_id = $1"}
	args := []any{userID}
	argIdx := 2

	if params.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(name ILIKE $%d OR author ILIKE $%d)", argIdx, argIdx))
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
		"SELECT COUNT(*) FROM books WHERE %s",
		whereClause,
	)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count books: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM books
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`,
		bookColumns, whereClause, argIdx, argIdx+1)

	args = append(args, params.PageSize, params.Offset())

	var books []Book
	if err := r.db.SelectContext(ctx, &books, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list books: %w", err)
	}

	return books, total, nil
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
