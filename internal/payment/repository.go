// AngelaMos | 2026
// repository.go

package payment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ozgesarac/ceyizdiz/internal/core"
)

const purchaseColumns = `id, user_id, purchase_token, product_id, order_id,
	       state, created_at, updated_at`

type Repository interface {
	Create(ctx context.Context, purchase *Purchase) error
	GetByID(ctx context.Context, id string) (*Purchase, error)
	UpdateState(ctx context.Context, id, state string) error
	ListActive(ctx context.Context, limit int) ([]Purchase, error)
	ListActiveForUser(ctx context.Context, userID string) ([]Purchase, error)
	DeleteAllForUser(ctx context.Context, userID string) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, purchase *Purchase) error {
	query := `
		INSERT INTO purchases (id, user_id, purchase_token, product_id,
			order_id, state)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, purchase, query,
		purchase.ID,
		purchase.UserID,
		purchase.PurchaseToken,
		purchase.ProductID,
		purchase.OrderID,
		purchase.State,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("create purchase: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create purchase: %w", err)
	}

	return nil
}

func (r *repository) GetByID(
	ctx context.Context,
	id string,
) (*Purchase, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM purchases
		WHERE id = $1`, purchaseColumns)

	var purchase Purchase
	err := r.db.GetContext(ctx, &purchase, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get purchase: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get purchase: %w", err)
	}

	return &purchase, nil
}

func (r *repository) UpdateState(ctx context.Context, id, state string) error {
	query := `
		UPDATE purchases
		SET state = $2, updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, state)
	if err != nil {
		return fmt.Errorf("update purchase state: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update purchase state: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("update purchase state: %w", core.ErrNotFound)
	}

	return nil
}

// ListActive feeds the recheck loop; rows already marked canceled or
// refunded are never returned.
func (r *repository) ListActive(
	ctx context.Context,
	limit int,
) ([]Purchase, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM purchases
		WHERE state = $1
		ORDER BY updated_at ASC
		LIMIT $2`, purchaseColumns)

	var purchases []Purchase
	err := r.db.SelectContext(ctx, &purchases, query, StateActive, limit)
	if err != nil {
		return nil, fmt.Errorf("list active purchases: %w", err)
	}

	return purchases, nil
}

func (r *repository) ListActiveForUser(
	ctx context.Context,
	userID string,
) ([]Purchase, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM purchases
		WHERE user_id = $1 AND state = $2
		ORDER BY created_at DESC`, purchaseColumns)

	var purchases []Purchase
	err := r.db.SelectContext(ctx, &purchases, query, userID, StateActive)
	if err != nil {
		return nil, fmt.Errorf("list purchases for user: %w", err)
	}

	return purchases, nil
}

func (r *repository) DeleteAllForUser(
	ctx context.Context,
	userID string,
) error {
	query := `DELETE FROM purchases WHERE user_id = $1`

	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("delete purchases for user: %w", err)
	}

	return nil
}

func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
