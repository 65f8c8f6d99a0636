// AngelaMos | 2026
// entity.go

package book

import (
	"time"
)

const (
	StatusPurchased    = "purchased"
	StatusNotPurchased = "not_purchased"
)

type Book struct {
	ID         string    `db:"id"`
	UserID     string    `db:"user_id"`
	CategoryID string    `db:"category_id"`
	Name       string    `db:"name"`
	Author     string    `db:"author"`
	Status     string    `db:"status"`
	Read       bool      `db:"read"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}
