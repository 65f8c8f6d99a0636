// AngelaMos | 2026
// entity.go

package dowry

import (
	"time"
)

const (
	StatusPurchased    = "purchased"
	StatusNotPurchased = "not_purchased"
)

type Dowry struct {
	ID          string    `db:"id"`
	UserID      string    `db:"user_id"`
	CategoryID  string    `db:"category_id"`
	Name        string    `db:"name"`
	Description *string   `db:"description"`
	Price       *float64  `db:"price"`
	Location    *string   `db:"location"`
	URL         *string   `db:"url"`
	Status      string    `db:"status"`
	ImageID     *string   `db:"image_id"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}
