// AngelaMos | 2026
// entity.go

package payment

import (
	"time"
)

const (
	StateActive   = "active"
	StateCanceled = "canceled"
	StateRefunded = "refunded"
)

const (
	ProductRemoveAds       = "remove_ads"
	ProductExtraCategories = "extra_categories"
)

// adFreeDuration is how long a remove_ads purchase suppresses ads.
const adFreeDuration = 365 * 24 * time.Hour

type Purchase struct {
	ID            string    `db:"id"`
	UserID        string    `db:"user_id"`
	PurchaseToken string    `db:"purchase_token"`
	ProductID     string    `db:"product_id"`
	OrderID       string    `db:"order_id"`
	State         string    `db:"state"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}
