// AngelaMos | 2026
// entity.go

package image

import (
	"time"
)

type Image struct {
	ID          string    `db:"id"`
	UserID      string    `db:"user_id"`
	StorageKey  string    `db:"storage_key"`
	ContentType string    `db:"content_type"`
	SizeBytes   int64     `db:"size_bytes"`
	DowryID     *string   `db:"dowry_id"`
	CreatedAt   time.Time `db:"created_at"`
}
