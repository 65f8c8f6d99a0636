// AngelaMos | 2026
// entity.go

package user

import (
	"time"
)

type User struct {
	ID                    string     `db:"id"`
	Email                 string     `db:"email"`
	PasswordHash          string     `db:"password_hash"`
	Name                  string     `db:"name"`
	Role                  string     `db:"role"`
	Verified              bool       `db:"verified"`
	VerificationCode      *string    `db:"verification_code"`
	VerificationExpiresAt *time.Time `db:"verification_expires_at"`
	ResetTokenHash        *string    `db:"reset_token_hash"`
	ResetExpiresAt        *time.Time `db:"reset_expires_at"`
	AdFree                bool       `db:"ad_free"`
	AdFreeUntil           *time.Time `db:"ad_free_until"`
	CategoryLimit         int        `db:"category_limit"`
	TokenVersion          int        `db:"token_version"`
	CreatedAt             time.Time  `db:"created_at"`
	UpdatedAt             time.Time  `db:"updated_at"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsAdFree reports whether the ad-suppression entitlement is currently
// active; an expired ad_free_until means ads come back.
func (u *User) IsAdFree() bool {
	if !u.AdFree {
		return false
	}
	if u.AdFreeUntil != nil && time.Now().After(*u.AdFreeUntil) {
		return false
	}
	return true
}

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// DefaultCategoryLimit is the free quota; the extra-categories
// entitlement raises it in fixed steps.
const (
	DefaultCategoryLimit = 5
	CategoryLimitStep    = 5
)
