// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ozgesarac/ceyizdiz/internal/auth"
	"github.com/ozgesarac/ceyizdiz/internal/core"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetByID(
	ctx context.Context,
	id string,
) (*auth.UserInfo, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) GetByEmail(
	ctx context.Context,
	email string,
) (*auth.UserInfo, error) {
	user, err := s.repo.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) GetByResetTokenHash(
	ctx context.Context,
	hash string,
) (*auth.UserInfo, error) {
	user, err := s.repo.GetByResetTokenHash(ctx, hash)
	if err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) Create(
	ctx context.Context,
	email, passwordHash, name string,
) (*auth.UserInfo, error) {
	user := &User{
		ID:            uuid.New().String(),
		Email:         strings.ToLower(email),
		PasswordHash:  passwordHash,
		Name:          name,
		Role:          RoleUser,
		CategoryLimit: DefaultCategoryLimit,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) IncrementTokenVersion(
	ctx context.Context,
	userID string,
) error {
	return s.repo.IncrementTokenVersion(ctx, userID)
}

func (s *Service) UpdatePassword(
	ctx context.Context,
	userID, passwordHash string,
) error {
	return s.repo.UpdatePassword(ctx, userID, passwordHash)
}

func (s *Service) SetVerificationCode(
	ctx context.Context,
	userID, code string,
	expiresAt time.Time,
) error {
	return s.repo.SetVerificationCode(ctx, userID, code, expiresAt)
}

func (s *Service) MarkVerified(ctx context.Context, userID string) error {
	return s.repo.MarkVerified(ctx, userID)
}

func (s *Service) SetResetToken(
	ctx context.Context,
	userID, tokenHash string,
	expiresAt time.Time,
) error {
	return s.repo.SetResetToken(ctx, userID, tokenHash, expiresAt)
}

func (s *Service) ClearResetToken(ctx context.Context, userID string) error {
	return s.repo.ClearResetToken(ctx, userID)
}

func (s *Service) Delete(ctx context.Context, userID string) error {
	return s.repo.Delete(ctx, userID)
}

// GrantAdFree activates ad suppression until the given time.
func (s *Service) GrantAdFree(
	ctx context.Context,
	userID string,
	until time.Time,
) error {
	return s.repo.SetAdFree(ctx, userID, true, &until)
}

func (s *Service) RevokeAdFree(ctx context.Context, userID string) error {
	return s.repo.SetAdFree(ctx, userID, false, nil)
}

// GrantExtraCategories raises the category quota by one purchase step.
func (s *Service) GrantExtraCategories(
	ctx context.Context,
	userID string,
) error {
	return s.repo.AdjustCategoryLimit(
		ctx,
		userID,
		CategoryLimitStep,
		DefaultCategoryLimit,
	)
}

func (s *Service) RevokeExtraCategories(
	ctx context.Context,
	userID string,
) error {
	return s.repo.AdjustCategoryLimit(
		ctx,
		userID,
		-CategoryLimitStep,
		DefaultCategoryLimit,
	)
}

// CategoryLimit returns the current quota for quota checks at create time.
func (s *Service) CategoryLimit(
	ctx context.Context,
	userID string,
) (int, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return 0, err
	}
	return user.CategoryLimit, nil
}

// AdStatus reports the user's current entitlements: whether ads are
// suppressed (expiry honored), the suppression deadline, and the
// category quota.
func (s *Service) AdStatus(
	ctx context.Context,
	userID string,
) (bool, *time.Time, int, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return false, nil, 0, err
	}
	return user.IsAdFree(), user.AdFreeUntil, user.CategoryLimit, nil
}

func (s *Service) GetUser(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) UpdateUser(
	ctx context.Context,
	id string,
	req UpdateUserRequest,
) (*User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *Service) UpdateUserRole(
	ctx context.Context,
	id, role string,
) (*User, error) {
	if role != RoleUser && role != RoleAdmin {
		return nil, fmt.Errorf(
			"update role: invalid role %q: %w",
			role,
			core.ErrInvalidInput,
		)
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Role = role

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *Service) ListUsers(
	ctx context.Context,
	params ListUsersParams,
) ([]User, int, error) {
	return s.repo.List(ctx, params)
}

func (s *Service) GetMe(ctx context.Context, userID string) (*User, error) {
	if userID == "" {
		return nil, fmt.Errorf("get me: %w", core.ErrUnauthorized)
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (s *Service) UpdateMe(
	ctx context.Context,
	userID string,
	req UpdateUserRequest,
) (*User, error) {
	if userID == "" {
		return nil, fmt.Errorf("update me: %w", core.ErrUnauthorized)
	}

	return s.UpdateUser(ctx, userID, req)
}

func (s *Service) EmailExists(
	ctx context.Context,
	email string,
) (bool, error) {
	exists, err := s.repo.ExistsByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func toUserInfo(u *User) *auth.UserInfo {
	return &auth.UserInfo{
		ID:                    u.ID,
		Email:                 u.Email,
		Name:                  u.Name,
		PasswordHash:          u.PasswordHash,
		Role:                  u.Role,
		Verified:              u.Verified,
		VerificationCode:      u.VerificationCode,
		VerificationExpiresAt: u.VerificationExpiresAt,
		ResetExpiresAt:        u.ResetExpiresAt,
		AdFree:                u.AdFree,
		AdFreeUntil:           u.AdFreeUntil,
		CategoryLimit:         u.CategoryLimit,
		TokenVersion:          u.TokenVersion,
		CreatedAt:             u.CreatedAt,
	}
}

var _ auth.UserProvider = (*Service)(nil)
