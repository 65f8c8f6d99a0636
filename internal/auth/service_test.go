// AngelaMos | 2026
// service_test.go

package auth

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ozgesarac/ceyizdiz/internal/core"
)

type fakeUserProvider struct {
	UserProvider
	byEmail      map[string]*UserInfo
	byID         map[string]*UserInfo
	byResetHash  map[string]*UserInfo
	markedOK     []string
	resetCleared []string
	passwords    map[string]string
	versionBumps []string
	deleted      []string
}

func newFakeUserProvider() *fakeUserProvider {
	return &fakeUserProvider{
		byEmail:     make(map[string]*UserInfo),
		byID:        make(map[string]*UserInfo),
		byResetHash: make(map[string]*UserInfo),
		passwords:   make(map[string]string),
	}
}

func (f *fakeUserProvider) GetByEmail(ctx context.Context, email string) (*UserInfo, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, core.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserProvider) GetByID(ctx context.Context, id string) (*UserInfo, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserProvider) GetByResetTokenHash(ctx context.Context, hash string) (*UserInfo, error) {
	u, ok := f.byResetHash[hash]
	if !ok {
		return nil, core.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserProvider) MarkVerified(ctx context.Context, userID string) error {
	f.markedOK = append(f.markedOK, userID)
	return nil
}

func (f *fakeUserProvider) UpdatePassword(ctx context.Context, userID, hash string) error {
	f.passwords[userID] = hash
	return nil
}

func (f *fakeUserProvider) ClearResetToken(ctx context.Context, userID string) error {
	f.resetCleared = append(f.resetCleared, userID)
	return nil
}

func (f *fakeUserProvider) IncrementTokenVersion(ctx context.Context, userID string) error {
	f.versionBumps = append(f.versionBumps, userID)
	return nil
}

func (f *fakeUserProvider) Delete(ctx context.Context, userID string) error {
	f.deleted = append(f.deleted, userID)
	return nil
}

type fakeTokenRepo struct {
	Repository
	revokedAll []string
}

func (f *fakeTokenRepo) RevokeAllForUser(ctx context.Context, userID string) error {
	f.revokedAll = append(f.revokedAll, userID)
	return nil
}

type fakePurger struct {
	purged []string
	err    error
}

func (f *fakePurger) PurgeUser(ctx context.Context, userID string) error {
	if f.err != nil {
		return f.err
	}
	f.purged = append(f.purged, userID)
	return nil
}

func newVerifyService(users *fakeUserProvider) *Service {
	return NewService(
		&fakeTokenRepo{},
		nil,
		users,
		nil,
		&fakePurger{},
		nil,
		slog.New(slog.DiscardHandler),
	)
}

func TestVerifyEmailSuccess(t *testing.T) {
	code := "123456"
	expires := time.Now().Add(time.Hour)
	users := newFakeUserProvider()
	users.byEmail["a@b.c"] = &UserInfo{
		ID:                    "u1",
		Email:                 "a@b.c",
		VerificationCode:      &code,
		VerificationExpiresAt: &expires,
	}
	svc := newVerifyService(users)

	err := svc.VerifyEmail(context.Background(), VerifyEmailRequest{
		Email: "a@b.c",
		Code:  "123456",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"u1"}, users.markedOK)
}

func TestVerifyEmailWrongCode(t *testing.T) {
	code := "123456"
	expires := time.Now().Add(time.Hour)
	users := newFakeUserProvider()
	users.byEmail["a@b.c"] = &UserInfo{
		ID:                    "u1",
		VerificationCode:      &code,
		VerificationExpiresAt: &expires,
	}
	svc := newVerifyService(users)

	err := svc.VerifyEmail(context.Background(), VerifyEmailRequest{
		Email: "a@b.c",
		Code:  "000000",
	})
	assert.ErrorIs(t, err, ErrCodeMismatch)
	assert.Empty(t, users.markedOK)
}

func TestVerifyEmailExpiredCode(t *testing.T) {
	code := "123456"
	expires := time.Now().Add(-time.Minute)
	users := newFakeUserProvider()
	users.byEmail["a@b.c"] = &UserInfo{
		ID:                    "u1",
		VerificationCode:      &code,
		VerificationExpiresAt: &expires,
	}
	svc := newVerifyService(users)

	err := svc.VerifyEmail(context.Background(), VerifyEmailRequest{
		Email: "a@b.c",
		Code:  "123456",
	})
	assert.ErrorIs(t, err, ErrCodeExpired)
}

func TestVerifyEmailAlreadyVerifiedIsIdempotent(t *testing.T) {
	users := newFakeUserProvider()
	users.byEmail["a@b.c"] = &UserInfo{ID: "u1", Verified: true}
	svc := newVerifyService(users)

	err := svc.VerifyEmail(context.Background(), VerifyEmailRequest{
		Email: "a@b.c",
		Code:  "123456",
	})
	require.NoError(t, err)
	assert.Empty(t, users.markedOK)
}

func TestVerifyEmailUnknownAddressReadsAsMismatch(t *testing.T) {
	svc := newVerifyService(newFakeUserProvider())

	err := svc.VerifyEmail(context.Background(), VerifyEmailRequest{
		Email: "ghost@b.c",
		Code:  "123456",
	})
	assert.ErrorIs(t, err, ErrCodeMismatch)
}

func TestResetPasswordInvalidToken(t *testing.T) {
	svc := newVerifyService(newFakeUserProvider())

	err := svc.ResetPassword(context.Background(), ResetPasswordRequest{
		Token:       "no-such-token",
		NewPassword: "brand new password",
	})
	assert.ErrorIs(t, err, core.ErrTokenInvalid)
}

func TestResetPasswordExpired(t *testing.T) {
	expired := time.Now().Add(-time.Minute)
	users := newFakeUserProvider()
	users.byResetHash[core.HashToken("tok")] = &UserInfo{
		ID:             "u1",
		ResetExpiresAt: &expired,
	}
	svc := newVerifyService(users)

	err := svc.ResetPassword(context.Background(), ResetPasswordRequest{
		Token:       "tok",
		NewPassword: "brand new password",
	})
	assert.ErrorIs(t, err, ErrResetExpired)
}

func TestResetPasswordRevokesSessions(t *testing.T) {
	valid := time.Now().Add(time.Hour)
	users := newFakeUserProvider()
	users.byResetHash[core.HashToken("tok")] = &UserInfo{
		ID:             "u1",
		ResetExpiresAt: &valid,
	}
	repo := &fakeTokenRepo{}
	svc := NewService(
		repo,
		nil,
		users,
		nil,
		&fakePurger{},
		nil,
		slog.New(slog.DiscardHandler),
	)

	err := svc.ResetPassword(context.Background(), ResetPasswordRequest{
		Token:       "tok",
		NewPassword: "brand new password",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, users.passwords["u1"])
	assert.Equal(t, []string{"u1"}, users.resetCleared)
	assert.Equal(t, []string{"u1"}, repo.revokedAll)
	assert.Equal(t, []string{"u1"}, users.versionBumps)
}

func TestDeleteAccountWrongPassword(t *testing.T) {
	hash, err := core.HashPassword("the real password")
	require.NoError(t, err)

	users := newFakeUserProvider()
	users.byID["u1"] = &UserInfo{ID: "u1", PasswordHash: hash}
	purger := &fakePurger{}
	svc := NewService(
		&fakeTokenRepo{},
		nil,
		users,
		nil,
		purger,
		nil,
		slog.New(slog.DiscardHandler),
	)

	err = svc.DeleteAccount(context.Background(), "u1", "wrong password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Empty(t, purger.purged)
	assert.Empty(t, users.deleted)
}

func TestDeleteAccountPurgesBeforeDeleting(t *testing.T) {
	hash, err := core.HashPassword("the real password")
	require.NoError(t, err)

	users := newFakeUserProvider()
	users.byID["u1"] = &UserInfo{ID: "u1", PasswordHash: hash}
	purger := &fakePurger{}
	repo := &fakeTokenRepo{}
	svc := NewService(
		repo,
		nil,
		users,
		nil,
		purger,
		nil,
		slog.New(slog.DiscardHandler),
	)

	err = svc.DeleteAccount(context.Background(), "u1", "the real password")
	require.NoError(t, err)
	assert.Equal(t, []string{"u1"}, purger.purged)
	assert.Equal(t, []string{"u1"}, repo.revokedAll)
	assert.Equal(t, []string{"u1"}, users.deleted)
}
