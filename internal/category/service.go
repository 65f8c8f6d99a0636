// AngelaMos | 2026
// service.go

package category

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

var ErrQuotaExceeded = errors.New("category limit reached")

// QuotaProvider reports the caller's category quota. Satisfied by
// user.Service.
type QuotaProvider interface {
	CategoryLimit(ctx context.Context, userID string) (int, error)
}

// DowryStore and BookStore are the slices of the dowry/book services the
// cascade needs.
type DowryStore interface {
	DeleteByCategory(ctx context.Context, userID, categoryID string) error
	DeleteAllForUser(ctx context.Context, userID string) error
}

type BookStore interface {
	DeleteByCategory(ctx context.Context, userID, categoryID string) error
	DeleteAllForUser(ctx context.Context, userID string) error
}

// ImageStore removes every stored object a user owns, S3 side included.
type ImageStore interface {
	DeleteAllForUser(ctx context.Context, userID string) error
}

type PurchaseStore interface {
	DeleteAllForUser(ctx context.Context, userID string) error
}

type Service struct {
	repo      Repository
	quota     QuotaProvider
	dowries   DowryStore
	books     BookStore
	images    ImageStore
	purchases PurchaseStore
	logger    *slog.Logger
}

func NewService(
	repo Repository,
	quota QuotaProvider,
	dowries DowryStore,
	books BookStore,
	images ImageStore,
	purchases PurchaseStore,
	logger *slog.Logger,
) *Service {
	return &Service{
		repo:      repo,
		quota:     quota,
		dowries:   dowries,
		books:     books,
		images:    images,
		purchases: purchases,
		logger:    logger,
	}
}

func (s *Service) Create(
	ctx context.Context,
	userID string,
	req CreateCategoryRequest,
) (*Category, error) {
	limit, err := s.quota.CategoryLimit(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get category limit: %w", err)
	}

	count, err := s.repo.CountForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count categories: %w", err)
	}

	if count >= limit {
		return nil, ErrQuotaExceeded
	}

	category := &Category{
		ID:     uuid.New().String(),
		UserID: userID,
		Name:   req.Name,
		Icon:   req.Icon,
	}

	if err := s.repo.Create(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

func (s *Service) Get(
	ctx context.Context,
	userID, id string,
) (*Category, error) {
	return s.repo.GetByID(ctx, userID, id)
}

func (s *Service) Update(
	ctx context.Context,
	userID, id string,
	req UpdateCategoryRequest,
) (*Category, error) {
	category, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Icon != nil {
		category.Icon = req.Icon
	}

	if err := s.repo.Update(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

// Delete cascades in application code, children first: the category's
// dowries (with their stored images), then its books, then the row
// itself. Steps are sequential and not transactional; a failure leaves
// earlier deletions in place.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.repo.GetByID(ctx, userID, id); err != nil {
		return err
	}

	if err := s.dowries.DeleteByCategory(ctx, userID, id); err != nil {
		return fmt.Errorf("cascade dowries: %w", err)
	}

	if err := s.books.DeleteByCategory(ctx, userID, id); err != nil {
		return fmt.Errorf("cascade books: %w", err)
	}

	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return err
	}

	return nil
}

func (s *Service) List(
	ctx context.Context,
	userID string,
	params ListCategoriesParams,
) ([]Category, int, error) {
	return s.repo.List(ctx, userID, params)
}

// PurgeUser removes everything the user owns ahead of account deletion:
// images (including S3 objects), dowries, books, categories, purchases.
func (s *Service) PurgeUser(ctx context.Context, userID string) error {
	if err := s.images.DeleteAllForUser(ctx, userID); err != nil {
		return fmt.Errorf("purge images: %w", err)
	}

	if err := s.dowries.DeleteAllForUser(ctx, userID); err != nil {
		return fmt.Errorf("purge dowries: %w", err)
	}

	if err := s.books.DeleteAllForUser(ctx, userID); err != nil {
		return fmt.Errorf("purge books: %w", err)
	}

	if err := s.repo.DeleteAllForUser(ctx, userID); err != nil {
		return fmt.Errorf("purge categories: %w", err)
	}

	if err := s.purchases.DeleteAllForUser(ctx, userID); err != nil {
		return fmt.Errorf("purge purchases: %w", err)
	}

	s.logger.Info("purged user data", "user_id", userID)

	return nil
}
