// AngelaMos | 2026
// service.go

package book

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ozgesarac/ceyizdiz/internal/core"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(
	ctx context.Context,
	userID string,
	req CreateBookRequest,
) (*Book, error) {
	exists, err := s.repo.CategoryExists(ctx, userID, req.CategoryID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("create book: category: %w", core.ErrNotFound)
	}

	status := req.Status
	if status == "" {
		status = StatusNotPurchased
	}

	book := &Book{
		ID:         uuid.New().String(),
		UserID:     userID,
		CategoryID: req.CategoryID,
		Name:       req.Name,
		Author:     req.Author,
		Status:     status,
		Read:       req.Read,
	}

	if err := s.repo.Create(ctx, book); err != nil {
		return nil, err
	}

	return book, nil
}

func (s *Service) Get(ctx context.Context, userID, id string) (*Book, error) {
	return s.repo.GetByID(ctx, userID, id)
}

func (s *Service) Update(
	ctx context.Context,
	userID, id string,
	req UpdateBookRequest,
) (*Book, error) {
	book, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.CategoryID != nil {
		exists, err := s.repo.CategoryExists(ctx, userID, *req.CategoryID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, fmt.Errorf(
				"update book: category: %w",
				core.ErrNotFound,
			)
		}
		book.CategoryID = *req.CategoryID
	}

	if req.Name != nil {
		book.Name = *req.Name
	}
	if req.Author != nil {
		book.Author = *req.Author
	}
	if req.Read != nil {
		book.Read = *req.Read
	}

	if err := s.repo.Update(ctx, book); err != nil {
		return nil, err
	}

	return book, nil
}

func (s *Service) UpdateStatus(
	ctx context.Context,
	userID, id, status string,
) error {
	return s.repo.UpdateStatus(ctx, userID, id, status)
}

func (s *Service) Delete(ctx context.Context, userID, id string) error {
	return s.repo.Delete(ctx, userID, id)
}

func (s *Service) DeleteByCategory(
	ctx context.Context,
	userID, categoryID string,
) error {
	return s.repo.DeleteByCategory(ctx, userID, categoryID)
}

func (s *Service) DeleteAllForUser(ctx context.Context, userID string) error {
	return s.repo.DeleteAllForUser(ctx, userID)
}

func (s *Service) List(
	ctx context.Context,
	userID string,
	params ListBooksParams,
) ([]Book, int, error) {
	return s.repo.List(ctx, userID, params)
}
