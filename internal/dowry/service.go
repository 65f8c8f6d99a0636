// AngelaMos | 2026
// service.go

package dowry

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/ozgesarac/ceyizdiz/internal/core"
)

// ImageRemover deletes a stored image (row and object). Satisfied by
// image.Service.
type ImageRemover interface {
	Delete(ctx context.Context, userID, imageID string) error
}

type Service struct {
	repo   Repository
	images ImageRemover
	logger *slog.Logger
}

func NewService(
	repo Repository,
	images ImageRemover,
	logger *slog.Logger,
) *Service {
	return &Service{repo: repo, images: images, logger: logger}
}

func (s *Service) Create(
	ctx context.Context,
	userID string,
	req CreateDowryRequest,
) (*Dowry, error) {
	exists, err := s.repo.CategoryExists(ctx, userID, req.CategoryID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("create dowry: category: %w", core.ErrNotFound)
	}

	status := req.Status
	if status == "" {
		status = StatusNotPurchased
	}

	dowry := &Dowry{
		ID:          uuid.New().String(),
		UserID:      userID,
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Location:    req.Location,
		URL:         req.URL,
		Status:      status,
		ImageID:     req.ImageID,
	}

	if err := s.repo.Create(ctx, dowry); err != nil {
		return nil, err
	}

	return dowry, nil
}

func (s *Service) Get(
	ctx context.Context,
	userID, id string,
) (*Dowry, error) {
	return s.repo.GetByID(ctx, userID, id)
}

func (s *Service) Update(
	ctx context.Context,
	userID, id string,
	req UpdateDowryRequest,
) (*Dowry, error) {
	dowry, err := s.repo.GetByID(ctx, userID, id)
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
				"update dowry: category: %w",
				core.ErrNotFound,
			)
		}
		dowry.CategoryID = *req.CategoryID
	}

	if req.Name != nil {
		dowry.Name = *req.Name
	}
	if req.Description != nil {
		dowry.Description = req.Description
	}
	if req.Price != nil {
		dowry.Price = req.Price
	}
	if req.Location != nil {
		dowry.Location = req.Location
	}
	if req.URL != nil {
		dowry.URL = req.URL
	}
	if req.ImageID != nil {
		dowry.ImageID = req.ImageID
	}

	if err := s.repo.Update(ctx, dowry); err != nil {
		return nil, err
	}

	return dowry, nil
}

func (s *Service) UpdateStatus(
	ctx context.Context,
	userID, id, status string,
) error {
	return s.repo.UpdateStatus(ctx, userID, id, status)
}

// Delete removes the dowry and its stored image, object first. An image
// failure is logged and does not block the row delete.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	dowry, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return err
	}

	if dowry.ImageID != nil {
		if err := s.images.Delete(ctx, userID, *dowry.ImageID); err != nil {
			s.logger.Error("delete dowry image",
				"dowry_id", id,
				"image_id", *dowry.ImageID,
				"error", err,
			)
		}
	}

	return s.repo.Delete(ctx, userID, id)
}

// DeleteByCategory is the category-cascade step: images of the affected
// dowries go first, then the rows in one statement.
func (s *Service) DeleteByCategory(
	ctx context.Context,
	userID, categoryID string,
) error {
	dowries, err := s.repo.ListByCategory(ctx, userID, categoryID)
	if err != nil {
		return err
	}

	for _, d := range dowries {
		if d.ImageID == nil {
			continue
		}
		if err := s.images.Delete(ctx, userID, *d.ImageID); err != nil {
			s.logger.Error("delete dowry image",
				"dowry_id", d.ID,
				"image_id", *d.ImageID,
				"error", err,
			)
		}
	}

	return s.repo.DeleteByCategory(ctx, userID, categoryID)
}

// DeleteAllForUser assumes the image purge already ran; it only clears
// rows.
func (s *Service) DeleteAllForUser(ctx context.Context, userID string) error {
	return s.repo.DeleteAllForUser(ctx, userID)
}

func (s *Service) List(
	ctx context.Context,
	userID string,
	params ListDowriesParams,
) ([]Dowry, int, error) {
	return s.repo.List(ctx, userID, params)
}

// AttachImage links an uploaded image to an owned dowry.
func (s *Service) AttachImage(
	ctx context.Context,
	userID, dowryID, imageID string,
) error {
	return s.repo.AttachImage(ctx, userID, dowryID, imageID)
}

// DetachImage is called when an image is deleted directly.
func (s *Service) DetachImage(
	ctx context.Context,
	userID, imageID string,
) error {
	return s.repo.DetachImage(ctx, userID, imageID)
}
