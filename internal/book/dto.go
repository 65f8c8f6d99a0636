// AngelaMos | 2026
// dto.go

package book

import (
	"time"
)

type CreateBookRequest struct {
	CategoryID string `json:"category_id" validate:"required,uuid4"`
	Name       string `json:"name"        validate:"required,min=1,max=200"`
	Author     string `json:"author"      validate:"omitempty,max=200"`
	Status     string `json:"status,omitempty" validate:"omitempty,oneof=purchased not_purchased"`
	Read       bool   `json:"read"`
}

type UpdateBookRequest struct {
	CategoryID *string `json:"category_id,omitempty" validate:"omitempty,uuid4"`
	Name       *string `json:"name,omitempty"   validate:"omitempty,min=1,max=200"`
	Author     *string `json:"author,omitempty" validate:"omitempty,max=200"`
	Read       *bool   `json:"read,omitempty"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=purchased not_purchased"`
}

type BookResponse struct {
	ID         string    `json:"id"`
	CategoryID string    `json:"category_id"`
	Name       string    `json:"name"`
	Author     string    `json:"author"`
	Status     string    `json:"status"`
	Read       bool      `json:"read"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type ListBooksParams struct {
	Page       int
	PageSize   int
	Search     string
	Status     string
	CategoryID string
}

func (p *ListBooksParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 20
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
}

func (p *ListBooksParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

func ToBookResponse(b *Book) BookResponse {
	return BookResponse{
		ID:         b.ID,
		CategoryID: b.CategoryID,
		Name:       b.Name,
		Author:     b.Author,
		Status:     b.Status,
		Read:       b.Read,
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
}

func ToBookResponseList(books []Book) []BookResponse {
	responses := make([]BookResponse, 0, len(books))
	for _, b := range books {
		responses = append(responses, ToBookResponse(&b))
	}
	return responses
}
