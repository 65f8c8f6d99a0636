// AngelaMos | 2026
// dto.go

package dowry

import (
	"time"
)

type CreateDowryRequest struct {
	CategoryID  string   `json:"category_id" validate:"required,uuid4"`
	Name        string   `json:"name"        validate:"required,min=1,max=200"`
	Description *string  `json:"description,omitempty" validate:"omitempty,max=2000"`
	Price       *float64 `json:"price,omitempty"       validate:"omitempty,gte=0"`
	Location    *string  `json:"location,omitempty"    validate:"omitempty,max=200"`
	URL         *string  `json:"url,omitempty"         validate:"omitempty,url,max=500"`
	Status      string   `json:"status,omitempty"      validate:"omitempty,oneof=purchased not_purchased"`
	ImageID     *string  `json:"image_id,omitempty"    validate:"omitempty,uuid4"`
}

type UpdateDowryRequest struct {
	CategoryID  *string  `json:"category_id,omitempty" validate:"omitempty,uuid4"`
	Name        *string  `json:"name,omitempty"        validate:"omitempty,min=1,max=200"`
	Description *string  `json:"description,omitempty" validate:"omitempty,max=2000"`
	Price       *float64 `json:"price,omitempty"       validate:"omitempty,gte=0"`
	Location    *string  `json:"location,omitempty"    validate:"omitempty,max=200"`
	URL         *string  `json:"url,omitempty"         validate:"omitempty,url,max=500"`
	ImageID     *string  `json:"image_id,omitempty"    validate:"omitempty,uuid4"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=purchased not_purchased"`
}

type DowryResponse struct {
	ID          string    `json:"id"`
	CategoryID  string    `json:"category_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Price       *float64  `json:"price,omitempty"`
	Location    *string   `json:"location,omitempty"`
	URL         *string   `json:"url,omitempty"`
	Status      string    `json:"status"`
	ImageID     *string   `json:"image_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ListDowriesParams struct {
	Page       int
	PageSize   int
	Search     string
	Status     string
	CategoryID string
}

func (p *ListDowriesParams) Normalize() {
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

func (p *ListDowriesParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

func ToDowryResponse(d *Dowry) DowryResponse {
	return DowryResponse{
		ID:          d.ID,
		CategoryID:  d.CategoryID,
		Name:        d.Name,
		Description: d.Description,
		Price:       d.Price,
		Location:    d.Location,
		URL:         d.URL,
		Status:      d.Status,
		ImageID:     d.ImageID,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func ToDowryResponseList(dowries []Dowry) []DowryResponse {
	responses := make([]DowryResponse, 0, len(dowries))
	for _, d := range dowries {
		responses = append(responses, ToDowryResponse(&d))
	}
	return responses
}
