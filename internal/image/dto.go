// AngelaMos | 2026
// dto.go

package image

import (
	"time"
)

type ImageResponse struct {
	ID          string    `json:"id"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	DowryID     *string   `json:"dowry_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type OCRResponse struct {
	Title   string `json:"title"`
	Author  string `json:"author"`
	Matched bool   `json:"matched"`
}

func ToImageResponse(i *Image) ImageResponse {
	return ImageResponse{
		ID:          i.ID,
		ContentType: i.ContentType,
		SizeBytes:   i.SizeBytes,
		DowryID:     i.DowryID,
		CreatedAt:   i.CreatedAt,
	}
}
