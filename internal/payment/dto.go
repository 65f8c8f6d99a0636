// AngelaMos | 2026
// dto.go

package payment

import (
	"time"
)

type VerifyPurchaseRequest struct {
	PurchaseToken string `json:"purchase_token" validate:"required,max=512"`
	ProductID     string `json:"product_id"     validate:"required,oneof=remove_ads extra_categories"`
	OrderID       string `json:"order_id"       validate:"required,max=255"`
}

type PurchaseResponse struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	OrderID   string    `json:"order_id"`
	State     string    `json:"state"`
	CreatedAt time.Time `json:"created_at"`
}

type StatusResponse struct {
	AdFree        bool               `json:"ad_free"`
	AdFreeUntil   *time.Time         `json:"ad_free_until,omitempty"`
	CategoryLimit int                `json:"category_limit"`
	Purchases     []PurchaseResponse `json:"purchases"`
}

func ToPurchaseResponse(p *Purchase) PurchaseResponse {
	return PurchaseResponse{
		ID:        p.ID,
		ProductID: p.ProductID,
		OrderID:   p.OrderID,
		State:     p.State,
		CreatedAt: p.CreatedAt,
	}
}

func ToPurchaseResponseList(purchases []Purchase) []PurchaseResponse {
	responses := make([]PurchaseResponse, 0, len(purchases))
	for _, p := range purchases {
		responses = append(responses, ToPurchaseResponse(&p))
	}
	return responses
}
