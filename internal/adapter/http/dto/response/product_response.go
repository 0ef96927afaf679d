package response

import (
	"time"

	"paylink/internal/domain/entities"
)

// ProductResponse is the caller-facing product view. The gateway API token
// never leaves the service.
type ProductResponse struct {
	ProductID        string    `json:"product_id"`
	Name             string    `json:"name"`
	Description      string    `json:"description,omitempty"`
	Price            *int64    `json:"price,omitempty"`
	ReturnURL        string    `json:"return_url"`
	CaptureReference bool      `json:"capture_reference"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func FromProduct(p entities.Product) ProductResponse {
	return ProductResponse{
		ProductID:        p.ExternalID,
		Name:             p.Name,
		Description:      p.Description,
		Price:            p.Price,
		ReturnURL:        p.ReturnURL,
		CaptureReference: p.CaptureReference,
		Status:           string(p.Status),
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}
