package entities

import "time"

// ProductStatus represents whether a product can accept new payments.
//
// Domain notes:
//   - Products are payment templates; they are immutable once referenced by
//     payments, except for status and price.
//   - Only ACTIVE products resolve during payment creation.

type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "ACTIVE"
	ProductStatusInactive ProductStatus = "INACTIVE"
)

// Product is the reusable payment template persisted in DynamoDB.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (external_id-index): external_id
//
// Monetary representation:
//   - Price is in minor currency units (e.g. cents). A nil Price means the
//     caller must supply an amount when creating a payment.
type Product struct {
	ID               string        `json:"id"`
	ExternalID       string        `json:"external_id"`
	Name             string        `json:"name"`
	Description      string        `json:"description"`
	Price            *int64        `json:"price,omitempty"`
	ReturnURL        string        `json:"return_url"`
	APIToken         string        `json:"-"`
	CaptureReference bool          `json:"capture_reference"`
	Status           ProductStatus `json:"status"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}

// Active reports whether the product accepts new payments.
func (p Product) Active() bool {
	return p.Status == ProductStatusActive
}
