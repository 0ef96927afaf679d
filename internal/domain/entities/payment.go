package entities

import "time"

// PaymentStatus represents the payment lifecycle.
//
// CREATED is written before the gateway is called; exactly one later update
// moves the payment to SUCCESS or ERROR. Both are terminal for this flow.

type PaymentStatus string

const (
	PaymentStatusCreated PaymentStatus = "CREATED"
	PaymentStatusSuccess PaymentStatus = "SUCCESS"
	PaymentStatusError   PaymentStatus = "ERROR"
)

// Payment is one attempt to pay against a Product, persisted in DynamoDB.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (external_id-index): external_id
//   - GSI2 (product_external_id-index): product_external_id
//
// RemotePaymentID and Amount stay nil until the gateway call succeeds; a
// SUCCESS payment always carries both, an ERROR payment carries neither.
type Payment struct {
	ID                string        `json:"id"`
	ExternalID        string        `json:"external_id"`
	ProductID         string        `json:"product_id"`
	ProductExternalID string        `json:"product_external_id"`
	RemotePaymentID   *string       `json:"remote_payment_id,omitempty"`
	ContinuationURL   string        `json:"continuation_url,omitempty"`
	Amount            *int64        `json:"amount,omitempty"`
	Status            PaymentStatus `json:"status"`
	ReferenceNumber   string        `json:"reference_number,omitempty"`
	CreatedAt         time.Time     `json:"created_at"`

	// Transient gateway failure detail, used only to map an ERROR outcome to
	// an HTTP response within the same request. Never persisted.
	ErrorHTTPStatus int    `json:"-"`
	ErrorCode       string `json:"-"`
}

// Terminal reports whether the payment reached SUCCESS or ERROR.
func (p Payment) Terminal() bool {
	return p.Status == PaymentStatusSuccess || p.Status == PaymentStatusError
}
