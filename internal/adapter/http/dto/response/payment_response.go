package response

import (
	"time"

	"paylink/internal/domain/entities"
)

// Link is one hypermedia relation on a payment.
type Link struct {
	Rel  string `json:"rel"`
	Href string `json:"href"`
}

type PaymentResponse struct {
	PaymentID         string    `json:"payment_id"`
	ProductExternalID string    `json:"product_id"`
	RemotePaymentID   *string   `json:"remote_payment_id,omitempty"`
	Amount            *int64    `json:"amount,omitempty"`
	Status            string    `json:"status"`
	ReferenceNumber   string    `json:"reference_number,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	Links             []Link    `json:"links"`
}

// FromPayment renders the caller-facing payment. It is a pure function of the
// payment row: rendering the same row twice yields identical output,
// including the link list — self always, next only when the gateway supplied
// a continuation URL.
func FromPayment(p entities.Payment) PaymentResponse {
	links := []Link{{Rel: "self", Href: "/v1/payments/" + p.ExternalID}}
	if p.ContinuationURL != "" {
		links = append(links, Link{Rel: "next", Href: p.ContinuationURL})
	}
	return PaymentResponse{
		PaymentID:         p.ExternalID,
		ProductExternalID: p.ProductExternalID,
		RemotePaymentID:   p.RemotePaymentID,
		Amount:            p.Amount,
		Status:            string(p.Status),
		ReferenceNumber:   p.ReferenceNumber,
		CreatedAt:         p.CreatedAt,
		Links:             links,
	}
}

type PaymentListResponse struct {
	Payments []PaymentResponse `json:"payments"`
}

func FromPayments(payments []entities.Payment) PaymentListResponse {
	out := PaymentListResponse{Payments: make([]PaymentResponse, 0, len(payments))}
	for _, p := range payments {
		out.Payments = append(out.Payments, FromPayment(p))
	}
	return out
}
