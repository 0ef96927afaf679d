package request

// PaymentCreateRequest carries the optional per-payment overrides. Amount is
// required when the product has no price; Reference is honored only when the
// product captures references.
type PaymentCreateRequest struct {
	Amount    *int64 `json:"amount"`
	Reference string `json:"reference"`
}
