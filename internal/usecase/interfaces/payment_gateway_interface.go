package interfaces

import (
	"context"
	"fmt"
)

// GatewayRequest is the payment the gateway is asked to create.
//
// Amount is in minor currency units; the concrete client converts to
// whatever representation the provider expects.
type GatewayRequest struct {
	Amount      int64
	Reference   string
	Description string
	ReturnURL   string
}

// GatewayResponse is a successful gateway creation. ContinuationURL is empty
// when the provider returned none.
type GatewayResponse struct {
	RemotePaymentID string
	Amount          int64
	ContinuationURL string
}

// GatewayError is a failed gateway call. Code is the provider's
// machine-readable error code when one could be extracted, otherwise empty;
// HTTPStatus is 0 when the call failed before an HTTP response existed
// (network error, timeout, malformed body).
type GatewayError struct {
	HTTPStatus  int
	Code        string
	Description string
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("payment gateway error status=%d code=%s: %s", e.HTTPStatus, e.Code, e.Description)
}

// IPaymentGateway abstracts the external payment-processing API.
//
// The access token comes from the Product being paid, not from service-wide
// configuration, so it travels with every call. A failed call returns a
// *GatewayError whenever the provider's status/code could be recovered.
type IPaymentGateway interface {
	CreatePayment(ctx context.Context, apiToken string, req GatewayRequest) (GatewayResponse, error)
}
