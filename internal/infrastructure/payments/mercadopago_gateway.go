package payments

import (
	"context"
	"errors"
	"log"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"paylink/internal/usecase/interfaces"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/preference"
)

var ErrMissingAccessToken = errors.New("missing gateway access token")

// MercadoPagoGateway creates checkout preferences against Mercado Pago.
//
// The access token belongs to the product being paid, so the SDK config is
// built per call instead of once at startup. The preference response carries
// the continuation URL (init_point) the payer is redirected to.

type MercadoPagoGateway struct {
	mockMode bool
}

var _ interfaces.IPaymentGateway = (*MercadoPagoGateway)(nil)

func NewMercadoPagoGateway() *MercadoPagoGateway {
	if isPaymentGatewayMockEnabled() {
		log.Printf("[payment][gateway] mock mode enabled")
		return &MercadoPagoGateway{mockMode: true}
	}
	return &MercadoPagoGateway{}
}

func (g *MercadoPagoGateway) CreatePayment(ctx context.Context, apiToken string, req interfaces.GatewayRequest) (interfaces.GatewayResponse, error) {
	if g != nil && g.mockMode {
		id := strconv.FormatInt(time.Now().UTC().UnixNano(), 10)
		log.Printf("[payment][gateway] mock create success remote_payment_id=%s amount=%d", id, req.Amount)
		return interfaces.GatewayResponse{
			RemotePaymentID: id,
			Amount:          req.Amount,
			ContinuationURL: "https://sandbox.mercadopago.local/checkout/" + id,
		}, nil
	}

	if strings.TrimSpace(apiToken) == "" {
		log.Printf("[payment][gateway] missing access token")
		return interfaces.GatewayResponse{}, ErrMissingAccessToken
	}

	cfg, err := config.New(apiToken)
	if err != nil {
		log.Printf("[payment][gateway] failed creating sdk config err=%v", err)
		return interfaces.GatewayResponse{}, err
	}

	prefReq := preference.Request{
		Items: []preference.ItemRequest{
			{
				Title:     req.Description,
				Quantity:  1,
				UnitPrice: float64(req.Amount) / 100,
			},
		},
		ExternalReference: req.Reference,
		BackURLs: &preference.BackURLsRequest{
			Success: req.ReturnURL,
			Pending: req.ReturnURL,
			Failure: req.ReturnURL,
		},
	}

	log.Printf("[payment][gateway] create start amount=%d reference=%q", req.Amount, req.Reference)
	resp, err := preference.NewClient(cfg).Create(ctx, prefReq)
	if err != nil {
		log.Printf("[payment][gateway] sdk create failed err=%v", err)
		return interfaces.GatewayResponse{}, parseGatewayError(err)
	}

	// Preferences echo the requested charge; the amount confirmed here is the
	// one the checkout was created for.
	out := interfaces.GatewayResponse{
		RemotePaymentID: resp.ID,
		Amount:          req.Amount,
		ContinuationURL: resp.InitPoint,
	}
	log.Printf("[payment][gateway] create success remote_payment_id=%s", out.RemotePaymentID)
	return out, nil
}

var (
	statusPattern = regexp.MustCompile(`"status"\s*:\s*(\d{3})`)
	codePattern   = regexp.MustCompile(`"code"\s*:\s*"?([A-Za-z0-9_]+)"?`)
)

// parseGatewayError recovers the HTTP status and provider error code from the
// SDK's error body when present. A call that failed before any HTTP response
// (network error, timeout) yields a GatewayError with status 0 and no code.
func parseGatewayError(err error) *interfaces.GatewayError {
	msg := err.Error()
	gwErr := &interfaces.GatewayError{Description: msg}
	if m := statusPattern.FindStringSubmatch(msg); m != nil {
		if s, convErr := strconv.Atoi(m[1]); convErr == nil {
			gwErr.HTTPStatus = s
		}
	}
	if m := codePattern.FindStringSubmatch(msg); m != nil {
		gwErr.Code = m[1]
	}
	return gwErr
}

func isPaymentGatewayMockEnabled() bool {
	for _, key := range []string{"PAYMENT_GATEWAY_MOCK", "MERCADOPAGO_MOCK"} {
		v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
		switch v {
		case "1", "true", "yes", "on", "mock":
			return true
		}
	}
	return false
}
