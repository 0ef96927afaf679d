package payments

import (
	"context"
	"errors"
	"testing"

	"paylink/internal/usecase/interfaces"
)

func TestParseGatewayError(t *testing.T) {
	t.Run("status and code recovered", func(t *testing.T) {
		err := errors.New(`request failed: {"status":422,"error":"unprocessable","cause":[{"code":"P0102","description":"invalid data"}]}`)
		gwErr := parseGatewayError(err)
		if gwErr.HTTPStatus != 422 {
			t.Fatalf("expected status 422, got %d", gwErr.HTTPStatus)
		}
		if gwErr.Code != "P0102" {
			t.Fatalf("expected code P0102, got %q", gwErr.Code)
		}
	})

	t.Run("numeric code recovered", func(t *testing.T) {
		err := errors.New(`{"message":"invalid users involved","status":400,"cause":[{"code":2034}]}`)
		gwErr := parseGatewayError(err)
		if gwErr.HTTPStatus != 400 || gwErr.Code != "2034" {
			t.Fatalf("expected 400/2034, got %d/%q", gwErr.HTTPStatus, gwErr.Code)
		}
	})

	t.Run("transport failure has no status", func(t *testing.T) {
		err := errors.New("dial tcp 10.0.0.1:443: i/o timeout")
		gwErr := parseGatewayError(err)
		if gwErr.HTTPStatus != 0 || gwErr.Code != "" {
			t.Fatalf("expected bare failure, got %d/%q", gwErr.HTTPStatus, gwErr.Code)
		}
		if gwErr.Description == "" {
			t.Fatal("expected the original message kept as description")
		}
	})
}

func TestMercadoPagoGateway_MissingToken(t *testing.T) {
	t.Setenv("PAYMENT_GATEWAY_MOCK", "")
	t.Setenv("MERCADOPAGO_MOCK", "")

	g := NewMercadoPagoGateway()
	_, err := g.CreatePayment(context.Background(), "  ", interfaces.GatewayRequest{Amount: 100})
	if !errors.Is(err, ErrMissingAccessToken) {
		t.Fatalf("expected ErrMissingAccessToken, got %v", err)
	}
}

func TestMercadoPagoGateway_MockMode(t *testing.T) {
	t.Setenv("PAYMENT_GATEWAY_MOCK", "true")

	g := NewMercadoPagoGateway()
	resp, err := g.CreatePayment(context.Background(), "", interfaces.GatewayRequest{Amount: 1050})
	if err != nil {
		t.Fatalf("expected mock success, got %v", err)
	}
	if resp.RemotePaymentID == "" {
		t.Fatal("expected a generated remote payment id")
	}
	if resp.Amount != 1050 {
		t.Fatalf("expected amount 1050, got %d", resp.Amount)
	}
	if resp.ContinuationURL == "" {
		t.Fatal("expected a continuation url")
	}
}
