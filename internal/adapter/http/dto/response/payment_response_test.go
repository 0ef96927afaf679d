package response

import (
	"reflect"
	"testing"
	"time"

	"paylink/internal/domain/entities"
)

func TestFromPayment_Links(t *testing.T) {
	remote := "gw-1"
	amount := int64(1050)
	success := entities.Payment{
		ExternalID:        "pay-1",
		ProductExternalID: "prod-1",
		RemotePaymentID:   &remote,
		Amount:            &amount,
		ContinuationURL:   "https://next.example",
		Status:            entities.PaymentStatusSuccess,
		CreatedAt:         time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}

	got := FromPayment(success)
	if len(got.Links) != 2 {
		t.Fatalf("expected self and next links, got %v", got.Links)
	}
	if got.Links[0].Rel != "self" || got.Links[0].Href != "/v1/payments/pay-1" {
		t.Fatalf("unexpected self link: %v", got.Links[0])
	}
	if got.Links[1].Rel != "next" || got.Links[1].Href != "https://next.example" {
		t.Fatalf("unexpected next link: %v", got.Links[1])
	}

	errRow := entities.Payment{ExternalID: "pay-2", ProductExternalID: "prod-1", Status: entities.PaymentStatusError}
	gotErr := FromPayment(errRow)
	if len(gotErr.Links) != 1 || gotErr.Links[0].Rel != "self" {
		t.Fatalf("expected only a self link without continuation, got %v", gotErr.Links)
	}
}

func TestFromPayment_RenderingIsIdempotent(t *testing.T) {
	remote := "gw-1"
	amount := int64(1050)
	p := entities.Payment{
		ExternalID:        "pay-1",
		ProductExternalID: "prod-1",
		RemotePaymentID:   &remote,
		Amount:            &amount,
		ContinuationURL:   "https://next.example",
		Status:            entities.PaymentStatusSuccess,
		CreatedAt:         time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}

	first := FromPayment(p)
	second := FromPayment(p)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical renderings, got %+v vs %+v", first, second)
	}
}
