package interfaces

import (
	"context"

	"paylink/internal/domain/entities"
)

// IPaymentStore abstracts DynamoDB persistence for Payment and the
// transaction boundary durable flow steps run inside.
//
// Writes go through a PaymentTx; reads run outside any transaction. A zero
// entity with a nil error means not-found.

type IPaymentStore interface {
	BeginTx(ctx context.Context) (PaymentTx, error)
	FindProductByExternalID(ctx context.Context, externalID string) (entities.Product, error)
	GetPaymentByExternalID(ctx context.Context, externalID string) (entities.Payment, error)
	ListPaymentsByProductExternalID(ctx context.Context, productExternalID string) ([]entities.Payment, error)
}

// PaymentTx stages writes for one durable step. Nothing is visible to readers
// until Commit, which applies every staged write atomically; Rollback discards
// them. A committed or rolled-back transaction must not be reused.
type PaymentTx interface {
	CreatePayment(ctx context.Context, p entities.Payment) error
	UpdatePayment(ctx context.Context, p entities.Payment) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}
