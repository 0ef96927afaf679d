package interfaces

import (
	"context"

	"paylink/internal/domain/entities"
)

// IProductRepository abstracts DynamoDB persistence for Product.
//
// Products are payment templates. Once referenced by payments they only ever
// change status and price, so those are the only mutators.

type IProductRepository interface {
	Create(ctx context.Context, p entities.Product) (entities.Product, error)
	GetByExternalID(ctx context.Context, externalID string) (entities.Product, error)
	UpdateStatusByExternalID(ctx context.Context, externalID string, status entities.ProductStatus) (entities.Product, error)
	UpdatePriceByExternalID(ctx context.Context, externalID string, price int64) (entities.Product, error)
}
