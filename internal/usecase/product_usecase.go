package usecase

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"paylink/internal/domain/entities"
	"paylink/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrInvalidProductName  = errors.New("invalid product name")
	ErrInvalidReturnURL    = errors.New("invalid return url")
	ErrInvalidProductPrice = errors.New("invalid product price")
	ErrMissingAPIToken     = errors.New("missing gateway api token")
	ErrInvalidStatusAction = errors.New("invalid status action")
)

// IProductUseCase exposes the administrative product operations.
//
// Products are payment templates; after creation only status and price may
// change.

type IProductUseCase interface {
	CreateProduct(ctx context.Context, in CreateProductInput) (entities.Product, error)
	GetByExternalID(ctx context.Context, externalID string) (entities.Product, error)
	Activate(ctx context.Context, externalID string) (entities.Product, error)
	Deactivate(ctx context.Context, externalID string) (entities.Product, error)
	UpdatePrice(ctx context.Context, externalID string, price int64) (entities.Product, error)
}

// CreateProductInput is the administrative create payload. Price is optional:
// a nil price defers the amount decision to payment time.
type CreateProductInput struct {
	Name             string
	Description      string
	Price            *int64
	ReturnURL        string
	APIToken         string
	CaptureReference bool
}

type ProductUseCase struct {
	repo interfaces.IProductRepository
}

var _ IProductUseCase = (*ProductUseCase)(nil)

func NewProductUseCase(repo interfaces.IProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

func (u *ProductUseCase) CreateProduct(ctx context.Context, in CreateProductInput) (entities.Product, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return entities.Product{}, ErrInvalidProductName
	}
	returnURL := strings.TrimSpace(in.ReturnURL)
	if !validReturnURL(returnURL) {
		return entities.Product{}, ErrInvalidReturnURL
	}
	if strings.TrimSpace(in.APIToken) == "" {
		return entities.Product{}, ErrMissingAPIToken
	}
	if in.Price != nil && *in.Price <= 0 {
		return entities.Product{}, ErrInvalidProductPrice
	}

	now := time.Now().UTC()
	p := entities.Product{
		ID:               uuid.NewString(),
		ExternalID:       uuid.NewString(),
		Name:             name,
		Description:      strings.TrimSpace(in.Description),
		Price:            in.Price,
		ReturnURL:        returnURL,
		APIToken:         strings.TrimSpace(in.APIToken),
		CaptureReference: in.CaptureReference,
		Status:           entities.ProductStatusActive,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	return u.repo.Create(ctx, p)
}

func (u *ProductUseCase) Activate(ctx context.Context, externalID string) (entities.Product, error) {
	return u.updateStatus(ctx, externalID, entities.ProductStatusActive)
}

func (u *ProductUseCase) Deactivate(ctx context.Context, externalID string) (entities.Product, error) {
	return u.updateStatus(ctx, externalID, entities.ProductStatusInactive)
}

func (u *ProductUseCase) updateStatus(ctx context.Context, externalID string, status entities.ProductStatus) (entities.Product, error) {
	externalID = strings.TrimSpace(externalID)
	if externalID == "" {
		return entities.Product{}, ErrInvalidProductExternalID
	}

	updated, err := u.repo.UpdateStatusByExternalID(ctx, externalID, status)
	if err != nil {
		return entities.Product{}, err
	}
	if updated.ID == "" {
		return entities.Product{}, ErrProductNotFound
	}
	return updated, nil
}

func (u *ProductUseCase) UpdatePrice(ctx context.Context, externalID string, price int64) (entities.Product, error) {
	externalID = strings.TrimSpace(externalID)
	if externalID == "" {
		return entities.Product{}, ErrInvalidProductExternalID
	}
	if price <= 0 {
		return entities.Product{}, ErrInvalidProductPrice
	}

	updated, err := u.repo.UpdatePriceByExternalID(ctx, externalID, price)
	if err != nil {
		return entities.Product{}, err
	}
	if updated.ID == "" {
		return entities.Product{}, ErrProductNotFound
	}
	return updated, nil
}

func (u *ProductUseCase) GetByExternalID(ctx context.Context, externalID string) (entities.Product, error) {
	externalID = strings.TrimSpace(externalID)
	if externalID == "" {
		return entities.Product{}, ErrInvalidProductExternalID
	}

	p, err := u.repo.GetByExternalID(ctx, externalID)
	if err != nil {
		return entities.Product{}, err
	}
	if p.ID == "" {
		return entities.Product{}, ErrProductNotFound
	}
	return p, nil
}

func validReturnURL(raw string) bool {
	if raw == "" {
		return false
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
}
