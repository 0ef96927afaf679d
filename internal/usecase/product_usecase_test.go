package usecase

import (
	"context"
	"errors"
	"testing"

	"paylink/internal/domain/entities"
	mock_interfaces "paylink/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func TestProductUseCase_CreateProduct(t *testing.T) {
	validInput := func() CreateProductInput {
		return CreateProductInput{
			Name:      "Donation",
			Description: "One-off donation",
			ReturnURL: "https://return.example/done",
			APIToken:  "tok-1",
		}
	}

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIProductRepository(ctrl)
		uc := NewProductUseCase(repo)

		var created entities.Product
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p entities.Product) (entities.Product, error) {
			created = p
			return p, nil
		})

		in := validInput()
		in.Price = int64Ptr(1050)
		in.CaptureReference = true

		got, err := uc.CreateProduct(context.Background(), in)
		if err != nil {
			t.Fatalf("expected success, got %v", err)
		}
		if created.ID == "" || created.ExternalID == "" {
			t.Fatal("expected generated ids")
		}
		if created.Status != entities.ProductStatusActive {
			t.Fatalf("expected ACTIVE, got %s", created.Status)
		}
		if created.Price == nil || *created.Price != 1050 {
			t.Fatalf("expected price 1050, got %v", created.Price)
		}
		if !created.CaptureReference {
			t.Fatal("expected capture reference flag")
		}
		if got.ExternalID != created.ExternalID {
			t.Fatal("expected the created product back")
		}
	})

	t.Run("empty name", func(t *testing.T) {
		uc := NewProductUseCase(nil)
		in := validInput()
		in.Name = "  "
		if _, err := uc.CreateProduct(context.Background(), in); !errors.Is(err, ErrInvalidProductName) {
			t.Fatalf("expected ErrInvalidProductName, got %v", err)
		}
	})

	t.Run("bad return url", func(t *testing.T) {
		uc := NewProductUseCase(nil)
		in := validInput()
		in.ReturnURL = "not a url"
		if _, err := uc.CreateProduct(context.Background(), in); !errors.Is(err, ErrInvalidReturnURL) {
			t.Fatalf("expected ErrInvalidReturnURL, got %v", err)
		}
	})

	t.Run("missing api token", func(t *testing.T) {
		uc := NewProductUseCase(nil)
		in := validInput()
		in.APIToken = ""
		if _, err := uc.CreateProduct(context.Background(), in); !errors.Is(err, ErrMissingAPIToken) {
			t.Fatalf("expected ErrMissingAPIToken, got %v", err)
		}
	})

	t.Run("non-positive price", func(t *testing.T) {
		uc := NewProductUseCase(nil)
		in := validInput()
		in.Price = int64Ptr(0)
		if _, err := uc.CreateProduct(context.Background(), in); !errors.Is(err, ErrInvalidProductPrice) {
			t.Fatalf("expected ErrInvalidProductPrice, got %v", err)
		}
	})
}

func TestProductUseCase_StatusAndPrice(t *testing.T) {
	t.Run("deactivate", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIProductRepository(ctrl)
		uc := NewProductUseCase(repo)

		repo.EXPECT().UpdateStatusByExternalID(gomock.Any(), "prod-1", entities.ProductStatusInactive).
			Return(entities.Product{ID: "row-1", ExternalID: "prod-1", Status: entities.ProductStatusInactive}, nil)

		got, err := uc.Deactivate(context.Background(), "prod-1")
		if err != nil || got.Status != entities.ProductStatusInactive {
			t.Fatalf("expected INACTIVE, got %v %v", got, err)
		}
	})

	t.Run("activate unknown product", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIProductRepository(ctrl)
		uc := NewProductUseCase(repo)

		repo.EXPECT().UpdateStatusByExternalID(gomock.Any(), "ghost", entities.ProductStatusActive).
			Return(entities.Product{}, nil)

		if _, err := uc.Activate(context.Background(), "ghost"); !errors.Is(err, ErrProductNotFound) {
			t.Fatalf("expected ErrProductNotFound, got %v", err)
		}
	})

	t.Run("update price", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIProductRepository(ctrl)
		uc := NewProductUseCase(repo)

		repo.EXPECT().UpdatePriceByExternalID(gomock.Any(), "prod-1", int64(2500)).
			Return(entities.Product{ID: "row-1", ExternalID: "prod-1", Price: int64Ptr(2500)}, nil)

		got, err := uc.UpdatePrice(context.Background(), "prod-1", 2500)
		if err != nil || got.Price == nil || *got.Price != 2500 {
			t.Fatalf("expected price 2500, got %v %v", got, err)
		}
	})

	t.Run("update price rejects non-positive", func(t *testing.T) {
		uc := NewProductUseCase(nil)
		if _, err := uc.UpdatePrice(context.Background(), "prod-1", 0); !errors.Is(err, ErrInvalidProductPrice) {
			t.Fatalf("expected ErrInvalidProductPrice, got %v", err)
		}
	})
}

func TestProductUseCase_GetByExternalID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := mock_interfaces.NewMockIProductRepository(ctrl)
	uc := NewProductUseCase(repo)

	t.Run("found", func(t *testing.T) {
		repo.EXPECT().GetByExternalID(gomock.Any(), "prod-1").
			Return(entities.Product{ID: "row-1", ExternalID: "prod-1"}, nil)
		got, err := uc.GetByExternalID(context.Background(), "prod-1")
		if err != nil || got.ExternalID != "prod-1" {
			t.Fatalf("expected prod-1, got %v %v", got, err)
		}
	})

	t.Run("not found", func(t *testing.T) {
		repo.EXPECT().GetByExternalID(gomock.Any(), "ghost").Return(entities.Product{}, nil)
		if _, err := uc.GetByExternalID(context.Background(), "ghost"); !errors.Is(err, ErrProductNotFound) {
			t.Fatalf("expected ErrProductNotFound, got %v", err)
		}
	})

	t.Run("empty id", func(t *testing.T) {
		if _, err := uc.GetByExternalID(context.Background(), " "); !errors.Is(err, ErrInvalidProductExternalID) {
			t.Fatalf("expected ErrInvalidProductExternalID, got %v", err)
		}
	})
}
