package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"paylink/internal/adapter/http/dto/request"
	"paylink/internal/adapter/http/handlers/mocks"
	"paylink/internal/domain/entities"
	"paylink/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func TestProductHandler_CreateProduct(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("invalid payload", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIProductUseCase(ctrl)
		h := NewProductHandler(uc)

		r := gin.New()
		r.POST("/v1/products", h.CreateProduct)

		req := httptest.NewRequest(http.MethodPost, "/v1/products", bytes.NewBufferString(`{"name":"Plan"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIProductUseCase(ctrl)
		h := NewProductHandler(uc)

		r := gin.New()
		r.POST("/v1/products", h.CreateProduct)

		price := int64(1050)
		now := time.Now().UTC()
		uc.EXPECT().CreateProduct(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ any, in usecase.CreateProductInput) (entities.Product, error) {
				if in.Name != "Plan" || in.APIToken != "tok-1" || in.Price == nil || *in.Price != 1050 {
					t.Fatalf("unexpected input: %+v", in)
				}
				return entities.Product{
					ID: "id-1", ExternalID: "prod-1", Name: in.Name, Price: &price,
					ReturnURL: in.ReturnURL, APIToken: in.APIToken,
					Status: entities.ProductStatusActive, CreatedAt: now, UpdatedAt: now,
				}, nil
			})

		payload := `{"name":"Plan","price":1050,"return_url":"https://shop.test/done","api_token":"tok-1"}`
		req := httptest.NewRequest(http.MethodPost, "/v1/products", bytes.NewBufferString(payload))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["product_id"] != "prod-1" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
		if _, ok := body["api_token"]; ok {
			t.Fatalf("api_token must never be exposed: %s", w.Body.String())
		}
	})

	t.Run("validation error maps to 400", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIProductUseCase(ctrl)
		h := NewProductHandler(uc)

		r := gin.New()
		r.POST("/v1/products", h.CreateProduct)

		uc.EXPECT().CreateProduct(gomock.Any(), gomock.Any()).Return(entities.Product{}, usecase.ErrInvalidReturnURL)

		payload := `{"name":"Plan","return_url":"not-a-url","api_token":"tok-1"}`
		req := httptest.NewRequest(http.MethodPost, "/v1/products", bytes.NewBufferString(payload))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})
}

func TestProductHandler_GetProductByID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIProductUseCase(ctrl)
		h := NewProductHandler(uc)

		r := gin.New()
		r.GET("/v1/products/:product_id", h.GetProductByID)

		uc.EXPECT().GetByExternalID(gomock.Any(), "missing").Return(entities.Product{}, usecase.ErrProductNotFound)

		req := httptest.NewRequest(http.MethodGet, "/v1/products/missing", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIProductUseCase(ctrl)
		h := NewProductHandler(uc)

		r := gin.New()
		r.GET("/v1/products/:product_id", h.GetProductByID)

		uc.EXPECT().GetByExternalID(gomock.Any(), "prod-1").Return(entities.Product{
			ID: "id-1", ExternalID: "prod-1", Name: "Plan", Status: entities.ProductStatusActive,
		}, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/products/prod-1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}

func TestProductHandler_UpdateProductStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("unknown action", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIProductUseCase(ctrl)
		h := NewProductHandler(uc)

		r := gin.New()
		r.PATCH("/v1/products/:product_id/status", h.UpdateProductStatus)

		req := httptest.NewRequest(http.MethodPatch, "/v1/products/prod-1/status", bytes.NewBufferString(`{"action":"pause"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("deactivate", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIProductUseCase(ctrl)
		h := NewProductHandler(uc)

		r := gin.New()
		r.PATCH("/v1/products/:product_id/status", h.UpdateProductStatus)

		uc.EXPECT().Deactivate(gomock.Any(), "prod-1").Return(entities.Product{
			ID: "id-1", ExternalID: "prod-1", Status: entities.ProductStatusInactive,
		}, nil)

		req := httptest.NewRequest(http.MethodPatch, "/v1/products/prod-1/status", bytes.NewBufferString(`{"action":"deactivate"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["status"] != "INACTIVE" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("activate", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIProductUseCase(ctrl)
		h := NewProductHandler(uc)

		r := gin.New()
		r.PATCH("/v1/products/:product_id/status", h.UpdateProductStatus)

		uc.EXPECT().Activate(gomock.Any(), "prod-1").Return(entities.Product{
			ID: "id-1", ExternalID: "prod-1", Status: entities.ProductStatusActive,
		}, nil)

		req := httptest.NewRequest(http.MethodPatch, "/v1/products/prod-1/status", bytes.NewBufferString(`{"action":"activate"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}

func TestProductHandler_UpdateProductPrice(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("invalid price", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIProductUseCase(ctrl)
		h := NewProductHandler(uc)

		r := gin.New()
		r.PATCH("/v1/products/:product_id/price", h.UpdateProductPrice)

		uc.EXPECT().UpdatePrice(gomock.Any(), "prod-1", int64(-5)).Return(entities.Product{}, usecase.ErrInvalidProductPrice)

		req := httptest.NewRequest(http.MethodPatch, "/v1/products/prod-1/price", bytes.NewBufferString(`{"price":-5}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIProductUseCase(ctrl)
		h := NewProductHandler(uc)

		r := gin.New()
		r.PATCH("/v1/products/:product_id/price", h.UpdateProductPrice)

		price := int64(2500)
		uc.EXPECT().UpdatePrice(gomock.Any(), "prod-1", int64(2500)).Return(entities.Product{
			ID: "id-1", ExternalID: "prod-1", Price: &price, Status: entities.ProductStatusActive,
		}, nil)

		req := httptest.NewRequest(http.MethodPatch, "/v1/products/prod-1/price", bytes.NewBufferString(`{"price":2500}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}

func TestMapProductError(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{usecase.ErrInvalidProductName, http.StatusBadRequest},
		{usecase.ErrInvalidReturnURL, http.StatusBadRequest},
		{usecase.ErrInvalidProductPrice, http.StatusBadRequest},
		{usecase.ErrMissingAPIToken, http.StatusBadRequest},
		{usecase.ErrInvalidProductExternalID, http.StatusBadRequest},
		{request.ErrUnknownStatusAction, http.StatusBadRequest},
		{usecase.ErrProductNotFound, http.StatusNotFound},
		{errors.New("other"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		got := mapProductError(tc.err)
		if got.HTTPStatus != tc.code {
			t.Fatalf("for err %v expected %d got %d", tc.err, tc.code, got.HTTPStatus)
		}
	}
}
