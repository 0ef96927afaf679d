package handlers

import (
	"errors"
	"log"
	"net/http"

	"paylink/internal/adapter/http/dto/request"
	"paylink/internal/adapter/http/dto/response"
	"paylink/internal/domain/entities"
	"paylink/internal/usecase"
	"paylink/pkg"

	"github.com/gin-gonic/gin"
)

// ProductHandler handles the administrative product endpoints.

type ProductHandler struct {
	usecase usecase.IProductUseCase
}

func NewProductHandler(uc usecase.IProductUseCase) *ProductHandler {
	return &ProductHandler{usecase: uc}
}

// CreateProduct registers a new payment template.
//
// @Summary      Create product
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        product  body      request.ProductCreateRequest  true  "Product template"
// @Success      201      {object}  response.ProductResponse
// @Failure      400      {object}  pkg.HTTPError
// @Router       /products [post]
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req request.ProductCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[product][handler] invalid payload err=%v", err)
		appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	created, err := h.usecase.CreateProduct(c.Request.Context(), usecase.CreateProductInput{
		Name:             req.Name,
		Description:      req.Description,
		Price:            req.Price,
		ReturnURL:        req.ReturnURL,
		APIToken:         req.APIToken,
		CaptureReference: req.CaptureReference,
	})
	if err != nil {
		log.Printf("[product][handler] create failed err=%v", err)
		appErr := mapProductError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[product][handler] create success product_id=%s", created.ExternalID)

	c.JSON(http.StatusCreated, response.FromProduct(created))
}

// GetProductByID returns one product template.
//
// @Summary      Get product
// @Tags         products
// @Produce      json
// @Param        product_id  path      string  true  "Product external id"
// @Success      200         {object}  response.ProductResponse
// @Failure      404         {object}  pkg.HTTPError
// @Router       /products/{product_id} [get]
func (h *ProductHandler) GetProductByID(c *gin.Context) {
	productID := c.Param("product_id")

	p, err := h.usecase.GetByExternalID(c.Request.Context(), productID)
	if err != nil {
		log.Printf("[product][handler] get failed product_id=%s err=%v", productID, err)
		appErr := mapProductError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromProduct(p))
}

// UpdateProductStatus activates or deactivates a product.
//
// @Summary      Update product status
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        product_id  path      string                        true  "Product external id"
// @Param        status      body      request.ProductStatusRequest  true  "activate or deactivate"
// @Success      200         {object}  response.ProductResponse
// @Failure      400         {object}  pkg.HTTPError
// @Failure      404         {object}  pkg.HTTPError
// @Router       /products/{product_id}/status [patch]
func (h *ProductHandler) UpdateProductStatus(c *gin.Context) {
	productID := c.Param("product_id")

	var req request.ProductStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[product][handler] invalid status payload product_id=%s err=%v", productID, err)
		appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	action, err := req.ResolveAction()
	if err != nil {
		appErr := mapProductError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	var updated entities.Product
	switch action {
	case "activate":
		updated, err = h.usecase.Activate(c.Request.Context(), productID)
	case "deactivate":
		updated, err = h.usecase.Deactivate(c.Request.Context(), productID)
	}
	if err != nil {
		log.Printf("[product][handler] status update failed product_id=%s action=%s err=%v", productID, action, err)
		appErr := mapProductError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[product][handler] status update success product_id=%s status=%s", productID, updated.Status)

	c.JSON(http.StatusOK, response.FromProduct(updated))
}

// UpdateProductPrice reprices a product.
//
// @Summary      Update product price
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        product_id  path      string                       true  "Product external id"
// @Param        price       body      request.ProductPriceRequest  true  "New price in minor units"
// @Success      200         {object}  response.ProductResponse
// @Failure      400         {object}  pkg.HTTPError
// @Failure      404         {object}  pkg.HTTPError
// @Router       /products/{product_id}/price [patch]
func (h *ProductHandler) UpdateProductPrice(c *gin.Context) {
	productID := c.Param("product_id")

	var req request.ProductPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[product][handler] invalid price payload product_id=%s err=%v", productID, err)
		appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	updated, err := h.usecase.UpdatePrice(c.Request.Context(), productID, req.Price)
	if err != nil {
		log.Printf("[product][handler] price update failed product_id=%s err=%v", productID, err)
		appErr := mapProductError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[product][handler] price update success product_id=%s", productID)

	c.JSON(http.StatusOK, response.FromProduct(updated))
}

func mapProductError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidProductName):
		return pkg.NewDomainErrorSimple("INVALID_PRODUCT_NAME", "Product name is required", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidReturnURL):
		return pkg.NewDomainErrorSimple("INVALID_RETURN_URL", "Return url must be a valid http(s) url", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidProductPrice):
		return pkg.NewDomainErrorSimple("INVALID_PRICE", "Price must be a positive amount in minor units", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrMissingAPIToken):
		return pkg.NewDomainErrorSimple("MISSING_API_TOKEN", "A gateway api token is required", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidProductExternalID):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, request.ErrUnknownStatusAction):
		return pkg.NewDomainErrorSimple("INVALID_STATUS_ACTION", "Action must be activate or deactivate", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrProductNotFound):
		return pkg.NewDomainErrorSimple("PRODUCT_NOT_FOUND", "Product not found", http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
