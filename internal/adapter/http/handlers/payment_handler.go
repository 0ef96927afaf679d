package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"paylink/internal/adapter/http/dto/request"
	"paylink/internal/adapter/http/dto/response"
	"paylink/internal/flow"
	"paylink/internal/usecase"
	"paylink/pkg"

	"github.com/gin-gonic/gin"
)

// PaymentHandler handles HTTP requests for payments.

type PaymentHandler struct {
	usecase usecase.IPaymentUseCase
}

func NewPaymentHandler(uc usecase.IPaymentUseCase) *PaymentHandler {
	return &PaymentHandler{usecase: uc}
}

// CreatePaymentByProductID creates a payment against the product in the path.
//
// @Summary      Create payment
// @Description  Creates a payment against a product template and delegates to the external gateway.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        product_id  path      string                        true   "Product external id"
// @Param        payment     body      request.PaymentCreateRequest  false  "Optional amount/reference overrides"
// @Success      201         {object}  response.PaymentResponse
// @Failure      400         {object}  pkg.HTTPError
// @Failure      404         {object}  pkg.HTTPError
// @Failure      422         {object}  pkg.HTTPError
// @Failure      502         {object}  pkg.HTTPError
// @Router       /payments/{product_id} [post]
func (h *PaymentHandler) CreatePaymentByProductID(c *gin.Context) {
	productID := c.Param("id")
	log.Printf("[payment][handler] create start product_id=%s", productID)

	var req request.PaymentCreateRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			log.Printf("[payment][handler] invalid payload product_id=%s err=%v", productID, err)
			appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
			c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
			return
		}
	}

	created, err := h.usecase.CreatePayment(c.Request.Context(), productID, usecase.CreatePaymentInput{
		Amount:    req.Amount,
		Reference: req.Reference,
	})
	if err != nil {
		log.Printf("[payment][handler] create failed product_id=%s err=%v", productID, err)
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[payment][handler] create success product_id=%s payment_id=%s status=%s", productID, created.ExternalID, created.Status)

	c.JSON(http.StatusCreated, response.FromPayment(created))
}

// GetPaymentByID returns one payment by its external id.
//
// @Summary      Get payment
// @Tags         payments
// @Produce      json
// @Param        payment_id  path      string  true  "Payment external id"
// @Success      200         {object}  response.PaymentResponse
// @Failure      404         {object}  pkg.HTTPError
// @Router       /payments/{payment_id} [get]
func (h *PaymentHandler) GetPaymentByID(c *gin.Context) {
	paymentID := c.Param("id")

	p, err := h.usecase.GetByExternalID(c.Request.Context(), paymentID)
	if err != nil {
		log.Printf("[payment][handler] get failed payment_id=%s err=%v", paymentID, err)
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromPayment(p))
}

// ListPaymentsByProductID lists every payment created against a product.
//
// @Summary      List payments by product
// @Tags         payments
// @Produce      json
// @Param        product_id  path      string  true  "Product external id"
// @Success      200         {object}  response.PaymentListResponse
// @Router       /products/{product_id}/payments [get]
func (h *PaymentHandler) ListPaymentsByProductID(c *gin.Context) {
	productID := c.Param("product_id")

	payments, err := h.usecase.ListByProductExternalID(c.Request.Context(), productID)
	if err != nil {
		log.Printf("[payment][handler] list failed product_id=%s err=%v", productID, err)
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromPayments(payments))
}

func mapPaymentError(err error) *pkg.AppError {
	var rejected *usecase.GatewayRejectedError
	var failure *usecase.GatewayFailureError

	switch {
	case errors.Is(err, usecase.ErrInvalidProductExternalID), errors.Is(err, usecase.ErrInvalidPaymentExternalID):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrAmountRequired):
		return pkg.NewDomainErrorSimple("AMOUNT_REQUIRED", "This product requires an amount per payment", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrProductNotFound):
		return pkg.NewDomainErrorSimple("PRODUCT_NOT_FOUND", "Product not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrPaymentNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_NOT_FOUND", "Payment not found", http.StatusNotFound)
	case errors.As(err, &rejected):
		msg := fmt.Sprintf("Payment rejected by the gateway (code %s)", rejected.Code)
		return pkg.NewDomainErrorSimple("PAYMENT_REJECTED", msg, http.StatusUnprocessableEntity)
	case errors.As(err, &failure):
		return pkg.NewDomainErrorSimple("PAYMENT_GATEWAY_UNAVAILABLE", "Payment could not be processed downstream", http.StatusBadGateway)
	case flow.IsDefect(err):
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
