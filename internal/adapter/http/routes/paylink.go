package routes

import (
	"paylink/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathProducts = "/products"
	PathPayments = "/payments"
)

func addPaylinkRoutes(rg *gin.RouterGroup, productHandler *handlers.ProductHandler, paymentHandler *handlers.PaymentHandler) {
	products := rg.Group(PathProducts)
	{
		products.POST("", productHandler.CreateProduct)
		products.GET("/:product_id", productHandler.GetProductByID)
		products.PATCH("/:product_id/status", productHandler.UpdateProductStatus)
		products.PATCH("/:product_id/price", productHandler.UpdateProductPrice)
		products.GET("/:product_id/payments", paymentHandler.ListPaymentsByProductID)
	}

	payments := rg.Group(PathPayments)
	{
		// Same wildcard name on both verbs: gin rejects conflicting names
		// for the same path segment.
		payments.POST("/:id", paymentHandler.CreatePaymentByProductID)
		payments.GET("/:id", paymentHandler.GetPaymentByID)
	}
}
