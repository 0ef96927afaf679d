package routes

import (
	"log"
	"strconv"

	_ "paylink/docs" // swagger documentation, generated by swag
	"paylink/internal/adapter/http/handlers"
	"paylink/internal/adapter/persistence/repository"
	"paylink/internal/infrastructure/database"
	"paylink/internal/infrastructure/payments"
	"paylink/internal/usecase"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var router = gin.Default()

const PORT = 8080

// Run will start the server
func Run() {
	setMiddlewares()

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	getRoutes()

	err := router.Run(":" + strconv.Itoa(PORT))
	if err != nil {
		log.Fatalf("Failed to startup the application: %v", err.Error())
	}
}

func getRoutes() {
	ddb := database.ConnectDynamoDB()

	productRepo := repository.NewProductDynamoRepository(ddb)
	paymentStore := repository.NewPaymentDynamoStore(ddb)

	paymentGateway := payments.NewMercadoPagoGateway()

	productUseCase := usecase.NewProductUseCase(productRepo)
	paymentUseCase := usecase.NewPaymentUseCase(paymentStore, paymentGateway)

	productHandler := handlers.NewProductHandler(productUseCase)
	paymentHandler := handlers.NewPaymentHandler(paymentUseCase)

	// Rotas publicas
	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addPaylinkRoutes(v1, productHandler, paymentHandler)
}

func setMiddlewares() {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
}
