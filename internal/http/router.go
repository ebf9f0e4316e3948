package http

import (
	"github.com/gin-gonic/gin"
	"github.com/iyhunko/catalog-service/internal/http/controller"
	"github.com/iyhunko/catalog-service/internal/http/middleware"
)

// InitRouter registers middleware and catalog routes on the given engine.
func InitRouter(server *gin.Engine, healthCtr *controller.HealthController, productCtr *controller.ProductController) *gin.Engine {
	// Logger wraps Recovery so recovered panics still get an access log record with status 500
	server.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Recovery(),
		middleware.CORS(),
	)

	server.GET("/health", healthCtr.Health)

	// Product endpoints
	products := server.Group("/products")
	{
		products.GET("", productCtr.ListProducts)
		products.POST("", productCtr.CreateProduct)
		products.GET("/:id", productCtr.GetProduct)
		products.PUT("/:id", productCtr.UpdateProduct)
		products.PATCH("/:id", productCtr.UpdateProduct)
		products.DELETE("/:id", productCtr.DeleteProduct)
	}

	return server
}
