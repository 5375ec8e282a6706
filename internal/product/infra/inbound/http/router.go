package http

import "github.com/gin-gonic/gin"

// RegisterProductRoutes registra las rutas de productos; todas requieren sesión.
func RegisterProductRoutes(r gin.IRouter, handler *ProductHandler, auth gin.HandlerFunc) {
	products := r.Group("/product", auth)
	{
		products.GET("", handler.ListProducts)
		products.GET("/:id/detail", handler.GetProduct)
		products.POST("/create", handler.CreateProduct)
		products.PUT("/:id/update", handler.UpdateProduct)
		products.DELETE("/:id/delete", handler.DeleteProduct)
	}
}
