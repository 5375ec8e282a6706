package http

import "github.com/gin-gonic/gin"

// RegisterTagRoutes: lectura pública, escritura con sesión.
func RegisterTagRoutes(r gin.IRouter, handler *TagHandler, auth gin.HandlerFunc) {
	tags := r.Group("/tags")
	{
		tags.GET("", handler.ListTags)
		tags.GET("/:id/detail", handler.GetTag)
		tags.POST("/create", auth, handler.CreateTag)
		tags.PUT("/:id/update", auth, handler.UpdateTag)
		tags.DELETE("/:id/delete", auth, handler.DeleteTag)
	}
}
