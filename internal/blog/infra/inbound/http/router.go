package http

import "github.com/gin-gonic/gin"

// RegisterBlogRoutes: listado y detalle son públicos.
func RegisterBlogRoutes(r gin.IRouter, handler *BlogHandler, auth gin.HandlerFunc) {
	blogs := r.Group("/blog")
	{
		blogs.GET("", handler.ListBlogs)
		blogs.GET("/:id/detail", handler.GetBlog)
		blogs.POST("/create", auth, handler.CreateBlog)
		blogs.PUT("/:id/update", auth, handler.UpdateBlog)
		blogs.DELETE("/:id/delete", auth, handler.DeleteBlog)
	}
}
