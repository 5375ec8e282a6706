package http

import "github.com/gin-gonic/gin"

// RegisterAuthRoutes registra /auth/* y /me.
func RegisterAuthRoutes(r gin.IRouter, handler *AuthHandler, auth gin.HandlerFunc) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/login", handler.Login)
		authGroup.POST("/register", handler.Register)
		authGroup.POST("/token/refresh", auth, handler.Refresh)
	}
	r.GET("/me", auth, handler.Me)
}

// RegisterUserRoutes registra las rutas de administración de usuarios.
func RegisterUserRoutes(r gin.IRouter, handler *UserHandler, auth gin.HandlerFunc) {
	users := r.Group("/users", auth)
	{
		users.GET("", handler.ListUsers)
		users.GET("/:id/detail", handler.GetUser)
		users.POST("/create", handler.CreateUser)
		users.PUT("/:id/update", handler.UpdateUser)
		users.DELETE("/:id/delete", handler.DeleteUser)
	}
}
