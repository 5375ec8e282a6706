package http

import "github.com/gin-gonic/gin"

func RegisterActivityRoutes(r gin.IRouter, handler *ActivityHandler, auth gin.HandlerFunc) {
	r.GET("/activity", auth, handler.ListActivity)
}
