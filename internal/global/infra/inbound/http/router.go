package http

import "github.com/gin-gonic/gin"

// RegisterGlobalRoutes registra /global/*; todas las rutas son públicas.
func RegisterGlobalRoutes(r gin.IRouter, handler *GlobalHandler) {
	global := r.Group("/global")
	{
		global.GET("/config", handler.GetConfig)
		global.POST("/config/update", handler.UpdateConfig)
		global.GET("/province", handler.ListProvinces)
		global.GET("/city", handler.ListCities)
	}
}
