package http

import "github.com/gin-gonic/gin"

func RegisterTeamRoutes(r gin.IRouter, handler *TeamHandler, auth gin.HandlerFunc) {
	team := r.Group("/team", auth)
	{
		team.GET("", handler.ListMembers)
		team.GET("/:id/detail", handler.GetMember)
		team.POST("/create", handler.CreateMember)
		team.PUT("/:id/update", handler.UpdateMember)
		team.DELETE("/:id/delete", handler.DeleteMember)
	}
}
