package routes

import (
	"github.com/gin-gonic/gin"

	"shiptrack/internal/models"
)

func RelayPointRoutes(r *gin.Engine, deps Deps) {
	points := r.Group("/relay-points")
	points.Use(deps.Tokens.RequireAuth())
	{
		points.GET("", deps.Relays.List)
		points.GET("/mine", deps.Tokens.RequireRoles(models.RoleRelay), deps.Relays.Mine)
		points.GET("/:id", deps.Relays.GetByID)
		points.POST("", deps.Tokens.RequireRoles(models.RoleStaff, models.RoleAdmin, models.RoleRelay), deps.Relays.Create)
		points.PATCH("/:id", deps.Tokens.RequireRoles(models.RoleStaff, models.RoleAdmin, models.RoleRelay), deps.Relays.Update)
		points.DELETE("/:id", deps.Tokens.RequireRoles(models.RoleAdmin), deps.Relays.Delete)
	}
}
