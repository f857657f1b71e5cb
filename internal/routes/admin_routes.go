package routes

import (
	"github.com/gin-gonic/gin"

	"shiptrack/internal/models"
)

func AdminRoutes(r *gin.Engine, deps Deps) {
	admin := r.Group("/admin")
	admin.Use(deps.Tokens.RequireAuth(), deps.Tokens.RequireRoles(models.RoleAdmin))
	{
		admin.GET("/users", deps.Admin.ListUsers)
		admin.POST("/users", deps.Admin.CreateUser)
		admin.PATCH("/users/:id", deps.Admin.UpdateUser)
		admin.POST("/migrate-users", deps.Admin.MigrateUsers)
	}
}
