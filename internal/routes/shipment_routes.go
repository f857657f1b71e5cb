package routes

import (
	"github.com/gin-gonic/gin"

	"shiptrack/internal/models"
)

func ShipmentRoutes(r *gin.Engine, deps Deps) {
	shipments := r.Group("/shipments")
	shipments.Use(deps.Tokens.RequireAuth())
	{
		shipments.GET("", deps.Shipments.List)
		shipments.GET("/:id", deps.Shipments.GetByID)

		staff := shipments.Group("")
		staff.Use(deps.Tokens.RequireRoles(models.RoleStaff, models.RoleAdmin))
		{
			staff.POST("", deps.Shipments.Create)
			staff.PATCH("/:id", deps.Shipments.Update)
			staff.POST("/:id/payment", deps.Shipments.RecordPayment)
		}

		shipments.POST("/:id/status", deps.Shipments.UpdateStatus)
		shipments.POST("/:id/photos", deps.Shipments.UploadPhoto)
	}

	relay := r.Group("/relay")
	relay.Use(deps.Tokens.RequireAuth(), deps.Tokens.RequireRoles(models.RoleRelay))
	{
		relay.POST("/inbound", deps.Shipments.RelayInbound)
		relay.POST("/release", deps.Shipments.RelayRelease)
	}
}
