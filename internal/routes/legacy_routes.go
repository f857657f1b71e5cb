package routes

import (
	"github.com/gin-gonic/gin"
)

// LegacyRoutes mounts the single-endpoint RPC surface for old mobile
// clients.
func LegacyRoutes(r *gin.Engine, deps Deps) {
	r.POST("/api/legacy", deps.Legacy.Handle)
	r.GET("/api/legacy", deps.Legacy.Handle)
}
