package routes

import (
	"github.com/gin-gonic/gin"
)

// TrackRoutes is the public shipment surface: no session needed, but the
// anon key is checked when one is configured.
func TrackRoutes(r *gin.Engine, deps Deps) {
	r.GET("/track/:code", deps.Tokens.AcceptKey(deps.AnonKey), deps.Shipments.Track)
}
