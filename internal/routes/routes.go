package routes

import (
	ginlog "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"shiptrack/internal/controllers"
	"shiptrack/internal/middleware"
)

// Deps carries the wired controllers into route registration.
type Deps struct {
	Tokens    *middleware.TokenManager
	Auth      *controllers.AuthController
	Shipments *controllers.ShipmentController
	Relays    *controllers.RelayController
	Admin     *controllers.AdminController
	Legacy    *controllers.LegacyController
	AssetDir  string

	// AnonKey gates the public tracking lookup; empty leaves it open.
	AnonKey string
}

func SetupRouter(deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), ginlog.SetLogger())

	AuthRoutes(r, deps)
	ShipmentRoutes(r, deps)
	RelayPointRoutes(r, deps)
	AdminRoutes(r, deps)
	TrackRoutes(r, deps)
	LegacyRoutes(r, deps)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.Static("/assets", deps.AssetDir)

	return r
}
