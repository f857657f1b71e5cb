package routes

import (
	"github.com/gin-gonic/gin"
)

func AuthRoutes(r *gin.Engine, deps Deps) {
	auth := r.Group("/auth")
	{
		auth.POST("/login", deps.Auth.Login)
		auth.POST("/phone-login", deps.Auth.PhoneLogin)
		auth.GET("/me", deps.Tokens.RequireAuth(), deps.Auth.Me)
	}
}
