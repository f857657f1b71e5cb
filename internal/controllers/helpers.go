package controllers

import (
	"github.com/gin-gonic/gin"

	"shiptrack/internal/auth"
	"shiptrack/internal/models"
)

// sessionProfile resolves the request's session back to a profile row.
// A nil profile means the account no longer maps to an active user.
func sessionProfile(c *gin.Context, svc *auth.Service) (*models.User, error) {
	accountID := c.MustGet("user_id").(string)
	return svc.ProfileForAccount(c.Request.Context(), accountID)
}
