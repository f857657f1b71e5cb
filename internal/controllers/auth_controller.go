package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"shiptrack/internal/auth"
	"shiptrack/internal/metrics"
	"shiptrack/internal/models"
)

type AuthController struct {
	svc        *auth.Service
	serviceKey string
}

func NewAuthController(svc *auth.Service, serviceKey string) *AuthController {
	return &AuthController{svc: svc, serviceKey: serviceKey}
}

// Login signs a user in with phone and PIN. The optional roles list
// restricts which roles may use the calling screen; a resolved profile
// outside the set is rejected and its provider session revoked.
func (ac *AuthController) Login(c *gin.Context) {
	var input struct {
		Phone string   `json:"phone" binding:"required"`
		Pin   string   `json:"pin" binding:"required"`
		Roles []string `json:"roles"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var allowed []models.Role
	for _, raw := range input.Roles {
		role, ok := models.ParseRole(raw)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid role"})
			return
		}
		allowed = append(allowed, role)
	}

	session, err := ac.svc.SignInWithPhonePIN(c.Request.Context(), input.Phone, input.Pin, allowed)
	if err != nil {
		metrics.LoginFailuresTotal.Inc()
		if errors.Is(err, auth.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": auth.ErrInvalidCredentials.Error()})
			return
		}
		logrus.WithError(err).Error("sign-in failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "sign-in failed"})
		return
	}

	metrics.LoginsTotal.Inc()
	c.JSON(http.StatusOK, session)
}

// PhoneLogin is the repair endpoint: it lazily creates or syncs the
// provider-side account for a legacy profile found by phone, so the next
// password sign-in succeeds.
func (ac *AuthController) PhoneLogin(c *gin.Context) {
	if ac.serviceKey == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "service role key not configured"})
		return
	}

	var input struct {
		Phone string `json:"phone"`
		Pin   string `json:"pin"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}
	if input.Phone == "" || input.Pin == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing phone or PIN"})
		return
	}

	profile, err := ac.svc.Repair(c.Request.Context(), input.Phone, input.Pin)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrProfileNotFound):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found or inactive"})
		case errors.Is(err, auth.ErrPinMismatch):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid PIN"})
		case errors.Is(err, auth.ErrInvalidPhone):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid phone number"})
		default:
			logrus.WithError(err).Error("auth repair failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "repair failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "email": auth.PhoneToEmail(profile.Phone)})
}

// Me resolves the authenticated session back to its profile.
func (ac *AuthController) Me(c *gin.Context) {
	profile, err := ac.profileFromSession(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not resolve profile"})
		return
	}
	if profile == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": auth.ErrInvalidCredentials.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": auth.SessionUser{
		ID:       profile.ID,
		FullName: profile.FullName,
		Phone:    profile.Phone,
		Role:     profile.Role,
		Address:  profile.Address,
	}})
}

func (ac *AuthController) profileFromSession(c *gin.Context) (*models.User, error) {
	accountID := c.MustGet("user_id").(string)
	return ac.svc.ProfileForAccount(c.Request.Context(), accountID)
}
