package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"shiptrack/internal/auth"
	"shiptrack/internal/metrics"
	"shiptrack/internal/models"
)

// AdminController covers user provisioning and the one-off legacy
// migration. Every operation needs the service key configured; without it
// the provisioning backend is unreachable and requests fail outright.
type AdminController struct {
	DB         *gorm.DB
	Auth       *auth.Service
	ServiceKey string
}

func NewAdminController(db *gorm.DB, authSvc *auth.Service, serviceKey string) *AdminController {
	return &AdminController{DB: db, Auth: authSvc, ServiceKey: serviceKey}
}

func (ctl *AdminController) requireServiceKey(c *gin.Context) bool {
	if ctl.ServiceKey == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "service key is not configured"})
		return false
	}
	return true
}

type createUserInput struct {
	FullName string `json:"full_name" binding:"required"`
	Phone    string `json:"phone" binding:"required"`
	Role     string `json:"role" binding:"required"`
	Address  string `json:"address"`
	Pin      string `json:"pin" binding:"required,min=4"`
}

// CreateUser provisions a provider account and profile in one step.
func (ctl *AdminController) CreateUser(c *gin.Context) {
	if !ctl.requireServiceKey(c) {
		return
	}

	var input createUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	role, ok := models.ParseRole(input.Role)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown role"})
		return
	}

	user, err := ctl.Auth.Provision(c.Request.Context(), input.FullName, input.Phone, input.Address, role, input.Pin)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidPhone):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid phone number"})
		case errors.Is(err, auth.ErrAccountExists):
			c.JSON(http.StatusConflict, gin.H{"error": "an account already exists for this phone"})
		default:
			logrus.WithError(err).Error("user provisioning failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create user"})
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": user})
}

type migrateInput struct {
	TempPin string `json:"temp_pin" binding:"required,min=4"`
}

// MigrateUsers provisions accounts for every legacy profile row with a
// shared temporary PIN and reports per-row outcomes.
func (ctl *AdminController) MigrateUsers(c *gin.Context) {
	if !ctl.requireServiceKey(c) {
		return
	}

	var input migrateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "temp_pin of at least 4 characters is required"})
		return
	}

	report, err := ctl.Auth.MigrateAll(c.Request.Context(), input.TempPin)
	if err != nil {
		logrus.WithError(err).Error("user migration failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not run migration"})
		return
	}

	metrics.MigrationOutcomesTotal.WithLabelValues("created").Add(float64(report.Created))
	metrics.MigrationOutcomesTotal.WithLabelValues("skipped").Add(float64(report.Skipped))
	metrics.MigrationOutcomesTotal.WithLabelValues("failed").Add(float64(report.Failed))

	c.JSON(http.StatusOK, gin.H{"report": report})
}

// ListUsers returns all profile rows, inactive ones included.
func (ctl *AdminController) ListUsers(c *gin.Context) {
	var users []models.User
	if err := ctl.DB.Order("full_name asc").Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list users"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

type updateUserInput struct {
	FullName *string `json:"full_name"`
	Address  *string `json:"address"`
	Role     *string `json:"role"`
	Active   *bool   `json:"active"`
}

// UpdateUser changes role, activation or contact details on a profile.
func (ctl *AdminController) UpdateUser(c *gin.Context) {
	if !ctl.requireServiceKey(c) {
		return
	}

	var user models.User
	if err := ctl.DB.First(&user, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load user"})
		}
		return
	}

	var input updateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.FullName != nil {
		user.FullName = *input.FullName
	}
	if input.Address != nil {
		user.Address = *input.Address
	}
	if input.Role != nil {
		role, ok := models.ParseRole(*input.Role)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown role"})
			return
		}
		user.Role = role
	}
	if input.Active != nil {
		user.Active = *input.Active
	}

	if err := ctl.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
