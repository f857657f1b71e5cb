package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"shiptrack/internal/auth"
	"shiptrack/internal/middleware"
	"shiptrack/internal/models"
)

// LegacyController serves the single-endpoint RPC surface the old mobile
// clients still speak: one POST route, a "path" field selecting the
// operation, the session token inline in the body, and every response
// wrapped in a {"success": ...} envelope.
type LegacyController struct {
	Auth      *auth.Service
	Tokens    *middleware.TokenManager
	Shipments *ShipmentController
}

func NewLegacyController(authSvc *auth.Service, tokens *middleware.TokenManager, shipments *ShipmentController) *LegacyController {
	return &LegacyController{Auth: authSvc, Tokens: tokens, Shipments: shipments}
}

type legacyRequest struct {
	Path  string `json:"path" binding:"required"`
	Token string `json:"token"`

	Phone string `json:"phone"`
	Pin   string `json:"pin"`

	TrackingNumber string `json:"tracking_number"`
	ShipmentID     string `json:"shipment_id"`
	Status         string `json:"status"`
	Location       string `json:"location"`
	DriverID       string `json:"driver_id"`

	Shipment *createShipmentInput `json:"shipment"`
}

func legacyOK(c *gin.Context, payload gin.H) {
	body := gin.H{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

func legacyFail(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"success": false, "error": message})
}

// Handle dispatches on the request's path field. Old clients send either a
// JSON POST body or a GET with the same fields as query parameters.
func (ctl *LegacyController) Handle(c *gin.Context) {
	var req legacyRequest
	if c.Request.Method == http.MethodGet {
		req = legacyRequest{
			Path:           c.Query("path"),
			Token:          c.Query("token"),
			Phone:          c.Query("phone"),
			Pin:            c.Query("pin"),
			TrackingNumber: c.Query("tracking_number"),
			ShipmentID:     c.Query("shipment_id"),
			Status:         c.Query("status"),
			Location:       c.Query("location"),
			DriverID:       c.Query("driver_id"),
		}
		if req.Path == "" {
			legacyFail(c, "path is required")
			return
		}
	} else if err := c.ShouldBindJSON(&req); err != nil {
		legacyFail(c, "path is required")
		return
	}

	switch strings.TrimPrefix(req.Path, "/") {
	case "login":
		ctl.login(c, &req)
	case "track":
		ctl.track(c, &req)
	case "create-shipment":
		ctl.createShipment(c, &req)
	case "my-shipments":
		ctl.myShipments(c, &req)
	case "my-assignments":
		ctl.myAssignments(c, &req)
	case "relay-shipments":
		ctl.relayShipments(c, &req)
	case "set-status":
		ctl.setStatus(c, &req)
	case "assign-driver":
		ctl.assignDriver(c, &req)
	case "users":
		ctl.users(c, &req)
	default:
		legacyFail(c, "unknown path: "+req.Path)
	}
}

// session authenticates the inline token and resolves the caller's
// profile. A nil return means the failure response is already written.
func (ctl *LegacyController) session(c *gin.Context, req *legacyRequest, allowed ...models.Role) *models.User {
	if req.Token == "" {
		legacyFail(c, "token is required")
		return nil
	}
	accountID, role, err := ctl.Tokens.Parse(req.Token)
	if err != nil {
		legacyFail(c, "invalid or expired token")
		return nil
	}
	if len(allowed) > 0 {
		permitted := false
		for _, r := range allowed {
			if r == role {
				permitted = true
				break
			}
		}
		if !permitted {
			legacyFail(c, "not permitted for this role")
			return nil
		}
	}
	profile, err := ctl.Auth.ProfileForAccount(c.Request.Context(), accountID)
	if err != nil || profile == nil {
		legacyFail(c, "no active profile for session")
		return nil
	}
	return profile
}

func (ctl *LegacyController) login(c *gin.Context, req *legacyRequest) {
	if req.Phone == "" || req.Pin == "" {
		legacyFail(c, "phone and pin are required")
		return
	}
	session, err := ctl.Auth.SignInWithPhonePIN(c.Request.Context(), req.Phone, req.Pin, nil)
	if err != nil {
		legacyFail(c, "invalid phone or PIN")
		return
	}
	legacyOK(c, gin.H{"token": session.Token, "user": session.User})
}

func (ctl *LegacyController) track(c *gin.Context, req *legacyRequest) {
	if req.TrackingNumber == "" {
		legacyFail(c, "tracking_number is required")
		return
	}
	var shipment models.Shipment
	if err := ctl.Shipments.DB.First(&shipment, "tracking_code = ?", strings.TrimSpace(req.TrackingNumber)).Error; err != nil {
		legacyFail(c, "shipment not found")
		return
	}
	var history []models.ShipmentEvent
	ctl.Shipments.DB.Where("shipment_id = ?", shipment.ID).Order("created_at asc").Find(&history)

	trail := make([]trackEvent, 0, len(history))
	for _, ev := range history {
		trail = append(trail, trackEvent{Status: ev.Status, Location: ev.Location, CreatedAt: ev.CreatedAt})
	}
	legacyOK(c, gin.H{
		"shipment": trackResponse{
			TrackingCode:        shipment.TrackingCode,
			SenderName:          shipment.SenderName,
			ReceiverName:        shipment.ReceiverName,
			DestinationCountry:  shipment.DestinationCountry,
			ServiceLevel:        shipment.ServiceLevel,
			Status:              shipment.Status,
			ReceivedAt:          shipment.ReceivedAt,
			ExpectedDeliveryAt:  shipment.ExpectedDeliveryAt,
			WorstCaseDeliveryAt: shipment.WorstCaseDeliveryAt,
			CreatedAt:           shipment.CreatedAt,
		},
		"events": trail,
	})
}

func (ctl *LegacyController) createShipment(c *gin.Context, req *legacyRequest) {
	profile := ctl.session(c, req, models.RoleStaff, models.RoleAdmin)
	if profile == nil {
		return
	}
	if req.Shipment == nil || req.Shipment.SenderName == "" || req.Shipment.ReceiverName == "" ||
		req.Shipment.DestinationCountry == "" || req.Shipment.WeightKg <= 0 {
		legacyFail(c, "shipment details are incomplete")
		return
	}
	shipment, quote, err := ctl.Shipments.intake(c, req.Shipment, profile)
	if err != nil {
		legacyFail(c, "could not create shipment")
		return
	}
	legacyOK(c, gin.H{"shipment": shipment, "quote": quote})
}

func (ctl *LegacyController) myShipments(c *gin.Context, req *legacyRequest) {
	profile := ctl.session(c, req, models.RoleStaff, models.RoleAdmin)
	if profile == nil {
		return
	}
	var shipments []models.Shipment
	if err := ctl.Shipments.DB.Where("created_by = ?", profile.ID).Order("created_at desc").Find(&shipments).Error; err != nil {
		legacyFail(c, "could not list shipments")
		return
	}
	legacyOK(c, gin.H{"shipments": shipments})
}

func (ctl *LegacyController) myAssignments(c *gin.Context, req *legacyRequest) {
	profile := ctl.session(c, req, models.RoleDriver)
	if profile == nil {
		return
	}
	var shipments []models.Shipment
	if err := ctl.Shipments.DB.Where("assigned_driver_id = ?", profile.ID).Order("created_at desc").Find(&shipments).Error; err != nil {
		legacyFail(c, "could not list assignments")
		return
	}
	legacyOK(c, gin.H{"shipments": shipments})
}

func (ctl *LegacyController) relayShipments(c *gin.Context, req *legacyRequest) {
	profile := ctl.session(c, req, models.RoleRelay)
	if profile == nil {
		return
	}
	var shipments []models.Shipment
	if err := ctl.Shipments.DB.Where("assigned_relay_id = ?", profile.ID).Order("created_at desc").Find(&shipments).Error; err != nil {
		legacyFail(c, "could not list relay shipments")
		return
	}
	legacyOK(c, gin.H{"shipments": shipments})
}

func (ctl *LegacyController) setStatus(c *gin.Context, req *legacyRequest) {
	profile := ctl.session(c, req, models.RoleStaff, models.RoleAdmin, models.RoleDriver, models.RoleRelay)
	if profile == nil {
		return
	}
	status, ok := models.ParseShipmentStatus(req.Status)
	if !ok {
		legacyFail(c, "unknown shipment status")
		return
	}

	var shipment models.Shipment
	key := req.ShipmentID
	column := "id"
	if key == "" {
		key = strings.TrimSpace(req.TrackingNumber)
		column = "tracking_code"
	}
	if key == "" {
		legacyFail(c, "shipment_id or tracking_number is required")
		return
	}
	if err := ctl.Shipments.DB.First(&shipment, column+" = ?", key).Error; err != nil {
		legacyFail(c, "shipment not found")
		return
	}

	location := req.Location
	if location == "" {
		location = profile.Address
	}
	if err := ctl.Shipments.applyStatus(c, &shipment, status, profile.ID, location); err != nil {
		legacyFail(c, "could not update status")
		return
	}
	legacyOK(c, gin.H{"shipment": shipment})
}

func (ctl *LegacyController) assignDriver(c *gin.Context, req *legacyRequest) {
	profile := ctl.session(c, req, models.RoleStaff, models.RoleAdmin)
	if profile == nil {
		return
	}
	if req.ShipmentID == "" || req.DriverID == "" {
		legacyFail(c, "shipment_id and driver_id are required")
		return
	}

	driver, err := ctl.Auth.ActiveProfileByID(c.Request.Context(), req.DriverID)
	if err != nil || driver == nil || driver.Role != models.RoleDriver {
		legacyFail(c, "driver_id does not name an active driver")
		return
	}

	var shipment models.Shipment
	if err := ctl.Shipments.DB.First(&shipment, "id = ?", req.ShipmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			legacyFail(c, "shipment not found")
		} else {
			legacyFail(c, "could not load shipment")
		}
		return
	}
	shipment.AssignedDriverID = driver.ID
	if err := ctl.Shipments.DB.Save(&shipment).Error; err != nil {
		legacyFail(c, "could not assign driver")
		return
	}
	legacyOK(c, gin.H{"shipment": shipment})
}

func (ctl *LegacyController) users(c *gin.Context, req *legacyRequest) {
	profile := ctl.session(c, req, models.RoleAdmin)
	if profile == nil {
		return
	}
	var users []models.User
	if err := ctl.Shipments.DB.Order("full_name asc").Find(&users).Error; err != nil {
		legacyFail(c, "could not list users")
		return
	}
	legacyOK(c, gin.H{"users": users})
}
