package controllers

import (
	"encoding/binary"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	geom "github.com/twpayne/go-geom"
	gjson "github.com/twpayne/go-geom/encoding/geojson"
	"github.com/twpayne/go-geom/encoding/wkb"
	"gorm.io/gorm"

	"shiptrack/internal/auth"
	"shiptrack/internal/middleware"
	"shiptrack/internal/models"
)

type RelayController struct {
	DB   *gorm.DB
	Auth *auth.Service
}

func NewRelayController(db *gorm.DB, authSvc *auth.Service) *RelayController {
	return &RelayController{DB: db, Auth: authSvc}
}

// RelayPointResponse carries the stored point back out as GeoJSON.
type RelayPointResponse struct {
	ID          string `json:"id"`
	RelayUserID string `json:"relay_user_id"`
	Label       string `json:"label"`
	Address     string `json:"address"`
	Location    string `json:"location"`
}

func toRelayPointResponse(point models.RelayPoint) RelayPointResponse {
	location, err := convertWKBToGeoJSON(point.Location)
	if err != nil {
		location = ""
	}
	return RelayPointResponse{
		ID:          point.ID,
		RelayUserID: point.RelayUserID,
		Label:       point.Label,
		Address:     point.Address,
		Location:    location,
	}
}

// parseAndConvertGeometry parses a GeoJSON string into WKB bytes.
func parseAndConvertGeometry(raw string) ([]byte, error) {
	if raw == "" {
		return nil, nil
	}
	var g geom.T
	if err := gjson.Unmarshal([]byte(raw), &g); err != nil {
		return nil, err
	}
	return wkb.Marshal(g, binary.LittleEndian)
}

func convertWKBToGeoJSON(wkbBytes []byte) (string, error) {
	if len(wkbBytes) == 0 {
		return "", nil
	}
	g, err := wkb.Unmarshal(wkbBytes)
	if err != nil {
		return "", err
	}
	encoded, err := gjson.Marshal(g)
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

type relayPointInput struct {
	RelayUserID string `json:"relay_user_id"`
	Label       string `json:"label" binding:"required"`
	Address     string `json:"address" binding:"required"`
	Location    string `json:"location"`
}

// Create registers a relay point. Admin and staff may create one for any
// relay user; a relay user may only create their own.
func (ctl *RelayController) Create(c *gin.Context) {
	var input relayPointInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	relayUserID := input.RelayUserID
	if middleware.SessionRole(c) == models.RoleRelay {
		profile, err := sessionProfile(c, ctl.Auth)
		if err != nil || profile == nil {
			c.JSON(http.StatusForbidden, gin.H{"error": "no active profile for session"})
			return
		}
		relayUserID = profile.ID
	}
	if relayUserID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "relay_user_id is required"})
		return
	}

	owner, err := ctl.Auth.ActiveProfileByID(c.Request.Context(), relayUserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not look up relay user"})
		return
	}
	if owner == nil || owner.Role != models.RoleRelay {
		c.JSON(http.StatusBadRequest, gin.H{"error": "relay_user_id does not name an active relay user"})
		return
	}

	location, err := parseAndConvertGeometry(input.Location)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid location geometry: " + err.Error()})
		return
	}

	point := models.RelayPoint{
		RelayUserID: relayUserID,
		Label:       input.Label,
		Address:     input.Address,
		Location:    location,
	}
	if err := ctl.DB.Create(&point).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "relay user already has a relay point"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"relay_point": toRelayPointResponse(point)})
}

func (ctl *RelayController) List(c *gin.Context) {
	var points []models.RelayPoint
	if err := ctl.DB.Order("label asc").Find(&points).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list relay points"})
		return
	}
	responses := make([]RelayPointResponse, 0, len(points))
	for _, point := range points {
		responses = append(responses, toRelayPointResponse(point))
	}
	c.JSON(http.StatusOK, gin.H{"relay_points": responses})
}

func (ctl *RelayController) GetByID(c *gin.Context) {
	point, ok := ctl.loadPoint(c, c.Param("id"))
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"relay_point": toRelayPointResponse(*point)})
}

// Mine returns the caller's own relay point.
func (ctl *RelayController) Mine(c *gin.Context) {
	profile, err := sessionProfile(c, ctl.Auth)
	if err != nil || profile == nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "no active profile for session"})
		return
	}
	var point models.RelayPoint
	if err := ctl.DB.First(&point, "relay_user_id = ?", profile.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no relay point registered"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load relay point"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"relay_point": toRelayPointResponse(point)})
}

type relayPointUpdateInput struct {
	Label    *string `json:"label"`
	Address  *string `json:"address"`
	Location *string `json:"location"`
}

func (ctl *RelayController) Update(c *gin.Context) {
	point, ok := ctl.loadPoint(c, c.Param("id"))
	if !ok {
		return
	}

	if middleware.SessionRole(c) == models.RoleRelay {
		profile, err := sessionProfile(c, ctl.Auth)
		if err != nil || profile == nil || profile.ID != point.RelayUserID {
			c.JSON(http.StatusForbidden, gin.H{"error": "relay point belongs to another user"})
			return
		}
	}

	var input relayPointUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Label != nil {
		point.Label = *input.Label
	}
	if input.Address != nil {
		point.Address = *input.Address
	}
	if input.Location != nil {
		location, err := parseAndConvertGeometry(*input.Location)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid location geometry: " + err.Error()})
			return
		}
		point.Location = location
	}

	if err := ctl.DB.Save(point).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update relay point"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"relay_point": toRelayPointResponse(*point)})
}

func (ctl *RelayController) Delete(c *gin.Context) {
	point, ok := ctl.loadPoint(c, c.Param("id"))
	if !ok {
		return
	}
	if err := ctl.DB.Delete(point).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete relay point"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": point.ID})
}

func (ctl *RelayController) loadPoint(c *gin.Context, id string) (*models.RelayPoint, bool) {
	var point models.RelayPoint
	if err := ctl.DB.First(&point, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "relay point not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load relay point"})
		}
		return nil, false
	}
	return &point, true
}
