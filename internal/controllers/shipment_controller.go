package controllers

import (
	"encoding/base64"
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"shiptrack/internal/auth"
	"shiptrack/internal/events"
	"shiptrack/internal/metrics"
	"shiptrack/internal/middleware"
	"shiptrack/internal/models"
	"shiptrack/internal/pricing"
	"shiptrack/internal/query"
	"shiptrack/internal/storage"
)

// shipmentColumns is the allow-list for list filtering and projection.
var shipmentColumns = map[string]bool{
	"id":                     true,
	"tracking_code":          true,
	"sender_name":            true,
	"receiver_name":          true,
	"destination_country":    true,
	"status":                 true,
	"service_level":          true,
	"pricing_tier":           true,
	"assigned_driver_id":     true,
	"assigned_relay_id":      true,
	"created_by":             true,
	"final_price":            true,
	"received_at":            true,
	"expected_delivery_at":   true,
	"worst_case_delivery_at": true,
	"created_at":             true,
}

type ShipmentController struct {
	DB       *gorm.DB
	Auth     *auth.Service
	Assets   *storage.DiskStore
	Producer events.Producer
}

func NewShipmentController(db *gorm.DB, authSvc *auth.Service, assets *storage.DiskStore, producer events.Producer) *ShipmentController {
	return &ShipmentController{DB: db, Auth: authSvc, Assets: assets, Producer: producer}
}

// newTrackingCode derives a code from the creation instant. Collisions are
// caught by the unique index and surface as a creation error.
func newTrackingCode(now time.Time) string {
	return "ST-" + strings.ToUpper(strconv.FormatInt(now.UnixMilli(), 36))
}

type createShipmentInput struct {
	SenderName     string `json:"sender_name" binding:"required"`
	SenderPhone    string `json:"sender_phone"`
	SenderAddress  string `json:"sender_address"`
	SenderIDNumber string `json:"sender_id_number"`

	ReceiverName    string `json:"receiver_name" binding:"required"`
	ReceiverPhone   string `json:"receiver_phone"`
	ReceiverAddress string `json:"receiver_address"`

	DestinationCountry string `json:"destination_country" binding:"required"`

	WeightKg       float64 `json:"weight_kg" binding:"required,gt=0"`
	PricingTier    string  `json:"pricing_tier" binding:"required"`
	ServiceLevel   string  `json:"service_level" binding:"required"`
	HomeDelivery   bool    `json:"home_delivery"`
	NegotiatedRate float64 `json:"negotiated_rate"`

	PaymentTerms string `json:"payment_terms"`
	Notes        string `json:"notes"`
}

// Create registers a shipment at intake. Prices are always computed
// server-side; client-supplied totals are ignored.
func (ctl *ShipmentController) Create(c *gin.Context) {
	var input createShipmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := sessionProfile(c, ctl.Auth)
	if err != nil || profile == nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "no active profile for session"})
		return
	}

	shipment, quote, err := ctl.intake(c, &input, profile)
	if err != nil {
		if errors.Is(err, errInvalidIntake) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid pricing tier or service level"})
		} else {
			logrus.WithError(err).Error("shipment create failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create shipment"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"shipment": shipment, "quote": quote})
}

var errInvalidIntake = errors.New("invalid pricing tier or service level")

// intake prices and persists a new shipment, stamps the CREATED breadcrumb
// and bumps the counter. Shared between the REST and legacy surfaces.
func (ctl *ShipmentController) intake(c *gin.Context, input *createShipmentInput, profile *models.User) (*models.Shipment, *pricing.Quote, error) {
	tier := models.PricingTier(input.PricingTier)
	level := models.ServiceLevel(input.ServiceLevel)
	if !tier.Valid() || !level.Valid() {
		return nil, nil, errInvalidIntake
	}

	quote := pricing.CalculatePrice(input.WeightKg, tier, input.HomeDelivery, input.NegotiatedRate, level)

	shipment := models.Shipment{
		TrackingCode:       newTrackingCode(time.Now().UTC()),
		SenderName:         input.SenderName,
		SenderPhone:        input.SenderPhone,
		SenderAddress:      input.SenderAddress,
		SenderIDNumber:     input.SenderIDNumber,
		ReceiverName:       input.ReceiverName,
		ReceiverPhone:      input.ReceiverPhone,
		ReceiverAddress:    input.ReceiverAddress,
		DestinationCountry: input.DestinationCountry,
		WeightKg:           input.WeightKg,
		PricingTier:        tier,
		ServiceLevel:       level,
		HomeDelivery:       input.HomeDelivery,
		NegotiatedRate:     input.NegotiatedRate,
		BasePrice:          quote.BasePrice,
		FinalPrice:         quote.FinalPrice,
		Status:             models.StatusCreated,
		CreatedBy:          profile.ID,
		CurrentHandlerID:   profile.ID,
		PaymentTerms:       input.PaymentTerms,
		Notes:              input.Notes,
	}

	if err := ctl.DB.Create(&shipment).Error; err != nil {
		return nil, nil, err
	}

	ctl.recordEvent(c, &shipment, profile.ID, profile.Address)
	metrics.ShipmentsCreatedTotal.Inc()
	return &shipment, &quote, nil
}

// List returns shipments scoped to the caller's role: staff and admin see
// everything, drivers and relays only their assignments.
func (ctl *ShipmentController) List(c *gin.Context) {
	opts, err := query.Parse(c.Request.URL.Query(), shipmentColumns)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	db := opts.Apply(ctl.DB.Model(&models.Shipment{}))

	switch middleware.SessionRole(c) {
	case models.RoleDriver:
		profile, perr := sessionProfile(c, ctl.Auth)
		if perr != nil || profile == nil {
			c.JSON(http.StatusForbidden, gin.H{"error": "no active profile for session"})
			return
		}
		db = db.Where("assigned_driver_id = ?", profile.ID)
	case models.RoleRelay:
		profile, perr := sessionProfile(c, ctl.Auth)
		if perr != nil || profile == nil {
			c.JSON(http.StatusForbidden, gin.H{"error": "no active profile for session"})
			return
		}
		db = db.Where("assigned_relay_id = ?", profile.ID)
	}

	var shipments []models.Shipment
	if err := db.Find(&shipments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list shipments"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"shipments": shipments})
}

func (ctl *ShipmentController) GetByID(c *gin.Context) {
	shipment, ok := ctl.loadShipment(c, c.Param("id"))
	if !ok {
		return
	}
	var history []models.ShipmentEvent
	ctl.DB.Where("shipment_id = ?", shipment.ID).Order("created_at asc").Find(&history)
	c.JSON(http.StatusOK, gin.H{"shipment": shipment, "events": history})
}

type updateShipmentInput struct {
	SenderName     *string `json:"sender_name"`
	SenderPhone    *string `json:"sender_phone"`
	SenderAddress  *string `json:"sender_address"`
	SenderIDNumber *string `json:"sender_id_number"`

	ReceiverName    *string `json:"receiver_name"`
	ReceiverPhone   *string `json:"receiver_phone"`
	ReceiverAddress *string `json:"receiver_address"`

	DestinationCountry *string `json:"destination_country"`

	WeightKg       *float64 `json:"weight_kg"`
	PricingTier    *string  `json:"pricing_tier"`
	ServiceLevel   *string  `json:"service_level"`
	HomeDelivery   *bool    `json:"home_delivery"`
	NegotiatedRate *float64 `json:"negotiated_rate"`

	ReceivedAt       *time.Time `json:"received_at"`
	AssignedDriverID *string    `json:"assigned_driver_id"`
	AssignedRelayID  *string    `json:"assigned_relay_id"`

	PaymentTerms *string `json:"payment_terms"`
	Notes        *string `json:"notes"`
}

// Update patches shipment fields. Any change to a pricing input re-runs the
// calculator, and a change to received_at refreshes the delivery estimates.
func (ctl *ShipmentController) Update(c *gin.Context) {
	shipment, ok := ctl.loadShipment(c, c.Param("id"))
	if !ok {
		return
	}

	var input updateShipmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.SenderName != nil {
		shipment.SenderName = *input.SenderName
	}
	if input.SenderPhone != nil {
		shipment.SenderPhone = *input.SenderPhone
	}
	if input.SenderAddress != nil {
		shipment.SenderAddress = *input.SenderAddress
	}
	if input.SenderIDNumber != nil {
		shipment.SenderIDNumber = *input.SenderIDNumber
	}
	if input.ReceiverName != nil {
		shipment.ReceiverName = *input.ReceiverName
	}
	if input.ReceiverPhone != nil {
		shipment.ReceiverPhone = *input.ReceiverPhone
	}
	if input.ReceiverAddress != nil {
		shipment.ReceiverAddress = *input.ReceiverAddress
	}
	if input.DestinationCountry != nil {
		shipment.DestinationCountry = *input.DestinationCountry
	}
	if input.AssignedDriverID != nil {
		shipment.AssignedDriverID = *input.AssignedDriverID
	}
	if input.AssignedRelayID != nil {
		shipment.AssignedRelayID = *input.AssignedRelayID
	}
	if input.PaymentTerms != nil {
		shipment.PaymentTerms = *input.PaymentTerms
	}
	if input.Notes != nil {
		shipment.Notes = *input.Notes
	}

	reprice := false
	if input.WeightKg != nil {
		if *input.WeightKg <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "weight must be positive"})
			return
		}
		shipment.WeightKg = *input.WeightKg
		reprice = true
	}
	if input.PricingTier != nil {
		tier := models.PricingTier(*input.PricingTier)
		if !tier.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid pricing tier"})
			return
		}
		shipment.PricingTier = tier
		reprice = true
	}
	if input.ServiceLevel != nil {
		level := models.ServiceLevel(*input.ServiceLevel)
		if !level.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid service level"})
			return
		}
		shipment.ServiceLevel = level
		reprice = true
	}
	if input.HomeDelivery != nil {
		shipment.HomeDelivery = *input.HomeDelivery
		reprice = true
	}
	if input.NegotiatedRate != nil {
		shipment.NegotiatedRate = *input.NegotiatedRate
		reprice = true
	}

	if reprice {
		quote := pricing.CalculatePrice(shipment.WeightKg, shipment.PricingTier, shipment.HomeDelivery, shipment.NegotiatedRate, shipment.ServiceLevel)
		shipment.BasePrice = quote.BasePrice
		shipment.FinalPrice = quote.FinalPrice
	}

	if input.ReceivedAt != nil || (reprice && shipment.ReceivedAt != nil) {
		if input.ReceivedAt != nil {
			shipment.ReceivedAt = input.ReceivedAt
		}
		ctl.refreshEta(shipment)
	}

	if err := ctl.DB.Save(shipment).Error; err != nil {
		logrus.WithError(err).Error("shipment update failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update shipment"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"shipment": shipment})
}

type statusInput struct {
	Status   string `json:"status" binding:"required"`
	Location string `json:"location"`
}

// UpdateStatus writes a new status, stamps the handler, appends a breadcrumb
// and publishes the change.
func (ctl *ShipmentController) UpdateStatus(c *gin.Context) {
	shipment, ok := ctl.loadShipment(c, c.Param("id"))
	if !ok {
		return
	}

	var input statusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	status, ok := models.ParseShipmentStatus(input.Status)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown shipment status"})
		return
	}

	profile, err := sessionProfile(c, ctl.Auth)
	if err != nil || profile == nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "no active profile for session"})
		return
	}

	location := input.Location
	if location == "" {
		location = profile.Address
	}
	if err := ctl.applyStatus(c, shipment, status, profile.ID, location); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update status"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"shipment": shipment})
}

type relayInboundInput struct {
	TrackingNumber string `json:"tracking_number" binding:"required"`
	BinAssignment  string `json:"bin_assignment"`
}

// RelayInbound checks a shipment in at the caller's relay point and makes it
// available for pickup.
func (ctl *ShipmentController) RelayInbound(c *gin.Context) {
	var input relayInboundInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := sessionProfile(c, ctl.Auth)
	if err != nil || profile == nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "no active profile for session"})
		return
	}

	shipment, ok := ctl.loadByTracking(c, input.TrackingNumber)
	if !ok {
		return
	}

	shipment.AssignedRelayID = profile.ID
	location := profile.Address
	if input.BinAssignment != "" {
		location = location + " bin " + input.BinAssignment
		shipment.Notes = strings.TrimSpace(shipment.Notes + "\nbin: " + input.BinAssignment)
	}
	if err := ctl.applyStatus(c, shipment, models.StatusAtRelayAvailable, profile.ID, location); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not check in shipment"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"shipment": shipment})
}

type relayReleaseInput struct {
	TrackingNumber   string `json:"tracking_number" binding:"required"`
	ReceiverIDNumber string `json:"receiver_id_number"`
}

// RelayRelease hands a shipment over to its receiver. Only the relay the
// shipment is assigned to may release it.
func (ctl *ShipmentController) RelayRelease(c *gin.Context) {
	var input relayReleaseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := sessionProfile(c, ctl.Auth)
	if err != nil || profile == nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "no active profile for session"})
		return
	}

	shipment, ok := ctl.loadByTracking(c, input.TrackingNumber)
	if !ok {
		return
	}
	if shipment.AssignedRelayID != profile.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "shipment is not assigned to this relay point"})
		return
	}

	if input.ReceiverIDNumber != "" {
		shipment.Notes = strings.TrimSpace(shipment.Notes + "\nreceiver id: " + input.ReceiverIDNumber)
	}
	if err := ctl.applyStatus(c, shipment, models.StatusDelivered, profile.ID, profile.Address); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not release shipment"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"shipment": shipment})
}

type paymentInput struct {
	AmountPaid float64 `json:"amount_paid" binding:"required,gt=0"`
}

func (ctl *ShipmentController) RecordPayment(c *gin.Context) {
	shipment, ok := ctl.loadShipment(c, c.Param("id"))
	if !ok {
		return
	}
	var input paymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now().UTC()
	shipment.AmountPaid = input.AmountPaid
	shipment.PaidAt = &now
	if err := ctl.DB.Save(shipment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not record payment"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"shipment": shipment})
}

// photoColumn maps an upload kind to its storage suffix and model column.
func photoColumn(shipment *models.Shipment, kind string) (*string, string) {
	switch kind {
	case "sender-id":
		return &shipment.IDPhotoURL, "sender-id"
	case "parcel":
		return &shipment.ParcelPhotoURL, "parcel"
	case "receiver-id":
		return &shipment.ReceiverIDPhotoURL, "receiver-id"
	case "receiver-parcel":
		return &shipment.ReceiverParcelPhotoURL, "receiver-parcel"
	}
	return nil, ""
}

type photoInput struct {
	PhotoType string `json:"photo_type" binding:"required"`
	Data      string `json:"data" binding:"required"`
	Extension string `json:"extension"`
}

// readPhotoUpload pulls the photo bytes out of either upload shape.
func readPhotoUpload(c *gin.Context) (photoType, extension string, data []byte, err error) {
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		file, header, ferr := c.Request.FormFile("file")
		if ferr != nil {
			return "", "", nil, errors.New("multipart upload needs a file field")
		}
		defer file.Close()

		data, err = io.ReadAll(file)
		if err != nil {
			return "", "", nil, errors.New("could not read uploaded file")
		}
		extension = strings.TrimPrefix(filepath.Ext(header.Filename), ".")
		photoType = c.PostForm("photo_type")
		if photoType == "" {
			return "", "", nil, errors.New("photo_type is required")
		}
		return photoType, extension, data, nil
	}

	var input photoInput
	if err := c.ShouldBindJSON(&input); err != nil {
		return "", "", nil, err
	}
	data, err = base64.StdEncoding.DecodeString(input.Data)
	if err != nil {
		return "", "", nil, errors.New("photo data is not valid base64")
	}
	return input.PhotoType, input.Extension, data, nil
}

// UploadPhoto accepts either a multipart form (file + photo_type) or a JSON
// body with base64 data, and records the public URL on the matching
// shipment column. Re-uploads overwrite the previous object.
func (ctl *ShipmentController) UploadPhoto(c *gin.Context) {
	shipment, ok := ctl.loadShipment(c, c.Param("id"))
	if !ok {
		return
	}

	photoType, extension, data, err := readPhotoUpload(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	column, suffix := photoColumn(shipment, photoType)
	if column == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown photo type"})
		return
	}

	objectPath := storage.ShipmentAssetPath(shipment.TrackingCode, suffix, extension)
	if _, err := ctl.Assets.Save(storage.AssetBucket, objectPath, data); err != nil {
		logrus.WithError(err).Error("photo save failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not store photo"})
		return
	}

	*column = ctl.Assets.PublicURL(storage.AssetBucket, objectPath)
	if err := ctl.DB.Save(shipment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not record photo"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": *column, "shipment": shipment})
}

// trackResponse is the public projection: no photos, no internal handler or
// assignment ids.
type trackResponse struct {
	TrackingCode        string                `json:"tracking_code"`
	SenderName          string                `json:"sender_name"`
	ReceiverName        string                `json:"receiver_name"`
	DestinationCountry  string                `json:"destination_country"`
	ServiceLevel        models.ServiceLevel   `json:"service_level"`
	Status              models.ShipmentStatus `json:"status"`
	ReceivedAt          *time.Time            `json:"received_at"`
	ExpectedDeliveryAt  *time.Time            `json:"expected_delivery_at"`
	WorstCaseDeliveryAt *time.Time            `json:"worst_case_delivery_at"`
	CreatedAt           time.Time             `json:"created_at"`
}

type trackEvent struct {
	Status    models.ShipmentStatus `json:"status"`
	Location  string                `json:"location"`
	CreatedAt time.Time             `json:"created_at"`
}

// Track serves the public, unauthenticated tracking lookup.
func (ctl *ShipmentController) Track(c *gin.Context) {
	shipment, ok := ctl.loadByTracking(c, c.Param("code"))
	if !ok {
		return
	}

	var history []models.ShipmentEvent
	ctl.DB.Where("shipment_id = ?", shipment.ID).Order("created_at asc").Find(&history)

	trail := make([]trackEvent, 0, len(history))
	for _, ev := range history {
		trail = append(trail, trackEvent{Status: ev.Status, Location: ev.Location, CreatedAt: ev.CreatedAt})
	}

	c.JSON(http.StatusOK, gin.H{
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

// applyStatus persists the status change, appends the breadcrumb, publishes
// the event and bumps the metric. RECEIVED also stamps the received time and
// refreshes the delivery estimates.
func (ctl *ShipmentController) applyStatus(c *gin.Context, shipment *models.Shipment, status models.ShipmentStatus, handlerID, location string) error {
	shipment.Status = status
	shipment.CurrentHandlerID = handlerID
	shipment.CurrentHandlerLocation = location

	if status == models.StatusReceived && shipment.ReceivedAt == nil {
		now := time.Now().UTC()
		shipment.ReceivedAt = &now
		ctl.refreshEta(shipment)
	}

	if err := ctl.DB.Save(shipment).Error; err != nil {
		logrus.WithError(err).Error("status write failed")
		return err
	}

	ctl.recordEvent(c, shipment, handlerID, location)
	metrics.StatusUpdatesTotal.WithLabelValues(string(status)).Inc()
	return nil
}

func (ctl *ShipmentController) recordEvent(c *gin.Context, shipment *models.Shipment, handlerID, location string) {
	event := models.ShipmentEvent{
		ShipmentID: shipment.ID,
		Status:     shipment.Status,
		HandlerID:  handlerID,
		Location:   location,
	}
	if err := ctl.DB.Create(&event).Error; err != nil {
		logrus.WithError(err).Warn("could not append shipment event")
	}

	if err := ctl.Producer.Publish(c.Request.Context(), shipment.ID, events.StatusEvent{
		ShipmentID:   shipment.ID,
		TrackingCode: shipment.TrackingCode,
		Status:       shipment.Status,
		HandlerID:    handlerID,
		Location:     location,
		OccurredAt:   time.Now().UTC(),
	}); err != nil {
		logrus.WithError(err).Warn("could not publish status event")
	}
}

func (ctl *ShipmentController) refreshEta(shipment *models.Shipment) {
	eta := pricing.ComputeEta(shipment.ReceivedAt, shipment.ServiceLevel)
	shipment.ExpectedDeliveryAt = eta.Expected
	shipment.WorstCaseDeliveryAt = eta.WorstCase
}

func (ctl *ShipmentController) loadShipment(c *gin.Context, id string) (*models.Shipment, bool) {
	var shipment models.Shipment
	if err := ctl.DB.First(&shipment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "shipment not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load shipment"})
		}
		return nil, false
	}
	return &shipment, true
}

func (ctl *ShipmentController) loadByTracking(c *gin.Context, code string) (*models.Shipment, bool) {
	var shipment models.Shipment
	if err := ctl.DB.First(&shipment, "tracking_code = ?", strings.TrimSpace(code)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "shipment not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load shipment"})
		}
		return nil, false
	}
	return &shipment, true
}
