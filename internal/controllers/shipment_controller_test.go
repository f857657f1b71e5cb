package controllers

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shiptrack/internal/models"
)

func TestNewTrackingCodeEncodesCreationInstant(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	code := newTrackingCode(now)

	require.True(t, strings.HasPrefix(code, "ST-"))
	decoded, err := strconv.ParseInt(strings.ToLower(strings.TrimPrefix(code, "ST-")), 36, 64)
	require.NoError(t, err)
	assert.Equal(t, now.UnixMilli(), decoded)
}

func TestNewTrackingCodeIsUppercase(t *testing.T) {
	code := newTrackingCode(time.Now())
	assert.Equal(t, strings.ToUpper(code), code)
}

func TestPhotoColumnMapsKindToFieldAndSuffix(t *testing.T) {
	shipment := &models.Shipment{}

	tests := []struct {
		kind   string
		field  *string
		suffix string
	}{
		{"sender-id", &shipment.IDPhotoURL, "sender-id"},
		{"parcel", &shipment.ParcelPhotoURL, "parcel"},
		{"receiver-id", &shipment.ReceiverIDPhotoURL, "receiver-id"},
		{"receiver-parcel", &shipment.ReceiverParcelPhotoURL, "receiver-parcel"},
	}
	for _, tc := range tests {
		t.Run(tc.kind, func(t *testing.T) {
			column, suffix := photoColumn(shipment, tc.kind)
			require.NotNil(t, column)
			assert.Same(t, tc.field, column)
			assert.Equal(t, tc.suffix, suffix)
		})
	}
}

func TestPhotoColumnRejectsUnknownKind(t *testing.T) {
	column, suffix := photoColumn(&models.Shipment{}, "selfie")
	assert.Nil(t, column)
	assert.Empty(t, suffix)
}
