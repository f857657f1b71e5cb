package query

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var shipmentColumns = map[string]bool{
	"status":          true,
	"tracking_code":   true,
	"created_at":      true,
	"service_level":   true,
	"final_price":     true,
	"assigned_driver": true,
}

func TestParseFilters(t *testing.T) {
	values := url.Values{}
	values.Set("status", "eq.CREATED")
	values.Set("tracking_code", "eq.ST-ABC123")
	values.Set("order", "created_at.desc")
	values.Set("limit", "25")
	values.Set("select", "tracking_code,status,final_price")

	opts, err := Parse(values, shipmentColumns)
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"status":        "CREATED",
		"tracking_code": "ST-ABC123",
	}, opts.Filters)
	assert.Equal(t, "created_at", opts.OrderBy)
	assert.True(t, opts.Desc)
	assert.Equal(t, 25, opts.Limit)
	assert.Equal(t, []string{"tracking_code", "status", "final_price"}, opts.Select)
}

func TestParseAscendingOrder(t *testing.T) {
	values := url.Values{}
	values.Set("order", "created_at.asc")
	opts, err := Parse(values, shipmentColumns)
	require.NoError(t, err)
	assert.Equal(t, "created_at", opts.OrderBy)
	assert.False(t, opts.Desc)

	values.Set("order", "created_at")
	opts, err = Parse(values, shipmentColumns)
	require.NoError(t, err)
	assert.Equal(t, "created_at", opts.OrderBy)
}

func TestParseRejections(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"unknown filter column", "secret_column", "eq.x"},
		{"unknown order column", "order", "secret_column.desc"},
		{"unknown select column", "select", "status,secret_column"},
		{"missing operator", "status", "CREATED"},
		{"bad limit", "limit", "lots"},
		{"negative limit", "limit", "-1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := url.Values{}
			values.Set(tt.key, tt.value)
			_, err := Parse(values, shipmentColumns)
			assert.Error(t, err)
		})
	}
}

func TestParseCapsLimit(t *testing.T) {
	values := url.Values{}
	values.Set("limit", "100000")
	opts, err := Parse(values, shipmentColumns)
	require.NoError(t, err)
	assert.Equal(t, maxLimit, opts.Limit)
}

func TestParseIgnoresEmptyValues(t *testing.T) {
	values := url.Values{}
	values.Set("status", "")
	opts, err := Parse(values, shipmentColumns)
	require.NoError(t, err)
	assert.Empty(t, opts.Filters)
}
