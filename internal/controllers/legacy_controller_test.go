package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shiptrack/internal/auth"
	"shiptrack/internal/middleware"
)

func newLegacyRig(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	profiles := newMemProfiles(staffProfile("1234"))
	tokens := middleware.NewTokenManager("test-secret")
	svc := auth.NewService(profiles, newMemAccounts(), tokens)
	ctl := NewLegacyController(svc, tokens, NewShipmentController(nil, svc, nil, nil))

	r := gin.New()
	r.POST("/api/legacy", ctl.Handle)
	r.GET("/api/legacy", ctl.Handle)
	return r
}

func TestLegacyLoginWrapsSessionInEnvelope(t *testing.T) {
	r := newLegacyRig(t)

	w := postJSON(r, "/api/legacy", gin.H{
		"path":  "login",
		"phone": "+254700000001",
		"pin":   "1234",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body struct {
		Success bool `json:"success"`
		Token   string
		User    auth.SessionUser `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.NotEmpty(t, body.Token)
	assert.Equal(t, "Awa Diop", body.User.FullName)
}

func TestLegacyLoginFailureStaysHTTP200(t *testing.T) {
	r := newLegacyRig(t)

	w := postJSON(r, "/api/legacy", gin.H{
		"path":  "login",
		"phone": "+254700000001",
		"pin":   "9999",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.NotEmpty(t, body.Error)
}

func TestLegacyUnknownPathEnvelope(t *testing.T) {
	r := newLegacyRig(t)

	w := postJSON(r, "/api/legacy", gin.H{"path": "self-destruct"}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success bool `json:"success"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
}

func TestLegacyGetAcceptsQueryParameters(t *testing.T) {
	r := newLegacyRig(t)

	req := httptest.NewRequest(http.MethodGet,
		"/api/legacy?path=login&phone=%2B254700000001&pin=1234", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success bool `json:"success"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success, w.Body.String())
}
