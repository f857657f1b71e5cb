package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shiptrack/internal/models"
)

func TestIssueParseRevoke(t *testing.T) {
	mgr := NewTokenManager("test-secret")

	token, jti, expiresAt, err := mgr.Issue("acct-1", models.RoleStaff)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.NotEmpty(t, jti)
	assert.False(t, expiresAt.IsZero())

	accountID, role, err := mgr.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "acct-1", accountID)
	assert.Equal(t, models.RoleStaff, role)

	mgr.Revoke(jti)
	_, _, err = mgr.Parse(token)
	assert.Error(t, err)
}

func TestParseRejectsForeignSignature(t *testing.T) {
	mgr := NewTokenManager("secret-a")
	other := NewTokenManager("secret-b")

	token, _, _, err := other.Issue("acct-1", models.RoleAdmin)
	require.NoError(t, err)

	_, _, err = mgr.Parse(token)
	assert.Error(t, err)
}

func TestRequireRoles(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mgr := NewTokenManager("test-secret")

	r := gin.New()
	r.GET("/admin-only", mgr.RequireRoles(models.RoleAdmin), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"account": SessionAccountID(c)})
	})
	r.GET("/staff-or-admin", mgr.RequireRoles(models.RoleStaff, models.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	staffToken, _, _, err := mgr.Issue("acct-staff", models.RoleStaff)
	require.NoError(t, err)

	do := func(path, token string) int {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusForbidden, do("/admin-only", staffToken))
	assert.Equal(t, http.StatusOK, do("/staff-or-admin", staffToken))
	assert.Equal(t, http.StatusUnauthorized, do("/staff-or-admin", ""))
	assert.Equal(t, http.StatusUnauthorized, do("/staff-or-admin", "not-a-token"))
}

func TestRequireRolesBlocksHandlerOnMismatch(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mgr := NewTokenManager("test-secret")

	handlerRan := false
	r := gin.New()
	r.POST("/admin/migrate-users", mgr.RequireAuth(), mgr.RequireRoles(models.RoleAdmin), func(c *gin.Context) {
		handlerRan = true
		c.JSON(http.StatusOK, gin.H{"migrated": true})
	})

	driverToken, _, _, err := mgr.Issue("acct-driver", models.RoleDriver)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/admin/migrate-users", nil)
	req.Header.Set("Authorization", "Bearer "+driverToken)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.False(t, handlerRan, "role-gated handler must not run for a disallowed role")
	assert.NotContains(t, w.Body.String(), "migrated")
}

func TestAcceptKey(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mgr := NewTokenManager("test-secret")

	r := gin.New()
	r.GET("/track/:code", mgr.AcceptKey("anon-key"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	r.GET("/open/:code", mgr.AcceptKey(""), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	sessionToken, _, _, err := mgr.Issue("acct-1", models.RoleStaff)
	require.NoError(t, err)

	do := func(path, bearer string) int {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if bearer != "" {
			req.Header.Set("Authorization", "Bearer "+bearer)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, do("/track/ST-1", "anon-key"))
	assert.Equal(t, http.StatusOK, do("/track/ST-1", sessionToken))
	assert.Equal(t, http.StatusUnauthorized, do("/track/ST-1", ""))
	assert.Equal(t, http.StatusUnauthorized, do("/track/ST-1", "wrong-key"))
	assert.Equal(t, http.StatusOK, do("/open/ST-1", ""))
}
