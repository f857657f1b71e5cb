package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shiptrack/internal/auth"
	"shiptrack/internal/middleware"
	"shiptrack/internal/models"
)

type memProfiles struct {
	users map[string]*models.User
}

func newMemProfiles(users ...*models.User) *memProfiles {
	s := &memProfiles{users: map[string]*models.User{}}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (s *memProfiles) ActiveByID(_ context.Context, id string) (*models.User, error) {
	if u, ok := s.users[id]; ok && u.Active {
		copied := *u
		return &copied, nil
	}
	return nil, nil
}

func (s *memProfiles) ActiveByPhone(_ context.Context, variants []string) (*models.User, error) {
	for _, variant := range variants {
		for _, u := range s.users {
			if u.Active && u.Phone == variant {
				copied := *u
				return &copied, nil
			}
		}
	}
	return nil, nil
}

func (s *memProfiles) ListActive(_ context.Context) ([]models.User, error) {
	var out []models.User
	for _, u := range s.users {
		if u.Active {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (s *memProfiles) List(_ context.Context) ([]models.User, error) {
	var out []models.User
	for _, u := range s.users {
		out = append(out, *u)
	}
	return out, nil
}

func (s *memProfiles) Upsert(_ context.Context, user *models.User) error {
	copied := *user
	s.users[user.ID] = &copied
	return nil
}

func (s *memProfiles) SyncCredentials(_ context.Context, id, phone, pinHash string, activate bool) error {
	u, ok := s.users[id]
	if !ok {
		return nil
	}
	u.Phone = phone
	u.PinHash = pinHash
	if activate {
		u.Active = true
	}
	return nil
}

type memAccounts struct {
	byEmail map[string]*models.AuthAccount
}

func newMemAccounts() *memAccounts {
	return &memAccounts{byEmail: map[string]*models.AuthAccount{}}
}

func (s *memAccounts) ByID(_ context.Context, id string) (*models.AuthAccount, error) {
	for _, a := range s.byEmail {
		if a.ID == id {
			copied := *a
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *memAccounts) ByEmail(_ context.Context, email string) (*models.AuthAccount, error) {
	if a, ok := s.byEmail[email]; ok {
		copied := *a
		return &copied, nil
	}
	return nil, nil
}

func (s *memAccounts) Create(_ context.Context, account *models.AuthAccount) error {
	if _, ok := s.byEmail[account.Email]; ok {
		return auth.ErrAccountExists
	}
	if account.ID == "" {
		account.ID = uuid.NewString()
	}
	copied := *account
	s.byEmail[account.Email] = &copied
	return nil
}

func (s *memAccounts) Update(_ context.Context, account *models.AuthAccount) error {
	copied := *account
	s.byEmail[account.Email] = &copied
	return nil
}

func staffProfile(pin string) *models.User {
	return &models.User{
		ID:       uuid.NewString(),
		FullName: "Awa Diop",
		Phone:    "+254700000001",
		Role:     models.RoleStaff,
		Address:  "Mombasa Road depot",
		Active:   true,
		PinHash:  auth.HashPin(pin),
	}
}

func newAuthRig(serviceKey string, users ...*models.User) (*gin.Engine, *auth.Service, *memProfiles, *memAccounts) {
	gin.SetMode(gin.TestMode)

	profiles := newMemProfiles(users...)
	accounts := newMemAccounts()
	tokens := middleware.NewTokenManager("test-secret")
	svc := auth.NewService(profiles, accounts, tokens)
	ctl := NewAuthController(svc, serviceKey)

	r := gin.New()
	r.POST("/auth/login", ctl.Login)
	r.POST("/auth/phone-login", ctl.PhoneLogin)
	r.GET("/auth/me", tokens.RequireAuth(), ctl.Me)
	return r, svc, profiles, accounts
}

func postJSON(r *gin.Engine, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLoginRepairsLegacyUserAndIssuesSession(t *testing.T) {
	user := staffProfile("1234")
	r, _, _, accounts := newAuthRig("svc-key", user)

	w := postJSON(r, "/auth/login", gin.H{"phone": "254 700-000-001", "pin": "1234"}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var session auth.Session
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &session))
	assert.NotEmpty(t, session.Token)
	assert.Equal(t, user.ID, session.User.ID)
	assert.Equal(t, models.RoleStaff, session.User.Role)

	// the repair step provisioned a provider account on the fly
	assert.Len(t, accounts.byEmail, 1)
}

func TestLoginWrongPinIsGenericUnauthorized(t *testing.T) {
	r, _, _, _ := newAuthRig("svc-key", staffProfile("1234"))

	w := postJSON(r, "/auth/login", gin.H{"phone": "+254700000001", "pin": "9999"}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginRejectsRoleOutsideAllowList(t *testing.T) {
	r, _, _, _ := newAuthRig("svc-key", staffProfile("1234"))

	w := postJSON(r, "/auth/login", gin.H{
		"phone": "+254700000001",
		"pin":   "1234",
		"roles": []string{"driver"},
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMeResolvesSessionBackToProfile(t *testing.T) {
	user := staffProfile("1234")
	r, _, _, _ := newAuthRig("svc-key", user)

	login := postJSON(r, "/auth/login", gin.H{"phone": "+254700000001", "pin": "1234"}, nil)
	require.Equal(t, http.StatusOK, login.Code)
	var session auth.Session
	require.NoError(t, json.Unmarshal(login.Body.Bytes(), &session))

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+session.Token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		User auth.SessionUser `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, user.ID, body.User.ID)
	assert.Equal(t, user.FullName, body.User.FullName)
}

func TestPhoneLoginRequiresServiceKey(t *testing.T) {
	r, _, _, _ := newAuthRig("", staffProfile("1234"))

	w := postJSON(r, "/auth/phone-login", gin.H{"phone": "+254700000001", "pin": "1234"}, nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestPhoneLoginRepairsAndReturnsSyntheticEmail(t *testing.T) {
	r, _, _, _ := newAuthRig("svc-key", staffProfile("1234"))

	w := postJSON(r, "/auth/phone-login", gin.H{"phone": "+254700000001", "pin": "1234"}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body struct {
		OK    bool   `json:"ok"`
		Email string `json:"email"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.OK)
	assert.Equal(t, "phone-254700000001@shiptrack.local", body.Email)
}
