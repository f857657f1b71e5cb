package middleware

import (
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"shiptrack/internal/models"
)

const sessionTTL = 72 * time.Hour

// TokenManager issues and validates session tokens. Revocation keeps a
// jti denylist so a token minted during sign-in can be withdrawn again
// when the role allow-list rejects the resolved profile.
type TokenManager struct {
	secret []byte

	mu      sync.Mutex
	revoked map[string]time.Time
}

func NewTokenManager(secret string) *TokenManager {
	return &TokenManager{
		secret:  []byte(secret),
		revoked: make(map[string]time.Time),
	}
}

// Issue mints a session token for a provider account.
func (m *TokenManager) Issue(accountID string, role models.Role) (string, string, time.Time, error) {
	jti := uuid.NewString()
	expiresAt := time.Now().Add(sessionTTL)
	claims := jwt.MapClaims{
		"user_id": accountID,
		"role":    string(role),
		"jti":     jti,
		"exp":     expiresAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", "", time.Time{}, err
	}
	return signed, jti, expiresAt, nil
}

// Revoke denylists a token by jti until its natural expiry.
func (m *TokenManager) Revoke(jti string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.revoked[jti] = time.Now().Add(sessionTTL)
	m.prune()
}

// Parse validates a token and returns the account id and role claims.
func (m *TokenManager) Parse(tokenStr string) (string, models.Role, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return "", "", errors.New("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", errors.New("invalid token claims")
	}

	jti, _ := claims["jti"].(string)
	if m.isRevoked(jti) {
		return "", "", errors.New("session has been signed out")
	}

	accountID, _ := claims["user_id"].(string)
	roleStr, _ := claims["role"].(string)
	if accountID == "" || roleStr == "" {
		return "", "", errors.New("invalid token claims")
	}
	return accountID, models.Role(roleStr), nil
}

func (m *TokenManager) isRevoked(jti string) bool {
	if jti == "" {
		return true
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	_, revoked := m.revoked[jti]
	return revoked
}

// prune drops denylist entries whose tokens have expired anyway.
// Callers hold the mutex.
func (m *TokenManager) prune() {
	now := time.Now()
	for jti, until := range m.revoked {
		if now.After(until) {
			delete(m.revoked, jti)
		}
	}
}

// authenticate parses the bearer token and stores the claims in the
// context. It never advances the chain itself; callers decide whether to
// call c.Next() after further checks.
func (m *TokenManager) authenticate(c *gin.Context) bool {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid Authorization header"})
		return false
	}

	accountID, role, err := m.Parse(strings.TrimPrefix(authHeader, "Bearer "))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return false
	}

	c.Set("user_id", accountID)
	c.Set("role", role)
	return true
}

// RequireAuth ensures a valid bearer token is present and stores the
// claims in the context for downstream handlers.
func (m *TokenManager) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !m.authenticate(c) {
			return
		}
		c.Next()
	}
}

// RequireRoles ensures the session role is in the allowed set before the
// handler runs. ShipTrack screens gate on role sets (staff+admin,
// driver+admin, ...), not single roles.
func (m *TokenManager) RequireRoles(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !m.authenticate(c) {
			return
		}

		role := c.MustGet("role").(models.Role)
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
	}
}

// AcceptKey guards public read surfaces. The bearer must be either the
// configured anon key or a valid session token; an empty key leaves the
// surface open.
func (m *TokenManager) AcceptKey(anonKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if anonKey == "" {
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid Authorization header"})
			return
		}

		bearer := strings.TrimPrefix(authHeader, "Bearer ")
		if bearer == anonKey {
			c.Next()
			return
		}
		if _, _, err := m.Parse(bearer); err == nil {
			c.Next()
			return
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid API key"})
	}
}

// SessionRole reads the role claim set by RequireAuth.
func SessionRole(c *gin.Context) models.Role {
	return c.MustGet("role").(models.Role)
}

// SessionAccountID reads the account id claim set by RequireAuth.
func SessionAccountID(c *gin.Context) string {
	return c.MustGet("user_id").(string)
}
