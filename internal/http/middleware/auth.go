package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"cruisebooking/internal/domain/models"
)

const sessionUserKey = "session_user"

// SessionOptional parses a Bearer token when present and stores the session
// user in the context. Invalid or missing tokens leave the request
// anonymous; the booking flow works for guests.
func SessionOptional(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		if user, ok := parseSession(c, secret); ok {
			c.Set(sessionUserKey, user)
		}
		c.Next()
	}
}

// SessionRequired rejects requests without a valid session token.
func SessionRequired(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := parseSession(c, secret)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "login required"})
			return
		}
		c.Set(sessionUserKey, user)
		c.Next()
	}
}

// AdminOnly additionally requires the admin role claim.
func AdminOnly(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := parseSession(c, secret)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "login required"})
			return
		}
		if !user.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Set(sessionUserKey, user)
		c.Next()
	}
}

// CurrentUser returns the session user stored by the auth middleware, or
// nil for anonymous requests.
func CurrentUser(c *gin.Context) *models.SessionUser {
	if v, ok := c.Get(sessionUserKey); ok {
		if u, ok := v.(models.SessionUser); ok {
			return &u
		}
	}
	return nil
}

func parseSession(c *gin.Context, secret []byte) (models.SessionUser, bool) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return models.SessionUser{}, false
	}
	raw := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))

	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return models.SessionUser{}, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return models.SessionUser{}, false
	}

	user := models.SessionUser{}
	if v, ok := claims["user_id"].(float64); ok {
		user.ID = int64(v)
	}
	if v, ok := claims["name"].(string); ok {
		user.Name = v
	}
	if v, ok := claims["email"].(string); ok {
		user.Email = v
	}
	if v, ok := claims["role"].(string); ok {
		user.Role = v
	}
	return user, true
}
