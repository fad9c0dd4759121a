package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"cruisebooking/internal/http/middleware"
	"cruisebooking/internal/upstream"
	"cruisebooking/internal/utils"
)

const sessionLifetime = 24 * time.Hour

type AuthHandler struct {
	Client            *upstream.Client
	Secret            []byte
	AdminPasswordHash string
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/auth/login
// Credentials are checked by the remote auth backend; this layer only
// mints the session token the browser holds.
func (h AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	resp, err := h.Client.Login(c.Request.Context(), upstream.LoginRequest{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if !resp.Success {
		RespondError(c, http.StatusUnauthorized, utils.FirstNonEmpty(resp.Message, "invalid email or password"), nil)
		return
	}

	token, err := h.mintToken(jwt.MapClaims{
		"user_id": resp.User.ID,
		"name":    resp.User.Name,
		"email":   resp.User.Email,
		"role":    utils.FirstNonEmpty(resp.User.Role, "customer"),
		"exp":     time.Now().Add(sessionLifetime).Unix(),
	})
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to create session token", err)
		return
	}

	utils.LogEvent(middleware.GetRequestID(c), "auth", "login", "email="+req.Email)
	c.JSON(http.StatusOK, gin.H{"token": token, "user": resp.User})
}

type adminLoginRequest struct {
	Password string `json:"password"`
}

// POST /api/auth/admin
// The admin dashboards are gated by a single operator password, stored as
// a bcrypt hash in the environment.
func (h AuthHandler) AdminLogin(c *gin.Context) {
	var req adminLoginRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	if h.AdminPasswordHash == "" {
		RespondError(c, http.StatusServiceUnavailable, "admin access is not configured", nil)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(h.AdminPasswordHash), []byte(req.Password)); err != nil {
		RespondError(c, http.StatusUnauthorized, "invalid admin password", nil)
		return
	}

	token, err := h.mintToken(jwt.MapClaims{
		"name": "Administrator",
		"role": "admin",
		"exp":  time.Now().Add(sessionLifetime).Unix(),
	})
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to create session token", err)
		return
	}

	utils.LogEvent(middleware.GetRequestID(c), "auth", "admin_login", "")
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// GET /api/auth/me
func (h AuthHandler) Me(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		RespondError(c, http.StatusUnauthorized, "login required", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h AuthHandler) mintToken(claims jwt.MapClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(h.Secret)
}
