// internal/interfaces/http/handlers/auth.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/fashion-store/internal/config"
	"github.com/your-org/fashion-store/internal/domain/user"
	"github.com/your-org/fashion-store/internal/interfaces/http/middleware"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	userService *user.Service
	config      *config.Config
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(userService *user.Service, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		config:      cfg,
	}
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req user.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	u, err := h.userService.Register(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "Failed to register user")
		return
	}

	respondMessage(c, http.StatusCreated, "Registration successful", u)
}

// Login handles POST /auth/login. The token is returned as an httpOnly
// cookie only.
func (h *AuthHandler) Login(c *gin.Context) {
	var req user.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	response, err := h.userService.Login(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "Failed to log in")
		return
	}

	h.setSessionCookie(c, response.Token, int(h.config.JWT.AccessTokenExpiry.Seconds()))
	respondMessage(c, http.StatusOK, "Logged in successfully", response)
}

// Logout handles POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if claims, ok := middleware.GetClaimsFromContext(c); ok {
		if err := h.userService.Logout(c.Request.Context(), claims); err != nil {
			// The cookie is still cleared; the token expires on its own
			logrus.WithError(err).WithField("user_id", claims.UserID).Warn("failed to revoke token")
		}
	}

	h.setSessionCookie(c, "", -1)
	respondMessage(c, http.StatusOK, "Logged out successfully!", nil)
}

// CheckAuth handles GET /auth/check-auth
func (h *AuthHandler) CheckAuth(c *gin.Context) {
	claims, ok := middleware.GetClaimsFromContext(c)
	if !ok {
		respondFailure(c, http.StatusUnauthorized, "Unauthorised user!")
		return
	}

	respondMessage(c, http.StatusOK, "Authenticated user!", gin.H{
		"id":       claims.UserID,
		"email":    claims.Email,
		"userName": claims.UserName,
		"role":     claims.Role,
	})
}

// GetProfile handles GET /auth/profile
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	u, err := h.userService.GetUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to retrieve profile")
		return
	}

	respondSuccess(c, http.StatusOK, u)
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		h.config.JWT.CookieName,
		value,
		maxAge,
		"/",
		h.config.JWT.CookieDomain,
		h.config.JWT.CookieSecure,
		true,
	)
}
