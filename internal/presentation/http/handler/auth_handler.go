package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/application/service"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/presentation/http/dto/request"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/presentation/http/dto/response"
)

// CookieConfig describes the auth cookie set on login
type CookieConfig struct {
	Name   string
	Secure bool
}

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	authService *service.AuthService
	cookie      CookieConfig
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService, cookie CookieConfig) *AuthHandler {
	return &AuthHandler{authService: authService, cookie: cookie}
}

// Login handles admin login
// @Summary Login
// @Tags auth
// @Accept json
// @Produce json
// @Param request body request.LoginRequest true "Login credentials"
// @Success 200 {object} response.APIResponse
// @Failure 401 {object} response.APIResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	output, err := h.authService.Login(c.Request.Context(), &service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	if h.cookie.Name != "" {
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(h.cookie.Name, output.AccessToken, int(output.ExpiresIn), "/", "", h.cookie.Secure, true)
	}

	response.OK(c, "Login successful", gin.H{
		"admin":        output.Admin,
		"access_token": output.AccessToken,
		"token_type":   "Bearer",
		"expires_in":   output.ExpiresIn,
	})
}

// Logout clears the auth cookie. Tokens are stateless, so a client holding
// a bearer token should discard it.
// @Summary Logout
// @Tags auth
// @Security BearerAuth
// @Success 200 {object} response.APIResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if h.cookie.Name != "" {
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(h.cookie.Name, "", -1, "/", "", h.cookie.Secure, true)
	}
	response.OK(c, "Logged out successfully", nil)
}

// GetProfile returns the signed-in admin
// @Summary Get Profile
// @Tags auth
// @Security BearerAuth
// @Success 200 {object} response.APIResponse
// @Router /profile [get]
func (h *AuthHandler) GetProfile(c *gin.Context) {
	adminID := GetAdminID(c)
	if adminID == nil {
		response.Unauthorized(c, "Admin not authenticated")
		return
	}

	admin, err := h.authService.GetProfile(c.Request.Context(), *adminID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Profile retrieved successfully", admin)
}
