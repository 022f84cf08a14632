package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pantrymarket/backend/internal/middleware"
	"github.com/pantrymarket/backend/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	user, err := h.authService.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user_id": user.ID})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	token, sessionToken, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	// Session token travels as an httponly cookie; the JWT in the body
	// serves bearer-style clients.
	c.SetCookie(middleware.SessionCookie, sessionToken, 24*60*60, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"token": token, "token_type": "bearer"})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	cookie, err := c.Cookie(middleware.SessionCookie)
	if err != nil || cookie == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no active session"})
		return
	}

	if err := h.authService.Logout(c.Request.Context(), cookie); err != nil {
		respondError(c, err)
		return
	}

	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	// Always answer the same way so the endpoint cannot be used to probe
	// which addresses have accounts.
	if err := h.authService.ForgotPassword(c.Request.Context(), req.Email); err != nil && err != service.ErrNotFound {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "password reset instructions sent to your email"})
}
