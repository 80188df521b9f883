package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"petspotter/internal/app"
	"petspotter/internal/transport/http/response"
)

type AuthHandler struct {
	authService *app.AuthService
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required,max=64"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

// LoginRequest does not enforce the registration length rules; a password
// that could never have been registered simply fails to match.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type authResponse struct {
	Success     bool   `json:"success"`
	UserID      string `json:"userId"`
	Username    string `json:"username"`
	AccessToken string `json:"accessToken"`
}

func NewAuthHandler(authService *app.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	result, err := h.authService.Register(c.Request.Context(), app.RegisterInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		writeServiceError(c, err, userNotFound)
		return
	}

	response.OK(c, authResponse{
		Success:     true,
		UserID:      result.UserID,
		Username:    result.Username,
		AccessToken: result.AccessToken,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), app.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		writeServiceError(c, err, userNotFound)
		return
	}

	response.OK(c, authResponse{
		Success:     true,
		UserID:      result.UserID,
		Username:    result.Username,
		AccessToken: result.AccessToken,
	})
}

func (h *AuthHandler) Welcome(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"testMessage": "THIS IS THE WELCOME PAGE!",
	})
}
