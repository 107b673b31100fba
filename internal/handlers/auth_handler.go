package handlers

import (
	"errors"
	"net/http"

	"warranty-management-backend/internal/services/accounts"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	service *accounts.Service
}

func NewAuthHandler(s *accounts.Service) *AuthHandler {
	return &AuthHandler{service: s}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var payload struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	token, user, err := h.service.Login(payload.Email, payload.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "role": user.Role})
}

// CreateUser provisions a new account (admin only). The generated password
// is returned once and also mailed to the user.
func (h *AuthHandler) CreateUser(c *gin.Context) {
	var payload accounts.NewUserInput
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if payload.Email == "" || payload.Role == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and role required"})
		return
	}
	password, err := h.service.CreateUser(payload)
	if err != nil {
		switch {
		case errors.Is(err, accounts.ErrInvalidRole):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, accounts.ErrEmailTaken):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, accounts.ErrCodeConflict):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "user creation failed"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user created", "password": password})
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var payload struct {
		Email string `json:"email"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if err := h.service.ForgotPassword(payload.Email); err != nil {
		if errors.Is(err, accounts.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to send OTP"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "OTP sent to email"})
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var payload struct {
		Email       string `json:"email"`
		OTP         string `json:"otp"`
		NewPassword string `json:"newPassword"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if err := h.service.ResetPassword(payload.Email, payload.OTP, payload.NewPassword); err != nil {
		if errors.Is(err, accounts.ErrInvalidOTP) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired OTP"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to reset password"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password updated"})
}

func (h *AuthHandler) ListShopOwners(c *gin.Context) {
	shops, err := h.service.ListShopOwners()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch shop owners"})
		return
	}
	c.JSON(http.StatusOK, shops)
}

func (h *AuthHandler) ListManagers(c *gin.Context) {
	managers, err := h.service.ListManagers()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch managers"})
		return
	}
	c.JSON(http.StatusOK, managers)
}
