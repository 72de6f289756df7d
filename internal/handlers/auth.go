package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/Harshal-Pande/sepakTakraw-sub000/internal/auth"
	"github.com/Harshal-Pande/sepakTakraw-sub000/internal/services"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	adminService *services.AdminService
}

func NewAuthHandler(adminService *services.AdminService) *AuthHandler {
	return &AuthHandler{adminService: adminService}
}

// Login authenticates an admin and returns a JWT
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "email and password are required")
		return
	}

	admin, err := h.adminService.Authenticate(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			respondError(c, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		log.Printf("Admin login failed: %v", err)
		respondError(c, http.StatusInternalServerError, "Login failed")
		return
	}

	token, err := auth.GenerateToken(admin.ID, admin.Email, admin.Role)
	if err != nil {
		log.Printf("Failed to generate token for admin %d: %v", admin.ID, err)
		respondError(c, http.StatusInternalServerError, "Login failed")
		return
	}

	respondOK(c, gin.H{
		"token": token,
		"admin": gin.H{
			"id":    admin.ID,
			"email": admin.Email,
			"name":  admin.Name,
			"role":  admin.Role,
		},
	})
}

// Me returns the authenticated admin's account
func (h *AuthHandler) Me(c *gin.Context) {
	adminID, ok := auth.GetAdminID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	admin, err := h.adminService.GetAdminByID(adminID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch admin account")
		return
	}

	respondOK(c, admin)
}
