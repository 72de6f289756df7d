package handlers

import (
	"log"
	"net/http"

	"github.com/Harshal-Pande/sepakTakraw-sub000/internal/auth"
	"github.com/Harshal-Pande/sepakTakraw-sub000/internal/models"
	"github.com/Harshal-Pande/sepakTakraw-sub000/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type AdminHandler struct {
	db           *gorm.DB
	adminService *services.AdminService
}

func NewAdminHandler(db *gorm.DB, adminService *services.AdminService) *AdminHandler {
	return &AdminHandler{
		db:           db,
		adminService: adminService,
	}
}

// GetDashboard returns admin dashboard data
func (h *AdminHandler) GetDashboard(c *gin.Context) {
	counts, err := h.adminService.GetDashboardCounts()
	if err != nil {
		log.Printf("Failed to compute dashboard counts: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to fetch dashboard data")
		return
	}

	var pendingRegistrations int64
	h.db.Model(&models.Registration{}).
		Where("status = ?", models.RegistrationStatusPending).
		Count(&pendingRegistrations)

	// Recent activity
	recentLogs, err := h.adminService.GetAdminLogs(10, 0)
	if err != nil {
		log.Printf("Failed to fetch recent admin logs: %v", err)
		recentLogs = nil
	}

	respondOK(c, gin.H{
		"counts":                counts,
		"pending_registrations": pendingRegistrations,
		"recent_logs":           recentLogs,
	})
}

// GetLogs returns admin activity logs
func (h *AdminHandler) GetLogs(c *gin.Context) {
	limit, offset := pageParams(c, 50)

	logs, err := h.adminService.GetAdminLogs(limit, offset)
	if err != nil {
		log.Printf("Failed to fetch admin logs: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to fetch logs")
		return
	}

	respondOK(c, logs)
}

// GetSettings returns the site settings singleton, creating a default row
// on first access
func (h *AdminHandler) GetSettings(c *gin.Context) {
	var setting models.SiteSetting
	err := h.db.First(&setting).Error
	if err == gorm.ErrRecordNotFound {
		setting = models.SiteSetting{
			FederationName:  "Sepaktakraw Federation",
			RegistrationFee: decimal.Zero,
		}
		if err := h.db.Create(&setting).Error; err != nil {
			respondError(c, http.StatusInternalServerError, "Failed to initialize settings")
			return
		}
	} else if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch settings")
		return
	}

	respondOK(c, setting)
}

// UpdateSettings updates the site settings singleton
func (h *AdminHandler) UpdateSettings(c *gin.Context) {
	var setting models.SiteSetting
	if err := h.db.First(&setting).Error; err != nil && err != gorm.ErrRecordNotFound {
		respondError(c, http.StatusInternalServerError, "Failed to fetch settings")
		return
	}

	var req struct {
		FederationName  *string          `json:"federation_name"`
		ContactEmail    *string          `json:"contact_email"`
		ContactPhone    *string          `json:"contact_phone"`
		Address         *string          `json:"address"`
		RegistrationFee *decimal.Decimal `json:"registration_fee"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if req.FederationName != nil {
		setting.FederationName = *req.FederationName
	}
	if req.ContactEmail != nil {
		setting.ContactEmail = *req.ContactEmail
	}
	if req.ContactPhone != nil {
		setting.ContactPhone = *req.ContactPhone
	}
	if req.Address != nil {
		setting.Address = *req.Address
	}
	if req.RegistrationFee != nil {
		setting.RegistrationFee = *req.RegistrationFee
	}

	if err := h.db.Save(&setting).Error; err != nil {
		log.Printf("Failed to update settings: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to update settings")
		return
	}

	if adminID, ok := auth.GetAdminID(c); ok {
		h.adminService.LogAdminAction(adminID, "UPDATE_SETTINGS", "SITE_SETTING", &setting.ID, nil)
	}

	respondOK(c, setting)
}
