package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/Harshal-Pande/sepakTakraw-sub000/internal/auth"
	"github.com/Harshal-Pande/sepakTakraw-sub000/internal/services"

	"github.com/gin-gonic/gin"
)

type AdminRegistrationHandler struct {
	reviewService *services.ReviewService
	adminService  *services.AdminService
}

func NewAdminRegistrationHandler(reviewService *services.ReviewService, adminService *services.AdminService) *AdminRegistrationHandler {
	return &AdminRegistrationHandler{
		reviewService: reviewService,
		adminService:  adminService,
	}
}

// ListRegistrations returns a page of registrations with holder info
func (h *AdminRegistrationHandler) ListRegistrations(c *gin.Context) {
	status := c.Query("status")
	limit, offset := pageParams(c, 20)

	rows, total, err := h.reviewService.ListRegistrations(c.Request.Context(), status, limit, offset)
	if err != nil {
		if errors.Is(err, services.ErrInvalidStatus) {
			respondError(c, http.StatusBadRequest, "invalid status filter")
			return
		}
		log.Printf("Failed to list registrations: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to fetch registrations")
		return
	}

	respondPage(c, rows, NewPagination(limit, offset, total))
}

// GetRegistration returns a single registration by id
func (h *AdminRegistrationHandler) GetRegistration(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid registration ID")
		return
	}

	reg, err := h.reviewService.GetRegistration(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrRegistrationNotFound) {
			respondError(c, http.StatusNotFound, "registration not found")
			return
		}
		log.Printf("Failed to fetch registration %d: %v", id, err)
		respondError(c, http.StatusInternalServerError, "Failed to fetch registration")
		return
	}

	respondOK(c, reg)
}

// UpdateStatus transitions a registration's review status
func (h *AdminRegistrationHandler) UpdateStatus(c *gin.Context) {
	var req services.UpdateStatusInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ID == 0 {
		respondError(c, http.StatusBadRequest, "id is required")
		return
	}

	// Default the reviewer to the authenticated admin when not supplied
	if req.ReviewedBy == nil {
		if email, ok := auth.GetAdminEmail(c); ok {
			req.ReviewedBy = &email
		}
	}

	reg, err := h.reviewService.UpdateStatus(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRegistrationNotFound):
			respondError(c, http.StatusNotFound, "registration not found")
		case errors.Is(err, services.ErrInvalidStatus),
			errors.Is(err, services.ErrIllegalTransition):
			respondError(c, http.StatusBadRequest, err.Error())
		default:
			log.Printf("Failed to update registration status: %v", err)
			respondError(c, http.StatusInternalServerError, "Failed to update registration")
		}
		return
	}

	if adminID, ok := auth.GetAdminID(c); ok {
		h.adminService.LogAdminAction(adminID, "REVIEW_REGISTRATION", "REGISTRATION", &reg.ID, map[string]interface{}{
			"status": req.Status,
		})
	}

	respondOK(c, reg)
}

// Actions dispatches POST actions; currently only statistics
func (h *AdminRegistrationHandler) Actions(c *gin.Context) {
	var req struct {
		Action string `json:"action" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "action is required")
		return
	}

	switch req.Action {
	case "statistics":
		counts, total, err := h.reviewService.Statistics(c.Request.Context())
		if err != nil {
			log.Printf("Failed to compute registration statistics: %v", err)
			respondError(c, http.StatusInternalServerError, "Failed to compute statistics")
			return
		}
		respondOK(c, gin.H{
			"counts": counts,
			"total":  total,
		})
	default:
		respondError(c, http.StatusBadRequest, "unknown action")
	}
}
