package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/Harshal-Pande/sepakTakraw-sub000/internal/services"

	"github.com/gin-gonic/gin"
)

type RegistrationHandler struct {
	service *services.RegistrationService
}

func NewRegistrationHandler(service *services.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{service: service}
}

// businessRuleStatus maps the known rejection errors to HTTP statuses.
// Anything unrecognized is an infrastructure failure.
func businessRuleStatus(err error) (int, bool) {
	switch {
	case errors.Is(err, services.ErrInvalidReferenceNumber):
		return http.StatusNotFound, true
	case errors.Is(err, services.ErrReferenceNumberUsed):
		return http.StatusConflict, true
	case errors.Is(err, services.ErrReferenceNumberExpired):
		return http.StatusGone, true
	}
	return 0, false
}

// IssueReferenceNumber handles Step 1: mint a reference code for an applicant
func (h *RegistrationHandler) IssueReferenceNumber(c *gin.Context) {
	var req struct {
		FullName string `json:"full_name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "full_name and a valid email are required")
		return
	}

	ref, err := h.service.IssueReferenceNumber(c.Request.Context(), req.FullName, req.Email)
	if err != nil {
		var vErr *services.ValidationError
		if errors.As(err, &vErr) {
			respondError(c, http.StatusBadRequest, vErr.Error())
			return
		}
		log.Printf("Failed to issue reference number: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to issue reference number")
		return
	}

	respondCreated(c, gin.H{
		"reference_number": ref.Code,
		"full_name":        ref.FullName,
		"email":            ref.Email,
		"expires_at":       ref.ExpiresAt,
	})
}

// GetReferenceNumber handles the Step 1 read: holder details for prefill
func (h *RegistrationHandler) GetReferenceNumber(c *gin.Context) {
	code := c.Query("reference_number")
	if code == "" {
		respondError(c, http.StatusBadRequest, "reference_number query parameter is required")
		return
	}

	ref, err := h.service.LookupReferenceNumber(c.Request.Context(), code)
	if err != nil {
		if status, ok := businessRuleStatus(err); ok {
			respondError(c, status, err.Error())
			return
		}
		log.Printf("Failed to look up reference number %s: %v", code, err)
		respondError(c, http.StatusInternalServerError, "Failed to look up reference number")
		return
	}

	respondOK(c, gin.H{
		"reference_number": ref.Code,
		"full_name":        ref.FullName,
		"email":            ref.Email,
		"expires_at":       ref.ExpiresAt,
	})
}

// SubmitRegistration handles Step 2: validate the code and record the
// registration
func (h *RegistrationHandler) SubmitRegistration(c *gin.Context) {
	var req services.SubmitRegistrationInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	reg, err := h.service.SubmitRegistration(c.Request.Context(), &req)
	if err != nil {
		if status, ok := businessRuleStatus(err); ok {
			respondError(c, status, err.Error())
			return
		}
		var vErr *services.ValidationError
		if errors.As(err, &vErr) {
			respondError(c, http.StatusBadRequest, vErr.Error())
			return
		}
		log.Printf("Failed to record registration: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to record registration")
		return
	}

	respondCreated(c, gin.H{
		"registration_id":  reg.ID,
		"reference_number": reg.ReferenceNumber,
		"status":           reg.Status,
	})
}

// GetRegistrationStatus handles the Step 2 read: public status fields for a
// submitted registration
func (h *RegistrationHandler) GetRegistrationStatus(c *gin.Context) {
	code := c.Query("reference_number")
	if code == "" {
		respondError(c, http.StatusBadRequest, "reference_number query parameter is required")
		return
	}

	reg, err := h.service.GetRegistrationStatus(c.Request.Context(), code)
	if err != nil {
		if errors.Is(err, services.ErrInvalidReferenceNumber) {
			respondError(c, http.StatusNotFound, "no registration found for this reference number")
			return
		}
		log.Printf("Failed to fetch registration status for %s: %v", code, err)
		respondError(c, http.StatusInternalServerError, "Failed to fetch registration status")
		return
	}

	respondOK(c, gin.H{
		"id":               reg.ID,
		"reference_number": reg.ReferenceNumber,
		"status":           reg.Status,
		"submitted_at":     reg.SubmittedAt,
		"reviewed_at":      reg.ReviewedAt,
		"review_notes":     reg.ReviewNotes,
	})
}
