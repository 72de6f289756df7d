package handlers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/Harshal-Pande/sepakTakraw-sub000/internal/auth"
	"github.com/Harshal-Pande/sepakTakraw-sub000/internal/models"
	"github.com/Harshal-Pande/sepakTakraw-sub000/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ResultHandler struct {
	db           *gorm.DB
	adminService *services.AdminService
}

func NewResultHandler(db *gorm.DB, adminService *services.AdminService) *ResultHandler {
	return &ResultHandler{db: db, adminService: adminService}
}

// ListResults returns match results with optional category filter and search
func (h *ResultHandler) ListResults(c *gin.Context) {
	category := c.Query("category")
	search := c.Query("search")
	limit, offset := pageParams(c, 20)

	query := h.db.Model(&models.Result{})
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if search != "" {
		term := "%" + search + "%"
		query = query.Where("event_name ILIKE ? OR team_a ILIKE ? OR team_b ILIKE ?", term, term, term)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch results")
		return
	}

	var items []models.Result
	if err := query.Order("event_date DESC").Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch results")
		return
	}

	respondPage(c, items, NewPagination(limit, offset, total))
}

// GetResult returns a single result
func (h *ResultHandler) GetResult(c *gin.Context) {
	id := c.Param("id")

	var item models.Result
	if err := h.db.Where("id = ?", id).First(&item).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			respondError(c, http.StatusNotFound, "Result not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to fetch result")
		return
	}

	respondOK(c, item)
}

// CreateResult publishes a match result (admin only)
func (h *ResultHandler) CreateResult(c *gin.Context) {
	var req struct {
		EventName string    `json:"event_name" binding:"required"`
		EventDate time.Time `json:"event_date" binding:"required"`
		Category  string    `json:"category"`
		TeamA     string    `json:"team_a" binding:"required"`
		TeamB     string    `json:"team_b" binding:"required"`
		ScoreA    int       `json:"score_a"`
		ScoreB    int       `json:"score_b"`
		Venue     string    `json:"venue"`
		PhotoURLs string    `json:"photo_urls"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	item := models.Result{
		EventName: req.EventName,
		EventDate: req.EventDate,
		Category:  req.Category,
		TeamA:     req.TeamA,
		TeamB:     req.TeamB,
		ScoreA:    req.ScoreA,
		ScoreB:    req.ScoreB,
		Venue:     req.Venue,
		PhotoURLs: req.PhotoURLs,
	}

	if err := h.db.Create(&item).Error; err != nil {
		log.Printf("Failed to create result: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to create result")
		return
	}

	if adminID, ok := auth.GetAdminID(c); ok {
		h.adminService.LogAdminAction(adminID, "CREATE_RESULT", "RESULT", &item.ID, nil)
	}

	respondCreated(c, item)
}

// UpdateResult updates a match result (admin only)
func (h *ResultHandler) UpdateResult(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid result ID")
		return
	}

	var item models.Result
	if err := h.db.First(&item, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			respondError(c, http.StatusNotFound, "Result not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to fetch result")
		return
	}

	var req struct {
		EventName *string    `json:"event_name"`
		EventDate *time.Time `json:"event_date"`
		Category  *string    `json:"category"`
		TeamA     *string    `json:"team_a"`
		TeamB     *string    `json:"team_b"`
		ScoreA    *int       `json:"score_a"`
		ScoreB    *int       `json:"score_b"`
		Venue     *string    `json:"venue"`
		PhotoURLs *string    `json:"photo_urls"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	updates := map[string]interface{}{}
	if req.EventName != nil {
		updates["event_name"] = *req.EventName
	}
	if req.EventDate != nil {
		updates["event_date"] = *req.EventDate
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.TeamA != nil {
		updates["team_a"] = *req.TeamA
	}
	if req.TeamB != nil {
		updates["team_b"] = *req.TeamB
	}
	if req.ScoreA != nil {
		updates["score_a"] = *req.ScoreA
	}
	if req.ScoreB != nil {
		updates["score_b"] = *req.ScoreB
	}
	if req.Venue != nil {
		updates["venue"] = *req.Venue
	}
	if req.PhotoURLs != nil {
		updates["photo_urls"] = *req.PhotoURLs
	}

	if err := h.db.Model(&item).Updates(updates).Error; err != nil {
		log.Printf("Failed to update result %d: %v", id, err)
		respondError(c, http.StatusInternalServerError, "Failed to update result")
		return
	}

	if adminID, ok := auth.GetAdminID(c); ok {
		h.adminService.LogAdminAction(adminID, "UPDATE_RESULT", "RESULT", &item.ID, nil)
	}

	respondOK(c, item)
}

// DeleteResult deletes a match result (admin only)
func (h *ResultHandler) DeleteResult(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid result ID")
		return
	}

	result := h.db.Delete(&models.Result{}, id)
	if result.Error != nil {
		log.Printf("Failed to delete result %d: %v", id, result.Error)
		respondError(c, http.StatusInternalServerError, "Failed to delete result")
		return
	}
	if result.RowsAffected == 0 {
		respondError(c, http.StatusNotFound, "Result not found")
		return
	}

	if adminID, ok := auth.GetAdminID(c); ok {
		rID := uint(id)
		h.adminService.LogAdminAction(adminID, "DELETE_RESULT", "RESULT", &rID, nil)
	}

	respondMessage(c, "Result deleted")
}
