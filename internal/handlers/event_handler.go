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

type EventHandler struct {
	db           *gorm.DB
	adminService *services.AdminService
}

func NewEventHandler(db *gorm.DB, adminService *services.AdminService) *EventHandler {
	return &EventHandler{db: db, adminService: adminService}
}

// ListEvents returns events with optional search and upcoming filter
func (h *EventHandler) ListEvents(c *gin.Context) {
	search := c.Query("search")
	upcoming := c.Query("upcoming") == "true"
	limit, offset := pageParams(c, 20)

	query := h.db.Model(&models.Event{})
	if search != "" {
		term := "%" + search + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ? OR location ILIKE ?", term, term, term)
	}
	if upcoming {
		query = query.Where("start_date >= ?", time.Now())
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch events")
		return
	}

	var items []models.Event
	if err := query.Order("start_date DESC").Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch events")
		return
	}

	respondPage(c, items, NewPagination(limit, offset, total))
}

// GetEvent returns a single event
func (h *EventHandler) GetEvent(c *gin.Context) {
	id := c.Param("id")

	var item models.Event
	if err := h.db.Where("id = ?", id).First(&item).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			respondError(c, http.StatusNotFound, "Event not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to fetch event")
		return
	}

	respondOK(c, item)
}

// CreateEvent creates an event (admin only)
func (h *EventHandler) CreateEvent(c *gin.Context) {
	var req struct {
		Title       string     `json:"title" binding:"required"`
		Description string     `json:"description"`
		Location    string     `json:"location"`
		StartDate   time.Time  `json:"start_date" binding:"required"`
		EndDate     *time.Time `json:"end_date"`
		PosterURL   string     `json:"poster_url"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	item := models.Event{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		PosterURL:   req.PosterURL,
	}

	if err := h.db.Create(&item).Error; err != nil {
		log.Printf("Failed to create event: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to create event")
		return
	}

	if adminID, ok := auth.GetAdminID(c); ok {
		h.adminService.LogAdminAction(adminID, "CREATE_EVENT", "EVENT", &item.ID, nil)
	}

	respondCreated(c, item)
}

// UpdateEvent updates an event (admin only)
func (h *EventHandler) UpdateEvent(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid event ID")
		return
	}

	var item models.Event
	if err := h.db.First(&item, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			respondError(c, http.StatusNotFound, "Event not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to fetch event")
		return
	}

	var req struct {
		Title       *string    `json:"title"`
		Description *string    `json:"description"`
		Location    *string    `json:"location"`
		StartDate   *time.Time `json:"start_date"`
		EndDate     *time.Time `json:"end_date"`
		PosterURL   *string    `json:"poster_url"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Location != nil {
		updates["location"] = *req.Location
	}
	if req.StartDate != nil {
		updates["start_date"] = *req.StartDate
	}
	if req.EndDate != nil {
		updates["end_date"] = *req.EndDate
	}
	if req.PosterURL != nil {
		updates["poster_url"] = *req.PosterURL
	}

	if err := h.db.Model(&item).Updates(updates).Error; err != nil {
		log.Printf("Failed to update event %d: %v", id, err)
		respondError(c, http.StatusInternalServerError, "Failed to update event")
		return
	}

	if adminID, ok := auth.GetAdminID(c); ok {
		h.adminService.LogAdminAction(adminID, "UPDATE_EVENT", "EVENT", &item.ID, nil)
	}

	respondOK(c, item)
}

// DeleteEvent deletes an event (admin only)
func (h *EventHandler) DeleteEvent(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid event ID")
		return
	}

	result := h.db.Delete(&models.Event{}, id)
	if result.Error != nil {
		log.Printf("Failed to delete event %d: %v", id, result.Error)
		respondError(c, http.StatusInternalServerError, "Failed to delete event")
		return
	}
	if result.RowsAffected == 0 {
		respondError(c, http.StatusNotFound, "Event not found")
		return
	}

	if adminID, ok := auth.GetAdminID(c); ok {
		eID := uint(id)
		h.adminService.LogAdminAction(adminID, "DELETE_EVENT", "EVENT", &eID, nil)
	}

	respondMessage(c, "Event deleted")
}
