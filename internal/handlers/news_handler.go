package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/Harshal-Pande/sepakTakraw-sub000/internal/auth"
	"github.com/Harshal-Pande/sepakTakraw-sub000/internal/models"
	"github.com/Harshal-Pande/sepakTakraw-sub000/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type NewsHandler struct {
	db           *gorm.DB
	adminService *services.AdminService
}

func NewNewsHandler(db *gorm.DB, adminService *services.AdminService) *NewsHandler {
	return &NewsHandler{db: db, adminService: adminService}
}

// ListNews returns published news with optional search
func (h *NewsHandler) ListNews(c *gin.Context) {
	search := c.Query("search")
	limit, offset := pageParams(c, 20)

	query := h.db.Model(&models.News{}).Where("published = ?", true)
	if search != "" {
		term := "%" + search + "%"
		query = query.Where("title ILIKE ? OR content ILIKE ?", term, term)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch news")
		return
	}

	var items []models.News
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch news")
		return
	}

	respondPage(c, items, NewPagination(limit, offset, total))
}

// GetNews returns a single news article
func (h *NewsHandler) GetNews(c *gin.Context) {
	id := c.Param("id")

	var item models.News
	if err := h.db.Where("id = ?", id).First(&item).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			respondError(c, http.StatusNotFound, "News article not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to fetch news article")
		return
	}

	respondOK(c, item)
}

// CreateNews creates a news article (admin only)
func (h *NewsHandler) CreateNews(c *gin.Context) {
	var req struct {
		Title     string `json:"title" binding:"required"`
		Content   string `json:"content"`
		ImageURL  string `json:"image_url"`
		Published *bool  `json:"published"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	item := models.News{
		Title:     req.Title,
		Content:   req.Content,
		ImageURL:  req.ImageURL,
		Published: true,
	}
	if req.Published != nil {
		item.Published = *req.Published
	}

	if err := h.db.Create(&item).Error; err != nil {
		log.Printf("Failed to create news article: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to create news article")
		return
	}

	if adminID, ok := auth.GetAdminID(c); ok {
		h.adminService.LogAdminAction(adminID, "CREATE_NEWS", "NEWS", &item.ID, nil)
	}

	respondCreated(c, item)
}

// UpdateNews updates a news article (admin only)
func (h *NewsHandler) UpdateNews(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid news ID")
		return
	}

	var item models.News
	if err := h.db.First(&item, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			respondError(c, http.StatusNotFound, "News article not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to fetch news article")
		return
	}

	var req struct {
		Title     *string `json:"title"`
		Content   *string `json:"content"`
		ImageURL  *string `json:"image_url"`
		Published *bool   `json:"published"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Content != nil {
		updates["content"] = *req.Content
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}
	if req.Published != nil {
		updates["published"] = *req.Published
	}

	if err := h.db.Model(&item).Updates(updates).Error; err != nil {
		log.Printf("Failed to update news article %d: %v", id, err)
		respondError(c, http.StatusInternalServerError, "Failed to update news article")
		return
	}

	if adminID, ok := auth.GetAdminID(c); ok {
		h.adminService.LogAdminAction(adminID, "UPDATE_NEWS", "NEWS", &item.ID, nil)
	}

	respondOK(c, item)
}

// DeleteNews deletes a news article (admin only)
func (h *NewsHandler) DeleteNews(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid news ID")
		return
	}

	result := h.db.Delete(&models.News{}, id)
	if result.Error != nil {
		log.Printf("Failed to delete news article %d: %v", id, result.Error)
		respondError(c, http.StatusInternalServerError, "Failed to delete news article")
		return
	}
	if result.RowsAffected == 0 {
		respondError(c, http.StatusNotFound, "News article not found")
		return
	}

	if adminID, ok := auth.GetAdminID(c); ok {
		nID := uint(id)
		h.adminService.LogAdminAction(adminID, "DELETE_NEWS", "NEWS", &nID, nil)
	}

	respondMessage(c, "News article deleted")
}
